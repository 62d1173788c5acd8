package workload

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SumHours folds the hours of all activities dated within [start, end],
// optionally restricted to the given activity type IDs. Hours are summed as
// decimals so many small entries cannot drift.
func SumHours(rows []ActivityRow, start, end time.Time, typeIDs ...uint) (decimal.Decimal, error) {
	if err := ValidateRange(start, end); err != nil {
		return decimal.Zero, err
	}

	filter := make(map[uint]struct{}, len(typeIDs))
	for _, id := range typeIDs {
		filter[id] = struct{}{}
	}

	total := decimal.Zero
	for _, row := range rows {
		if !inRange(row.Date, start, end) {
			continue
		}
		if len(filter) > 0 {
			if _, ok := filter[row.TypeID]; !ok {
				continue
			}
		}
		total = total.Add(row.Hours)
	}

	return total, nil
}

// HoursByType groups in-range activity hours by activity type. Results are
// ordered by type ID so repeated calls over the same rows are identical.
func HoursByType(rows []ActivityRow, start, end time.Time) ([]TypeTotal, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	totals := make(map[uint]*TypeTotal)
	for _, row := range rows {
		if !inRange(row.Date, start, end) {
			continue
		}
		entry, ok := totals[row.TypeID]
		if !ok {
			entry = &TypeTotal{TypeID: row.TypeID, TypeName: row.TypeName}
			totals[row.TypeID] = entry
		}
		entry.Hours = entry.Hours.Add(row.Hours)
	}

	result := make([]TypeTotal, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TypeID < result[j].TypeID
	})

	return result, nil
}

func groupByMember(rows []ActivityRow) map[uint][]ActivityRow {
	grouped := make(map[uint][]ActivityRow)
	for _, row := range rows {
		grouped[row.MemberID] = append(grouped[row.MemberID], row)
	}
	return grouped
}
