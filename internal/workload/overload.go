package workload

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OverloadRow reports a member's hours against the fixed monthly teaching
// norm. Pregrad and preparation sub-totals are informational breakdowns.
type OverloadRow struct {
	MemberID         uint
	Name             string
	Surname          string
	Category         string
	TotalHours       decimal.Decimal
	PregradHours     decimal.Decimal
	PreparationHours decimal.Decimal
	OverloadHours    decimal.Decimal
}

// TeachingOverload identifies members with qualifying direct-teaching
// activity in range and derives their overload above the policy's teaching
// norm. A member qualifies only when at least one in-range activity carries
// the direct-teaching flag; total hours then sum across ALL their in-range
// activities, not just teaching ones. Members with zero qualifying activity
// are excluded entirely: overload pay is teaching-specific, unlike the
// overcompliance report.
func TeachingOverload(members []MemberRow, activities []ActivityRow, start, end time.Time, policy Policy) ([]OverloadRow, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	byMember := groupByMember(activities)

	rows := make([]OverloadRow, 0, len(members))
	for _, member := range members {
		memberRows := byMember[member.ID]

		qualifies := false
		total := decimal.Zero
		pregrad := decimal.Zero
		preparation := decimal.Zero
		for _, row := range memberRows {
			if !inRange(row.Date, start, end) {
				continue
			}
			total = total.Add(row.Hours)
			if row.DirectTeaching {
				qualifies = true
			}
			if row.Pregrad {
				pregrad = pregrad.Add(row.Hours)
			}
			if row.Preparation {
				preparation = preparation.Add(row.Hours)
			}
		}
		if !qualifies {
			continue
		}

		overload := total.Sub(policy.TeachingNormHours)
		if overload.IsNegative() {
			overload = decimal.Zero
		}

		rows = append(rows, OverloadRow{
			MemberID:         member.ID,
			Name:             member.Name,
			Surname:          member.Surname,
			Category:         member.Category,
			TotalHours:       total,
			PregradHours:     pregrad,
			PreparationHours: preparation,
			OverloadHours:    overload,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].OverloadHours.Equal(rows[j].OverloadHours) {
			return rows[i].OverloadHours.GreaterThan(rows[j].OverloadHours)
		}
		if rows[i].Surname != rows[j].Surname {
			return rows[i].Surname < rows[j].Surname
		}
		return rows[i].Name < rows[j].Name
	})

	return rows, nil
}
