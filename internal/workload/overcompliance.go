package workload

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OvercomplianceRow reports a member's registered hours against the period
// norm of their category. Surplus may be negative; callers decide whether
// under-norm is a failure state.
type OvercomplianceRow struct {
	MemberID   uint
	Name       string
	Surname    string
	Category   string
	Registered decimal.Decimal
	PeriodNorm decimal.Decimal
	Surplus    decimal.Decimal
}

// Overcompliance computes surplus = registered - periodNorm for every member
// with an assigned category. Members without a category have no defined norm
// and are skipped rather than defaulted to zero.
//
// The ordering is part of the contract: surplus descending, ties broken by
// surname then name ascending. Report pagination depends on it.
func Overcompliance(members []MemberRow, activities []ActivityRow, start, end time.Time) ([]OvercomplianceRow, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	byMember := groupByMember(activities)

	rows := make([]OvercomplianceRow, 0, len(members))
	for _, member := range members {
		if member.CategoryID == nil {
			continue
		}

		norm, err := PeriodNorm(member.WeeklyNorm, start, end)
		if err != nil {
			return nil, err
		}

		registered, err := SumHours(byMember[member.ID], start, end)
		if err != nil {
			return nil, err
		}

		rows = append(rows, OvercomplianceRow{
			MemberID:   member.ID,
			Name:       member.Name,
			Surname:    member.Surname,
			Category:   member.Category,
			Registered: registered,
			PeriodNorm: norm,
			Surplus:    registered.Sub(norm),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Surplus.Equal(rows[j].Surplus) {
			return rows[i].Surplus.GreaterThan(rows[j].Surplus)
		}
		if rows[i].Surname != rows[j].Surname {
			return rows[i].Surname < rows[j].Surname
		}
		return rows[i].Name < rows[j].Name
	})

	return rows, nil
}
