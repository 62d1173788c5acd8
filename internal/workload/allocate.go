package workload

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Payment is a single member's overload payout line.
type Payment struct {
	MemberID      uint
	Name          string
	Surname       string
	Category      string
	OverloadHours decimal.Decimal
	Coefficient   decimal.Decimal
	Amount        decimal.Decimal
}

// AllocationSummary carries the fund figures behind an allocation.
type AllocationSummary struct {
	FundAvailable decimal.Decimal
	FundNeeded    decimal.Decimal
	FundingRatio  decimal.Decimal
	TotalPaid     decimal.Decimal
}

// Allocation is the result of distributing the unexecuted salary fund over
// members with overload hours.
type Allocation struct {
	CoefficientsByCategory map[string]decimal.Decimal
	Payments               []Payment
	Summary                AllocationSummary
}

// Allocate distributes fundAvailable over the members carrying overload
// hours. The needed fund is the per-category sum of hours times tariff; the
// funding ratio is min(1, available/needed). A needed fund of zero reports a
// ratio of 1 with an empty payout instead of dividing by zero. Per-category
// coefficients are capped at the nominal tariff even though the ratio never
// exceeds 1; the cap is an invariant, not a computation step. Amounts round
// to 2 decimal places, half away from zero. Payments are ordered by surname
// then name for payout-sheet presentation.
func Allocate(rows []OverloadRow, policy Policy, fundAvailable decimal.Decimal) Allocation {
	eligible := make([]OverloadRow, 0, len(rows))
	hoursByCategory := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if !row.OverloadHours.IsPositive() {
			continue
		}
		eligible = append(eligible, row)
		hoursByCategory[row.Category] = hoursByCategory[row.Category].Add(row.OverloadHours)
	}

	needed := decimal.Zero
	for category, hours := range hoursByCategory {
		needed = needed.Add(hours.Mul(policy.Tariff(category)))
	}

	ratio := decimal.NewFromInt(1)
	if needed.IsPositive() {
		ratio = fundAvailable.Div(needed)
		if ratio.GreaterThan(decimal.NewFromInt(1)) {
			ratio = decimal.NewFromInt(1)
		}
		if ratio.IsNegative() {
			ratio = decimal.Zero
		}
	}

	coefficients := make(map[string]decimal.Decimal, len(hoursByCategory))
	for category := range hoursByCategory {
		tariff := policy.Tariff(category)
		coefficient := ratio.Mul(tariff)
		if coefficient.GreaterThan(tariff) {
			coefficient = tariff
		}
		coefficients[category] = coefficient
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Surname != eligible[j].Surname {
			return eligible[i].Surname < eligible[j].Surname
		}
		return eligible[i].Name < eligible[j].Name
	})

	totalPaid := decimal.Zero
	payments := make([]Payment, 0, len(eligible))
	for _, row := range eligible {
		coefficient := coefficients[row.Category]
		amount := coefficient.Mul(row.OverloadHours).Round(2)
		totalPaid = totalPaid.Add(amount)
		payments = append(payments, Payment{
			MemberID:      row.MemberID,
			Name:          row.Name,
			Surname:       row.Surname,
			Category:      row.Category,
			OverloadHours: row.OverloadHours,
			Coefficient:   coefficient,
			Amount:        amount,
		})
	}

	return Allocation{
		CoefficientsByCategory: coefficients,
		Payments:               payments,
		Summary: AllocationSummary{
			FundAvailable: fundAvailable,
			FundNeeded:    needed,
			FundingRatio:  ratio,
			TotalPaid:     totalPaid,
		},
	}
}
