package workload

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodNorm prorates a weekly hour norm over an inclusive date range.
// Partial weeks charge as full weeks: weeks = max(1, ceil(days/7)). The
// round-up is deliberate policy so the norm owed is never undercounted;
// a single-day range still charges one full week.
func PeriodNorm(weeklyNorm decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	if err := ValidateRange(start, end); err != nil {
		return decimal.Zero, err
	}

	days := int(startOfDay(end).Sub(startOfDay(start)).Hours() / 24)
	weeks := (days + 6) / 7
	if weeks < 1 {
		weeks = 1
	}

	return weeklyNorm.Mul(decimal.NewFromInt(int64(weeks))), nil
}
