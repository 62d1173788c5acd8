package workload

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSumHoursIncludesBothBoundaryDates(t *testing.T) {
	rows := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-01"), Hours: decimal.NewFromInt(3)},
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-31"), Hours: decimal.NewFromInt(2)},
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-02-01"), Hours: decimal.NewFromInt(9)},
		{MemberID: 1, TypeID: 1, Date: day(t, "2023-12-31"), Hours: decimal.NewFromInt(9)},
	}

	total, err := SumHours(rows, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromInt(5)), "got %s", total)
}

func TestSumHoursFiltersByType(t *testing.T) {
	rows := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-10"), Hours: decimal.NewFromInt(4)},
		{MemberID: 1, TypeID: 2, Date: day(t, "2024-01-10"), Hours: decimal.NewFromInt(6)},
	}

	total, err := SumHours(rows, day(t, "2024-01-01"), day(t, "2024-01-31"), 2)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromInt(6)))
}

func TestSumHoursDecimalPrecision(t *testing.T) {
	// 0.1 summed thirty times must be exactly 3, not a float approximation.
	rows := make([]ActivityRow, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, ActivityRow{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-15"), Hours: decimal.NewFromFloat(0.1)})
	}

	total, err := SumHours(rows, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromInt(3)), "got %s", total)
}

func TestHoursByTypeGroupsAndOrders(t *testing.T) {
	rows := []ActivityRow{
		{MemberID: 1, TypeID: 2, TypeName: "Preparación de clases", Date: day(t, "2024-01-05"), Hours: decimal.NewFromInt(5)},
		{MemberID: 1, TypeID: 1, TypeName: "Docencia Directa de Pregrado y Posgrado", Date: day(t, "2024-01-06"), Hours: decimal.NewFromInt(8)},
		{MemberID: 2, TypeID: 2, TypeName: "Preparación de clases", Date: day(t, "2024-01-07"), Hours: decimal.NewFromInt(1)},
	}

	totals, err := HoursByType(rows, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, uint(1), totals[0].TypeID)
	require.True(t, totals[0].Hours.Equal(decimal.NewFromInt(8)))
	require.Equal(t, uint(2), totals[1].TypeID)
	require.True(t, totals[1].Hours.Equal(decimal.NewFromInt(6)))
}

func TestHoursByTypeRejectsInvertedRange(t *testing.T) {
	_, err := HoursByType(nil, day(t, "2024-01-31"), day(t, "2024-01-01"))
	require.ErrorIs(t, err, ErrInvalidRange)
}
