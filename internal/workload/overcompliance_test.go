package workload

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func catID(id uint) *uint { return &id }

func TestOvercomplianceSortsBySurplusThenName(t *testing.T) {
	members := []MemberRow{
		{ID: 1, Name: "Ana", Surname: "Zayas", CategoryID: catID(1), Category: "Titular", WeeklyNorm: decimal.NewFromInt(10)},
		{ID: 2, Name: "Luis", Surname: "Acosta", CategoryID: catID(1), Category: "Titular", WeeklyNorm: decimal.NewFromInt(10)},
		{ID: 3, Name: "Marta", Surname: "Bravo", CategoryID: catID(1), Category: "Titular", WeeklyNorm: decimal.NewFromInt(10)},
	}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-02"), Hours: decimal.NewFromInt(15)},
		{MemberID: 2, TypeID: 1, Date: day(t, "2024-01-03"), Hours: decimal.NewFromInt(15)},
		{MemberID: 3, TypeID: 1, Date: day(t, "2024-01-04"), Hours: decimal.NewFromInt(30)},
	}

	rows, err := Overcompliance(members, activities, day(t, "2024-01-01"), day(t, "2024-01-07"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Highest surplus first; equal surpluses ordered by surname.
	require.Equal(t, uint(3), rows[0].MemberID)
	require.Equal(t, "Acosta", rows[1].Surname)
	require.Equal(t, "Zayas", rows[2].Surname)
}

func TestOvercomplianceRetainsNegativeSurplus(t *testing.T) {
	members := []MemberRow{
		{ID: 1, Name: "Ana", Surname: "Soto", CategoryID: catID(1), Category: "Asistente", WeeklyNorm: decimal.NewFromInt(40)},
	}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-02"), Hours: decimal.NewFromInt(25)},
	}

	rows, err := Overcompliance(members, activities, day(t, "2024-01-01"), day(t, "2024-01-07"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Surplus.Equal(decimal.NewFromInt(-15)), "got %s", rows[0].Surplus)
}

func TestOvercomplianceSkipsMembersWithoutCategory(t *testing.T) {
	members := []MemberRow{
		{ID: 1, Name: "Ana", Surname: "Soto", CategoryID: nil},
		{ID: 2, Name: "Luis", Surname: "Vega", CategoryID: catID(2), Category: "Auxiliar", WeeklyNorm: decimal.NewFromInt(10)},
	}

	rows, err := Overcompliance(members, nil, day(t, "2024-01-01"), day(t, "2024-01-07"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint(2), rows[0].MemberID)
}

func TestOvercomplianceTitularMonthScenario(t *testing.T) {
	// Category norm 271.6 for the month, 300 registered hours.
	members := []MemberRow{
		{ID: 1, Name: "Rosa", Surname: "Diaz", CategoryID: catID(1), Category: "Titular", WeeklyNorm: decimal.NewFromFloat(67.9)},
	}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-10"), Hours: decimal.NewFromInt(300)},
	}

	// 2024-01-01..2024-01-28 spans exactly four weeks.
	rows, err := Overcompliance(members, activities, day(t, "2024-01-01"), day(t, "2024-01-28"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].PeriodNorm.Equal(decimal.NewFromFloat(271.6)), "norm %s", rows[0].PeriodNorm)
	require.True(t, rows[0].Surplus.Equal(decimal.NewFromFloat(28.4)), "surplus %s", rows[0].Surplus)
}

func TestOvercomplianceIsDeterministic(t *testing.T) {
	members := []MemberRow{
		{ID: 1, Name: "Ana", Surname: "Soto", CategoryID: catID(1), Category: "Titular", WeeklyNorm: decimal.NewFromInt(10)},
		{ID: 2, Name: "Luis", Surname: "Vega", CategoryID: catID(1), Category: "Titular", WeeklyNorm: decimal.NewFromInt(10)},
	}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-02"), Hours: decimal.NewFromInt(12)},
		{MemberID: 2, TypeID: 1, Date: day(t, "2024-01-02"), Hours: decimal.NewFromInt(12)},
	}

	first, err := Overcompliance(members, activities, day(t, "2024-01-01"), day(t, "2024-01-07"))
	require.NoError(t, err)
	second, err := Overcompliance(members, activities, day(t, "2024-01-01"), day(t, "2024-01-07"))
	require.NoError(t, err)
	require.Equal(t, first, second)
}
