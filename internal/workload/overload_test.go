package workload

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTeachingOverloadNeverNegative(t *testing.T) {
	members := []MemberRow{{ID: 1, Name: "Ana", Surname: "Soto", Category: "Titular"}}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-10"), Hours: decimal.NewFromInt(100), DirectTeaching: true},
	}

	rows, err := TeachingOverload(members, activities, day(t, "2024-01-01"), day(t, "2024-01-31"), DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].OverloadHours.IsZero(), "got %s", rows[0].OverloadHours)
}

func TestTeachingOverloadAboveNorm(t *testing.T) {
	members := []MemberRow{{ID: 1, Name: "Ana", Surname: "Soto", Category: "Titular"}}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-10"), Hours: decimal.NewFromInt(200), DirectTeaching: true},
	}

	rows, err := TeachingOverload(members, activities, day(t, "2024-01-01"), day(t, "2024-01-31"), DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].OverloadHours.Equal(decimal.NewFromInt(86)), "got %s", rows[0].OverloadHours)
}

func TestTeachingOverloadTotalsAllActivitiesForQualifyingMembers(t *testing.T) {
	members := []MemberRow{{ID: 1, Name: "Ana", Surname: "Soto", Category: "Auxiliar"}}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-05"), Hours: decimal.NewFromInt(90), DirectTeaching: true, Pregrad: true},
		{MemberID: 1, TypeID: 2, Date: day(t, "2024-01-06"), Hours: decimal.NewFromInt(40), Preparation: true},
		{MemberID: 1, TypeID: 3, Date: day(t, "2024-01-07"), Hours: decimal.NewFromInt(10)},
	}

	rows, err := TeachingOverload(members, activities, day(t, "2024-01-01"), day(t, "2024-01-31"), DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].TotalHours.Equal(decimal.NewFromInt(140)))
	require.True(t, rows[0].PregradHours.Equal(decimal.NewFromInt(90)))
	require.True(t, rows[0].PreparationHours.Equal(decimal.NewFromInt(40)))
	require.True(t, rows[0].OverloadHours.Equal(decimal.NewFromInt(26)))
}

func TestTeachingOverloadExcludesMembersWithoutDirectTeaching(t *testing.T) {
	members := []MemberRow{
		{ID: 1, Name: "Ana", Surname: "Soto", Category: "Titular"},
		{ID: 2, Name: "Luis", Surname: "Vega", Category: "Titular"},
	}
	activities := []ActivityRow{
		// Plenty of hours, none of them direct teaching.
		{MemberID: 1, TypeID: 2, Date: day(t, "2024-01-05"), Hours: decimal.NewFromInt(300), Preparation: true},
		{MemberID: 2, TypeID: 1, Date: day(t, "2024-01-05"), Hours: decimal.NewFromInt(150), DirectTeaching: true},
	}

	rows, err := TeachingOverload(members, activities, day(t, "2024-01-01"), day(t, "2024-01-31"), DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint(2), rows[0].MemberID)
}

func TestTeachingOverloadOrdersByOverloadDescending(t *testing.T) {
	members := []MemberRow{
		{ID: 1, Name: "Ana", Surname: "Soto", Category: "Titular"},
		{ID: 2, Name: "Luis", Surname: "Vega", Category: "Titular"},
	}
	activities := []ActivityRow{
		{MemberID: 1, TypeID: 1, Date: day(t, "2024-01-05"), Hours: decimal.NewFromInt(150), DirectTeaching: true},
		{MemberID: 2, TypeID: 1, Date: day(t, "2024-01-05"), Hours: decimal.NewFromInt(190), DirectTeaching: true},
	}

	rows, err := TeachingOverload(members, activities, day(t, "2024-01-01"), day(t, "2024-01-31"), DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, uint(2), rows[0].MemberID)
	require.Equal(t, uint(1), rows[1].MemberID)
}

func TestClassifyTypeNameDerivesFlags(t *testing.T) {
	patterns := DefaultClassifyPatterns()

	flags := ClassifyTypeName("Docencia Directa de Pregrado y Posgrado", patterns)
	require.True(t, flags.IsDirectTeaching)
	require.True(t, flags.CountsAsPregrad)
	require.False(t, flags.CountsAsPreparation)

	flags = ClassifyTypeName("Preparación de asignaturas", patterns)
	require.False(t, flags.IsDirectTeaching)
	require.True(t, flags.CountsAsPreparation)

	flags = ClassifyTypeName("Trabajo metodológico", patterns)
	require.Equal(t, TypeFlags{}, flags)
}
