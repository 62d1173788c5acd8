package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/claustro-app/claustro-api/internal/dto"
)

func TestExportServiceOvercomplianceWorkbook(t *testing.T) {
	svc := NewExportService(testLogger())

	rows := []dto.OvercomplianceRowResponse{{
		MemberID:   1,
		Name:       "Ana",
		Surname:    "Blanco",
		Category:   "Titular",
		Registered: decimal.RequireFromString("300"),
		PeriodNorm: decimal.RequireFromString("271.6"),
		Surplus:    decimal.RequireFromString("28.4"),
	}}

	buffer, filename, err := svc.Overcompliance(rows, "2024-01-01", "2024-01-28")
	require.NoError(t, err)
	require.Equal(t, "overcompliance_2024-01-01_2024-01-28.xlsx", filename)

	workbook, err := excelize.OpenReader(buffer)
	require.NoError(t, err)
	defer workbook.Close()

	header, err := workbook.GetCellValue("Overcompliance", "B1")
	require.NoError(t, err)
	require.Equal(t, "Surname", header)

	surname, err := workbook.GetCellValue("Overcompliance", "B2")
	require.NoError(t, err)
	require.Equal(t, "Blanco", surname)

	surplus, err := workbook.GetCellValue("Overcompliance", "G2")
	require.NoError(t, err)
	require.Equal(t, "28.4", surplus)
}

func TestExportServiceOverloadPayWorkbook(t *testing.T) {
	svc := NewExportService(testLogger())

	allocation := dto.AllocationResponse{
		CoefficientsByCategory: map[string]decimal.Decimal{"Titular": decimal.NewFromInt(150)},
		Payments: []dto.PaymentResponse{{
			MemberID:      1,
			Name:          "Ana",
			Surname:       "Blanco",
			Category:      "Titular",
			OverloadHours: decimal.NewFromInt(86),
			Coefficient:   decimal.NewFromInt(150),
			Amount:        decimal.RequireFromString("12900.00"),
		}},
		Summary: dto.AllocationSummaryResponse{
			FundAvailable: decimal.NewFromInt(100000),
			FundNeeded:    decimal.NewFromInt(12900),
			FundingRatio:  decimal.NewFromInt(1),
			TotalPaid:     decimal.RequireFromString("12900.00"),
		},
	}

	buffer, filename, err := svc.OverloadPay(allocation, "2024-01-01", "2024-01-28")
	require.NoError(t, err)
	require.Equal(t, "overload-pay_2024-01-01_2024-01-28.xlsx", filename)

	workbook, err := excelize.OpenReader(buffer)
	require.NoError(t, err)
	defer workbook.Close()

	amount, err := workbook.GetCellValue("Overload Pay", "G2")
	require.NoError(t, err)
	require.Equal(t, "12900", amount)

	label, err := workbook.GetCellValue("Overload Pay", "A4")
	require.NoError(t, err)
	require.Equal(t, "Fund Available", label)
}
