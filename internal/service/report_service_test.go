package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/repository"
	"github.com/claustro-app/claustro-api/internal/workload"
)

type workloadRepoStub struct {
	members    []workload.MemberRow
	activities []workload.ActivityRow
	lastFilter repository.ReportFilter
}

func (s *workloadRepoStub) MembersWithCategory(ctx context.Context, filter repository.ReportFilter) ([]workload.MemberRow, error) {
	s.lastFilter = filter
	return s.members, nil
}

func (s *workloadRepoStub) ActivityRows(ctx context.Context, memberIDs []uint, start, end time.Time) ([]workload.ActivityRow, error) {
	return s.activities, nil
}

func reportDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func titularMember() workload.MemberRow {
	catID := uint(1)
	return workload.MemberRow{
		ID:         1,
		Name:       "Ana",
		Surname:    "Blanco",
		CategoryID: &catID,
		Category:   "Titular",
		WeeklyNorm: decimal.RequireFromString("67.9"),
	}
}

func TestReportServiceOvercompliance(t *testing.T) {
	repo := &workloadRepoStub{
		members: []workload.MemberRow{titularMember()},
		activities: []workload.ActivityRow{
			{MemberID: 1, TypeID: 1, TypeName: "Pregrado", Date: reportDay(t, "2024-01-10"), Hours: decimal.RequireFromString("300"), DirectTeaching: true, Pregrad: true},
		},
	}
	svc := NewReportService(repo, workload.DefaultPolicy(), testValidator(), testLogger())

	rows, err := svc.Overcompliance(context.Background(), dto.ReportQuery{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-28",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].PeriodNorm.Equal(decimal.RequireFromString("271.6")), "4 weeks at 67.9")
	require.True(t, rows[0].Surplus.Equal(decimal.RequireFromString("28.4")))
}

func TestReportServiceRejectsInvalidPeriod(t *testing.T) {
	svc := NewReportService(&workloadRepoStub{}, workload.DefaultPolicy(), testValidator(), testLogger())

	_, err := svc.Overcompliance(context.Background(), dto.ReportQuery{
		StartDate: "2024-02-01",
		EndDate:   "2024-01-01",
	})
	require.ErrorIs(t, err, workload.ErrInvalidRange)

	_, err = svc.Overcompliance(context.Background(), dto.ReportQuery{
		StartDate: "01/02/2024",
		EndDate:   "2024-03-01",
	})
	require.Error(t, err, "non ISO dates are rejected")
}

func TestReportServiceOverloadPay(t *testing.T) {
	repo := &workloadRepoStub{
		members: []workload.MemberRow{titularMember()},
		activities: []workload.ActivityRow{
			{MemberID: 1, TypeID: 1, TypeName: "Pregrado", Date: reportDay(t, "2024-01-10"), Hours: decimal.RequireFromString("200"), DirectTeaching: true, Pregrad: true},
		},
	}
	svc := NewReportService(repo, workload.DefaultPolicy(), testValidator(), testLogger())

	query := dto.AllocationQuery{
		ReportQuery: dto.ReportQuery{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-28",
		},
		FundAvailable: "100000",
	}
	allocation, err := svc.OverloadPay(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, allocation.Payments, 1)
	require.True(t, allocation.Summary.FundingRatio.Equal(decimal.NewFromInt(1)), "ample fund pays full tariff")
	require.True(t, allocation.Payments[0].Coefficient.Equal(decimal.NewFromInt(150)), "Titular tariff")
	require.True(t, allocation.Payments[0].OverloadHours.Equal(decimal.NewFromInt(86)), "200 total minus 114 norm")
}

func TestReportServiceOverloadPayRejectsBadFund(t *testing.T) {
	svc := NewReportService(&workloadRepoStub{}, workload.DefaultPolicy(), testValidator(), testLogger())

	query := dto.AllocationQuery{
		ReportQuery: dto.ReportQuery{
			StartDate: "2024-01-01",
			EndDate:   "2024-01-28",
		},
		FundAvailable: "not-a-number",
	}
	_, err := svc.OverloadPay(context.Background(), query)
	require.ErrorIs(t, err, ErrInvalidFund)

	query.FundAvailable = "-5"
	_, err = svc.OverloadPay(context.Background(), query)
	require.ErrorIs(t, err, ErrInvalidFund)
}

func TestReportServicePassesFiltersThrough(t *testing.T) {
	repo := &workloadRepoStub{}
	svc := NewReportService(repo, workload.DefaultPolicy(), testValidator(), testLogger())

	departmentID := uint(3)
	_, err := svc.TeachingOverload(context.Background(), dto.ReportQuery{
		StartDate:    "2024-01-01",
		EndDate:      "2024-01-28",
		DepartmentID: &departmentID,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.DepartmentID)
	require.Equal(t, departmentID, *repo.lastFilter.DepartmentID)
}
