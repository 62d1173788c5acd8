package dto

import (
	"github.com/shopspring/decimal"

	"github.com/claustro-app/claustro-api/internal/workload"
)

// ReportQuery carries the common period filters for all reports.
type ReportQuery struct {
	StartDate    string `query:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `query:"end_date" validate:"required,datetime=2006-01-02"`
	RoleID       *uint  `query:"role_id"`
	DepartmentID *uint  `query:"department_id"`
	CategoryID   *uint  `query:"category_id"`
	Format       string `query:"format" validate:"omitempty,oneof=json xlsx"`
}

// AllocationQuery extends the period filters with the available fund amount
// for the overload pay report.
type AllocationQuery struct {
	ReportQuery
	FundAvailable string `query:"fund_available" validate:"required"`
}

// OvercomplianceRowResponse is one member's line in the overcompliance report.
type OvercomplianceRowResponse struct {
	MemberID   uint            `json:"member_id"`
	Name       string          `json:"name"`
	Surname    string          `json:"surname"`
	Category   string          `json:"category"`
	Registered decimal.Decimal `json:"registered_hours"`
	PeriodNorm decimal.Decimal `json:"period_norm"`
	Surplus    decimal.Decimal `json:"surplus"`
}

// NewOvercomplianceResponse converts engine rows into DTOs.
func NewOvercomplianceResponse(rows []workload.OvercomplianceRow) []OvercomplianceRowResponse {
	out := make([]OvercomplianceRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, OvercomplianceRowResponse{
			MemberID:   row.MemberID,
			Name:       row.Name,
			Surname:    row.Surname,
			Category:   row.Category,
			Registered: row.Registered,
			PeriodNorm: row.PeriodNorm,
			Surplus:    row.Surplus,
		})
	}
	return out
}

// OverloadRowResponse is one member's line in the teaching overload report.
type OverloadRowResponse struct {
	MemberID         uint            `json:"member_id"`
	Name             string          `json:"name"`
	Surname          string          `json:"surname"`
	Category         string          `json:"category"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	PregradHours     decimal.Decimal `json:"pregrad_hours"`
	PreparationHours decimal.Decimal `json:"preparation_hours"`
	OverloadHours    decimal.Decimal `json:"overload_hours"`
}

// NewOverloadResponse converts engine rows into DTOs.
func NewOverloadResponse(rows []workload.OverloadRow) []OverloadRowResponse {
	out := make([]OverloadRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, OverloadRowResponse{
			MemberID:         row.MemberID,
			Name:             row.Name,
			Surname:          row.Surname,
			Category:         row.Category,
			TotalHours:       row.TotalHours,
			PregradHours:     row.PregradHours,
			PreparationHours: row.PreparationHours,
			OverloadHours:    row.OverloadHours,
		})
	}
	return out
}

// PaymentResponse is one member's payout line.
type PaymentResponse struct {
	MemberID      uint            `json:"member_id"`
	Name          string          `json:"name"`
	Surname       string          `json:"surname"`
	Category      string          `json:"category"`
	OverloadHours decimal.Decimal `json:"overload_hours"`
	Coefficient   decimal.Decimal `json:"coefficient"`
	Amount        decimal.Decimal `json:"amount"`
}

// AllocationSummaryResponse aggregates fund figures for a payout run.
type AllocationSummaryResponse struct {
	FundAvailable decimal.Decimal `json:"fund_available"`
	FundNeeded    decimal.Decimal `json:"fund_needed"`
	FundingRatio  decimal.Decimal `json:"funding_ratio"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// AllocationResponse is the full overload pay report.
type AllocationResponse struct {
	CoefficientsByCategory map[string]decimal.Decimal `json:"coefficients_by_category"`
	Payments               []PaymentResponse          `json:"payments"`
	Summary                AllocationSummaryResponse  `json:"summary"`
}

// NewAllocationResponse converts an engine allocation into a DTO.
func NewAllocationResponse(allocation workload.Allocation) AllocationResponse {
	response := AllocationResponse{
		CoefficientsByCategory: allocation.CoefficientsByCategory,
		Payments:               make([]PaymentResponse, 0, len(allocation.Payments)),
		Summary: AllocationSummaryResponse{
			FundAvailable: allocation.Summary.FundAvailable,
			FundNeeded:    allocation.Summary.FundNeeded,
			FundingRatio:  allocation.Summary.FundingRatio,
			TotalPaid:     allocation.Summary.TotalPaid,
		},
	}
	for _, payment := range allocation.Payments {
		response.Payments = append(response.Payments, PaymentResponse{
			MemberID:      payment.MemberID,
			Name:          payment.Name,
			Surname:       payment.Surname,
			Category:      payment.Category,
			OverloadHours: payment.OverloadHours,
			Coefficient:   payment.Coefficient,
			Amount:        payment.Amount,
		})
	}
	return response
}
