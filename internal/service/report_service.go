package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/observability"
	"github.com/claustro-app/claustro-api/internal/repository"
	"github.com/claustro-app/claustro-api/internal/workload"
)

// ErrInvalidFund is returned when the fund amount cannot be parsed or is
// negative.
var ErrInvalidFund = errors.New("fund amount must be a non-negative number")

// ReportService computes the workload reports over the stored activity data.
type ReportService interface {
	Overcompliance(ctx context.Context, query dto.ReportQuery) ([]dto.OvercomplianceRowResponse, error)
	TeachingOverload(ctx context.Context, query dto.ReportQuery) ([]dto.OverloadRowResponse, error)
	OverloadPay(ctx context.Context, query dto.AllocationQuery) (dto.AllocationResponse, error)
}

type reportService struct {
	repo      repository.WorkloadRepository
	policy    workload.Policy
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewReportService constructs the report service.
func NewReportService(repo repository.WorkloadRepository, policy workload.Policy, validate *validator.Validate, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:      repo,
		policy:    policy,
		validator: validate,
		logger:    logger.With().Str("component", "report_service").Logger(),
		tracer:    otel.Tracer("github.com/claustro-app/claustro-api/internal/service/report"),
	}
}

func (s *reportService) Overcompliance(ctx context.Context, query dto.ReportQuery) ([]dto.OvercomplianceRowResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "reports.overcompliance")
	defer span.End()

	start, end, members, activities, err := s.load(spanCtx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	began := time.Now()
	rows, err := workload.Overcompliance(members, activities, start, end)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.ReportLatency().WithLabelValues("overcompliance").Observe(time.Since(began).Seconds())
	span.SetAttributes(attribute.Int("report.rows", len(rows)))

	return dto.NewOvercomplianceResponse(rows), nil
}

func (s *reportService) TeachingOverload(ctx context.Context, query dto.ReportQuery) ([]dto.OverloadRowResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "reports.teaching_overload")
	defer span.End()

	start, end, members, activities, err := s.load(spanCtx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	began := time.Now()
	rows, err := workload.TeachingOverload(members, activities, start, end, s.policy)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.ReportLatency().WithLabelValues("teaching_overload").Observe(time.Since(began).Seconds())
	span.SetAttributes(attribute.Int("report.rows", len(rows)))

	return dto.NewOverloadResponse(rows), nil
}

func (s *reportService) OverloadPay(ctx context.Context, query dto.AllocationQuery) (dto.AllocationResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "reports.overload_pay")
	defer span.End()

	if err := s.validator.Struct(query); err != nil {
		span.RecordError(err)
		return dto.AllocationResponse{}, err
	}

	fund, err := decimal.NewFromString(query.FundAvailable)
	if err != nil || fund.IsNegative() {
		return dto.AllocationResponse{}, ErrInvalidFund
	}

	start, end, members, activities, err := s.load(spanCtx, query.ReportQuery)
	if err != nil {
		span.RecordError(err)
		return dto.AllocationResponse{}, err
	}

	began := time.Now()
	rows, err := workload.TeachingOverload(members, activities, start, end, s.policy)
	if err != nil {
		span.RecordError(err)
		return dto.AllocationResponse{}, err
	}
	allocation := workload.Allocate(rows, s.policy, fund)
	observability.ReportLatency().WithLabelValues("overload_pay").Observe(time.Since(began).Seconds())
	span.SetAttributes(
		attribute.Int("report.payments", len(allocation.Payments)),
		attribute.String("report.funding_ratio", allocation.Summary.FundingRatio.String()),
	)

	return dto.NewAllocationResponse(allocation), nil
}

// load validates the query, resolves the period and fetches the member and
// activity rows the engine consumes.
func (s *reportService) load(ctx context.Context, query dto.ReportQuery) (time.Time, time.Time, []workload.MemberRow, []workload.ActivityRow, error) {
	if err := s.validator.Struct(query); err != nil {
		return time.Time{}, time.Time{}, nil, nil, err
	}

	start, err := workload.ParseDate(query.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, nil, err
	}
	end, err := workload.ParseDate(query.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, nil, err
	}
	if err := workload.ValidateRange(start, end); err != nil {
		return time.Time{}, time.Time{}, nil, nil, err
	}

	members, err := s.repo.MembersWithCategory(ctx, repository.ReportFilter{
		RoleID:       query.RoleID,
		DepartmentID: query.DepartmentID,
		CategoryID:   query.CategoryID,
	})
	if err != nil {
		return time.Time{}, time.Time{}, nil, nil, err
	}

	memberIDs := make([]uint, 0, len(members))
	for _, member := range members {
		memberIDs = append(memberIDs, member.ID)
	}

	activities, err := s.repo.ActivityRows(ctx, memberIDs, start, end)
	if err != nil {
		return time.Time{}, time.Time{}, nil, nil, err
	}

	return start, end, members, activities, nil
}
