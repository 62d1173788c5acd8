package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/observability"
	"github.com/claustro-app/claustro-api/internal/service"
	"github.com/claustro-app/claustro-api/internal/utils"
	"github.com/claustro-app/claustro-api/internal/workload"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exposes the workload report endpoints. Each report is served
// as JSON by default and as an XLSX attachment when format=xlsx.
type ReportHandler struct {
	reports service.ReportService
	exports service.ExportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(reports service.ReportService, exports service.ExportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		exports: exports,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires the report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/overcompliance", h.overcompliance)
	router.Get("/teaching-overload", h.teachingOverload)
	router.Get("/overload-pay", h.overloadPay)
}

func (h *ReportHandler) overcompliance(c *fiber.Ctx) error {
	var query dto.ReportQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	rows, err := h.reports.Overcompliance(c.UserContext(), query)
	if err != nil {
		return h.reportError(c, err, "failed to build overcompliance report")
	}

	format := reportFormat(query.Format)
	observability.ReportsGenerated().WithLabelValues("overcompliance", format).Inc()

	if format == "xlsx" {
		buffer, filename, err := h.exports.Overcompliance(rows, query.StartDate, query.EndDate)
		if err != nil {
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to export overcompliance report")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to export report")
		}
		return sendWorkbook(c, buffer, filename)
	}

	return utils.SendSuccess(c, "overcompliance report", rows)
}

func (h *ReportHandler) teachingOverload(c *fiber.Ctx) error {
	var query dto.ReportQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	rows, err := h.reports.TeachingOverload(c.UserContext(), query)
	if err != nil {
		return h.reportError(c, err, "failed to build teaching overload report")
	}

	format := reportFormat(query.Format)
	observability.ReportsGenerated().WithLabelValues("teaching_overload", format).Inc()

	if format == "xlsx" {
		buffer, filename, err := h.exports.TeachingOverload(rows, query.StartDate, query.EndDate)
		if err != nil {
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to export teaching overload report")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to export report")
		}
		return sendWorkbook(c, buffer, filename)
	}

	return utils.SendSuccess(c, "teaching overload report", rows)
}

func (h *ReportHandler) overloadPay(c *fiber.Ctx) error {
	var query dto.AllocationQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	allocation, err := h.reports.OverloadPay(c.UserContext(), query)
	if err != nil {
		return h.reportError(c, err, "failed to build overload pay report")
	}

	format := reportFormat(query.Format)
	observability.ReportsGenerated().WithLabelValues("overload_pay", format).Inc()

	if format == "xlsx" {
		buffer, filename, err := h.exports.OverloadPay(allocation, query.StartDate, query.EndDate)
		if err != nil {
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to export overload pay report")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to export report")
		}
		return sendWorkbook(c, buffer, filename)
	}

	return utils.SendSuccess(c, "overload pay report", allocation)
}

func (h *ReportHandler) reportError(c *fiber.Ctx, err error, message string) error {
	switch {
	case isValidationError(err),
		errors.Is(err, workload.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidFund):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}

func reportFormat(format string) string {
	if format == "xlsx" {
		return "xlsx"
	}
	return "json"
}

func sendWorkbook(c *fiber.Ctx, buffer *bytes.Buffer, filename string) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendStream(bytes.NewReader(buffer.Bytes()), buffer.Len())
}
