package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
	"github.com/claustro-app/claustro-api/internal/service"
	"github.com/claustro-app/claustro-api/internal/utils"
)

// ActivityHandler exposes activity type administration and activity record
// endpoints.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// RegisterTypes wires the activity type catalogue routes. Listing is open to
// any authenticated member.
func (h *ActivityHandler) RegisterTypes(router fiber.Router) {
	router.Get("/", h.listTypes)
}

// RegisterTypesAdmin wires the mutating activity type routes.
func (h *ActivityHandler) RegisterTypesAdmin(router fiber.Router) {
	router.Post("/", h.createType)
	router.Patch("/:id", h.updateType)
	router.Delete("/:id", h.deleteType)
}

// RegisterRecords wires the activity record routes.
func (h *ActivityHandler) RegisterRecords(router fiber.Router) {
	router.Post("/", h.createRecord)
	router.Get("/", h.listRecords)
	router.Get("/:id", h.getRecord)
	router.Patch("/:id", h.updateRecord)
	router.Delete("/:id", h.deleteRecord)
}

func (h *ActivityHandler) createType(c *fiber.Ctx) error {
	var payload dto.ActivityTypeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activityType, err := h.service.CreateType(c.UserContext(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTypeNameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create activity type")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create activity type")
		}
	}

	return utils.SendCreated(c, "activity type created", activityType)
}

func (h *ActivityHandler) listTypes(c *fiber.Ctx) error {
	types, err := h.service.ListTypes(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity types")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity types")
	}

	return utils.SendSuccess(c, "activity types retrieved", types)
}

func (h *ActivityHandler) updateType(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity type id")
	}

	var payload dto.ActivityTypeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activityType, err := h.service.UpdateType(c.UserContext(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "activity type not found")
		case errors.Is(err, service.ErrTypeNameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update activity type")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update activity type")
		}
	}

	return utils.SendSuccess(c, "activity type updated", activityType)
}

func (h *ActivityHandler) deleteType(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity type id")
	}

	if err := h.service.DeleteType(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "activity type not found")
		case errors.Is(err, service.ErrTypeInUse):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete activity type")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete activity type")
		}
	}

	return utils.SendSuccess(c, "activity type deleted", nil)
}

func (h *ActivityHandler) createRecord(c *fiber.Ctx) error {
	memberID := userIDFromContext(c)
	if memberID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ActivityRecordCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.CreateRecord(c.UserContext(), memberID, payload)
	if err != nil {
		return h.recordError(c, err, "failed to create activity record")
	}

	return utils.SendCreated(c, "activity record created", record)
}

func (h *ActivityHandler) listRecords(c *fiber.Ctx) error {
	filter := repository.ActivityRecordFilter{}

	var err error
	if filter.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if filter.PageSize, err = parseQueryInt(c, "pageSize"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if filter.ActivityTypeID, err = parseQueryUintPtr(c, "activity_type_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity type id")
	}
	if filter.From, err = parseQueryDate(c, "from"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
	}
	if filter.To, err = parseQueryDate(c, "to"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
	}

	// Non-admins only ever see their own records.
	if userRoleFromContext(c) == models.RoleAdmin {
		if filter.MemberID, err = parseQueryUintPtr(c, "member_id"); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
		}
	}
	if filter.MemberID == nil && userRoleFromContext(c) != models.RoleAdmin {
		memberID := userIDFromContext(c)
		filter.MemberID = &memberID
	}

	records, meta, err := h.service.ListRecords(c.UserContext(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity records")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity records")
	}

	return utils.SendSuccess(c, "activity records retrieved", fiber.Map{
		"items":      records,
		"pagination": meta,
	})
}

func (h *ActivityHandler) getRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity record id")
	}

	record, err := h.service.GetRecord(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		return h.recordError(c, err, "failed to get activity record")
	}

	return utils.SendSuccess(c, "activity record retrieved", record)
}

func (h *ActivityHandler) updateRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity record id")
	}

	var payload dto.ActivityRecordUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.UpdateRecord(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c), payload)
	if err != nil {
		return h.recordError(c, err, "failed to update activity record")
	}

	return utils.SendSuccess(c, "activity record updated", record)
}

func (h *ActivityHandler) deleteRecord(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity record id")
	}

	if err := h.service.DeleteRecord(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c)); err != nil {
		return h.recordError(c, err, "failed to delete activity record")
	}

	return utils.SendSuccess(c, "activity record deleted", nil)
}

func (h *ActivityHandler) recordError(c *fiber.Ctx, err error, message string) error {
	switch {
	case isValidationError(err),
		errors.Is(err, service.ErrHoursNotPositive),
		errors.Is(err, service.ErrGroupRequired),
		errors.Is(err, service.ErrStudentCountRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "activity record not found")
	case errors.Is(err, service.ErrNotRecordOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}

func parseQueryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
