package handler

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
	"github.com/claustro-app/claustro-api/internal/service"
	"github.com/claustro-app/claustro-api/internal/utils"
)

// ChangeRequestHandler exposes category change request endpoints.
type ChangeRequestHandler struct {
	service service.ChangeRequestService
	logger  zerolog.Logger
}

// NewChangeRequestHandler constructs the handler.
func NewChangeRequestHandler(service service.ChangeRequestService, logger zerolog.Logger) *ChangeRequestHandler {
	return &ChangeRequestHandler{
		service: service,
		logger:  logger.With().Str("component", "change_request_handler").Logger(),
	}
}

// Register wires the member-facing change request routes.
func (h *ChangeRequestHandler) Register(router fiber.Router) {
	router.Post("/", h.create)
	router.Get("/", h.list)
	router.Get("/:id", h.get)
}

// RegisterAdmin wires the decision route.
func (h *ChangeRequestHandler) RegisterAdmin(router fiber.Router) {
	router.Patch("/:id/decide", h.decide)
}

func (h *ChangeRequestHandler) create(c *fiber.Ctx) error {
	memberID := userIDFromContext(c)
	if memberID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.ChangeRequestCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["documents"]
	}

	request, err := h.service.Create(c.UserContext(), memberID, payload, files)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrSameCategory):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "requested category not found")
		case errors.Is(err, service.ErrDocumentTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, service.ErrDocumentTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create change request")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create change request")
		}
	}

	return utils.SendCreated(c, "change request submitted", request)
}

func (h *ChangeRequestHandler) list(c *fiber.Ctx) error {
	filter := repository.ChangeRequestFilter{Status: strings.TrimSpace(c.Query("status"))}

	var err error
	if filter.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if filter.PageSize, err = parseQueryInt(c, "pageSize"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	// Admins may inspect any member's requests, everyone else sees their own.
	if userRoleFromContext(c) == models.RoleAdmin {
		if filter.MemberID, err = parseQueryUintPtr(c, "member_id"); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
		}
	} else {
		memberID := userIDFromContext(c)
		filter.MemberID = &memberID
	}

	requests, meta, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list change requests")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list change requests")
	}

	return utils.SendSuccess(c, "change requests retrieved", fiber.Map{
		"items":      requests,
		"pagination": meta,
	})
}

func (h *ChangeRequestHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid change request id")
	}

	request, err := h.service.Get(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "change request not found")
		case errors.Is(err, service.ErrNotRequestOwner):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to get change request")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to get change request")
		}
	}

	return utils.SendSuccess(c, "change request retrieved", request)
}

func (h *ChangeRequestHandler) decide(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid change request id")
	}

	var payload dto.ChangeRequestDecideRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.service.Decide(c.UserContext(), id, payload, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "change request not found")
		case errors.Is(err, repository.ErrRequestNotPending):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to decide change request")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to decide change request")
		}
	}

	return utils.SendSuccess(c, "change request decided", request)
}
