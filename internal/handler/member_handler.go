package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/service"
	"github.com/claustro-app/claustro-api/internal/utils"
)

// MemberHandler exposes member profile and administration endpoints.
type MemberHandler struct {
	service service.MemberService
	logger  zerolog.Logger
}

// NewMemberHandler constructs the handler.
func NewMemberHandler(service service.MemberService, logger zerolog.Logger) *MemberHandler {
	return &MemberHandler{
		service: service,
		logger:  logger.With().Str("component", "member_handler").Logger(),
	}
}

// Register wires the self-service member routes.
func (h *MemberHandler) Register(router fiber.Router) {
	router.Get("/me", h.me)
}

// RegisterAdmin wires the administrative member routes.
func (h *MemberHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Patch("/:id/approve", h.approve)
	router.Put("/:id/category", h.assignCategory)
	router.Delete("/:id", h.delete)
}

func (h *MemberHandler) me(c *fiber.Ctx) error {
	memberID := userIDFromContext(c)
	if memberID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	member, err := h.service.Get(c.UserContext(), memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load member profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", member)
}

func (h *MemberHandler) list(c *fiber.Ctx) error {
	query := dto.MemberListQuery{Search: strings.TrimSpace(c.Query("search"))}

	var err error
	if query.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if query.PageSize, err = parseQueryInt(c, "pageSize"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if query.RoleID, err = parseQueryUintPtr(c, "role_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid role id")
	}
	if query.DepartmentID, err = parseQueryUintPtr(c, "department_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}
	if query.CategoryID, err = parseQueryUintPtr(c, "category_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}
	if raw := strings.TrimSpace(c.Query("approved")); raw != "" {
		approved := raw == "true"
		if raw != "true" && raw != "false" {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid approved filter")
		}
		query.Approved = &approved
	}

	members, meta, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list members")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list members")
	}

	return utils.SendSuccess(c, "members retrieved", fiber.Map{
		"items":      members,
		"pagination": meta,
	})
}

func (h *MemberHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
	}

	member, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to get member")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get member")
	}

	return utils.SendSuccess(c, "member retrieved", member)
}

func (h *MemberHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
	}

	var payload dto.MemberUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	member, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update member")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update member")
		}
	}

	return utils.SendSuccess(c, "member updated", member)
}

func (h *MemberHandler) approve(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
	}

	member, err := h.service.Approve(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to approve member")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to approve member")
	}

	return utils.SendSuccess(c, "member approved", member)
}

func (h *MemberHandler) assignCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
	}

	var payload dto.AssignCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	member, err := h.service.AssignCategory(c.UserContext(), id, payload, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "member or category not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to assign category")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to assign category")
		}
	}

	return utils.SendSuccess(c, "category assigned", member)
}

func (h *MemberHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete member")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete member")
	}

	return utils.SendSuccess(c, "member deleted", nil)
}
