package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/service"
	"github.com/claustro-app/claustro-api/internal/utils"
)

// DirectoryHandler exposes the role and department lookup endpoints.
type DirectoryHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(service service.DirectoryService, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		logger:  logger.With().Str("component", "directory_handler").Logger(),
	}
}

// Register wires the read-only directory routes.
func (h *DirectoryHandler) Register(router fiber.Router) {
	router.Get("/roles", h.listRoles)
	router.Get("/departments", h.listDepartments)
}

// RegisterAdmin wires the mutating department routes.
func (h *DirectoryHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/departments", h.createDepartment)
	router.Patch("/departments/:id", h.updateDepartment)
	router.Delete("/departments/:id", h.deleteDepartment)
}

func (h *DirectoryHandler) listRoles(c *fiber.Ctx) error {
	roles, err := h.service.ListRoles(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list roles")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list roles")
	}

	return utils.SendSuccess(c, "roles retrieved", roles)
}

func (h *DirectoryHandler) listDepartments(c *fiber.Ctx) error {
	departments, err := h.service.ListDepartments(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list departments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list departments")
	}

	return utils.SendSuccess(c, "departments retrieved", departments)
}

func (h *DirectoryHandler) createDepartment(c *fiber.Ctx) error {
	var payload dto.DepartmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	department, err := h.service.CreateDepartment(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create department")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create department")
	}

	return utils.SendCreated(c, "department created", department)
}

func (h *DirectoryHandler) updateDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	var payload dto.DepartmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	department, err := h.service.UpdateDepartment(c.UserContext(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "department not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update department")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update department")
		}
	}

	return utils.SendSuccess(c, "department updated", department)
}

func (h *DirectoryHandler) deleteDepartment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	if err := h.service.DeleteDepartment(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "department not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete department")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete department")
	}

	return utils.SendSuccess(c, "department deleted", nil)
}
