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

// CategoryHandler exposes teaching category administration endpoints.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("component", "category_handler").Logger(),
	}
}

// Register wires the category routes. Listing is open to any authenticated
// member; mutations sit behind the admin group.
func (h *CategoryHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
}

// RegisterAdmin wires the mutating category routes.
func (h *CategoryHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *CategoryHandler) create(c *fiber.Ctx) error {
	var payload dto.CategoryCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrNormNotPositive):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCategoryNameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create category")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create category")
		}
	}

	return utils.SendCreated(c, "category created", category)
}

func (h *CategoryHandler) list(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list categories")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list categories")
	}

	return utils.SendSuccess(c, "categories retrieved", categories)
}

func (h *CategoryHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	category, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to get category")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get category")
	}

	return utils.SendSuccess(c, "category retrieved", category)
}

func (h *CategoryHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	var payload dto.CategoryUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrNormNotPositive):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrCategoryNameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update category")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update category")
		}
	}

	return utils.SendSuccess(c, "category updated", category)
}

func (h *CategoryHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid category id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete category")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete category")
		}
	}

	return utils.SendSuccess(c, "category deleted", nil)
}
