package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/service"
	"github.com/claustro-app/claustro-api/internal/utils"
)

// ContentHandler exposes institutional news, events and calls. Reads are
// public, writes are admin-only.
type ContentHandler struct {
	service service.ContentService
	logger  zerolog.Logger
}

// NewContentHandler constructs the handler.
func NewContentHandler(service service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.With().Str("component", "content_handler").Logger(),
	}
}

// Register wires the public read routes.
func (h *ContentHandler) Register(router fiber.Router) {
	router.Get("/news", h.listNews)
	router.Get("/events", h.listEvents)
	router.Get("/calls", h.listCalls)
}

// RegisterAdmin wires the mutating content routes.
func (h *ContentHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/news", h.createNews)
	router.Patch("/news/:id", h.updateNews)
	router.Delete("/news/:id", h.deleteNews)
	router.Post("/events", h.createEvent)
	router.Delete("/events/:id", h.deleteEvent)
	router.Post("/calls", h.createCall)
	router.Delete("/calls/:id", h.deleteCall)
}

func (h *ContentHandler) listNews(c *fiber.Ctx) error {
	page, pageSize, err := listParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.ListNews(c.UserContext(), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list news")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list news")
	}

	if result.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.SendSuccess(c, "news retrieved", result)
}

func (h *ContentHandler) listEvents(c *fiber.Ctx) error {
	page, pageSize, err := listParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	events, meta, err := h.service.ListUpcomingEvents(c.UserContext(), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list events")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list events")
	}

	return utils.SendSuccess(c, "events retrieved", fiber.Map{
		"items":      events,
		"pagination": meta,
	})
}

func (h *ContentHandler) listCalls(c *fiber.Ctx) error {
	page, pageSize, err := listParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	calls, meta, err := h.service.ListOpenCalls(c.UserContext(), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list calls")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list calls")
	}

	return utils.SendSuccess(c, "calls retrieved", fiber.Map{
		"items":      calls,
		"pagination": meta,
	})
}

func (h *ContentHandler) createNews(c *fiber.Ctx) error {
	var payload dto.NewsCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.CreateNews(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create news")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create news")
	}

	return utils.SendCreated(c, "news created", item)
}

func (h *ContentHandler) updateNews(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid news id")
	}

	var payload dto.NewsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.UpdateNews(c.UserContext(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "news not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update news")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update news")
		}
	}

	return utils.SendSuccess(c, "news updated", item)
}

func (h *ContentHandler) deleteNews(c *fiber.Ctx) error {
	return h.deleteContent(c, "news", h.service.DeleteNews)
}

func (h *ContentHandler) createEvent(c *fiber.Ctx) error {
	var payload dto.EventCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.CreateEvent(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create event")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create event")
	}

	return utils.SendCreated(c, "event created", item)
}

func (h *ContentHandler) deleteEvent(c *fiber.Ctx) error {
	return h.deleteContent(c, "event", h.service.DeleteEvent)
}

func (h *ContentHandler) createCall(c *fiber.Ctx) error {
	var payload dto.CallCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.CreateCall(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create call")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create call")
	}

	return utils.SendCreated(c, "call created", item)
}

func (h *ContentHandler) deleteCall(c *fiber.Ctx) error {
	return h.deleteContent(c, "call", h.service.DeleteCall)
}

func (h *ContentHandler) deleteContent(c *fiber.Ctx, kind string, remove func(ctx context.Context, id uint) error) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid "+kind+" id")
	}

	if err := remove(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, kind+" not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete " + kind)
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete "+kind)
	}

	return utils.SendSuccess(c, kind+" deleted", nil)
}

func listParams(c *fiber.Ctx) (int, int, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return 0, 0, errors.New("invalid page")
	}
	if page <= 0 {
		page = 1
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return 0, 0, errors.New("invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize, nil
}
