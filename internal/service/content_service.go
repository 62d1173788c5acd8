package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

// ContentService exposes portal content: news, events and calls. Reads are
// public and cached; writes are admin only and invalidate the cache.
type ContentService interface {
	CreateNews(ctx context.Context, authorID uint, req dto.NewsCreateRequest) (dto.NewsResponse, error)
	ListNews(ctx context.Context, page, pageSize int) (dto.NewsListResponse, error)
	UpdateNews(ctx context.Context, id uint, req dto.NewsUpdateRequest) (dto.NewsResponse, error)
	DeleteNews(ctx context.Context, id uint) error

	CreateEvent(ctx context.Context, authorID uint, req dto.EventCreateRequest) (dto.EventResponse, error)
	ListUpcomingEvents(ctx context.Context, page, pageSize int) ([]dto.EventResponse, dto.PaginationMeta, error)
	DeleteEvent(ctx context.Context, id uint) error

	CreateCall(ctx context.Context, authorID uint, req dto.CallCreateRequest) (dto.CallResponse, error)
	ListOpenCalls(ctx context.Context, page, pageSize int) ([]dto.CallResponse, dto.PaginationMeta, error)
	DeleteCall(ctx context.Context, id uint) error
}

type contentService struct {
	news      repository.NewsRepository
	events    repository.EventRepository
	calls     repository.CallRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	policy    *bluemonday.Policy
}

// NewContentService constructs the content service.
func NewContentService(news repository.NewsRepository, events repository.EventRepository, calls repository.CallRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) ContentService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return &contentService{
		news:      news,
		events:    events,
		calls:     calls,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "content_service").Logger(),
		policy:    policy,
	}
}

func (s *contentService) CreateNews(ctx context.Context, authorID uint, req dto.NewsCreateRequest) (dto.NewsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NewsResponse{}, err
	}

	item := models.News{
		Title:       strings.TrimSpace(req.Title),
		Body:        s.policy.Sanitize(req.Body),
		PublishedAt: time.Now(),
		IsPinned:    req.IsPinned,
		AuthorID:    authorID,
	}
	if err := s.news.Create(ctx, &item); err != nil {
		return dto.NewsResponse{}, err
	}

	s.invalidate(ctx, "news")
	return dto.NewNewsResponse(item), nil
}

func (s *contentService) ListNews(ctx context.Context, page, pageSize int) (dto.NewsListResponse, error) {
	page = maxInt(page, 1)
	pageSize = clampPageSize(pageSize)

	cacheKey := ""
	if s.cache != nil {
		cacheKey = fmt.Sprintf("content:news:v1:%d:%d", page, pageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.NewsListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	items, total, err := s.news.List(ctx, repository.ContentFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return dto.NewsListResponse{}, err
	}

	responses := make([]dto.NewsResponse, 0, len(items))
	for _, item := range items {
		response := dto.NewNewsResponse(item)
		response.Body = s.policy.Sanitize(response.Body)
		responses = append(responses, response)
	}

	response := dto.NewsListResponse{
		Items:      responses,
		Pagination: newPagination(page, pageSize, total),
	}

	if cacheKey != "" && s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache news page")
			}
		}
	}

	return response, nil
}

func (s *contentService) UpdateNews(ctx context.Context, id uint, req dto.NewsUpdateRequest) (dto.NewsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.NewsResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		updates["body"] = s.policy.Sanitize(*req.Body)
	}
	if req.IsPinned != nil {
		updates["is_pinned"] = *req.IsPinned
	}

	item, err := s.news.Update(ctx, id, updates)
	if err != nil {
		return dto.NewsResponse{}, err
	}

	s.invalidate(ctx, "news")
	return dto.NewNewsResponse(item), nil
}

func (s *contentService) DeleteNews(ctx context.Context, id uint) error {
	if err := s.news.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "news")
	return nil
}

func (s *contentService) CreateEvent(ctx context.Context, authorID uint, req dto.EventCreateRequest) (dto.EventResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.EventResponse{}, err
	}

	item := models.Event{
		Title:    strings.TrimSpace(req.Title),
		Body:     s.policy.Sanitize(req.Body),
		Location: strings.TrimSpace(req.Location),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		AuthorID: authorID,
	}
	if err := s.events.Create(ctx, &item); err != nil {
		return dto.EventResponse{}, err
	}

	return dto.NewEventResponse(item), nil
}

func (s *contentService) ListUpcomingEvents(ctx context.Context, page, pageSize int) ([]dto.EventResponse, dto.PaginationMeta, error) {
	page = maxInt(page, 1)
	pageSize = clampPageSize(pageSize)

	items, total, err := s.events.ListUpcoming(ctx, time.Now(), repository.ContentFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewEventResponseSlice(items), newPagination(page, pageSize, total), nil
}

func (s *contentService) DeleteEvent(ctx context.Context, id uint) error {
	return s.events.Delete(ctx, id)
}

func (s *contentService) CreateCall(ctx context.Context, authorID uint, req dto.CallCreateRequest) (dto.CallResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CallResponse{}, err
	}

	item := models.Call{
		Title:    strings.TrimSpace(req.Title),
		Body:     s.policy.Sanitize(req.Body),
		Deadline: req.Deadline,
		AuthorID: authorID,
	}
	if err := s.calls.Create(ctx, &item); err != nil {
		return dto.CallResponse{}, err
	}

	return dto.NewCallResponse(item), nil
}

func (s *contentService) ListOpenCalls(ctx context.Context, page, pageSize int) ([]dto.CallResponse, dto.PaginationMeta, error) {
	page = maxInt(page, 1)
	pageSize = clampPageSize(pageSize)

	items, total, err := s.calls.ListOpen(ctx, time.Now(), repository.ContentFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewCallResponseSlice(items), newPagination(page, pageSize, total), nil
}

func (s *contentService) DeleteCall(ctx context.Context, id uint) error {
	return s.calls.Delete(ctx, id)
}

// invalidate drops every cached page for a content kind.
func (s *contentService) invalidate(ctx context.Context, kind string) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "content:"+kind+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate content cache entry")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("content cache scan failed")
	}
}
