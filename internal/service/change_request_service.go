package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/observability"
	"github.com/claustro-app/claustro-api/internal/repository"
)

// Document upload failures reported to callers.
var (
	ErrDocumentTooLarge       = errors.New("document exceeds maximum allowed size")
	ErrDocumentTypeNotAllowed = errors.New("document type not allowed")
	ErrSameCategory           = errors.New("requested category equals the current one")
	ErrNotRequestOwner        = errors.New("change request belongs to another member")
)

// FileStorage abstracts document storage destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ChangeRequestService manages category change requests with supporting
// documents.
type ChangeRequestService interface {
	Create(ctx context.Context, memberID uint, req dto.ChangeRequestCreateRequest, files []*multipart.FileHeader) (dto.ChangeRequestResponse, error)
	Get(ctx context.Context, id uint, actorID uint, actorRole string) (dto.ChangeRequestResponse, error)
	List(ctx context.Context, filter repository.ChangeRequestFilter) ([]dto.ChangeRequestResponse, dto.PaginationMeta, error)
	Decide(ctx context.Context, id uint, req dto.ChangeRequestDecideRequest, actorID uint, actorRole string) (dto.ChangeRequestResponse, error)
}

type changeRequestService struct {
	requests      repository.ChangeRequestRepository
	members       repository.MemberRepository
	categories    repository.CategoryRepository
	audit         repository.AuditLogRepository
	notifications NotificationService
	storage       FileStorage
	validator     *validator.Validate
	maxSize       int64
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewChangeRequestService constructs the change request service.
func NewChangeRequestService(
	requests repository.ChangeRequestRepository,
	members repository.MemberRepository,
	categories repository.CategoryRepository,
	audit repository.AuditLogRepository,
	notifications NotificationService,
	storage FileStorage,
	validate *validator.Validate,
	maxSizeMB int,
	logger zerolog.Logger,
) ChangeRequestService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &changeRequestService{
		requests:      requests,
		members:       members,
		categories:    categories,
		audit:         audit,
		notifications: notifications,
		storage:       storage,
		validator:     validate,
		maxSize:       int64(maxSizeMB) * 1024 * 1024,
		logger:        logger.With().Str("component", "change_request_service").Logger(),
		tracer:        otel.Tracer("github.com/claustro-app/claustro-api/internal/service/changerequest"),
	}
}

// Create validates and stores the documents first, then persists the request
// and its document rows in one transaction.
func (s *changeRequestService) Create(ctx context.Context, memberID uint, req dto.ChangeRequestCreateRequest, files []*multipart.FileHeader) (dto.ChangeRequestResponse, error) {
	ctx, span := s.tracer.Start(ctx, "change_request.create", trace.WithAttributes(
		attribute.Int("request.member_id", int(memberID)),
		attribute.Int("request.document_count", len(files)),
	))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		return dto.ChangeRequestResponse{}, err
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		span.RecordError(err)
		return dto.ChangeRequestResponse{}, err
	}
	if member.CategoryID != nil && *member.CategoryID == req.RequestedCategoryID {
		return dto.ChangeRequestResponse{}, ErrSameCategory
	}

	category, err := s.categories.GetByID(ctx, req.RequestedCategoryID)
	if err != nil {
		span.RecordError(err)
		return dto.ChangeRequestResponse{}, err
	}

	documents := make([]models.RequestDocument, 0, len(files))
	for _, file := range files {
		document, err := s.storeDocument(ctx, file)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "document rejected")
			return dto.ChangeRequestResponse{}, err
		}
		documents = append(documents, document)
	}

	request := models.CategoryChangeRequest{
		MemberID:            member.ID,
		CurrentCategoryID:   member.CategoryID,
		RequestedCategoryID: category.ID,
		Status:              models.RequestStatusPending,
		Justification:       strings.TrimSpace(req.Justification),
	}
	if err := s.requests.CreateWithDocuments(ctx, &request, documents); err != nil {
		span.RecordError(err)
		return dto.ChangeRequestResponse{}, err
	}

	request.RequestedCategory = category
	s.logger.Info().Uint("request_id", request.ID).Uint("member_id", member.ID).Msg("change request created")

	return dto.NewChangeRequestResponse(request), nil
}

func (s *changeRequestService) Get(ctx context.Context, id uint, actorID uint, actorRole string) (dto.ChangeRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return dto.ChangeRequestResponse{}, err
	}
	if request.MemberID != actorID && actorRole != models.RoleAdmin {
		return dto.ChangeRequestResponse{}, ErrNotRequestOwner
	}

	return dto.NewChangeRequestResponse(request), nil
}

func (s *changeRequestService) List(ctx context.Context, filter repository.ChangeRequestFilter) ([]dto.ChangeRequestResponse, dto.PaginationMeta, error) {
	page := maxInt(filter.Page, 1)
	pageSize := clampPageSize(filter.PageSize)
	filter.Page = page
	filter.PageSize = pageSize

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return dto.NewChangeRequestResponseSlice(requests), newPagination(page, pageSize, total), nil
}

// Decide rules on a pending request. Approval moves the member to the
// requested category; either outcome is audited and notified.
func (s *changeRequestService) Decide(ctx context.Context, id uint, req dto.ChangeRequestDecideRequest, actorID uint, actorRole string) (dto.ChangeRequestResponse, error) {
	ctx, span := s.tracer.Start(ctx, "change_request.decide", trace.WithAttributes(
		attribute.Int("request.id", int(id)),
		attribute.Bool("request.approve", req.Approve),
	))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		return dto.ChangeRequestResponse{}, err
	}

	request, err := s.requests.Decide(ctx, id, actorID, req.Approve)
	if err != nil {
		span.RecordError(err)
		return dto.ChangeRequestResponse{}, err
	}

	action := "change_request.reject"
	message := fmt.Sprintf("Your request to move to the %s category was rejected.", request.RequestedCategory.Name)
	if req.Approve {
		action = "change_request.approve"
		message = fmt.Sprintf("Your request to move to the %s category was approved.", request.RequestedCategory.Name)
	}

	entry := models.AuditLog{
		ActorID:    actorID,
		ActorRole:  actorRole,
		Action:     action,
		EntityType: "change_request",
		EntityID:   &request.ID,
		Metadata: datatypes.JSONMap{
			"member_id":             request.MemberID,
			"requested_category_id": request.RequestedCategoryID,
			"comment":               strings.TrimSpace(req.Comment),
		},
	}
	if err := s.audit.Create(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record audit entry")
	}

	if s.notifications != nil {
		if _, err := s.notifications.Publish(ctx, dto.NotificationCreateRequest{
			MemberID: request.MemberID,
			Type:     "change_request",
			Message:  message,
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish decision notification")
		}
	}

	return dto.NewChangeRequestResponse(request), nil
}

// storeDocument validates one attachment and pushes it to storage. Only PDFs
// and images are accepted as supporting evidence.
func (s *changeRequestService) storeDocument(ctx context.Context, file *multipart.FileHeader) (models.RequestDocument, error) {
	if file.Size > s.maxSize {
		observability.DocumentRejected().WithLabelValues("size").Inc()
		return models.RequestDocument{}, ErrDocumentTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return models.RequestDocument{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return models.RequestDocument{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.DocumentRejected().WithLabelValues("size").Inc()
		return models.RequestDocument{}, ErrDocumentTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	detected := strings.ToLower(mime.String())
	if detected != "application/pdf" && !strings.HasPrefix(detected, "image/") {
		observability.DocumentRejected().WithLabelValues("type").Inc()
		return models.RequestDocument{}, ErrDocumentTypeNotAllowed
	}

	checksum := sha256.Sum256(buf.Bytes())
	name := sanitizeDocumentName(file.Filename)

	url, err := s.storage.Upload(ctx, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.DocumentRejected().WithLabelValues("storage").Inc()
		return models.RequestDocument{}, err
	}

	observability.DocumentUploads().WithLabelValues(detected).Inc()

	return models.RequestDocument{
		FileName:  name,
		URL:       url,
		MimeType:  detected,
		SizeBytes: int64(buf.Len()),
		Checksum:  hex.EncodeToString(checksum[:]),
	}, nil
}

func sanitizeDocumentName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("document-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}
