package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claustro-app/claustro-api/internal/dto"
	"github.com/claustro-app/claustro-api/internal/models"
	"github.com/claustro-app/claustro-api/internal/repository"
)

type storageStub struct {
	uploads int
}

func (s *storageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads++
	return "https://cdn.example.com/" + name, nil
}

type changeRequestRepoStub struct {
	requests map[uint]models.CategoryChangeRequest
	nextID   uint
	member   *models.Member
}

func newChangeRequestRepoStub(member *models.Member) *changeRequestRepoStub {
	return &changeRequestRepoStub{requests: make(map[uint]models.CategoryChangeRequest), nextID: 1, member: member}
}

func (s *changeRequestRepoStub) CreateWithDocuments(ctx context.Context, request *models.CategoryChangeRequest, documents []models.RequestDocument) error {
	request.ID = s.nextID
	s.nextID++
	request.Documents = documents
	s.requests[request.ID] = *request
	return nil
}

func (s *changeRequestRepoStub) GetByID(ctx context.Context, id uint) (models.CategoryChangeRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return models.CategoryChangeRequest{}, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (s *changeRequestRepoStub) List(ctx context.Context, filter repository.ChangeRequestFilter) ([]models.CategoryChangeRequest, int64, error) {
	out := make([]models.CategoryChangeRequest, 0, len(s.requests))
	for _, request := range s.requests {
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (s *changeRequestRepoStub) Decide(ctx context.Context, id uint, deciderID uint, approve bool) (models.CategoryChangeRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return models.CategoryChangeRequest{}, gorm.ErrRecordNotFound
	}
	if request.Status != models.RequestStatusPending {
		return models.CategoryChangeRequest{}, repository.ErrRequestNotPending
	}
	request.Status = models.RequestStatusRejected
	if approve {
		request.Status = models.RequestStatusApproved
		if s.member != nil {
			s.member.CategoryID = &request.RequestedCategoryID
		}
	}
	request.DecidedBy = &deciderID
	s.requests[id] = request
	return request, nil
}

type categoryRepoStub struct {
	categories map[uint]models.Category
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error { return nil }

func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (models.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) { return nil, nil }

func (s *categoryRepoStub) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Category, error) {
	return s.GetByID(ctx, id)
}

func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error { return nil }

func (s *categoryRepoStub) CountMembers(ctx context.Context, id uint) (int64, error) { return 0, nil }

type auditRepoStub struct {
	entries []models.AuditLog
}

func (s *auditRepoStub) Create(ctx context.Context, entry *models.AuditLog) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *auditRepoStub) List(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

func changeRequestFixture(t *testing.T) (*changeRequestRepoStub, *memberRepoStub, *auditRepoStub, *storageStub, ChangeRequestService) {
	t.Helper()

	members := newMemberRepoStub()
	currentCategory := uint(1)
	member := models.Member{Name: "Ana", Surname: "Blanco", Email: "ana@uni.edu", PasswordHash: "x", RoleID: 2, CategoryID: &currentCategory, Approved: true}
	require.NoError(t, members.Create(context.Background(), &member))

	requests := newChangeRequestRepoStub(&member)
	categories := &categoryRepoStub{categories: map[uint]models.Category{
		1: {ID: 1, Name: "Asistente", WeeklyHourNorm: decimal.RequireFromString("45")},
		2: {ID: 2, Name: "Auxiliar", WeeklyHourNorm: decimal.RequireFromString("55")},
	}}
	audit := &auditRepoStub{}
	storage := &storageStub{}
	notifications := NewNotificationService(newNotificationRepoStub(), nil, "", nil, testValidator(), testLogger())

	svc := NewChangeRequestService(requests, members, categories, audit, notifications, storage, testValidator(), 5, testLogger())
	return requests, members, audit, storage, svc
}

func documentHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"documents\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["documents"]
	require.Len(t, files, 1)
	return files[0]
}

func TestChangeRequestServiceCreateWithPDFDocument(t *testing.T) {
	_, _, _, storage, svc := changeRequestFixture(t)

	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 64)...)
	files := []*multipart.FileHeader{documentHeader(t, "degree.pdf", pdf)}

	created, err := svc.Create(context.Background(), 1, dto.ChangeRequestCreateRequest{
		RequestedCategoryID: 2,
		Justification:       "Completed the required postgraduate degree.",
	}, files)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusPending, created.Status)
	require.Len(t, created.Documents, 1)
	require.Equal(t, "application/pdf", created.Documents[0].MimeType)
	require.NotEmpty(t, created.Documents[0].Checksum)
	require.Equal(t, 1, storage.uploads)
}

func TestChangeRequestServiceRejectsDisallowedDocument(t *testing.T) {
	_, _, _, storage, svc := changeRequestFixture(t)

	files := []*multipart.FileHeader{documentHeader(t, "notes.txt", []byte("plain text evidence"))}

	_, err := svc.Create(context.Background(), 1, dto.ChangeRequestCreateRequest{
		RequestedCategoryID: 2,
		Justification:       "Completed the required postgraduate degree.",
	}, files)
	require.ErrorIs(t, err, ErrDocumentTypeNotAllowed)
	require.Zero(t, storage.uploads)
}

func TestChangeRequestServiceRejectsSameCategory(t *testing.T) {
	_, _, _, _, svc := changeRequestFixture(t)

	_, err := svc.Create(context.Background(), 1, dto.ChangeRequestCreateRequest{
		RequestedCategoryID: 1,
		Justification:       "Completed the required postgraduate degree.",
	}, nil)
	require.ErrorIs(t, err, ErrSameCategory)
}

func TestChangeRequestServiceDecideAuditsAndNotifies(t *testing.T) {
	requests, _, audit, _, svc := changeRequestFixture(t)

	created, err := svc.Create(context.Background(), 1, dto.ChangeRequestCreateRequest{
		RequestedCategoryID: 2,
		Justification:       "Completed the required postgraduate degree.",
	}, nil)
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), created.ID, dto.ChangeRequestDecideRequest{Approve: true}, 99, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusApproved, decided.Status)
	require.NotNil(t, requests.member.CategoryID)
	require.Equal(t, uint(2), *requests.member.CategoryID)

	require.Len(t, audit.entries, 1)
	require.Equal(t, "change_request.approve", audit.entries[0].Action)

	_, err = svc.Decide(context.Background(), created.ID, dto.ChangeRequestDecideRequest{Approve: false}, 99, models.RoleAdmin)
	require.ErrorIs(t, err, repository.ErrRequestNotPending)
}

func TestChangeRequestServiceGetEnforcesOwnership(t *testing.T) {
	_, _, _, _, svc := changeRequestFixture(t)

	created, err := svc.Create(context.Background(), 1, dto.ChangeRequestCreateRequest{
		RequestedCategoryID: 2,
		Justification:       "Completed the required postgraduate degree.",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, 2, models.RoleMember)
	require.ErrorIs(t, err, ErrNotRequestOwner)

	_, err = svc.Get(context.Background(), created.ID, 2, models.RoleAdmin)
	require.NoError(t, err)
}
