package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"events-cms-backend/models"
	"events-cms-backend/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAuth struct {
	admin *models.Admin
	token string
	err   error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.Admin, string, error) {
	return f.admin, f.token, f.err
}

func (f *fakeAuth) TokenTTL() time.Duration { return time.Hour }

type fakeUploader struct {
	descriptors []models.PresignedDescriptor
	results     []services.CompletionResult
	err         error

	gotTitle   string
	gotFiles   []models.MediaFileRequest
	gotUploads []models.MultipartCompletionRequest
	aborted    []string
}

func (f *fakeUploader) RequestUploadURLs(ctx context.Context, title string, files []models.MediaFileRequest) ([]models.PresignedDescriptor, error) {
	f.gotTitle, f.gotFiles = title, files
	return f.descriptors, f.err
}

func (f *fakeUploader) CompleteBatch(ctx context.Context, uploads []models.MultipartCompletionRequest) ([]services.CompletionResult, error) {
	f.gotUploads = uploads
	return f.results, f.err
}

func (f *fakeUploader) Abort(ctx context.Context, key, uploadID string) error {
	f.aborted = append(f.aborted, key+"/"+uploadID)
	return f.err
}

type fakeEvents struct {
	event      *models.Event
	events     []models.Event
	category   *models.EventCategory
	pagination models.Pagination
	err        error

	gotCreatedBy string
	gotID        primitive.ObjectID
	gotSlug      string
	gotFilter    models.EventFilter
	gotPage      int64
	gotLimit     int64
}

func (f *fakeEvents) Create(ctx context.Context, req models.EventRequest, createdBy string) (*models.Event, error) {
	f.gotCreatedBy = createdBy
	return f.event, f.err
}

func (f *fakeEvents) Update(ctx context.Context, id primitive.ObjectID, req models.EventRequest) (*models.Event, error) {
	f.gotID = id
	return f.event, f.err
}

func (f *fakeEvents) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.gotID = id
	return f.event, f.err
}

func (f *fakeEvents) List(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error) {
	f.gotFilter = filter
	return f.events, f.pagination, f.err
}

func (f *fakeEvents) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	f.gotID = id
	return f.err
}

func (f *fakeEvents) ListPublished(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error) {
	f.gotFilter = filter
	return f.events, f.pagination, f.err
}

func (f *fakeEvents) ListByCategorySlug(ctx context.Context, slug string, page, limit int64) (*models.EventCategory, []models.Event, models.Pagination, error) {
	f.gotSlug, f.gotPage, f.gotLimit = slug, page, limit
	return f.category, f.events, f.pagination, f.err
}

func (f *fakeEvents) GetPublishedBySlug(ctx context.Context, slug string) (*models.Event, error) {
	f.gotSlug = slug
	return f.event, f.err
}

type fakeCategories struct {
	category   *models.EventCategory
	categories []models.EventCategory
	pagination models.Pagination
	err        error

	gotCreatedBy string
	gotFilter    models.CategoryFilter
	gotActive    *bool
	gotSearch    string
	gotSlug      string
	gotLimit     int64
}

func (f *fakeCategories) Create(ctx context.Context, req models.CategoryRequest, createdBy string) (*models.EventCategory, error) {
	f.gotCreatedBy = createdBy
	return f.category, f.err
}

func (f *fakeCategories) Get(ctx context.Context, id primitive.ObjectID) (*models.EventCategory, error) {
	return f.category, f.err
}

func (f *fakeCategories) List(ctx context.Context, filter models.CategoryFilter) ([]models.EventCategory, models.Pagination, error) {
	f.gotFilter = filter
	return f.categories, f.pagination, f.err
}

func (f *fakeCategories) Update(ctx context.Context, id primitive.ObjectID, req models.CategoryRequest) (*models.EventCategory, error) {
	return f.category, f.err
}

func (f *fakeCategories) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return f.err
}

func (f *fakeCategories) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.EventCategory, error) {
	f.gotActive = &active
	return f.category, f.err
}

func (f *fakeCategories) ListActive(ctx context.Context, search string, page, limit int64) ([]models.EventCategory, models.Pagination, error) {
	f.gotSearch, f.gotLimit = search, limit
	return f.categories, f.pagination, f.err
}

func (f *fakeCategories) ListAllActive(ctx context.Context) ([]models.EventCategory, error) {
	return f.categories, f.err
}

func (f *fakeCategories) GetActiveBySlug(ctx context.Context, slug string) (*models.EventCategory, error) {
	f.gotSlug = slug
	return f.category, f.err
}

// decodeBody décode la réponse JSON enregistrée
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("réponse JSON invalide: %v (%s)", err, rr.Body.String())
	}
	return body
}

// errorMessages extrait les messages de l'enveloppe d'erreur
func errorMessages(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("enveloppe d'erreur invalide: %v (%s)", err, rr.Body.String())
	}
	if body.Success {
		t.Error("success = true dans une réponse d'erreur")
	}
	messages := make([]string, len(body.Data.Errors))
	for i, e := range body.Data.Errors {
		messages[i] = e.Message
	}
	return messages
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
