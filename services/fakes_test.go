package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"events-cms-backend/models"
	"events-cms-backend/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeGateway simule le stockage objet en mémoire
type fakeGateway struct {
	mu          sync.Mutex
	singles     []string
	multiparts  map[string]int // clé -> nombre de parts
	completions []string       // uploadIDs finalisés
	aborts      int
	deleted     []string

	failSingle   bool
	failComplete map[string]error // uploadID -> erreur
	failDelete   error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{multiparts: map[string]int{}, failComplete: map[string]error{}}
}

func (g *fakeGateway) IssueSingleURL(_ context.Context, key, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSingle {
		return "", fmt.Errorf("%w: refus", storage.ErrStorage)
	}
	g.singles = append(g.singles, key)
	return "https://put/" + key, nil
}

func (g *fakeGateway) IssueMultipartURLs(_ context.Context, key, _ string, partCount int) (*storage.MultipartSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.multiparts[key] = partCount
	parts := make([]models.PartURL, partCount)
	for i := range parts {
		parts[i] = models.PartURL{PartNumber: int32(i + 1), URL: fmt.Sprintf("https://part/%s/%d", key, i+1)}
	}
	return &storage.MultipartSession{UploadID: "upload-" + key, Parts: parts}, nil
}

func (g *fakeGateway) CompleteMultipart(_ context.Context, key, uploadID string, parts []models.CompletedPart) (string, error) {
	if _, err := storage.SortedParts(parts); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failComplete[uploadID]; err != nil {
		return "", err
	}
	g.completions = append(g.completions, uploadID)
	return "final/" + key, nil
}

func (g *fakeGateway) AbortMultipart(_ context.Context, _, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.aborts++
	if g.aborts > 1 {
		return fmt.Errorf("%w: NoSuchUpload", storage.ErrStorage)
	}
	return nil
}

func (g *fakeGateway) ResolveURL(key string) string {
	return "https://cdn.test/" + key
}

func (g *fakeGateway) DeleteObject(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failDelete != nil {
		return g.failDelete
	}
	g.deleted = append(g.deleted, key)
	return nil
}

func (g *fakeGateway) completionCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.completions)
}

// fakeTracker garde les clés émises en mémoire
type fakeTracker struct {
	mu   sync.Mutex
	keys map[string]string
}

func newFakeTracker(keys ...string) *fakeTracker {
	t := &fakeTracker{keys: map[string]string{}}
	for _, k := range keys {
		t.keys[k] = ""
	}
	return t
}

func (t *fakeTracker) Track(_ context.Context, key, uploadID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys[key] = uploadID
	return nil
}

func (t *fakeTracker) IsIssued(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.keys[key]
	return ok, nil
}

func (t *fakeTracker) Forget(_ context.Context, keys ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range keys {
		delete(t.keys, k)
	}
	return nil
}

// fakeEventStore est une collection d'événements en mémoire
type fakeEventStore struct {
	mu        sync.Mutex
	events    map[primitive.ObjectID]*models.Event
	createErr error
	lastList  models.EventFilter
}

func newFakeEventStore(events ...*models.Event) *fakeEventStore {
	s := &fakeEventStore{events: map[primitive.ObjectID]*models.Event{}}
	for _, e := range events {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	event.ID = primitive.NewObjectID()
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *fakeEventStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok || e.IsDeleted {
		return nil, nil
	}
	return cloneEvent(e), nil
}

func (s *fakeEventStore) FindBySlug(_ context.Context, slug string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.Slug == slug && !e.IsDeleted {
			return cloneEvent(e), nil
		}
	}
	return nil, nil
}

func (s *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *fakeEventStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		e.IsDeleted = true
	}
	return nil
}

func (s *fakeEventStore) List(_ context.Context, filter models.EventFilter) ([]models.Event, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastList = filter
	var out []models.Event
	for _, e := range s.events {
		if e.IsDeleted || (filter.Status != "" && e.Status != filter.Status) {
			continue
		}
		if filter.CategoryID != nil && e.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func cloneEvent(e *models.Event) *models.Event {
	cp := *e
	cp.Medias = append([]models.EventMedia(nil), e.Medias...)
	return &cp
}

// fakeCategoryStore est une collection de catégories en mémoire
type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]*models.EventCategory
}

func newFakeCategoryStore(categories ...*models.EventCategory) *fakeCategoryStore {
	s := &fakeCategoryStore{categories: map[primitive.ObjectID]*models.EventCategory{}}
	for _, c := range categories {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		s.categories[c.ID] = c
	}
	return s
}

func (s *fakeCategoryStore) Create(_ context.Context, c *models.EventCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	s.categories[c.ID] = c
	return nil
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.EventCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCategoryStore) FindBySlug(_ context.Context, slug string) (*models.EventCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Slug == slug && !c.IsDeleted {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeCategoryStore) SlugExists(_ context.Context, slug string, excludeID *primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.categories {
		if c.Slug == slug && (excludeID == nil || id != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCategoryStore) Update(_ context.Context, c *models.EventCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[id]; ok {
		c.IsDeleted = true
		c.IsActive = false
	}
	return nil
}

func (s *fakeCategoryStore) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[id]; ok {
		c.IsActive = active
	}
	return nil
}

func (s *fakeCategoryStore) List(_ context.Context, filter models.CategoryFilter) ([]models.EventCategory, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EventCategory
	for _, c := range s.categories {
		if c.IsDeleted || (filter.IsActive != nil && c.IsActive != *filter.IsActive) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// fakeNotifier enregistre les alertes de réconciliation
type fakeNotifier struct {
	mu    sync.Mutex
	keys  []string
	calls int
}

func (n *fakeNotifier) SendReconciliationAlert(_ string, keys []string, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.keys = append(n.keys, keys...)
}

// fakeAdminStore est une collection d'administrateurs en mémoire
type fakeAdminStore struct {
	admins map[string]*models.Admin
}

func (s *fakeAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	if a, ok := s.admins[email]; ok {
		return a, nil
	}
	return nil, nil
}

func (s *fakeAdminStore) Create(_ context.Context, admin *models.Admin) error {
	if s.admins == nil {
		s.admins = map[string]*models.Admin{}
	}
	admin.ID = primitive.NewObjectID()
	s.admins[admin.Email] = admin
	return nil
}

var errPersistence = errors.New("mongo indisponible")
