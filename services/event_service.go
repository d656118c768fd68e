package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"events-cms-backend/models"
	"events-cms-backend/storage"
	"events-cms-backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// EventStore est la persistance des événements.
// Les recherches ignorent les événements supprimés et retournent nil, nil si rien n'est trouvé.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error)
}

// ReconciliationNotifier est prévenu quand des objets finalisés n'ont pas pu être rattachés
type ReconciliationNotifier interface {
	SendReconciliationAlert(operation string, keys []string, cause error)
}

// EventService assemble et persiste les événements et leurs médias
type EventService struct {
	events     EventStore
	categories CategoryStore
	uploads    *MediaUploadService
	gateway    storage.Gateway
	tracker    storage.KeyTracker
	notifier   ReconciliationNotifier
	now        func() time.Time
}

// NewEventService crée le service des événements
func NewEventService(events EventStore, categories CategoryStore, uploads *MediaUploadService, notifier ReconciliationNotifier) *EventService {
	return &EventService{
		events:     events,
		categories: categories,
		uploads:    uploads,
		gateway:    uploads.gateway,
		tracker:    uploads.tracker,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Create vérifie le slug et la catégorie, finalise les uploads multipart puis
// persiste l'événement avec les clés finales dans l'ordre d'origine.
func (s *EventService) Create(ctx context.Context, req models.EventRequest, createdBy string) (*models.Event, error) {
	categoryID, err := parseCategoryID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, utils.Invalid([]utils.ValidationError{{Field: "date", Message: "La date est requise"}})
	}

	existing, err := s.events.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Conflict("Un événement avec ce slug existe déjà")
	}

	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	if err := s.ensureIssued(ctx, req, nil); err != nil {
		return nil, err
	}

	completed, err := s.completeMultipart(ctx, req.Medias)
	if err != nil {
		return nil, err
	}

	now := s.now()
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		CategoryID:  categoryID,
		Date:        req.Date.Time,
		EndDate:     req.EndDate.TimePtr(),
		Time:        req.Time,
		Location:    req.Location,
		CoverImage:  req.CoverImage,
		Medias:      assembleMedias(req.Medias, completed),
		Status:      eventStatus(req.Status),
		Featured:    req.Featured,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.reportUnattached("création", completed, err)
		return nil, err
	}

	s.forget(ctx, consumedKeys(event))
	log.Printf("✓ Événement créé: %s (%d média(s))", event.Slug, len(event.Medias))

	s.resolveURLs(event)
	return event, nil
}

// Update modifie un événement existant. Les suppressions de médias et les
// finalisations multipart sont lancées en parallèle, l'écriture attend les deux.
func (s *EventService) Update(ctx context.Context, id primitive.ObjectID, req models.EventRequest) (*models.Event, error) {
	categoryID, err := parseCategoryID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, utils.Invalid([]utils.ValidationError{{Field: "date", Message: "La date est requise"}})
	}

	var existing, sameSlug *models.Event
	var lookups errgroup.Group
	lookups.Go(func() error {
		var err error
		existing, err = s.events.FindByID(ctx, id)
		return err
	})
	lookups.Go(func() error {
		var err error
		sameSlug, err = s.events.FindBySlug(ctx, req.Slug)
		return err
	})
	if err := lookups.Wait(); err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, utils.NotFound("Événement introuvable")
	}
	if sameSlug != nil && sameSlug.ID != existing.ID {
		return nil, utils.Conflict("Un événement avec ce slug existe déjà")
	}

	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	attached := existingKeys(existing)
	toDelete := make(map[string]bool, len(req.DeleteMedias))
	for _, key := range req.DeleteMedias {
		if !attached[key] {
			return nil, utils.BadRequest("Le média %s n'appartient pas à cet événement", key)
		}
		toDelete[key] = true
	}

	medias := make([]models.EventMediaInput, 0, len(req.Medias))
	for _, m := range req.Medias {
		if !m.Multipart && toDelete[m.Key] {
			continue
		}
		medias = append(medias, m)
	}
	req.Medias = medias

	if err := s.ensureIssued(ctx, req, attached); err != nil {
		return nil, err
	}

	var completed []CompletionResult
	var work errgroup.Group
	work.Go(func() error {
		var err error
		completed, err = s.completeMultipart(ctx, req.Medias)
		return err
	})
	work.Go(func() error {
		return s.deleteObjects(ctx, req.DeleteMedias)
	})
	if err := work.Wait(); err != nil {
		return nil, err
	}

	coverImage := req.CoverImage
	if toDelete[coverImage] {
		coverImage = ""
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Slug = req.Slug
	existing.CategoryID = categoryID
	existing.Date = req.Date.Time
	existing.EndDate = req.EndDate.TimePtr()
	existing.Time = req.Time
	existing.Location = req.Location
	existing.CoverImage = coverImage
	existing.Medias = assembleMedias(req.Medias, completed)
	existing.Status = eventStatus(req.Status)
	existing.Featured = req.Featured
	existing.UpdatedAt = s.now()

	if err := s.events.Update(ctx, existing); err != nil {
		s.reportUnattached("modification", completed, err)
		return nil, err
	}

	fresh := make([]string, 0)
	for _, key := range consumedKeys(existing) {
		if !attached[key] {
			fresh = append(fresh, key)
		}
	}
	s.forget(ctx, fresh)
	log.Printf("✓ Événement modifié: %s (%d média(s) supprimé(s))", existing.Slug, len(req.DeleteMedias))

	s.resolveURLs(existing)
	return existing, nil
}

// Get retourne un événement non supprimé
func (s *EventService) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, utils.NotFound("Événement introuvable")
	}
	s.resolveURLs(event)
	return event, nil
}

// List retourne une page d'événements (surface admin)
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error) {
	events, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	for i := range events {
		s.resolveURLs(&events[i])
	}
	return events, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// SoftDelete marque un événement comme supprimé
func (s *EventService) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return utils.NotFound("Événement introuvable")
	}
	if err := s.events.SoftDelete(ctx, id); err != nil {
		return err
	}
	log.Printf("✓ Événement supprimé: %s", event.Slug)
	return nil
}

// ListPublished retourne les événements publiés à venir (surface publique)
func (s *EventService) ListPublished(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error) {
	now := s.now()
	filter.Status = models.EventStatusPublished
	filter.UpcomingFrom = &now
	filter.SearchLocation = true
	filter.SortByDate = true
	return s.List(ctx, filter)
}

// ListByCategorySlug retourne les événements publiés d'une catégorie active
func (s *EventService) ListByCategorySlug(ctx context.Context, slug string, page, limit int64) (*models.EventCategory, []models.Event, models.Pagination, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, models.Pagination{}, err
	}
	if category == nil || !category.IsActive {
		return nil, nil, models.Pagination{}, utils.NotFound("Catégorie introuvable")
	}

	events, pagination, err := s.List(ctx, models.EventFilter{
		Status:     models.EventStatusPublished,
		CategoryID: &category.ID,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, nil, models.Pagination{}, err
	}
	return category, events, pagination, nil
}

// GetPublishedBySlug retourne un événement publié par son slug
func (s *EventService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Event, error) {
	event, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil || event.Status != models.EventStatusPublished {
		return nil, utils.NotFound("Événement introuvable")
	}
	s.resolveURLs(event)
	return event, nil
}

func (s *EventService) ensureCategory(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return utils.NotFound("Catégorie introuvable")
	}
	return nil
}

// ensureIssued vérifie que chaque clé simple (médias et couverture) a été émise
// par l'intake, ou est déjà rattachée à l'événement.
func (s *EventService) ensureIssued(ctx context.Context, req models.EventRequest, attached map[string]bool) error {
	keys := make([]string, 0, len(req.Medias)+1)
	for _, m := range req.Medias {
		if !m.Multipart {
			keys = append(keys, m.Key)
		}
	}
	if req.CoverImage != "" {
		keys = append(keys, req.CoverImage)
	}

	var details []utils.ValidationError
	for _, key := range keys {
		if attached[key] {
			continue
		}
		issued, err := s.tracker.IsIssued(ctx, key)
		if err != nil {
			return err
		}
		if !issued {
			details = append(details, utils.ValidationError{
				Field:   "medias",
				Message: fmt.Sprintf("La clé %s n'a pas été émise par le serveur", key),
			})
		}
	}
	if len(details) > 0 {
		return utils.Invalid(details)
	}
	return nil
}

// completeMultipart finalise le sous-ensemble multipart ; le moindre échec annule l'assemblage
func (s *EventService) completeMultipart(ctx context.Context, medias []models.EventMediaInput) ([]CompletionResult, error) {
	requests := make([]models.MultipartCompletionRequest, 0)
	for _, m := range medias {
		if m.Multipart {
			requests = append(requests, models.MultipartCompletionRequest{Key: m.Key, UploadID: m.UploadID, Parts: m.Parts})
		}
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return s.uploads.CompleteBatch(ctx, requests)
}

func (s *EventService) deleteObjects(ctx context.Context, keys []string) error {
	var g errgroup.Group
	for _, key := range keys {
		g.Go(func() error {
			if err := s.gateway.DeleteObject(ctx, key); err != nil {
				return fmt.Errorf("suppression du média %s: %w", key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *EventService) reportUnattached(operation string, completed []CompletionResult, cause error) {
	keys := make([]string, 0, len(completed))
	for _, c := range completed {
		keys = append(keys, c.Key)
	}
	log.Printf("❌ Échec de persistance (%s), objets finalisés non rattachés: %v: %v", operation, keys, cause)
	if len(keys) > 0 && s.notifier != nil {
		s.notifier.SendReconciliationAlert(operation, keys, cause)
	}
}

func (s *EventService) forget(ctx context.Context, keys []string) {
	if err := s.tracker.Forget(ctx, keys...); err != nil {
		log.Printf("⚠️  Clés émises non oubliées: %v", err)
	}
}

func (s *EventService) resolveURLs(event *models.Event) {
	if event.CoverImage != "" {
		event.CoverImageURL = s.gateway.ResolveURL(event.CoverImage)
	}
	for i := range event.Medias {
		event.Medias[i].URL = s.gateway.ResolveURL(event.Medias[i].Key)
	}
}

// assembleMedias reprend les médias dans l'ordre d'origine et substitue
// la clé finalisée des entrées multipart (retrouvée par uploadId).
func assembleMedias(inputs []models.EventMediaInput, completed []CompletionResult) []models.EventMedia {
	finalKeys := make(map[string]string, len(completed))
	for _, c := range completed {
		finalKeys[c.UploadID] = c.Key
	}

	medias := make([]models.EventMedia, len(inputs))
	for i, in := range inputs {
		key := in.Key
		if in.Multipart {
			key = finalKeys[in.UploadID]
		}
		medias[i] = models.EventMedia{
			Featured:    in.Featured,
			Caption:     in.Caption,
			Type:        in.Type,
			ContentType: in.ContentType,
			Key:         key,
		}
	}
	return medias
}

func existingKeys(event *models.Event) map[string]bool {
	keys := make(map[string]bool, len(event.Medias)+1)
	for _, m := range event.Medias {
		keys[m.Key] = true
	}
	if event.CoverImage != "" {
		keys[event.CoverImage] = true
	}
	return keys
}

func consumedKeys(event *models.Event) []string {
	keys := make([]string, 0, len(event.Medias)+1)
	for _, m := range event.Medias {
		keys = append(keys, m.Key)
	}
	if event.CoverImage != "" {
		keys = append(keys, event.CoverImage)
	}
	return keys
}

func eventStatus(status string) string {
	if status == "" {
		return models.EventStatusDraft
	}
	return status
}

func parseCategoryID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, utils.Invalid([]utils.ValidationError{{Field: "categoryId", Message: "Format d'identifiant invalide"}})
	}
	return id, nil
}
