package database

import (
	"context"
	"fmt"
	"time"

	"events-cms-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// EventRepository gère les opérations sur les événements
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository crée une nouvelle instance de EventRepository
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection(EventsCollection),
	}
}

// Create crée un nouvel événement
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event.ID = primitive.NewObjectID()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
		event.UpdatedAt = event.CreatedAt
	}

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateSlug, err)
		}
		return fmt.Errorf("erreur lors de la création de l'événement: %w", err)
	}

	return nil
}

// FindByID recherche un événement non supprimé par ID
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_deleted": false})
}

// FindBySlug recherche un événement non supprimé par slug
func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return r.findOne(ctx, bson.M{"slug": slug, "is_deleted": false})
}

func (r *EventRepository) findOne(ctx context.Context, filter bson.M) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.Event
	err := r.collection.FindOne(ctx, filter).Decode(&event)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de l'événement: %w", err)
	}

	return &event, nil
}

// Update réécrit les champs modifiables d'un événement
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": event.ID},
		bson.M{BSONSet: eventUpdateFields(event)},
	)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateSlug, err)
		}
		return fmt.Errorf("erreur lors de la mise à jour de l'événement: %w", err)
	}

	return nil
}

// SoftDelete marque un événement comme supprimé
func (r *EventRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{BSONSet: bson.M{"is_deleted": true, "updated_at": time.Now()}},
	)

	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'événement: %w", err)
	}

	return nil
}

// List retourne une page d'événements avec leur catégorie, et le total correspondant
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var events []models.Event
	var total int64

	var g errgroup.Group
	g.Go(func() error {
		cursor, err := r.collection.Aggregate(ctx, eventListPipeline(filter))
		if err != nil {
			return fmt.Errorf("erreur lors de la recherche des événements: %w", err)
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, &events); err != nil {
			return fmt.Errorf("erreur lors du décodage des événements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = r.collection.CountDocuments(ctx, eventFilterQuery(filter))
		if err != nil {
			return fmt.Errorf("erreur lors du comptage des événements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	if events == nil {
		events = []models.Event{}
	}
	return events, total, nil
}

// eventUpdateFields liste les champs écrits lors d'une modification
func eventUpdateFields(event *models.Event) bson.M {
	return bson.M{
		"title":       event.Title,
		"description": event.Description,
		"slug":        event.Slug,
		"category_id": event.CategoryID,
		"date":        event.Date,
		"end_date":    event.EndDate,
		"time":        event.Time,
		"location":    event.Location,
		"cover_image": event.CoverImage,
		"medias":      event.Medias,
		"status":      event.Status,
		"featured":    event.Featured,
		"updated_at":  event.UpdatedAt,
	}
}

// Count compte les événements non supprimés correspondant au filtre (statut, mise en avant, catégorie)
func (r *EventRepository) Count(ctx context.Context, filter models.EventFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, eventFilterQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des événements: %w", err)
	}

	return count, nil
}
