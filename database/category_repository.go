package database

import (
	"context"
	"fmt"
	"time"

	"events-cms-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryRepository gère les opérations sur les catégories d'événements
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository crée une nouvelle instance de CategoryRepository
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection(CategoriesCollection),
	}
}

// Create crée une nouvelle catégorie
func (r *CategoryRepository) Create(ctx context.Context, category *models.EventCategory) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	category.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateSlug, err)
		}
		return fmt.Errorf("erreur lors de la création de la catégorie: %w", err)
	}

	return nil
}

// FindByID recherche une catégorie non supprimée par ID
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.EventCategory, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_deleted": false})
}

// FindBySlug recherche une catégorie non supprimée par slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.EventCategory, error) {
	return r.findOne(ctx, bson.M{"slug": slug, "is_deleted": false})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (*models.EventCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var category models.EventCategory
	err := r.collection.FindOne(ctx, filter).Decode(&category)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de la catégorie: %w", err)
	}

	return &category, nil
}

// SlugExists vérifie si un slug est déjà pris, catégories supprimées comprises
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"slug": slug}
	if excludeID != nil {
		filter["_id"] = bson.M{BSONNe: *excludeID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("erreur lors de la vérification du slug: %w", err)
	}

	return count > 0, nil
}

// Update réécrit les champs modifiables d'une catégorie
func (r *CategoryRepository) Update(ctx context.Context, category *models.EventCategory) error {
	return r.set(ctx, category.ID, bson.M{
		"name":        category.Name,
		"description": category.Description,
		"slug":        category.Slug,
		"color":       category.Color,
		"is_active":   category.IsActive,
		"updated_at":  category.UpdatedAt,
	})
}

// SoftDelete masque une catégorie (désactivée et marquée supprimée)
func (r *CategoryRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return r.set(ctx, id, bson.M{"is_active": false, "is_deleted": true, "updated_at": time.Now()})
}

// SetActive active ou désactive une catégorie
func (r *CategoryRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.set(ctx, id, bson.M{"is_active": active, "updated_at": time.Now()})
}

func (r *CategoryRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{BSONSet: fields})
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour de la catégorie: %w", err)
	}

	return nil
}

// List retourne une page de catégories et le total correspondant
func (r *CategoryRepository) List(ctx context.Context, filter models.CategoryFilter) ([]models.EventCategory, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := categoryFilterQuery(filter)

	cursor, err := r.collection.Find(ctx, query, findOptions(categorySort(filter), filter.Page, filter.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("erreur lors de la recherche des catégories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.EventCategory{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, 0, fmt.Errorf("erreur lors du décodage des catégories: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("erreur lors du comptage des catégories: %w", err)
	}

	return categories, total, nil
}

// Count compte les catégories non supprimées correspondant au filtre
func (r *CategoryRepository) Count(ctx context.Context, filter models.CategoryFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, categoryFilterQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des catégories: %w", err)
	}

	return count, nil
}
