package services

import (
	"context"
	"log"
	"strings"
	"time"

	"events-cms-backend/models"
	"events-cms-backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryStore est la persistance des catégories.
// FindByID et FindBySlug ignorent les catégories supprimées.
type CategoryStore interface {
	Create(ctx context.Context, category *models.EventCategory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.EventCategory, error)
	FindBySlug(ctx context.Context, slug string) (*models.EventCategory, error)
	SlugExists(ctx context.Context, slug string, excludeID *primitive.ObjectID) (bool, error)
	Update(ctx context.Context, category *models.EventCategory) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	List(ctx context.Context, filter models.CategoryFilter) ([]models.EventCategory, int64, error)
}

// CategoryService gère les catégories d'événements
type CategoryService struct {
	categories CategoryStore
	now        func() time.Time
}

// NewCategoryService crée le service des catégories
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories, now: time.Now}
}

// Create crée une catégorie avec un slug unique en minuscules
func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest, createdBy string) (*models.EventCategory, error) {
	slug := strings.ToLower(req.Slug)
	exists, err := s.categories.SlugExists(ctx, slug, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.Conflict("Une catégorie avec ce slug existe déjà")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now()
	category := &models.EventCategory{
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug,
		Color:       req.Color,
		IsActive:    isActive,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("✓ Catégorie créée: %s", category.Slug)
	return category, nil
}

// Get retourne une catégorie non supprimée
func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.EventCategory, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, utils.NotFound("Catégorie introuvable")
	}
	return category, nil
}

// List retourne une page de catégories (surface admin)
func (s *CategoryService) List(ctx context.Context, filter models.CategoryFilter) ([]models.EventCategory, models.Pagination, error) {
	categories, total, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return categories, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Update modifie une catégorie ; le slug reste unique
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, req models.CategoryRequest) (*models.EventCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := strings.ToLower(req.Slug)
	if slug != category.Slug {
		exists, err := s.categories.SlugExists(ctx, slug, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, utils.Conflict("Une catégorie avec ce slug existe déjà")
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Slug = slug
	category.Color = req.Color
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = s.now()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// SoftDelete masque une catégorie sans la supprimer
func (s *CategoryService) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categories.SoftDelete(ctx, id); err != nil {
		return err
	}
	log.Printf("✓ Catégorie supprimée: %s", category.Slug)
	return nil
}

// SetActive active ou désactive une catégorie
func (s *CategoryService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.EventCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.categories.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	category.IsActive = active
	category.UpdatedAt = s.now()
	return category, nil
}

// ListActive retourne une page de catégories actives triées par nom (surface publique)
func (s *CategoryService) ListActive(ctx context.Context, search string, page, limit int64) ([]models.EventCategory, models.Pagination, error) {
	active := true
	return s.List(ctx, models.CategoryFilter{
		IsActive:   &active,
		Search:     search,
		SortByName: true,
		Page:       page,
		Limit:      limit,
	})
}

// ListAllActive retourne toutes les catégories actives, sans pagination
func (s *CategoryService) ListAllActive(ctx context.Context) ([]models.EventCategory, error) {
	active := true
	categories, _, err := s.categories.List(ctx, models.CategoryFilter{IsActive: &active, SortByName: true})
	return categories, err
}

// GetActiveBySlug retourne une catégorie active par son slug
func (s *CategoryService) GetActiveBySlug(ctx context.Context, slug string) (*models.EventCategory, error) {
	category, err := s.categories.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, utils.NotFound("Catégorie introuvable")
	}
	return category, nil
}
