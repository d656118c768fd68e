package handlers

import (
	"context"
	"net/http"
	"strings"

	"events-cms-backend/middleware"
	"events-cms-backend/models"
	"events-cms-backend/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryManager regroupe les opérations admin sur les catégories
type CategoryManager interface {
	Create(ctx context.Context, req models.CategoryRequest, createdBy string) (*models.EventCategory, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.EventCategory, error)
	List(ctx context.Context, filter models.CategoryFilter) ([]models.EventCategory, models.Pagination, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.CategoryRequest) (*models.EventCategory, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.EventCategory, error)
}

// CategoryHandler gère les requêtes admin sur les catégories
type CategoryHandler struct {
	categories CategoryManager
}

// NewCategoryHandler crée une nouvelle instance de CategoryHandler
func NewCategoryHandler(categories CategoryManager) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create crée une catégorie
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.CategoryRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	createdBy := ""
	if claims := middleware.GetUserFromContext(r.Context()); claims != nil {
		createdBy = claims.Email
	}

	category, err := h.categories.Create(r.Context(), req, createdBy)
	if err != nil {
		return err
	}

	utils.RespondCreated(w, "Catégorie créée avec succès", category)
	return nil
}

// List retourne les catégories non supprimées, paginées
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) error {
	page, limit := ParsePagination(r, 10)
	filter := models.CategoryFilter{
		IsActive: ParseBoolQuery(r, "isActive"),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Page:     page,
		Limit:    limit,
	}

	categories, pagination, err := h.categories.List(r.Context(), filter)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", map[string]interface{}{
		"categories": nonNilCategories(categories),
		"pagination": pagination,
	})
	return nil
}

// Get retourne une catégorie par son identifiant
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", category)
	return nil
}

// Update modifie une catégorie
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	var req models.CategoryRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	category, err := h.categories.Update(r.Context(), id, req)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "Catégorie mise à jour avec succès", category)
	return nil
}

// Delete supprime logiquement une catégorie
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	if err := h.categories.SoftDelete(r.Context(), id); err != nil {
		return err
	}

	utils.RespondSuccess(w, "Catégorie supprimée avec succès", nil)
	return nil
}

// SetStatus active ou désactive une catégorie
func (h *CategoryHandler) SetStatus(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	var req models.CategoryStatusRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	category, err := h.categories.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "Statut de la catégorie mis à jour", category)
	return nil
}

func nonNilCategories(categories []models.EventCategory) []models.EventCategory {
	if categories == nil {
		return []models.EventCategory{}
	}
	return categories
}
