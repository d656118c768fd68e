package handlers

import (
	"context"
	"net/http"
	"strings"

	"events-cms-backend/constants"
	"events-cms-backend/models"
	"events-cms-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublicEvents regroupe les lectures publiques d'événements
type PublicEvents interface {
	ListPublished(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error)
	ListByCategorySlug(ctx context.Context, slug string, page, limit int64) (*models.EventCategory, []models.Event, models.Pagination, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Event, error)
}

// PublicCategories regroupe les lectures publiques de catégories
type PublicCategories interface {
	ListActive(ctx context.Context, search string, page, limit int64) ([]models.EventCategory, models.Pagination, error)
	ListAllActive(ctx context.Context) ([]models.EventCategory, error)
	GetActiveBySlug(ctx context.Context, slug string) (*models.EventCategory, error)
}

// PublicHandler expose la surface publique en lecture seule
type PublicHandler struct {
	events     PublicEvents
	categories PublicCategories
}

// NewPublicHandler crée une nouvelle instance de PublicHandler
func NewPublicHandler(events PublicEvents, categories PublicCategories) *PublicHandler {
	return &PublicHandler{events: events, categories: categories}
}

// Events retourne les événements publiés à venir
func (h *PublicHandler) Events(w http.ResponseWriter, r *http.Request) error {
	page, limit := ParsePagination(r, 12)
	filter := models.EventFilter{
		Featured: ParseBoolQuery(r, "featured"),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Page:     page,
		Limit:    limit,
	}

	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return utils.Invalid([]utils.ValidationError{{Field: "categoryId", Message: constants.ErrInvalidID}})
		}
		filter.CategoryID = &categoryID
	}

	events, pagination, err := h.events.ListPublished(r.Context(), filter)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", map[string]interface{}{
		"events":     nonNilEvents(events),
		"pagination": pagination,
	})
	return nil
}

// EventsByCategory retourne les événements publiés d'une catégorie active
func (h *PublicHandler) EventsByCategory(w http.ResponseWriter, r *http.Request) error {
	page, limit := ParsePagination(r, 12)

	category, events, pagination, err := h.events.ListByCategorySlug(r.Context(), mux.Vars(r)["categorySlug"], page, limit)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", map[string]interface{}{
		"category":   category,
		"events":     nonNilEvents(events),
		"pagination": pagination,
	})
	return nil
}

// EventBySlug retourne un événement publié
func (h *PublicHandler) EventBySlug(w http.ResponseWriter, r *http.Request) error {
	event, err := h.events.GetPublishedBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", event)
	return nil
}

// Categories retourne une page de catégories actives
func (h *PublicHandler) Categories(w http.ResponseWriter, r *http.Request) error {
	page, limit := ParsePagination(r, 20)

	categories, pagination, err := h.categories.ListActive(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")), page, limit)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", map[string]interface{}{
		"categories": nonNilCategories(categories),
		"pagination": pagination,
	})
	return nil
}

// AllCategories retourne toutes les catégories actives
func (h *PublicHandler) AllCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categories.ListAllActive(r.Context())
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", map[string]interface{}{
		"categories": nonNilCategories(categories),
	})
	return nil
}

// CategoryBySlug retourne une catégorie active
func (h *PublicHandler) CategoryBySlug(w http.ResponseWriter, r *http.Request) error {
	category, err := h.categories.GetActiveBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", category)
	return nil
}
