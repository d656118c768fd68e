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

// EventManager regroupe les opérations admin sur les événements
type EventManager interface {
	Create(ctx context.Context, req models.EventRequest, createdBy string) (*models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.EventRequest) (*models.Event, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, models.Pagination, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// EventHandler gère les requêtes admin sur les événements
type EventHandler struct {
	events EventManager
}

// NewEventHandler crée une nouvelle instance de EventHandler
func NewEventHandler(events EventManager) *EventHandler {
	return &EventHandler{events: events}
}

// Create crée un événement en finalisant ses uploads multipart
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.EventRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	createdBy := ""
	if claims := middleware.GetUserFromContext(r.Context()); claims != nil {
		createdBy = claims.Email
	}

	event, err := h.events.Create(r.Context(), req, createdBy)
	if err != nil {
		return err
	}

	utils.RespondCreated(w, "Événement créé avec succès", event)
	return nil
}

// List retourne les événements non supprimés, paginés
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) error {
	page, limit := ParsePagination(r, 10)
	filter := models.EventFilter{
		Status:   strings.TrimSpace(r.URL.Query().Get("status")),
		Featured: ParseBoolQuery(r, "featured"),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Page:     page,
		Limit:    limit,
	}

	events, pagination, err := h.events.List(r.Context(), filter)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", map[string]interface{}{
		"events":     nonNilEvents(events),
		"pagination": pagination,
	})
	return nil
}

// Get retourne un événement par son identifiant
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "", event)
	return nil
}

// Update modifie un événement : suppression de médias, nouveaux uploads
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	var req models.EventRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	event, err := h.events.Update(r.Context(), id, req)
	if err != nil {
		return err
	}

	utils.RespondSuccess(w, "Événement mis à jour avec succès", event)
	return nil
}

// Delete supprime logiquement un événement
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := ParseObjectIDVar(r, "id")
	if err != nil {
		return err
	}

	if err := h.events.SoftDelete(r.Context(), id); err != nil {
		return err
	}

	utils.RespondSuccess(w, "Événement supprimé avec succès", nil)
	return nil
}

func nonNilEvents(events []models.Event) []models.Event {
	if events == nil {
		return []models.Event{}
	}
	return events
}
