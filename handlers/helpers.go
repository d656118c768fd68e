package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"events-cms-backend/constants"
	"events-cms-backend/database"
	"events-cms-backend/storage"
	"events-cms-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
)

// maxPageSize borne la taille d'une page
const maxPageSize = 100

// HandlerFunc est un handler qui retourne son erreur au lieu de l'écrire
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle convertit un HandlerFunc en http.HandlerFunc. Toute erreur est
// normalisée en enveloppe {status, success:false, data:{errors}}.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			RespondWithError(w, r, err)
		}
	}
}

// RespondWithError écrit la réponse correspondant à une erreur
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		utils.RespondErrorDetails(w, appErr.Status, appErr.Details)
	case errors.Is(err, storage.ErrStorage):
		log.Printf("❌ %s %s: %v", r.Method, r.URL.Path, err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
	case errors.Is(err, storage.ErrInvalidParts):
		utils.RespondErrorDetails(w, http.StatusBadRequest, invalidPartsDetails(err))
	case errors.Is(err, database.ErrDuplicateSlug):
		utils.RespondError(w, http.StatusConflict, constants.ErrDuplicateSlug)
	default:
		log.Printf("❌ %s %s: %v", r.Method, r.URL.Path, err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
	}
}

// invalidPartsDetails ne garde que les erreurs de parts d'un lot agrégé
func invalidPartsDetails(err error) []utils.ValidationError {
	details := make([]utils.ValidationError, 0)
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, storage.ErrInvalidParts) {
			details = append(details, utils.ValidationError{Message: e.Error()})
		}
	}
	return details
}

// DecodeAndValidate décode le body JSON puis valide la structure
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest(constants.ErrInvalidJSONBody)
	}
	return utils.ValidateStruct(dst)
}

// ParseObjectIDVar extrait et valide un ObjectID depuis les vars de l'URL
func ParseObjectIDVar(r *http.Request, key string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[key])
	if err != nil {
		return primitive.NilObjectID, utils.BadRequest(constants.ErrInvalidID)
	}
	return id, nil
}

// ParsePagination lit page et limit ; les valeurs absentes ou invalides prennent les défauts
func ParsePagination(r *http.Request, defaultLimit int64) (page, limit int64) {
	page, limit = 1, defaultLimit

	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// ParseBoolQuery lit un booléen optionnel ("true"/"false") de la query string
func ParseBoolQuery(r *http.Request, key string) *bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}
