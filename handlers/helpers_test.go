package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"events-cms-backend/constants"
	"events-cms-backend/database"
	"events-cms-backend/storage"
	"events-cms-backend/utils"

	"github.com/gorilla/mux"
	"go.uber.org/multierr"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"erreur métier", utils.Conflict("déjà pris"), http.StatusConflict, "déjà pris"},
		{"introuvable", utils.NotFound("Catégorie introuvable"), http.StatusNotFound, "Catégorie introuvable"},
		{"parts invalides", fmt.Errorf("%w: aucune part fournie", storage.ErrInvalidParts), http.StatusBadRequest, "parts multipart invalides: aucune part fournie"},
		{"slug dupliqué en base", fmt.Errorf("insert: %w", database.ErrDuplicateSlug), http.StatusConflict, constants.ErrDuplicateSlug},
		{"stockage masqué", fmt.Errorf("%w (complete): boom", storage.ErrStorage), http.StatusInternalServerError, constants.ErrServerError},
		{"erreur inconnue", errors.New("panne"), http.StatusInternalServerError, constants.ErrServerError},
		{
			"lot agrégé",
			multierr.Append(fmt.Errorf("session a: %w", storage.ErrStorage), fmt.Errorf("session b: %w", storage.ErrStorage)),
			http.StatusInternalServerError,
			constants.ErrServerError,
		},
		{
			"lot mixte parts invalides et stockage en échec",
			multierr.Append(
				fmt.Errorf("session u1: %w", fmt.Errorf("%w (finalisation multipart): %w", storage.ErrStorage,
					errors.New("StatusCode: 403, RequestID: ABC123, api error AccessDenied"))),
				fmt.Errorf("session u2: %w: part 2 en double", storage.ErrInvalidParts),
			),
			http.StatusInternalServerError,
			constants.ErrServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondWithError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rr.Code != tt.wantCode {
				t.Errorf("Code = %d, attendu %d", rr.Code, tt.wantCode)
			}
			messages := errorMessages(t, rr)
			if len(messages) != 1 || messages[0] != tt.wantMsg {
				t.Errorf("messages = %v, attendu [%s]", messages, tt.wantMsg)
			}
		})
	}
}

func TestRespondWithErrorLotDePartsInvalides(t *testing.T) {
	err := multierr.Append(
		fmt.Errorf("session u1: %w: aucune part fournie", storage.ErrInvalidParts),
		fmt.Errorf("session u2: %w: ETag manquant pour la part 1", storage.ErrInvalidParts),
	)

	rr := httptest.NewRecorder()
	RespondWithError(rr, httptest.NewRequest(http.MethodPost, "/admin/medias/multipart/complete", nil), err)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Code = %d, attendu 400", rr.Code)
	}
	want := []string{
		"session u1: parts multipart invalides: aucune part fournie",
		"session u2: parts multipart invalides: ETag manquant pour la part 1",
	}
	messages := errorMessages(t, rr)
	if len(messages) != len(want) {
		t.Fatalf("messages = %v, attendu %v", messages, want)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("messages[%d] = %q, attendu %q", i, messages[i], want[i])
		}
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query     string
		wantPage  int64
		wantLimit int64
	}{
		{"", 1, 12},
		{"?page=3&limit=5", 3, 5},
		{"?page=-1&limit=abc", 1, 12},
		{"?limit=1000", 1, maxPageSize},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		page, limit := ParsePagination(r, 12)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("ParsePagination(%q) = %d, %d; attendu %d, %d", tt.query, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestParseBoolQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?featured=true&isActive=nope", nil)
	if v := ParseBoolQuery(r, "featured"); v == nil || !*v {
		t.Errorf("featured = %v", v)
	}
	if v := ParseBoolQuery(r, "isActive"); v != nil {
		t.Errorf("isActive = %v, attendu nil", *v)
	}
	if v := ParseBoolQuery(r, "absent"); v != nil {
		t.Errorf("absent = %v, attendu nil", *v)
	}
}

func TestParseObjectIDVarInvalide(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "pas-un-id"})
	_, err := ParseObjectIDVar(r, "id")

	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusBadRequest {
		t.Fatalf("err = %v, attendu 400", err)
	}
	if appErr.Details[0].Message != constants.ErrInvalidID {
		t.Errorf("message = %s", appErr.Details[0].Message)
	}
}

func TestHandleBodyInvalide(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		var dst struct {
			Name string `json:"name" validate:"required"`
		}
		return DecodeAndValidate(r, &dst)
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/", jsonBody("{")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, attendu 400", rr.Code)
	}
	if messages := errorMessages(t, rr); messages[0] != constants.ErrInvalidJSONBody {
		t.Errorf("messages = %v", messages)
	}
}
