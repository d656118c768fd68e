package handlers

import (
	"context"
	"net/http"
	"time"

	"events-cms-backend/constants"
	"events-cms-backend/middleware"
	"events-cms-backend/models"
	"events-cms-backend/utils"
)

// Authenticator authentifie un administrateur
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Admin, string, error)
	TokenTTL() time.Duration
}

// AuthHandler gère les requêtes d'authentification admin
type AuthHandler struct {
	auth         Authenticator
	cookieSecure bool
}

// NewAuthHandler crée une nouvelle instance de AuthHandler
func NewAuthHandler(auth Authenticator, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// Login vérifie les identifiants et pose le cookie de session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := DecodeAndValidate(r, &req); err != nil {
		return err
	}

	admin, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	ttl := h.auth.TokenTTL()
	http.SetCookie(w, h.cookie(token, int(ttl.Seconds()), time.Now().Add(ttl)))

	utils.RespondSuccess(w, "Connexion réussie", models.AdminSummary{Name: admin.Name, Email: admin.Email})
	return nil
}

// Logout supprime le cookie de session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, h.cookie("", -1, time.Unix(0, 0)))
	utils.RespondSuccess(w, "Déconnexion réussie", nil)
	return nil
}

// CheckAuth retourne l'email de l'administrateur connecté
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) error {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return utils.Unauthorized(constants.ErrNotAuthenticated)
	}
	utils.RespondSuccess(w, "", map[string]string{"email": claims.Email})
	return nil
}

func (h *AuthHandler) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.cookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     constants.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: sameSite,
	}
}
