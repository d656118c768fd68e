package middleware

import (
	"context"
	"net/http"
	"strings"

	"events-cms-backend/constants"
	"events-cms-backend/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// Auth vérifie le token JWT, lu dans le cookie de session ou à défaut
// dans l'en-tête Authorization
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := tokenFromRequest(r)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
				return
			}

			// Valider le token
			claims, err := utils.ValidateToken(tokenString, jwtSecret)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrInvalidToken)
				return
			}

			// Ajouter les informations de l'administrateur au contexte
			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(constants.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	// Format "Bearer <token>"
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserFromContext récupère les informations de l'administrateur depuis le contexte
func GetUserFromContext(ctx context.Context) *utils.Claims {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}
