package middleware

import (
	"context"
	"log"
	"net/http"

	"events-cms-backend/constants"
	"events-cms-backend/models"
	"events-cms-backend/utils"
)

// AdminFinder retrouve un administrateur par email
type AdminFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// RequireAdmin vérifie que le token correspond à un administrateur existant
func RequireAdmin(admins AdminFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Récupérer les claims depuis le contexte (mis par le middleware Auth)
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
				return
			}

			admin, err := admins.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				log.Printf("❌ Erreur lors de la recherche de l'administrateur %s: %v", claims.Email, err)
				utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
				return
			}
			if admin == nil {
				log.Printf("⚠️  Accès admin refusé pour: %s", claims.Email)
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrAdminNotFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
