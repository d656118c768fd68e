package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var (
	allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	allowedHeaders = []string{"Accept", "Content-Type", "Authorization"}
)

// CORS gère les en-têtes CORS de l'espace admin : origines listées
// uniquement, cookies autorisés
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, allowedOrigins)
		},
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		AllowCredentials: true,
		MaxAge:           3600,
	})
}

// PublicCORS ouvre la surface publique en lecture à toutes les origines
func PublicCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: allowedHeaders,
		MaxAge:         3600,
	})
}

// isOriginAllowed compare l'origine exacte à la liste ("*" autorise tout)
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
