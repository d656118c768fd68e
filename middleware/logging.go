package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"
)

// ErrorNotifier reçoit les erreurs serveur à signaler (Slack)
type ErrorNotifier interface {
	SendCriticalError(method, path, statusCode, errorMessage, origin, userAgent string)
}

// responseWriter wrapper pour capturer le code de statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// isCriticalError détermine si une erreur doit être notifiée sur Slack.
// Seules les erreurs serveur (5xx) le sont, les erreurs client (mauvais
// mot de passe, validation) ne le sont jamais.
func isCriticalError(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError
}

// Logging enregistre les requêtes en erreur et notifie les erreurs critiques.
// notifier peut être nil.
func Logging(notifier ErrorNotifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Créer un wrapper pour capturer le code de statut
			rw := newResponseWriter(w)

			// Traiter la requête
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			statusCode := rw.statusCode

			// Logger toutes les erreurs
			if statusCode >= http.StatusBadRequest {
				log.Printf(
					"⚠️ %s %s -> %d (%s)",
					r.Method,
					r.RequestURI,
					statusCode,
					duration,
				)

				if isCriticalError(statusCode) && notifier != nil {
					notifier.SendCriticalError(
						r.Method,
						r.RequestURI,
						strconv.Itoa(statusCode),
						http.StatusText(statusCode),
						r.Header.Get("Origin"),
						r.Header.Get("User-Agent"),
					)
				}
			}
		})
	}
}
