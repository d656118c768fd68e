package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"events-cms-backend/utils"
)

var startTime = time.Now()

// Pinger vérifie qu'une dépendance répond
type Pinger func(ctx context.Context) error

// HealthHandler gère les endpoints de santé
type HealthHandler struct {
	environment string
	database    Pinger
	redis       Pinger
}

// NewHealthHandler crée un nouveau HealthHandler. redis peut être nil
// quand le suivi des clés n'est pas configuré.
func NewHealthHandler(environment string, database, redis Pinger) *HealthHandler {
	return &HealthHandler{environment: environment, database: database, redis: redis}
}

// Health retourne l'état de santé du serveur avec métriques
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]interface{}{
		"status":     "ok",
		"message":    "Le serveur fonctionne correctement",
		"env":        h.environment,
		"database":   "MongoDB",
		"db_status":  pingStatus(ctx, h.database),
		"uptime":     time.Since(startTime).String(),
		"go_version": runtime.Version(),
	}
	if h.redis != nil {
		body["redis_status"] = pingStatus(ctx, h.redis)
	}

	utils.RespondJSON(w, http.StatusOK, body)
}

func pingStatus(ctx context.Context, ping Pinger) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		return "error"
	}
	return "ok"
}
