package handlers

import (
	"context"
	"net/http"

	"events-cms-backend/models"
	"events-cms-backend/utils"
)

// DashboardSource calcule les compteurs du tableau de bord
type DashboardSource interface {
	Dashboard(ctx context.Context) *models.DashboardStats
}

// AdminHandler gère les requêtes du tableau de bord admin
type AdminHandler struct {
	stats DashboardSource
}

// NewAdminHandler crée une nouvelle instance de AdminHandler
func NewAdminHandler(stats DashboardSource) *AdminHandler {
	return &AdminHandler{stats: stats}
}

// ========== STATISTIQUES ==========

// GetStats retourne les statistiques globales
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) error {
	utils.RespondSuccess(w, "", h.stats.Dashboard(r.Context()))
	return nil
}
