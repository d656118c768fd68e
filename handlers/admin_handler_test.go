package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"events-cms-backend/models"
)

type fixedStats models.DashboardStats

func (s fixedStats) Dashboard(context.Context) *models.DashboardStats {
	stats := models.DashboardStats(s)
	return &stats
}

func TestAdminHandlerGetStats(t *testing.T) {
	h := NewAdminHandler(fixedStats{TotalEvents: 7, EventsByStatus: map[string]int64{"published": 4}})

	rr := httptest.NewRecorder()
	Handle(h.GetStats)(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Code = %d", rr.Code)
	}
	data := decodeBody(t, rr)["data"].(map[string]interface{})
	if data["totalEvents"] != float64(7) {
		t.Errorf("data = %v", data)
	}
	if byStatus := data["eventsByStatus"].(map[string]interface{}); byStatus["published"] != float64(4) {
		t.Errorf("eventsByStatus = %v", byStatus)
	}
}
