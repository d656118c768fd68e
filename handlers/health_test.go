package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthHandlerHealth(t *testing.T) {
	handler := NewHealthHandler("test", func(context.Context) error { return nil }, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Health() status = %v, want %v", rr.Code, http.StatusOK)
	}

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Health() Content-Type = %v, want application/json", ct)
	}

	body := rr.Body.String()
	expectedKeys := []string{"status", "env", "uptime", "go_version", "db_status"}
	for _, key := range expectedKeys {
		if !strings.Contains(body, key) {
			t.Errorf("Health() body should contain %q, got %s", key, body)
		}
	}
	if strings.Contains(body, "redis_status") {
		t.Errorf("redis_status inattendu sans tracker: %s", body)
	}
}

func TestHealthHandlerDependances(t *testing.T) {
	handler := NewHealthHandler("test",
		func(context.Context) error { return errors.New("mongo down") },
		func(context.Context) error { return nil },
	)

	rr := httptest.NewRecorder()
	handler.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	body := decodeBody(t, rr)
	if body["db_status"] != "error" {
		t.Errorf("db_status = %v, attendu error", body["db_status"])
	}
	if body["redis_status"] != "ok" {
		t.Errorf("redis_status = %v, attendu ok", body["redis_status"])
	}
}
