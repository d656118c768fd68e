package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"events-cms-backend/utils"
)

func TestAuthLogin(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "secret-de-test", time.Hour)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "Admin", " Admin@Example.com ", "motdepasse"); err != nil {
		t.Fatalf("CreateAdmin() erreur = %v", err)
	}

	admin, token, err := svc.Login(ctx, "admin@example.com", "motdepasse")
	if err != nil {
		t.Fatalf("Login() erreur = %v", err)
	}
	if admin.Email != "admin@example.com" || token == "" {
		t.Errorf("Login() = %+v, %q", admin, token)
	}

	claims, err := utils.ValidateToken(token, "secret-de-test")
	if err != nil || claims.Email != "admin@example.com" {
		t.Errorf("ValidateToken() = %+v, %v", claims, err)
	}
}

func TestAuthLogin_Echecs(t *testing.T) {
	store := &fakeAdminStore{}
	svc := NewAuthService(store, "secret-de-test", 0)
	ctx := context.Background()
	_, _ = svc.CreateAdmin(ctx, "Admin", "admin@example.com", "motdepasse")

	tests := []struct {
		name, email, password string
	}{
		{"mauvais mot de passe", "admin@example.com", "autre"},
		{"email inconnu", "inconnu@example.com", "motdepasse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.email, tt.password)
			if statusOf(err) != http.StatusUnauthorized {
				t.Errorf("erreur = %v, attendu 401", err)
			}
		})
	}

	if svc.TokenTTL() != utils.DefaultTokenTTL {
		t.Errorf("TokenTTL() = %v", svc.TokenTTL())
	}
}

func TestAuthCreateAdmin_Doublon(t *testing.T) {
	svc := NewAuthService(&fakeAdminStore{}, "s", time.Hour)
	ctx := context.Background()

	if _, err := svc.CreateAdmin(ctx, "A", "a@example.com", "motdepasse"); err != nil {
		t.Fatalf("CreateAdmin() erreur = %v", err)
	}
	if _, err := svc.CreateAdmin(ctx, "A", "a@example.com", "motdepasse"); statusOf(err) != http.StatusConflict {
		t.Errorf("doublon = %v, attendu 409", err)
	}
	if _, err := svc.CreateAdmin(ctx, "B", "pas-un-email", "motdepasse"); statusOf(err) != http.StatusBadRequest {
		t.Errorf("email invalide = %v, attendu 400", err)
	}
}
