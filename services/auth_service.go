package services

import (
	"context"
	"log"
	"strings"
	"time"

	"events-cms-backend/models"
	"events-cms-backend/utils"
)

// AdminStore est la persistance des administrateurs
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// AuthService authentifie les administrateurs
type AuthService struct {
	admins    AdminStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService crée le service d'authentification
func NewAuthService(admins AdminStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{admins: admins, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login vérifie les identifiants et retourne l'administrateur et son token de session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if admin == nil || !utils.CheckPassword(admin.Password, password) {
		log.Printf("⚠️  Tentative de connexion échouée pour %s", email)
		return nil, "", utils.Unauthorized("Email ou mot de passe incorrect")
	}

	token, err := utils.GenerateToken(admin.ID.Hex(), admin.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	log.Printf("✓ Admin connecté: %s", admin.Email)
	return admin, token, nil
}

// TokenTTL est la durée de validité de la session
func (s *AuthService) TokenTTL() time.Duration {
	if s.tokenTTL <= 0 {
		return utils.DefaultTokenTTL
	}
	return s.tokenTTL
}

// CreateAdmin enregistre un nouvel administrateur avec un mot de passe haché
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := utils.ValidateEmail(email); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}

	existing, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.Conflict("Cet email est déjà utilisé")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{Name: name, Email: email, Password: hashed}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
