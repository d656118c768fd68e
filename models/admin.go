package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin représente un administrateur du back-office
type Admin struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"` // Le "-" empêche la sérialisation du mot de passe
	Profile   string             `json:"profile,omitempty" bson:"profile,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// LoginRequest représente la requête de connexion
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=20"`
}

// AdminSummary est la représentation renvoyée après connexion
type AdminSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DashboardStats regroupe les compteurs du tableau de bord admin
type DashboardStats struct {
	TotalAdmins      int64            `json:"totalAdmins"`
	TotalEvents      int64            `json:"totalEvents"`
	EventsByStatus   map[string]int64 `json:"eventsByStatus"`
	TotalCategories  int64            `json:"totalCategories"`
	ActiveCategories int64            `json:"activeCategories"`
}
