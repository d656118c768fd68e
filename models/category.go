package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventCategory représente une catégorie d'événements.
// Une catégorie supprimée est conservée mais masquée (IsActive=false, IsDeleted=true).
type EventCategory struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Slug        string             `json:"slug" bson:"slug"`
	Color       string             `json:"color,omitempty" bson:"color,omitempty"`
	IsActive    bool               `json:"isActive" bson:"is_active"`
	IsDeleted   bool               `json:"-" bson:"is_deleted"`
	CreatedBy   string             `json:"createdBy" bson:"created_by"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CategoryRequest représente la requête de création ou de modification de catégorie
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Slug        string `json:"slug" validate:"required,max=100,slug"`
	Color       string `json:"color" validate:"omitempty,colorhex"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryFilter regroupe les critères de recherche de catégories
type CategoryFilter struct {
	IsActive   *bool
	Search     string
	SortByName bool
	Page       int64
	Limit      int64
}

// CategoryStatusRequest active ou désactive une catégorie
type CategoryStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
