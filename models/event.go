package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts d'un événement
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Types de média acceptés
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// EventMedia représente un média rattaché à un événement.
// Seule la clé de stockage finale est persistée, jamais une URL.
type EventMedia struct {
	Featured    bool   `json:"featured" bson:"featured"`
	Caption     string `json:"caption,omitempty" bson:"caption,omitempty"`
	Type        string `json:"type" bson:"type"`
	ContentType string `json:"contentType" bson:"content_type"`
	Key         string `json:"key" bson:"key"`
	URL         string `json:"url,omitempty" bson:"-"` // calculée à la lecture
}

// Event représente un événement dans le système
type Event struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	Slug          string             `json:"slug" bson:"slug"`
	CategoryID    primitive.ObjectID `json:"categoryId" bson:"category_id"`
	Category      *CategorySummary   `json:"category,omitempty" bson:"category,omitempty"` // jointure, jamais écrite
	Date          time.Time          `json:"date" bson:"date"`
	EndDate       *time.Time         `json:"endDate,omitempty" bson:"end_date,omitempty"`
	Time          string             `json:"time" bson:"time"`
	Location      string             `json:"location" bson:"location"`
	CoverImage    string             `json:"coverImage,omitempty" bson:"cover_image,omitempty"` // clé de stockage
	CoverImageURL string             `json:"coverImageUrl,omitempty" bson:"-"`
	Medias        []EventMedia       `json:"medias" bson:"medias"`
	Status        string             `json:"status" bson:"status"`
	Featured      bool               `json:"featured" bson:"featured"`
	IsDeleted     bool               `json:"-" bson:"is_deleted"`
	CreatedBy     string             `json:"createdBy" bson:"created_by"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CategorySummary est la catégorie jointe aux événements listés
type CategorySummary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Slug  string             `json:"slug" bson:"slug"`
	Color string             `json:"color,omitempty" bson:"color,omitempty"`
}

// EventMediaInput est un média tel que reçu à la création ou la modification.
// Les entrées multipart portent encore leur session à finaliser.
type EventMediaInput struct {
	Featured    bool            `json:"featured"`
	Caption     string          `json:"caption" validate:"max=500"`
	Type        string          `json:"type" validate:"required,oneof=image video"`
	ContentType string          `json:"contentType" validate:"required"`
	Key         string          `json:"key" validate:"required,max=1024"`
	Multipart   bool            `json:"multipart"`
	UploadID    string          `json:"uploadId" validate:"required_if=Multipart true"`
	Parts       []CompletedPart `json:"parts" validate:"dive"`
}

// EventRequest représente la requête de création ou de modification d'événement
type EventRequest struct {
	Title        string            `json:"title" validate:"required,max=100"`
	Description  string            `json:"description" validate:"required,max=1000"`
	Slug         string            `json:"slug" validate:"required,max=100,slug"`
	CategoryID   string            `json:"categoryId" validate:"required"`
	Date         FlexibleTime      `json:"date"`
	EndDate      *FlexibleTime     `json:"endDate,omitempty"`
	Time         string            `json:"time" validate:"required"`
	Location     string            `json:"location" validate:"required,max=200"`
	CoverImage   string            `json:"coverImage"`
	Medias       []EventMediaInput `json:"medias" validate:"max=50,dive"`
	Status       string            `json:"status" validate:"omitempty,oneof=draft published completed cancelled"`
	Featured     bool              `json:"featured"`
	DeleteMedias []string          `json:"deleteMedias" validate:"max=50"`
}

// EventFilter regroupe les critères de recherche d'événements
type EventFilter struct {
	Status     string
	Featured   *bool
	Search     string
	CategoryID *primitive.ObjectID
	// UpcomingFrom restreint aux événements dont la date est >= à cette valeur
	UpcomingFrom *time.Time
	// SearchLocation étend la recherche texte au lieu (surface publique)
	SearchLocation bool
	// SortByDate trie par date croissante au lieu de la date de création
	SortByDate bool
	Page       int64
	Limit      int64
}

// MarshalJSON formate les dates en heure française (Europe/Paris)
func (e Event) MarshalJSON() ([]byte, error) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 2*3600)
	}

	// Alias pour éviter la récursion infinie
	type Alias Event

	dateStr := ""
	if !e.Date.IsZero() {
		dateStr = e.Date.In(paris).Format("2006-01-02T15:04:05")
	}

	endDateStr := (*string)(nil)
	if e.EndDate != nil && !e.EndDate.IsZero() {
		s := e.EndDate.In(paris).Format("2006-01-02T15:04:05")
		endDateStr = &s
	}

	medias := e.Medias
	if medias == nil {
		medias = []EventMedia{}
	}

	return json.Marshal(&struct {
		*Alias
		Date    string       `json:"date"`
		EndDate *string      `json:"endDate,omitempty"`
		Medias  []EventMedia `json:"medias"`
	}{
		Alias:   (*Alias)(&e),
		Date:    dateStr,
		EndDate: endDateStr,
		Medias:  medias,
	})
}
