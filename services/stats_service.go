package services

import (
	"context"
	"log"

	"events-cms-backend/models"

	"golang.org/x/sync/errgroup"
)

// AdminCounter compte les administrateurs
type AdminCounter interface {
	CountAll(ctx context.Context) (int64, error)
}

// EventCounter compte les événements non supprimés
type EventCounter interface {
	Count(ctx context.Context, filter models.EventFilter) (int64, error)
}

// CategoryCounter compte les catégories non supprimées
type CategoryCounter interface {
	Count(ctx context.Context, filter models.CategoryFilter) (int64, error)
}

var eventStatuses = []string{
	models.EventStatusDraft,
	models.EventStatusPublished,
	models.EventStatusCompleted,
	models.EventStatusCancelled,
}

// StatsService calcule les compteurs du tableau de bord admin
type StatsService struct {
	admins     AdminCounter
	events     EventCounter
	categories CategoryCounter
}

// NewStatsService crée une nouvelle instance de StatsService
func NewStatsService(admins AdminCounter, events EventCounter, categories CategoryCounter) *StatsService {
	return &StatsService{admins: admins, events: events, categories: categories}
}

// Dashboard calcule tous les compteurs en parallèle. Un compteur en échec
// est journalisé et vaut 0.
func (s *StatsService) Dashboard(ctx context.Context) *models.DashboardStats {
	stats := &models.DashboardStats{}
	byStatus := make([]int64, len(eventStatuses))
	active := true

	var g errgroup.Group
	g.Go(func() error {
		stats.TotalAdmins = count("administrateurs", func() (int64, error) { return s.admins.CountAll(ctx) })
		return nil
	})
	g.Go(func() error {
		stats.TotalEvents = count("événements", func() (int64, error) { return s.events.Count(ctx, models.EventFilter{}) })
		return nil
	})
	for i, status := range eventStatuses {
		g.Go(func() error {
			byStatus[i] = count("événements "+status, func() (int64, error) {
				return s.events.Count(ctx, models.EventFilter{Status: status})
			})
			return nil
		})
	}
	g.Go(func() error {
		stats.TotalCategories = count("catégories", func() (int64, error) { return s.categories.Count(ctx, models.CategoryFilter{}) })
		return nil
	})
	g.Go(func() error {
		stats.ActiveCategories = count("catégories actives", func() (int64, error) {
			return s.categories.Count(ctx, models.CategoryFilter{IsActive: &active})
		})
		return nil
	})
	_ = g.Wait()

	stats.EventsByStatus = make(map[string]int64, len(eventStatuses))
	for i, status := range eventStatuses {
		stats.EventsByStatus[status] = byStatus[i]
	}
	return stats
}

func count(label string, fn func() (int64, error)) int64 {
	n, err := fn()
	if err != nil {
		log.Printf("⚠️  Erreur comptage %s: %v", label, err)
		return 0
	}
	return n
}
