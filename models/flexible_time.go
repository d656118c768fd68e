package models

import (
	"fmt"
	"strings"
	"time"
)

// FlexibleTime gère plusieurs formats de dates
type FlexibleTime struct {
	time.Time
}

// UnmarshalJSON implémente le unmarshaler pour accepter plusieurs formats de dates
func (ft *FlexibleTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		ft.Time = time.Time{}
		return nil
	}

	// Charger la timezone de Paris
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 2*3600) // Fallback: UTC+2
	}

	// TOUS LES FORMATS sont parsés en heure française
	// Peu importe ce que le frontend envoie, on garde l'heure telle quelle
	formats := []string{
		"2006-01-02T15:04:05", // "2025-12-31T20:00:00"
		"2006-01-02T15:04",    // "2025-12-31T20:00"
		time.RFC3339,          // "2025-12-31T20:00:00Z" (on ignore le Z)
		time.RFC3339Nano,      // Avec nanosecondes
		"2006-01-02",          // date seule, pour les événements sur la journée
	}

	for _, layout := range formats {
		// TOUJOURS parser en timezone France
		parsedTime, parseErr := time.ParseInLocation(layout, s, paris)
		if parseErr == nil {
			ft.Time = parsedTime
			return nil
		}
	}

	return fmt.Errorf("format de date invalide: %s", s)
}

// TimePtr retourne nil pour une date vide, sinon un pointeur sur la date
func (ft *FlexibleTime) TimePtr() *time.Time {
	if ft == nil || ft.Time.IsZero() {
		return nil
	}
	t := ft.Time
	return &t
}

// MarshalJSON retourne la date EN HEURE FRANÇAISE (même si MongoDB stocke en UTC)
func (ft FlexibleTime) MarshalJSON() ([]byte, error) {
	if ft.Time.IsZero() {
		return []byte("null"), nil
	}

	// MongoDB stocke toujours en UTC, donc on doit reconvertir en heure française
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 2*3600)
	}

	// Convertir en timezone France
	frenchTime := ft.Time.In(paris)

	// Retourner SANS le Z (format simple : YYYY-MM-DDTHH:MM:SS)
	return []byte("\"" + frenchTime.Format("2006-01-02T15:04:05") + "\""), nil
}
