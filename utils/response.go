package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"events-cms-backend/constants"
	"events-cms-backend/models"
)

// RespondJSON envoie une réponse JSON
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if w.Header().Get(constants.HeaderContentType) == "" {
		w.Header().Set(constants.HeaderContentType, constants.HeaderApplicationJSON)
	}

	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Les en-têtes sont déjà partis, on ne peut que journaliser
			log.Printf("❌ Erreur lors de l'encodage JSON: %v", err)
		}
	}
}

// RespondError envoie une réponse d'erreur JSON à message unique
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondErrorDetails(w, statusCode, []ValidationError{{Message: message}})
}

// RespondErrorDetails envoie l'enveloppe d'erreur {status, success:false, data:{errors}}
func RespondErrorDetails(w http.ResponseWriter, statusCode int, details []ValidationError) {
	errs := make([]models.ErrorDetail, 0, len(details))
	for _, d := range details {
		errs = append(errs, models.ErrorDetail{Message: d.Message, Field: d.Field})
	}
	RespondJSON(w, statusCode, models.ErrorResponse{
		Status:  statusCode,
		Success: false,
		Data:    models.ErrorData{Errors: errs},
	})
}

// RespondSuccess envoie une réponse de succès JSON
func RespondSuccess(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondCreated envoie une réponse 201
func RespondCreated(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusCreated, models.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
