package utils

import (
	"fmt"
	"net/http"
)

// AppError est une erreur métier portant le code HTTP à renvoyer
type AppError struct {
	Status  int
	Details []ValidationError
	Err     error
}

// Error implémente l'interface error
func (e *AppError) Error() string {
	if len(e.Details) == 1 {
		return e.Details[0].Message
	}
	if len(e.Details) > 1 {
		return fmt.Sprintf("%s (%d erreurs)", e.Details[0].Message, len(e.Details))
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

// Unwrap expose l'erreur d'origine
func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(status int, message string) *AppError {
	return &AppError{Status: status, Details: []ValidationError{{Message: message}}}
}

// BadRequest construit une erreur de validation à message unique
func BadRequest(format string, args ...interface{}) *AppError {
	return newAppError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// Invalid construit une erreur de validation à partir d'une liste de champs
func Invalid(details []ValidationError) *AppError {
	return &AppError{Status: http.StatusBadRequest, Details: details}
}

// NotFound construit une erreur 404
func NotFound(message string) *AppError {
	return newAppError(http.StatusNotFound, message)
}

// Conflict construit une erreur 409
func Conflict(message string) *AppError {
	return newAppError(http.StatusConflict, message)
}

// Unauthorized construit une erreur 401
func Unauthorized(message string) *AppError {
	return newAppError(http.StatusUnauthorized, message)
}
