package models

// ErrorDetail est une entrée de la liste d'erreurs
type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorData contient la liste d'erreurs
type ErrorData struct {
	Errors []ErrorDetail `json:"errors"`
}

// ErrorResponse représente une réponse d'erreur
type ErrorResponse struct {
	Status  int       `json:"status"`
	Success bool      `json:"success"`
	Data    ErrorData `json:"data"`
}

// SuccessResponse représente une réponse de succès générique
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination décrit une page de résultats
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int64 `json:"itemsPerPage"`
}

// NewPagination calcule le bloc de pagination
func NewPagination(page, limit, total int64) Pagination {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
