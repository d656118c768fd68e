package constants

// Messages d'erreur HTTP courants
const (
	ErrMethodNotAllowed = "Méthode non autorisée"
	ErrServerError      = "Une erreur est survenue"
	ErrInvalidJSONBody  = "Body JSON invalide"
	ErrNotAuthenticated = "Non authentifié"
	ErrInvalidToken     = "Token invalide ou expiré"
	ErrInvalidID        = "Format d'identifiant invalide"
	ErrAdminNotFound    = "Administrateur introuvable"
	ErrRouteNotFound    = "Route introuvable"
	ErrDuplicateSlug    = "Ce slug est déjà utilisé"
)

// En-têtes HTTP
const (
	HeaderContentType     = "Content-Type"
	HeaderApplicationJSON = "application/json"
)

// CookieName est le cookie portant le token de session admin
const CookieName = "token"
