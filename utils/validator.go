package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
var colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var validate = newValidator()

// ValidationError représente une erreur de validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implémente l'interface error
func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Les erreurs utilisent le nom JSON des champs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("colorhex", func(fl validator.FieldLevel) bool {
		return colorRegex.MatchString(fl.Field().String())
	})

	return v
}

// ValidateStruct valide une requête selon ses tags `validate`
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return BadRequest("Données invalides")
	}

	details := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := fieldPath(fe)
		details = append(details, ValidationError{Field: field, Message: fieldMessage(field, fe)})
	}
	return Invalid(details)
}

// fieldPath retire le nom de la structure racine ("SignedURLRequest.mediaFiles[0].type" -> "mediaFiles[0].type")
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("le champ %s est requis", field)
	case "email":
		return "format d'email invalide"
	case "min":
		if unit := lengthUnit(fe.Kind()); unit != "" {
			return fmt.Sprintf("le champ %s doit contenir au moins %s %s", field, fe.Param(), unit)
		}
		return fmt.Sprintf("le champ %s doit être supérieur ou égal à %s", field, fe.Param())
	case "max":
		if unit := lengthUnit(fe.Kind()); unit != "" {
			return fmt.Sprintf("le champ %s ne doit pas dépasser %s %s", field, fe.Param(), unit)
		}
		return fmt.Sprintf("le champ %s doit être inférieur ou égal à %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("le champ %s doit valoir l'une des valeurs: %s", field, fe.Param())
	case "slug":
		return fmt.Sprintf("le champ %s doit être en minuscules, chiffres et tirets", field)
	case "colorhex":
		return fmt.Sprintf("le champ %s doit être une couleur hexadécimale (#RGB ou #RRGGBB)", field)
	default:
		return fmt.Sprintf("le champ %s est invalide", field)
	}
}

func lengthUnit(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "caractère(s)"
	case reflect.Slice, reflect.Array, reflect.Map:
		return "élément(s)"
	}
	return ""
}

// ValidateEmail valide un email
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "l'email est requis"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "format d'email invalide"}
	}
	return nil
}

// ValidatePassword valide un mot de passe (4 à 20 caractères)
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "le mot de passe est requis"}
	}
	if len(password) < 4 || len(password) > 20 {
		return ValidationError{Field: "password", Message: "le mot de passe doit contenir entre 4 et 20 caractères"}
	}
	return nil
}
