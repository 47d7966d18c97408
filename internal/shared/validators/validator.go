package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagTagName names the rule a log tag must satisfy to be used as a file name.
const TagTagName = "tagname"

// tagNamePattern allows plain file-name-safe tags: no separators, no leading dot.
var tagNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance with the service's custom rules registered.
func New() *Validate {
	validate := validator.New()
	_ = validate.RegisterValidation(TagTagName, func(fl validator.FieldLevel) bool {
		return IsTagName(fl.Field().String())
	})
	return validate
}

// IsTagName reports whether s can be used as a tag (and so as a log file base name).
func IsTagName(s string) bool {
	return tagNamePattern.MatchString(s)
}
