// Package validator collects field-level validation errors for service inputs.
package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	playground "github.com/go-playground/validator/v10"
)

var (
	structValidator *playground.Validate
	structOnce      sync.Once
)

// Validator holds a map of validation errors keyed by field name.
type Validator struct {
	Errors map[string]string
}

// New creates a new Validator instance with an empty errors map.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the errors map doesn't contain any entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error message to the map (so long as no entry already exists for
// the given key).
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error message to the map only if a validation check is not 'ok'.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// CheckStruct runs the `validate` struct tags of s and records every failing field.
func (v *Validator) CheckStruct(s any) {
	err := validate().Struct(s)
	if err == nil {
		return
	}
	var fieldErrors playground.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.AddError("input", err.Error())
		return
	}
	for _, fe := range fieldErrors {
		v.AddError(fieldKey(fe.StructField()), message(fe))
	}
}

// PermittedValue returns true if a specific value is in a list of permitted values.
func PermittedValue[T comparable](value T, permittedValues ...T) bool {
	return slices.Contains(permittedValues, value)
}

// Unique returns true if all values in a slice are unique.
func Unique[T comparable](values []T) bool {
	uniqueValues := make(map[T]bool)
	for _, value := range values {
		uniqueValues[value] = true
	}
	return len(values) == len(uniqueValues)
}

func validate() *playground.Validate {
	structOnce.Do(func() {
		structValidator = playground.New(playground.WithRequiredStructEnabled())
	})
	return structValidator
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must not be more than %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "unique":
		return "must not contain duplicate values"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// fieldKey converts a Go field name such as "ReviewerID" into "reviewer_id".
func fieldKey(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
