package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/emzola/shelfwise/internal/validator"
)

var (
	ErrFailedValidation = errors.New("failed validation")
	ErrRecordNotFound   = errors.New("record not found")
	ErrEditConflict     = errors.New("edit conflict")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrNotPermitted     = errors.New("not permitted")
	ErrSelfFollow       = errors.New("users cannot follow themselves")
)

// ValidationError carries the field errors of a rejected input. It matches
// ErrFailedValidation with errors.Is.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Errors[k])
	}
	return "failed validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation converts the errors collected by v into a ValidationError.
func failedValidation(v *validator.Validator) error {
	return &ValidationError{Errors: v.Errors}
}
