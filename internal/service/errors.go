package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osa911/portfolio-api/internal/validation"
)

// Sentinel errors for service layer
var (
	ErrValidation = errors.New("validation error")
	ErrRecaptcha  = errors.New("recaptcha verification failed")
)

// ValidationError lists every field that failed validation. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Violations []validation.FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
