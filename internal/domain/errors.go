package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrForbiddenNotAdmin      = errors.New("admin access required")
	ErrForbiddenNotSuperAdmin = errors.New("super admin access required")
	ErrSelfDemotion           = errors.New("cannot remove own admin access")
)

// FieldError describes one rejected field of a write payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found in a payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Field == "" {
			parts[i] = f.Message
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
