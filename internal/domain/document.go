package domain

import (
	"sort"
	"strings"
	"time"
)

// Document wraps a stored body with its collection metadata.
type Document[T any] struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Body      T
}

// Body is implemented by every type stored in a collection.
type Body[T any] interface {
	Validate() error
	Normalize() T
}

// FieldErrors maps field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details converts the errors into a response payload.
func (e FieldErrors) Details() map[string]any {
	out := make(map[string]any, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

func (e FieldErrors) errOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
