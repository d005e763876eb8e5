package dto

import (
	"time"

	"github.com/spec-kit/backoffice-api/internal/domain"
)

// DocumentResponse renders a stored document.
type DocumentResponse[T any] struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Attributes T         `json:"attributes"`
}

// PageMeta describes the page returned by a list endpoint.
type PageMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// NewDocumentResponse converts a domain document.
func NewDocumentResponse[T any](doc *domain.Document[T]) DocumentResponse[T] {
	return DocumentResponse[T]{
		ID:         doc.ID,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		Attributes: doc.Body,
	}
}
