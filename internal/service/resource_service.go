package service

import (
	"context"
	"errors"

	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/events"
	"github.com/spec-kit/backoffice-api/internal/repository"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

// ResourceService implements CRUD over one document collection.
type ResourceService[T domain.Body[T]] struct {
	label  string
	store  repository.Collection[T]
	events events.Dispatcher
}

// NewResourceService builds the service. label names a single document in messages, e.g. "order".
func NewResourceService[T domain.Body[T]](label string, store repository.Collection[T], dispatcher events.Dispatcher) *ResourceService[T] {
	return &ResourceService[T]{label: label, store: store, events: dispatcher}
}

// Create validates and stores a new document.
func (s *ResourceService[T]) Create(ctx context.Context, actor auth.Identity, body T) (*domain.Document[T], error) {
	body = body.Normalize()
	if err := body.Validate(); err != nil {
		return nil, validationError(s.label, err)
	}

	doc := &domain.Document[T]{Body: body}
	if err := s.store.Insert(ctx, doc); err != nil {
		return nil, s.mapError(err, doc.ID)
	}
	s.publish(ctx, events.EventDocumentCreated, actor, doc.ID)
	return doc, nil
}

// Get fetches a document by id.
func (s *ResourceService[T]) Get(ctx context.Context, id string) (*domain.Document[T], error) {
	if id == "" {
		return nil, apperrors.NewNotFound(s.label, nil)
	}
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id)
	}
	return doc, nil
}

// List returns one page of documents in creation order.
func (s *ResourceService[T]) List(ctx context.Context, page repository.Page) ([]domain.Document[T], error) {
	docs, err := s.store.List(ctx, page.Normalize())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return docs, nil
}

// Update replaces the body of an existing document.
func (s *ResourceService[T]) Update(ctx context.Context, actor auth.Identity, id string, body T) (*domain.Document[T], error) {
	if id == "" {
		return nil, apperrors.NewNotFound(s.label, nil)
	}
	body = body.Normalize()
	if err := body.Validate(); err != nil {
		return nil, validationError(s.label, err)
	}

	doc := &domain.Document[T]{ID: id, Body: body}
	if err := s.store.Replace(ctx, doc); err != nil {
		return nil, s.mapError(err, id)
	}
	s.publish(ctx, events.EventDocumentUpdated, actor, id)
	return doc, nil
}

// Delete removes a document.
func (s *ResourceService[T]) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if id == "" {
		return apperrors.NewNotFound(s.label, nil)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapError(err, id)
	}
	s.publish(ctx, events.EventDocumentDeleted, actor, id)
	return nil
}

func (s *ResourceService[T]) mapError(err error, id string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(s.label, map[string]any{"id": id})
	case errors.Is(err, repository.ErrConflict):
		return apperrors.NewConflict(s.label+" already exists", map[string]any{"id": id})
	default:
		return apperrors.MapError(err)
	}
}

func (s *ResourceService[T]) publish(ctx context.Context, eventType events.EventType, actor auth.Identity, id string) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, events.Event{
		Type:       eventType,
		Actor:      actor.String(),
		Collection: s.store.Name(),
		DocumentID: id,
	})
}

func validationError(label string, err error) error {
	var fieldErrs domain.FieldErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid "+label, fieldErrs.Details())
	}
	return apperrors.NewValidationError(err.Error(), nil)
}
