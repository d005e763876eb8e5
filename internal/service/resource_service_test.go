package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/events"
	"github.com/spec-kit/backoffice-api/internal/repository"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

func newOrderService(t *testing.T) (*ResourceService[domain.Order], *recordedEvents) {
	t.Helper()
	dispatcher := events.NewInMemoryDispatcher(nil)
	recorded := &recordedEvents{}
	recorded.subscribe(dispatcher)
	store := repository.NewMemoryCollection[domain.Order](repository.CollectionOrders)
	return NewResourceService[domain.Order]("order", store, dispatcher), recorded
}

func validOrder() domain.Order {
	return domain.Order{
		Customer: "ACME",
		Items:    []domain.OrderItem{{ProductID: "p-1", Quantity: 3, UnitPriceCents: 500}},
	}
}

func TestResourceServiceLifecycle(t *testing.T) {
	svc, recorded := newOrderService(t)
	ctx := context.Background()
	actor := auth.Identity("bob")

	created, err := svc.Create(ctx, actor, validOrder())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1500), created.Body.TotalCents)
	assert.Equal(t, domain.OrderStatusPending, created.Body.Status)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Body, got.Body)

	update := validOrder()
	update.Status = domain.OrderStatusShipped
	updated, err := svc.Update(ctx, actor, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Body.Status)

	list, err := svc.List(ctx, repository.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, actor, created.ID))
	_, err = svc.Get(ctx, created.ID)
	requireStatus(t, err, http.StatusNotFound)

	assert.Equal(t, []events.EventType{
		events.EventDocumentCreated,
		events.EventDocumentUpdated,
		events.EventDocumentDeleted,
	}, recorded.types())
	for _, e := range recorded.events {
		assert.Equal(t, "bob", e.Actor)
		assert.Equal(t, repository.CollectionOrders, e.Collection)
		assert.Equal(t, created.ID, e.DocumentID)
	}
}

func TestResourceServiceValidation(t *testing.T) {
	svc, recorded := newOrderService(t)

	_, err := svc.Create(context.Background(), "bob", domain.Order{})
	requireStatus(t, err, http.StatusBadRequest)

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Details, "customer")
	assert.Contains(t, de.Details, "items")
	assert.Empty(t, recorded.types())
}

func TestResourceServiceMissingDocuments(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "")
	requireStatus(t, err, http.StatusNotFound)
	_, err = svc.Update(ctx, "bob", "missing", validOrder())
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, svc.Delete(ctx, "bob", "missing"), http.StatusNotFound)
}

func TestResourceServiceWithoutDispatcher(t *testing.T) {
	store := repository.NewMemoryCollection[domain.Product](repository.CollectionProducts)
	svc := NewResourceService[domain.Product]("product", store, nil)

	doc, err := svc.Create(context.Background(), "bob", domain.Product{Name: "Desk", SKU: "dsk"})
	require.NoError(t, err)
	assert.Equal(t, "DSK", doc.Body.SKU)
}
