package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/backoffice-api/internal/domain"
)

// runCollectionContract exercises behavior every driver must share.
func runCollectionContract(t *testing.T, coll Collection[domain.Product]) {
	t.Helper()
	ctx := context.Background()

	t.Run("insert assigns id and timestamps", func(t *testing.T) {
		doc := &domain.Document[domain.Product]{Body: domain.Product{Name: "Lamp", SKU: "LMP", PriceCents: 1000}}
		require.NoError(t, coll.Insert(ctx, doc))
		assert.NotEmpty(t, doc.ID)
		assert.False(t, doc.CreatedAt.IsZero())
		assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)

		got, err := coll.Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.Body, got.Body)
		require.NoError(t, coll.Delete(ctx, doc.ID))
	})

	t.Run("insert duplicate id conflicts", func(t *testing.T) {
		doc := &domain.Document[domain.Product]{ID: "dup", Body: domain.Product{Name: "A", SKU: "A"}}
		require.NoError(t, coll.Insert(ctx, doc))
		t.Cleanup(func() { _ = coll.Delete(ctx, "dup") })

		again := &domain.Document[domain.Product]{ID: "dup", Body: domain.Product{Name: "B", SKU: "B"}}
		require.ErrorIs(t, coll.Insert(ctx, again), ErrConflict)

		got, err := coll.Get(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, "A", got.Body.Name)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := coll.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, coll.Delete(ctx, "missing"), ErrNotFound)
		require.ErrorIs(t, coll.Replace(ctx, &domain.Document[domain.Product]{ID: "missing"}), ErrNotFound)
	})

	t.Run("replace keeps created_at", func(t *testing.T) {
		doc := &domain.Document[domain.Product]{Body: domain.Product{Name: "Old", SKU: "OLD"}}
		require.NoError(t, coll.Insert(ctx, doc))
		t.Cleanup(func() { _ = coll.Delete(ctx, doc.ID) })
		created := doc.CreatedAt

		update := &domain.Document[domain.Product]{ID: doc.ID, Body: domain.Product{Name: "New", SKU: "NEW", Stock: 3}}
		require.NoError(t, coll.Replace(ctx, update))
		assert.True(t, update.CreatedAt.Equal(created))
		assert.False(t, update.UpdatedAt.Before(created))

		got, err := coll.Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Body.Name)
		assert.Equal(t, 3, got.Body.Stock)
	})

	t.Run("list pages in insertion order", func(t *testing.T) {
		for _, id := range []string{"p-a", "p-b", "p-c"} {
			doc := &domain.Document[domain.Product]{ID: id, Body: domain.Product{Name: id, SKU: id}}
			require.NoError(t, coll.Insert(ctx, doc))
		}
		t.Cleanup(func() {
			for _, id := range []string{"p-a", "p-b", "p-c"} {
				_ = coll.Delete(ctx, id)
			}
		})

		first, err := coll.List(ctx, Page{Limit: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, "p-a", first[0].ID)
		assert.Equal(t, "p-b", first[1].ID)

		rest, err := coll.List(ctx, Page{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "p-c", rest[0].ID)

		empty, err := coll.List(ctx, Page{Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("list order ignores id order", func(t *testing.T) {
		ids := []string{"z-3", "m-2", "a-1"}
		for _, id := range ids {
			doc := &domain.Document[domain.Product]{ID: id, Body: domain.Product{Name: id, SKU: id}}
			require.NoError(t, coll.Insert(ctx, doc))
		}
		t.Cleanup(func() {
			for _, id := range ids {
				_ = coll.Delete(ctx, id)
			}
		})

		docs, err := coll.List(ctx, Page{})
		require.NoError(t, err)
		got := make([]string, 0, len(docs))
		for _, doc := range docs {
			got = append(got, doc.ID)
		}
		assert.Equal(t, ids, got)
	})
}
