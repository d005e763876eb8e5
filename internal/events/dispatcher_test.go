package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var calls []string
	d.Subscribe(EventDocumentCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.DocumentID)
		return nil
	})
	d.Subscribe(EventDocumentCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.DocumentID)
		return nil
	})
	d.Subscribe(EventDocumentDeleted, func(context.Context, Event) error {
		calls = append(calls, "deleted")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventDocumentCreated, DocumentID: "o-1"}))
	assert.Equal(t, []string{"first:o-1", "second:o-1"}, calls)
}

func TestPublishFillsIDAndTimestamp(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var got Event
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = e
		return nil
	})
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLoginSucceeded, Actor: "bob"}))
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
	assert.Equal(t, "bob", got.Actor)
}

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	reached := false
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error { return errors.New("boom") })
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLoginFailed}))
	assert.True(t, reached)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}
