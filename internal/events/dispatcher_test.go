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

func TestPublishLogsHandlerFailure(t *testing.T) {
	core, observed := observer.New(zap.ErrorLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	var delivered int
	dispatcher.Subscribe(EventBookDeleted, func(context.Context, Event) error {
		return errors.New("queue unavailable")
	})
	dispatcher.Subscribe(EventBookDeleted, func(context.Context, Event) error {
		delivered++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:   "evt-1",
		Type: EventBookDeleted,
	})
	require.NoError(t, err)

	// The failure is surfaced in the log and does not stop later handlers.
	entries := observed.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "evt-1", entries[0].ContextMap()["eventId"])
	assert.Equal(t, 1, delivered)
}

func TestPublishIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)

	var delivered int
	dispatcher.Subscribe(EventBookCreated, func(context.Context, Event) error {
		delivered++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventBookDeleted}))
	assert.Equal(t, 0, delivered)
}
