package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tornado/portal/internal/domain/shared"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New(), uuid.New())
	return &e
}

func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"quote_sent"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newEvent("quote_sent")))
	require.NoError(t, bus.Publish(context.Background(), newEvent("order_created")))

	require.Len(t, handler.received, 1)
	assert.Equal(t, "quote_sent", handler.received[0].EventType())
}

func TestWildcardHandlerReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newEvent("quote_sent"), newEvent("order_created")))
	assert.Len(t, handler.received, 2)
}

func TestFailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"quote_sent"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"quote_sent"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newEvent("quote_sent")))
	assert.Len(t, healthy.received, 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"quote_sent"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newEvent("quote_sent")))
	assert.Empty(t, handler.received)
}
