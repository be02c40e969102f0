package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return nil
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func testEvent(eventType string) shared.DomainEvent {
	ev := shared.NewBaseDomainEvent(eventType, "Order", uuid.New())
	return &ev
}

func TestInMemoryEventBus_RoutesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	defer bus.Stop(ctx)

	placed := &recordingHandler{types: []string{"OrderPlaced"}}
	all := &recordingHandler{}
	bus.Subscribe(placed)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(ctx, testEvent("OrderPlaced")))
	require.NoError(t, bus.Publish(ctx, testEvent("OrderCancelled")))

	assert.Len(t, placed.received, 1)
	assert.Len(t, all.received, 2)
}

func TestInMemoryEventBus_DropsEventsWhenNotRunning(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	handler := &recordingHandler{types: []string{"OrderPlaced"}}
	bus.Subscribe(handler)

	// Not started yet
	require.NoError(t, bus.Publish(ctx, testEvent("OrderPlaced")))
	assert.Empty(t, handler.received)

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, testEvent("OrderPlaced")))
	assert.Len(t, handler.received, 1)

	// Stopped again
	require.NoError(t, bus.Stop(ctx))
	require.NoError(t, bus.Publish(ctx, testEvent("OrderPlaced")))
	assert.Len(t, handler.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	defer bus.Stop(ctx)

	handler := &recordingHandler{types: []string{"OrderPlaced"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(ctx, testEvent("OrderPlaced")))
	assert.Empty(t, handler.received)
}
