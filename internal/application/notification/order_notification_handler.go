package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
)

// OrderNotificationHandler reacts to order lifecycle events
// It is the in-process notification channel: placements and status
// changes are surfaced through structured logs
type OrderNotificationHandler struct {
	logger *zap.Logger
}

// NewOrderNotificationHandler creates a new handler for order events
func NewOrderNotificationHandler(logger *zap.Logger) *OrderNotificationHandler {
	return &OrderNotificationHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderNotificationHandler) EventTypes() []string {
	return []string{
		ordering.EventTypeOrderPlaced,
		ordering.EventTypeOrderStatusChanged,
	}
}

// Handle processes an order event
func (h *OrderNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ordering.OrderPlacedEvent:
		h.logger.Info("order placed",
			zap.String("order_id", e.OrderID.String()),
			zap.String("customer_id", e.CustomerID.String()),
			zap.String("total_amount", e.TotalAmount.String()),
			zap.Int("line_count", e.LineCount),
		)
	case *ordering.OrderStatusChangedEvent:
		h.logger.Info("order status changed",
			zap.String("order_id", e.OrderID.String()),
			zap.String("customer_id", e.CustomerID.String()),
			zap.String("old_status", e.OldStatus.String()),
			zap.String("new_status", e.NewStatus.String()),
		)
	default:
		h.logger.Error("unexpected event type", zap.String("event_type", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}
