package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/ordering"
)

// OrderItemRequest is one product line of a checkout request
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents a checkout request
type PlaceOrderRequest struct {
	CustomerID    uuid.UUID          `json:"customer_id" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"dive"`
	Note          string             `json:"note" binding:"max=1000"`
	PaymentMethod string             `json:"payment_method" binding:"omitempty,oneof=cash-on-delivery online"`
}

// UpdateStatusRequest represents a request to move an order through its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=200"`
}

// OrderListFilter carries pagination and filtering options for order listings
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// OrderLineResponse is one line of an order as returned to clients
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	Lines         []OrderLineResponse `json:"lines"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	Note          string              `json:"note,omitempty"`
	CancelReason  string              `json:"cancel_reason,omitempty"`
	OrderedAt     time.Time           `json:"ordered_at"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt     *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
	Version       int                 `json:"version"`
}

// CustomerSummary is the owning customer section of a detailed order view
type CustomerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Address  string    `json:"address,omitempty"`
}

// OrderDetailResponse composes an order with its owning customer
// Customer is nil when the customer record could not be loaded
type OrderDetailResponse struct {
	Order    OrderResponse    `json:"order"`
	Customer *CustomerSummary `json:"customer,omitempty"`
}

// ToOrderResponse converts a domain order to an API response
func ToOrderResponse(order *ordering.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		}
	}

	return OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Lines:         lines,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status.String(),
		PaymentMethod: order.PaymentMethod.String(),
		Note:          order.Note,
		CancelReason:  order.CancelReason,
		OrderedAt:     order.OrderedAt,
		ConfirmedAt:   order.ConfirmedAt,
		ShippedAt:     order.ShippedAt,
		DeliveredAt:   order.DeliveredAt,
		CompletedAt:   order.CompletedAt,
		CancelledAt:   order.CancelledAt,
		Version:       order.GetVersion(),
	}
}

func toCustomerSummary(customer *identity.Customer) *CustomerSummary {
	return &CustomerSummary{
		ID:       customer.ID,
		Username: customer.Username,
		Name:     customer.Name,
		Email:    customer.Email,
		Phone:    customer.Phone,
		Address:  customer.Address,
	}
}
