package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no transition leaves this status
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusShipping || target == OrderStatusCancelled
	case OrderStatusShipping:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// OrderLine is a line item in an order
// Product name and unit price are snapshots taken at placement time,
// so later catalog edits or deletes never change a placed order
type OrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates a new order line with price and name snapshots
func NewOrderLine(orderID, productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Subtotal:    unitPrice.MultiplyInt(quantity).Amount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (l *OrderLine) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.UnitPrice)
}

// GetSubtotalMoney returns the subtotal as Money value object
func (l *OrderLine) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.Subtotal)
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
	PaymentOnline         PaymentMethod = "online"
)

// IsValid checks if the payment method is known
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCashOnDelivery || p == PaymentOnline
}

// String returns the string representation of PaymentMethod
func (p PaymentMethod) String() string {
	return string(p)
}

// Order represents a customer order aggregate root
// It manages the lifecycle of an order from placement to completion
type Order struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Lines         []OrderLine     `gorm:"foreignKey:OrderID"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash-on-delivery'"`
	Note          string          `gorm:"type:text"`
	CancelReason  string          `gorm:"type:varchar(200)"`
	OrderedAt     time.Time       `gorm:"not null"`
	ConfirmedAt   *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order for a customer
func NewOrder(customerID uuid.UUID, paymentMethod PaymentMethod, note string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID cannot be empty")
	}
	if paymentMethod == "" {
		paymentMethod = PaymentCashOnDelivery
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payment method: "+paymentMethod.String())
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Lines:             make([]OrderLine, 0),
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusPending,
		PaymentMethod:     paymentMethod,
		Note:              note,
		OrderedAt:         time.Now(),
	}, nil
}

// AddLine adds a line to the order and recalculates the total
// Lines can only be added while the order is pending
func (o *Order) AddLine(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_TRANSITION", "Lines can only be added to a pending order")
	}

	line, err := NewOrderLine(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return nil
}

// Place finalizes a newly built order
// An order must contain at least one line to be placed
func (o *Order) Place() error {
	if len(o.Lines) == 0 {
		return shared.ErrEmptyOrder
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// TransitionTo moves the order to the target status
// Returns INVALID_TRANSITION if the state machine forbids the move
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}

	from := o.Status
	o.Status = target

	now := time.Now()
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusShipping:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCompleted:
		o.CompletedAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}

	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// Cancel moves the order to cancelled with an optional reason
func (o *Order) Cancel(reason string) error {
	if err := o.TransitionTo(OrderStatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// IsCancellation reports whether moving to target means cancelling,
// which is the only transition that releases reserved inventory
func (o *Order) IsCancellation(target OrderStatus) bool {
	return target == OrderStatusCancelled
}

// BelongsTo returns true if the order belongs to the given customer
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID == customerID
}

// GetTotalMoney returns the order total as Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal)
	}
	o.TotalAmount = total
}
