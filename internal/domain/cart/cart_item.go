package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/shared"
)

// CartItem represents one product line in a customer's cart
// A customer holds at most one item per product; adding the same
// product again accumulates its quantity
type CartItem struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_customer_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_customer_product,priority:2"`
	Quantity   int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a new cart item
func NewCartItem(customerID, productID uuid.UUID, quantity int64) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// AddQuantity accumulates quantity onto an existing item
func (c *CartItem) AddQuantity(quantity int64) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	c.Quantity += quantity
	c.UpdatedAt = time.Now()

	return nil
}

// SetQuantity replaces the item quantity
func (c *CartItem) SetQuantity(quantity int64) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	c.Quantity = quantity
	c.UpdatedAt = time.Now()

	return nil
}

// BelongsTo returns true if the item belongs to the given customer
func (c *CartItem) BelongsTo(customerID uuid.UUID) bool {
	return c.CustomerID == customerID
}

func validateQuantity(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	return nil
}
