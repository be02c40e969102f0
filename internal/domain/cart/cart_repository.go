package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)

	// FindByCustomer returns all cart items for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]CartItem, error)

	// FindByCustomerAndProduct finds the customer's item for a product, if any
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*CartItem, error)

	// Save persists a cart item (insert or update)
	Save(ctx context.Context, item *CartItem) error

	// Delete removes a cart item by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCustomer removes all cart items for a customer
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error

	// DeleteByProduct removes all cart items referencing a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
