package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/shared"
)

// NewInsufficientStockError builds the domain error for a product that
// cannot cover a requested quantity, naming the amount still available
func NewInsufficientStockError(productID uuid.UUID, productName string, available int64) *shared.DomainError {
	name := productName
	if name == "" {
		name = productID.String()
	}
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for product %s: %d available", name, available))
}
