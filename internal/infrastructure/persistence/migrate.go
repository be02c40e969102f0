package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/ordering"
)

// AutoMigrate creates or updates the database schema for all aggregates
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.Product{},
		&cart.CartItem{},
		&ordering.Order{},
		&ordering.OrderLine{},
		&identity.Customer{},
	); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}
