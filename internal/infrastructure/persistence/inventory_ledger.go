package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/inventory"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

// GormInventoryLedger implements inventory.Ledger on the products table.
//
// Reservations run inside a single transaction using a guarded decrement:
//
//	UPDATE products SET inventory = inventory - q, version = version + 1
//	WHERE id = ? AND inventory >= q
//
// RowsAffected = 0 means the guard failed, the transaction rolls back and
// no line keeps its decrement. The database serializes the competing
// updates, so when two checkouts race for the last units exactly one
// guard passes.
//
// Both decrement and release bump the aggregate version so that any
// product copy loaded before the ledger moved stock fails its optimistic
// lock on save instead of writing the pre-reservation inventory back.
type GormInventoryLedger struct {
	db         *gorm.DB
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewGormInventoryLedger creates a new inventory ledger
func NewGormInventoryLedger(db *gorm.DB, logger *zap.Logger, cfg config.InventoryConfig) *GormInventoryLedger {
	return &GormInventoryLedger{
		db:         db,
		logger:     logger,
		maxRetries: cfg.ReserveMaxRetries,
		retryDelay: cfg.ReserveRetryDelay,
	}
}

// Reserve atomically decrements stock for every reservation line
func (l *GormInventoryLedger) Reserve(ctx context.Context, reservations []inventory.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	// Deterministic ordering keeps concurrent multi-line reservations
	// from deadlocking each other
	sorted := make([]inventory.Reservation, len(reservations))
	copy(sorted, reservations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProductID.String() < sorted[j].ProductID.String()
	})

	var lastErr error
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			l.logger.Warn("retrying stock reservation",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.retryDelay):
			}
		}

		lastErr = l.reserveOnce(ctx, sorted)
		if lastErr == nil {
			return nil
		}

		// Domain outcomes are final; only transient database errors retry
		var domainErr *shared.DomainError
		if errors.As(lastErr, &domainErr) {
			return lastErr
		}
	}

	return lastErr
}

func (l *GormInventoryLedger) reserveOnce(ctx context.Context, reservations []inventory.Reservation) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range reservations {
			if res.Quantity < 1 {
				return shared.NewDomainError("INVALID_INPUT", "Reservation quantity must be at least 1")
			}

			result := tx.Model(&catalog.Product{}).
				Where("id = ? AND inventory >= ?", res.ProductID, res.Quantity).
				Updates(map[string]interface{}{
					"inventory":  gorm.Expr("inventory - ?", res.Quantity),
					"version":    gorm.Expr("version + 1"),
					"updated_at": time.Now(),
				})

			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Guard failed: distinguish a missing product from thin stock
				var product catalog.Product
				if err := tx.Select("name", "inventory").First(&product, "id = ?", res.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return shared.ErrNotFound
					}
					return err
				}
				return inventory.NewInsufficientStockError(res.ProductID, product.Name, product.Inventory)
			}
		}
		return nil
	})
}

// Release returns previously reserved quantities to stock
// Lines whose product no longer exists are skipped
func (l *GormInventoryLedger) Release(ctx context.Context, reservations []inventory.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range reservations {
			if res.Quantity < 1 {
				continue
			}

			result := tx.Model(&catalog.Product{}).
				Where("id = ?", res.ProductID).
				Updates(map[string]interface{}{
					"inventory":  gorm.Expr("inventory + ?", res.Quantity),
					"version":    gorm.Expr("version + 1"),
					"updated_at": time.Now(),
				})

			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				l.logger.Warn("released stock for missing product",
					zap.String("product_id", res.ProductID.String()),
					zap.Int64("quantity", res.Quantity),
				)
			}
		}
		return nil
	})
}

// Ensure GormInventoryLedger implements Ledger
var _ inventory.Ledger = (*GormInventoryLedger)(nil)
