package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Reservation is one product quantity to reserve or release
type Reservation struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Ledger is the authority over product stock levels
//
// Reserve decrements stock for every line atomically: either all lines
// are reserved or none are, and stock never goes below zero. Under a
// race for the last units exactly one caller wins.
//
// Release returns previously reserved quantities, used when an order
// is cancelled.
type Ledger interface {
	Reserve(ctx context.Context, reservations []Reservation) error
	Release(ctx context.Context, reservations []Reservation) error
}
