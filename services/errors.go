package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/foodtruck-app/models"
)

var (
	// ErrEmptyCart is returned by checkout when the user has no cart
	// lines belonging to the requested truck.
	ErrEmptyCart = errors.New("no items from this truck in cart")

	// ErrForbidden is returned when the actor lacks the capability over
	// the target resource (wrong owner, wrong customer).
	ErrForbidden = errors.New("access denied")
)

// ItemUnavailableError rejects a cart line whose menu item is not
// available for ordering.
type ItemUnavailableError struct {
	ItemID uint
	Name   string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("item %q is not available", e.Name)
}

// InsufficientStockError rejects a requested quantity above what the
// inventory ledger currently holds.
type InsufficientStockError struct {
	ItemID    uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// InvalidTransitionError rejects an order status change the transition
// table does not allow.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
