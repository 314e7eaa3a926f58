package service

import (
	"errors"

	"stocktrack/pkg/domain/model"
)

// ErrCancelled reports that the user declined a confirmation gate. The
// operation performed no mutation and dispatched no events; callers treat
// it as a clean no-op, not a failure.
var ErrCancelled = errors.New("operation cancelled")

type Event interface{ Type() string }

type EventDispatcher interface{ Dispatch(event Event) error }

// Confirmer is the user-facing yes/no gate asked before destructive or
// ambiguous mutations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// LowStockThreshold flags items whose quantity has dropped to restock range.
const LowStockThreshold = 10

// Summary holds the dashboard counts derived from both collections.
type Summary struct {
	PendingOrders int
	LowStock      int
}

// Summarize derives the dashboard counts from both collections.
func Summarize(items []model.Item, orders []model.Order) Summary {
	summary := Summary{PendingOrders: len(orders)}
	for _, item := range items {
		if item.Qty <= LowStockThreshold {
			summary.LowStock++
		}
	}
	return summary
}
