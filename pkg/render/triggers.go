// Package render fans mutation events out to the UI refresh callbacks.
package render

import (
	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/domain/service"
)

// Triggers are the named, argument-less refresh callbacks. Each one redraws
// a view from current persisted state, so calling it twice in a row is safe
// and calls may arrive at any time relative to local saves (remote change
// notifications land here too). Nil callbacks are skipped.
type Triggers struct {
	RefreshCategories  func()
	RefreshInventory   func()
	RefreshOrders      func()
	RefreshItemOptions func()
	RefreshSummary     func()
}

// Dispatcher maps domain events to the trigger sets their mutations can
// invalidate. It is the EventDispatcher handed to the domain services.
type Dispatcher struct {
	t Triggers
}

func NewDispatcher(t Triggers) *Dispatcher {
	return &Dispatcher{t: t}
}

var _ service.EventDispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) Dispatch(event service.Event) error {
	switch e := event.(type) {
	case model.ItemSaved, model.ItemRestocked, model.ItemEdited, model.ItemDeleted:
		d.InventoryChanged()
	case model.OrderPlaced:
		// Each affected view refreshes exactly once, summary included.
		if e.StockDeducted {
			d.call(d.t.RefreshCategories)
			d.call(d.t.RefreshInventory)
		}
		d.call(d.t.RefreshItemOptions)
		d.OrdersChanged()
	case model.OrderCompleted:
		d.OrdersChanged()
	}
	return nil
}

// InventoryChanged refreshes every view derived from the inventory
// collection. Also invoked when the remote mirror reports a change.
func (d *Dispatcher) InventoryChanged() {
	d.call(d.t.RefreshCategories)
	d.call(d.t.RefreshInventory)
	d.call(d.t.RefreshItemOptions)
	d.call(d.t.RefreshSummary)
}

// OrdersChanged refreshes the order list and the summary counts.
func (d *Dispatcher) OrdersChanged() {
	d.call(d.t.RefreshOrders)
	d.call(d.t.RefreshSummary)
}

// RefreshAll runs every trigger once, the initial draw at startup.
func (d *Dispatcher) RefreshAll() {
	d.InventoryChanged()
	d.call(d.t.RefreshOrders)
}

func (d *Dispatcher) call(fn func()) {
	if fn != nil {
		fn()
	}
}
