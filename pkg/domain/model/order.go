package model

import "errors"

var ErrOrderNotFound = errors.New("order not found")

// Order is a customer request for a quantity of one item. Orders carry no
// identifier of their own: they are addressed purely by position in the
// collection, and completing one removes it outright.
type Order struct {
	Customer string `json:"customer"`
	Item     string `json:"item"`
	Qty      int    `json:"qty"`
	Deadline string `json:"deadline"`
}

// OrderStore persists the order collection as a whole, with the same
// missing-means-empty contract as InventoryStore.
type OrderStore interface {
	LoadOrders() ([]Order, error)
	SaveOrders(orders []Order) error
}
