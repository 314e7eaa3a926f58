package service

import (
	"fmt"

	"stocktrack/pkg/domain/model"
)

type OrderService interface {
	List() ([]model.Order, error)
	// Place records an order and deducts stock when the item exists.
	// The returned flag reports whether any stock was deducted.
	Place(customer, itemName string, qty int, deadline string) (bool, error)
	Complete(index int) error
	Summary() (Summary, error)
}

func NewOrderService(inventory model.InventoryStore, orders model.OrderStore, confirmer Confirmer, dispatcher EventDispatcher) OrderService {
	return &orderService{
		inventory:  inventory,
		orders:     orders,
		confirmer:  confirmer,
		dispatcher: dispatcher,
	}
}

type orderService struct {
	inventory  model.InventoryStore
	orders     model.OrderStore
	confirmer  Confirmer
	dispatcher EventDispatcher
}

func (s *orderService) List() ([]model.Order, error) {
	return s.orders.LoadOrders()
}

// Place looks the item up by exact name. Inventory identity is case-folded
// everywhere else; order placement deliberately is not.
func (s *orderService) Place(customer, itemName string, qty int, deadline string) (bool, error) {
	items, err := s.inventory.LoadInventory()
	if err != nil {
		return false, err
	}

	target := -1
	for i := range items {
		if items[i].Name == itemName {
			target = i
			break
		}
	}

	if target < 0 {
		if !s.confirmer.Confirm("Item not found in inventory. Add order anyway? (no stock will be deducted)") {
			return false, ErrCancelled
		}
		if err := s.appendOrder(customer, itemName, qty, deadline); err != nil {
			return false, err
		}
		_ = s.dispatcher.Dispatch(model.OrderPlaced{Customer: customer, Item: itemName, Qty: qty, StockDeducted: false})
		return false, nil
	}

	if items[target].Qty < qty {
		if !s.confirmer.Confirm(fmt.Sprintf("Not enough stock (have %d). Proceed and allow negative stock?", items[target].Qty)) {
			return false, ErrCancelled
		}
	}

	items[target].Qty -= qty
	if err := s.inventory.SaveInventory(items); err != nil {
		return false, err
	}
	if err := s.appendOrder(customer, itemName, qty, deadline); err != nil {
		return false, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{Customer: customer, Item: itemName, Qty: qty, StockDeducted: true})
	return true, nil
}

// Complete removes the order at the given position after confirmation.
// Deducted stock is not restored: completion is deletion, not a status
// change.
func (s *orderService) Complete(index int) error {
	orders, err := s.orders.LoadOrders()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(orders) {
		return model.ErrOrderNotFound
	}

	if !s.confirmer.Confirm("Mark this order as done and remove it?") {
		return ErrCancelled
	}

	orders = append(orders[:index], orders[index+1:]...)
	if err := s.orders.SaveOrders(orders); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.OrderCompleted{Index: index})
	return nil
}

// Summary derives the dashboard counts; it mutates nothing.
func (s *orderService) Summary() (Summary, error) {
	orders, err := s.orders.LoadOrders()
	if err != nil {
		return Summary{}, err
	}
	items, err := s.inventory.LoadInventory()
	if err != nil {
		return Summary{}, err
	}

	return Summarize(items, orders), nil
}

func (s *orderService) appendOrder(customer, itemName string, qty int, deadline string) error {
	orders, err := s.orders.LoadOrders()
	if err != nil {
		return err
	}
	orders = append(orders, model.Order{Customer: customer, Item: itemName, Qty: qty, Deadline: deadline})
	return s.orders.SaveOrders(orders)
}
