package tests

import (
	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/domain/service"
)

var (
	_ model.InventoryStore = &mockStore{}
	_ model.OrderStore     = &mockStore{}
)

// mockStore holds both collections in memory and hands out copies, like the
// real stores decode fresh documents on every load.
type mockStore struct {
	items  []model.Item
	orders []model.Order

	inventorySaves int
	orderSaves     int
}

func (m *mockStore) LoadInventory() ([]model.Item, error) {
	return append([]model.Item(nil), m.items...), nil
}

func (m *mockStore) SaveInventory(items []model.Item) error {
	m.items = append([]model.Item(nil), items...)
	m.inventorySaves++
	return nil
}

func (m *mockStore) LoadOrders() ([]model.Order, error) {
	return append([]model.Order(nil), m.orders...), nil
}

func (m *mockStore) SaveOrders(orders []model.Order) error {
	m.orders = append([]model.Order(nil), orders...)
	m.orderSaves++
	return nil
}

var _ service.Confirmer = &mockConfirmer{}

type mockConfirmer struct {
	answer  bool
	prompts []string
}

func (m *mockConfirmer) Confirm(prompt string) bool {
	m.prompts = append(m.prompts, prompt)
	return m.answer
}

var _ service.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}
