package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/domain/service"
)

func setupOrders(t *testing.T, store *mockStore) (service.OrderService, *mockConfirmer, *mockEventDispatcher) {
	confirmer := &mockConfirmer{answer: true}
	dispatcher := &mockEventDispatcher{}
	svc := service.NewOrderService(store, store, confirmer, dispatcher)
	return svc, confirmer, dispatcher
}

func TestPlace_DeductsStock(t *testing.T) {
	store := &mockStore{items: []model.Item{{Name: "Flour", Category: "Baking", Qty: 10, Supplier: "Acme"}}}
	svc, confirmer, dispatcher := setupOrders(t, store)

	deducted, err := svc.Place("Maya", "Flour", 4, "2026-09-15")

	require.NoError(t, err)
	assert.True(t, deducted)
	assert.Equal(t, 6, store.items[0].Qty)
	assert.Empty(t, confirmer.prompts, "sufficient stock asks no questions")

	require.Len(t, store.orders, 1)
	assert.Equal(t, model.Order{Customer: "Maya", Item: "Flour", Qty: 4, Deadline: "2026-09-15"}, store.orders[0])

	require.Len(t, dispatcher.events, 1)
	placed, ok := dispatcher.events[0].(model.OrderPlaced)
	require.True(t, ok)
	assert.True(t, placed.StockDeducted)
}

func TestPlace_InsufficientStock(t *testing.T) {
	t.Run("confirmed order drives stock negative, never clamped", func(t *testing.T) {
		store := &mockStore{items: []model.Item{{Name: "Flour", Qty: 3}}}
		svc, confirmer, _ := setupOrders(t, store)

		deducted, err := svc.Place("Maya", "Flour", 5, "2026-09-15")

		require.NoError(t, err)
		assert.True(t, deducted)
		assert.Equal(t, -2, store.items[0].Qty)
		require.Len(t, confirmer.prompts, 1)
		assert.Contains(t, confirmer.prompts[0], "have 3")
	})

	t.Run("declined confirmation mutates nothing", func(t *testing.T) {
		store := &mockStore{items: []model.Item{{Name: "Flour", Qty: 3}}}
		svc, confirmer, dispatcher := setupOrders(t, store)
		confirmer.answer = false

		_, err := svc.Place("Maya", "Flour", 5, "2026-09-15")

		assert.ErrorIs(t, err, service.ErrCancelled)
		assert.Equal(t, 3, store.items[0].Qty)
		assert.Empty(t, store.orders)
		assert.Zero(t, store.inventorySaves)
		assert.Zero(t, store.orderSaves)
		assert.Empty(t, dispatcher.events)
	})
}

func TestPlace_UnknownItem(t *testing.T) {
	t.Run("confirmed order has no inventory side effect", func(t *testing.T) {
		store := &mockStore{items: []model.Item{{Name: "Flour", Qty: 3}}}
		svc, _, dispatcher := setupOrders(t, store)

		deducted, err := svc.Place("Maya", "Bread", 2, "2026-09-15")

		require.NoError(t, err)
		assert.False(t, deducted)
		assert.Equal(t, []model.Item{{Name: "Flour", Qty: 3}}, store.items)
		assert.Zero(t, store.inventorySaves)

		require.Len(t, store.orders, 1)
		assert.Equal(t, "Bread", store.orders[0].Item)

		placed, ok := dispatcher.events[0].(model.OrderPlaced)
		require.True(t, ok)
		assert.False(t, placed.StockDeducted)
	})

	t.Run("lookup is exact, not case-folded", func(t *testing.T) {
		// Deliberate asymmetry with the inventory operations.
		store := &mockStore{items: []model.Item{{Name: "Flour", Qty: 3}}}
		svc, confirmer, _ := setupOrders(t, store)

		deducted, err := svc.Place("Maya", "flour", 1, "2026-09-15")

		require.NoError(t, err)
		assert.False(t, deducted)
		assert.Equal(t, 3, store.items[0].Qty)
		require.Len(t, confirmer.prompts, 1)
		assert.Contains(t, confirmer.prompts[0], "not found")
	})

	t.Run("declined confirmation records nothing", func(t *testing.T) {
		store := &mockStore{}
		svc, confirmer, dispatcher := setupOrders(t, store)
		confirmer.answer = false

		_, err := svc.Place("Maya", "Bread", 2, "2026-09-15")

		assert.ErrorIs(t, err, service.ErrCancelled)
		assert.Empty(t, store.orders)
		assert.Empty(t, dispatcher.events)
	})
}

func TestComplete(t *testing.T) {
	orders := []model.Order{
		{Customer: "Maya", Item: "Flour", Qty: 1, Deadline: "2026-09-01"},
		{Customer: "Iris", Item: "Sugar", Qty: 2, Deadline: "2026-09-02"},
		{Customer: "Noor", Item: "Yeast", Qty: 3, Deadline: "2026-09-03"},
	}

	t.Run("removes exactly the addressed order", func(t *testing.T) {
		store := &mockStore{orders: append([]model.Order(nil), orders...)}
		svc, _, dispatcher := setupOrders(t, store)

		require.NoError(t, svc.Complete(1))

		require.Len(t, store.orders, 2)
		assert.Equal(t, "Maya", store.orders[0].Customer)
		assert.Equal(t, "Noor", store.orders[1].Customer)

		completed, ok := dispatcher.events[0].(model.OrderCompleted)
		require.True(t, ok)
		assert.Equal(t, 1, completed.Index)
	})

	t.Run("declined confirmation keeps the order", func(t *testing.T) {
		store := &mockStore{orders: append([]model.Order(nil), orders...)}
		svc, confirmer, dispatcher := setupOrders(t, store)
		confirmer.answer = false

		err := svc.Complete(0)

		assert.ErrorIs(t, err, service.ErrCancelled)
		assert.Len(t, store.orders, 3)
		assert.Zero(t, store.orderSaves)
		assert.Empty(t, dispatcher.events)
	})

	t.Run("out of range is reported before any confirmation", func(t *testing.T) {
		store := &mockStore{orders: append([]model.Order(nil), orders...)}
		svc, confirmer, _ := setupOrders(t, store)

		assert.ErrorIs(t, svc.Complete(3), model.ErrOrderNotFound)
		assert.ErrorIs(t, svc.Complete(-1), model.ErrOrderNotFound)
		assert.Empty(t, confirmer.prompts)
	})
}

func TestSummary(t *testing.T) {
	store := &mockStore{
		items: []model.Item{
			{Name: "Flour", Qty: 25},
			{Name: "Sugar", Qty: 10},
			{Name: "Yeast", Qty: -1},
		},
		orders: []model.Order{{Customer: "Maya"}, {Customer: "Iris"}},
	}
	svc, _, _ := setupOrders(t, store)

	summary, err := svc.Summary()

	require.NoError(t, err)
	assert.Equal(t, 2, summary.PendingOrders)
	assert.Equal(t, 2, summary.LowStock, "threshold is inclusive at 10")
}
