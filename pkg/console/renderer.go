package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/domain/service"
	"stocktrack/pkg/render"
)

// Renderer draws the read-only views straight from the persisted
// collections, so every refresh shows current state regardless of which
// operation saved it.
type Renderer struct {
	out       io.Writer
	inventory model.InventoryStore
	orders    model.OrderStore

	// category filters the inventory view; empty means all items.
	category string
}

func NewRenderer(out io.Writer, inventory model.InventoryStore, orders model.OrderStore) *Renderer {
	return &Renderer{out: out, inventory: inventory, orders: orders}
}

// Triggers binds the render callbacks to this renderer's views. Each one
// redraws from current persisted state, so repeated calls are harmless.
func (r *Renderer) Triggers() render.Triggers {
	return render.Triggers{
		RefreshCategories:  r.renderCategories,
		RefreshInventory:   r.renderInventory,
		RefreshOrders:      r.renderOrders,
		RefreshItemOptions: r.renderItemOptions,
		RefreshSummary:     r.renderSummary,
	}
}

func (r *Renderer) SetCategory(category string) {
	r.category = category
}

func (r *Renderer) renderCategories() {
	items, err := r.inventory.LoadInventory()
	if err != nil {
		r.reportError(err)
		return
	}

	seen := make(map[string]bool)
	var categories []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)

	line := "Categories: All Items"
	if len(categories) > 0 {
		line += ", " + strings.Join(categories, ", ")
	}
	fmt.Fprintln(r.out, line)
}

func (r *Renderer) renderInventory() {
	items, err := r.inventory.LoadInventory()
	if err != nil {
		r.reportError(err)
		return
	}

	if r.category != "" {
		fmt.Fprintf(r.out, "-- %s --\n", r.category)
		filtered := items[:0]
		for _, item := range items {
			if item.Category == r.category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	} else {
		fmt.Fprintln(r.out, "-- All Items --")
	}

	if len(items) == 0 {
		fmt.Fprintln(r.out, "No items found.")
		return
	}
	for _, item := range items {
		marker := ""
		if item.Qty <= service.LowStockThreshold {
			marker = " [LOW]"
		}
		fmt.Fprintf(r.out, "%s | Category: %s | Supplier: %s | Qty: %d%s\n",
			item.Name, item.Category, item.Supplier, item.Qty, marker)
	}
}

func (r *Renderer) renderOrders() {
	orders, err := r.orders.LoadOrders()
	if err != nil {
		r.reportError(err)
		return
	}

	if len(orders) == 0 {
		fmt.Fprintln(r.out, "No orders yet.")
		return
	}
	for i, ord := range orders {
		fmt.Fprintf(r.out, "%d: %s, %d x %s (deadline %s)\n", i+1, ord.Customer, ord.Qty, ord.Item, ord.Deadline)
	}
}

func (r *Renderer) renderItemOptions() {
	items, err := r.inventory.LoadInventory()
	if err != nil {
		r.reportError(err)
		return
	}

	if len(items) == 0 {
		fmt.Fprintln(r.out, "No inventory items, add inventory first.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(r.out, "%s (Stock: %d)\n", item.Name, item.Qty)
	}
}

func (r *Renderer) renderSummary() {
	items, err := r.inventory.LoadInventory()
	if err != nil {
		r.reportError(err)
		return
	}
	orders, err := r.orders.LoadOrders()
	if err != nil {
		r.reportError(err)
		return
	}

	summary := service.Summarize(items, orders)
	fmt.Fprintf(r.out, "Pending orders: %d | Low stock items: %d\n", summary.PendingOrders, summary.LowStock)
}

func (r *Renderer) reportError(err error) {
	log.WithError(err).Error("render failed")
	fmt.Fprintln(r.out, "Something went wrong:", err)
}
