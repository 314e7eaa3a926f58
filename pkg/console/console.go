// Package console is the menu-driven terminal UI over the domain services.
// All input validation happens here, before any service call; the services
// only re-check existence.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/domain/service"
)

type Console struct {
	prompter  *Prompter
	out       io.Writer
	inventory service.InventoryService
	orders    service.OrderService
	renderer  *Renderer

	// notify carries refresh callbacks from watcher goroutines onto the
	// menu goroutine, where all rendering and console state lives.
	notify chan func()
}

func New(prompter *Prompter, out io.Writer, inventory service.InventoryService, orders service.OrderService, renderer *Renderer) *Console {
	return &Console{
		prompter:  prompter,
		out:       out,
		inventory: inventory,
		orders:    orders,
		renderer:  renderer,
		notify:    make(chan func(), 16),
	}
}

// Notify schedules fn to run on the menu goroutine. Safe to call from any
// goroutine. When the queue is full the callback is dropped; refreshes are
// idempotent, so the next one redraws the same state.
func (c *Console) Notify(fn func()) {
	select {
	case c.notify <- fn:
	default:
	}
}

func (c *Console) Run() error {
	for {
		c.drainNotifications()

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1: Add / Restock Inventory Item")
		fmt.Fprintln(c.out, "2: Restock Item by Name")
		fmt.Fprintln(c.out, "3: Edit Item")
		fmt.Fprintln(c.out, "4: Delete Item")
		fmt.Fprintln(c.out, "5: Show Inventory")
		fmt.Fprintln(c.out, "6: Place Order")
		fmt.Fprintln(c.out, "7: Show Orders")
		fmt.Fprintln(c.out, "8: Complete Order")
		fmt.Fprintln(c.out, "9: Show Summary")
		fmt.Fprintln(c.out, "X: Exit")
		fmt.Fprint(c.out, "Enter choice: ")

		var choice string
		select {
		case line, ok := <-c.prompter.lines:
			if !ok {
				return nil
			}
			choice = line
		case fn := <-c.notify:
			// A remote change landed while waiting for input; apply it
			// and reprint the menu.
			fn()
			continue
		}

		switch strings.ToLower(choice) {
		case "1":
			c.addItem()
		case "2":
			c.restockItem()
		case "3":
			c.editItem()
		case "4":
			c.deleteItem()
		case "5":
			c.chooseCategory()
		case "6":
			c.placeOrder()
		case "7":
			c.renderer.renderOrders()
		case "8":
			c.completeOrder()
		case "9":
			c.renderer.renderSummary()
		case "x":
			return nil
		}
	}
}

func (c *Console) drainNotifications() {
	for {
		select {
		case fn := <-c.notify:
			fn()
		default:
			return
		}
	}
}

func (c *Console) addItem() {
	name, ok := c.readLine("Item name: ")
	if !ok {
		return
	}
	category, ok := c.readLine("Category: ")
	if !ok {
		return
	}
	qtyStr, ok := c.readLine("Quantity: ")
	if !ok {
		return
	}
	supplier, ok := c.readLine("Supplier: ")
	if !ok {
		return
	}

	qty, err := strconv.Atoi(qtyStr)
	if name == "" || category == "" || supplier == "" || err != nil || qty < 0 {
		fmt.Fprintln(c.out, "Please complete all fields (qty must be 0 or more).")
		return
	}

	if err := c.inventory.AddOrUpdate(model.Item{Name: name, Category: category, Qty: qty, Supplier: supplier}); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Item saved (new or restocked).")
}

func (c *Console) restockItem() {
	name, ok := c.readLine("Item name: ")
	if !ok || name == "" {
		return
	}
	qtyStr, ok := c.readLine(fmt.Sprintf("Add how many units to %q? (enter a positive number): ", name))
	if !ok {
		return
	}

	add, err := strconv.Atoi(qtyStr)
	if err != nil || add <= 0 {
		fmt.Fprintln(c.out, "Invalid number")
		return
	}

	if err := c.inventory.Restock(name, add); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Item restocked.")
}

func (c *Console) editItem() {
	name, ok := c.readLine("Item name: ")
	if !ok || name == "" {
		return
	}

	items, err := c.inventory.List()
	if err != nil {
		c.reportError(err)
		return
	}
	var current *model.Item
	for i := range items {
		if items[i].MatchesName(name) {
			current = &items[i]
			break
		}
	}
	if current == nil {
		fmt.Fprintln(c.out, "Item not found")
		return
	}

	newName, ok := c.readLineDefault("Edit name", current.Name)
	if !ok {
		return
	}
	newCategory, ok := c.readLineDefault("Edit category", current.Category)
	if !ok {
		return
	}
	newSupplier, ok := c.readLineDefault("Edit supplier", current.Supplier)
	if !ok {
		return
	}
	newQtyStr, ok := c.readLineDefault("Edit quantity", strconv.Itoa(current.Qty))
	if !ok {
		return
	}

	newQty, err := strconv.Atoi(newQtyStr)
	if err != nil || newQty < 0 {
		fmt.Fprintln(c.out, "Invalid qty")
		return
	}

	if err := c.inventory.Edit(name, newName, newCategory, newSupplier, newQty); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Item updated.")
}

func (c *Console) deleteItem() {
	name, ok := c.readLine("Item name: ")
	if !ok || name == "" {
		return
	}
	if err := c.inventory.Delete(name); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Item deleted.")
}

func (c *Console) chooseCategory() {
	c.renderer.renderCategories()
	category, ok := c.readLine("Category filter (empty for all items): ")
	if !ok {
		return
	}
	c.renderer.SetCategory(category)
	c.renderer.renderInventory()
}

func (c *Console) placeOrder() {
	c.renderer.renderItemOptions()

	customer, ok := c.readLine("Customer name: ")
	if !ok {
		return
	}
	itemName, ok := c.readLine("Item: ")
	if !ok {
		return
	}
	qtyStr, ok := c.readLine("Quantity: ")
	if !ok {
		return
	}
	deadline, ok := c.readLine("Deadline (YYYY-MM-DD): ")
	if !ok {
		return
	}

	qty, err := strconv.Atoi(qtyStr)
	if customer == "" || itemName == "" || deadline == "" || err != nil || qty <= 0 {
		fmt.Fprintln(c.out, "Please fill required fields")
		return
	}

	deducted, err := c.orders.Place(customer, itemName, qty, deadline)
	if err != nil {
		c.reportError(err)
		return
	}
	if deducted {
		fmt.Fprintln(c.out, "Order added and inventory updated.")
	} else {
		fmt.Fprintln(c.out, "Order added (no inventory changes).")
	}
}

func (c *Console) completeOrder() {
	c.renderer.renderOrders()
	numStr, ok := c.readLine("Order number to complete: ")
	if !ok {
		return
	}
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		fmt.Fprintln(c.out, "Invalid number")
		return
	}

	if err := c.orders.Complete(num - 1); err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintln(c.out, "Order completed.")
}

func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	return c.prompter.read()
}

// readLineDefault shows the current value and keeps it on empty input.
func (c *Console) readLineDefault(prompt, current string) (string, bool) {
	value, ok := c.readLine(fmt.Sprintf("%s [%s]: ", prompt, current))
	if !ok {
		return "", false
	}
	if value == "" {
		return current, true
	}
	return value, true
}

func (c *Console) reportError(err error) {
	switch {
	case errors.Is(err, service.ErrCancelled):
		fmt.Fprintln(c.out, "Cancelled.")
	case errors.Is(err, model.ErrItemNotFound):
		fmt.Fprintln(c.out, "Item not found")
	case errors.Is(err, model.ErrOrderNotFound):
		fmt.Fprintln(c.out, "Order not found")
	default:
		log.WithError(err).Error("operation failed")
		fmt.Fprintln(c.out, "Something went wrong:", err)
	}
}
