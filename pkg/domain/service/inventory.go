package service

import (
	"fmt"
	"strings"

	"stocktrack/pkg/domain/model"
)

type InventoryService interface {
	List() ([]model.Item, error)
	AddOrUpdate(item model.Item) error
	Restock(name string, addQty int) error
	Delete(name string) error
	Edit(name, newName, newCategory, newSupplier string, newQty int) error
}

func NewInventoryService(store model.InventoryStore, confirmer Confirmer, dispatcher EventDispatcher) InventoryService {
	return &inventoryService{store: store, confirmer: confirmer, dispatcher: dispatcher}
}

type inventoryService struct {
	store      model.InventoryStore
	confirmer  Confirmer
	dispatcher EventDispatcher
}

func (s *inventoryService) List() ([]model.Item, error) {
	return s.store.LoadInventory()
}

// AddOrUpdate registers a new item or restocks the entry that already
// answers to the same name. On a restock the quantity accumulates and
// category/supplier are overwritten only when the incoming values are
// non-empty.
func (s *inventoryService) AddOrUpdate(item model.Item) error {
	items, err := s.store.LoadInventory()
	if err != nil {
		return err
	}

	idx := findItem(items, item.Name)
	restock := idx >= 0
	if restock {
		items[idx].Qty += item.Qty
		if item.Category != "" {
			items[idx].Category = item.Category
		}
		if item.Supplier != "" {
			items[idx].Supplier = item.Supplier
		}
	} else {
		items = append(items, model.Item{
			Name:     item.Name,
			Category: item.Category,
			Qty:      item.Qty,
			Supplier: item.Supplier,
		})
		idx = len(items) - 1
	}

	if err := s.store.SaveInventory(items); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ItemSaved{
		Name:    item.Name,
		Restock: restock,
		NewQty:  items[idx].Qty,
	})
	return nil
}

// Restock adds units to an existing item. The caller validates addQty as a
// positive integer before calling.
func (s *inventoryService) Restock(name string, addQty int) error {
	items, err := s.store.LoadInventory()
	if err != nil {
		return err
	}

	idx := findItem(items, name)
	if idx < 0 {
		return model.ErrItemNotFound
	}
	items[idx].Qty += addQty

	if err := s.store.SaveInventory(items); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ItemRestocked{Name: items[idx].Name, Added: addQty, NewQty: items[idx].Qty})
	return nil
}

// Delete removes every entry matching the name, after explicit confirmation.
// The collection is saved even when nothing matched.
func (s *inventoryService) Delete(name string) error {
	if !s.confirmer.Confirm(fmt.Sprintf("Delete item %q from inventory? This cannot be undone.", name)) {
		return ErrCancelled
	}

	items, err := s.store.LoadInventory()
	if err != nil {
		return err
	}

	kept := items[:0]
	removed := 0
	for _, item := range items {
		if item.MatchesName(name) {
			removed++
			continue
		}
		kept = append(kept, item)
	}

	if err := s.store.SaveInventory(kept); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ItemDeleted{Name: name, Removed: removed})
	return nil
}

// Edit overwrites all four fields of an existing entry with the already
// validated values. Renaming is applied verbatim: a collision with another
// entry's name is not re-checked here.
func (s *inventoryService) Edit(name, newName, newCategory, newSupplier string, newQty int) error {
	items, err := s.store.LoadInventory()
	if err != nil {
		return err
	}

	idx := findItem(items, name)
	if idx < 0 {
		return model.ErrItemNotFound
	}

	items[idx].Name = strings.TrimSpace(newName)
	items[idx].Category = strings.TrimSpace(newCategory)
	items[idx].Supplier = strings.TrimSpace(newSupplier)
	items[idx].Qty = newQty

	if err := s.store.SaveInventory(items); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ItemEdited{OldName: name, NewName: items[idx].Name})
	return nil
}

// findItem locates an item by case-folded name, the identity rule for the
// inventory collection.
func findItem(items []model.Item, name string) int {
	for i := range items {
		if items[i].MatchesName(name) {
			return i
		}
	}
	return -1
}
