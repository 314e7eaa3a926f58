package model

import (
	"errors"
	"strings"
)

var ErrItemNotFound = errors.New("inventory item not found")

// Item is a single stocked product. Items are keyed by case-folded name:
// the collection holds at most one entry per name, regardless of letter case.
type Item struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Qty      int    `json:"qty"`
	Supplier string `json:"supplier"`
}

// MatchesName reports whether the item answers to the given name,
// ignoring letter case.
func (i Item) MatchesName(name string) bool {
	return strings.EqualFold(i.Name, name)
}

// InventoryStore persists the inventory collection as a whole. Load returns
// an empty collection when nothing has been stored yet, never an error for
// mere absence.
type InventoryStore interface {
	LoadInventory() ([]Item, error)
	SaveInventory(items []Item) error
}
