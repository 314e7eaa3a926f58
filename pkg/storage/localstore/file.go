package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"stocktrack/pkg/domain/model"
)

const (
	inventoryFile = "inventory.json"
	ordersFile    = "orders.json"
)

// Store keeps each collection in its own JSON document under a data
// directory. It is the durable cache of record: every save lands here,
// whether or not a remote mirror is configured.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadInventory() ([]model.Item, error) {
	var items []model.Item
	if err := s.load(inventoryFile, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]model.Item, 0)
	}
	return items, nil
}

func (s *Store) SaveInventory(items []model.Item) error {
	return s.save(inventoryFile, items)
}

func (s *Store) LoadOrders() ([]model.Order, error) {
	var orders []model.Order
	if err := s.load(ordersFile, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]model.Order, 0)
	}
	return orders, nil
}

func (s *Store) SaveOrders(orders []model.Order) error {
	return s.save(ordersFile, orders)
}

// load reads a whole collection document. A file that does not exist yet is
// not an error: the target is left empty, matching first-use semantics.
func (s *Store) load(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decode %s", name)
	}
	return nil
}

// save replaces the whole collection document. The write goes through a
// temp file and a rename so a crash mid-write keeps the previous state.
func (s *Store) save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0666); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "replace %s", name)
	}
	return nil
}
