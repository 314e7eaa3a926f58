// Package storage is the persistence facade: the rest of the application
// talks only to Store, which always writes through to local JSON files and,
// when a remote mirror is configured, reads from and mirrors to it as well.
package storage

import (
	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/storage/localstore"
)

const (
	CollectionInventory = "inventory"
	CollectionOrders    = "orders"
)

// Remote is the optional shared mirror: keyed reads and writes of whole
// collection documents, plus change subscriptions. Absence of a Remote is
// the default, fully supported configuration.
type Remote interface {
	Get(collection string) (doc []byte, ok bool, err error)
	Set(collection string, doc []byte) error
	Subscribe(collection string, fn func(doc []byte)) (stop func())
	Close() error
}

// Store is what domain services persist through.
type Store interface {
	model.InventoryStore
	model.OrderStore

	// Watch registers fn to run whenever the named collection changes in the
	// remote mirror. With no mirror configured it never fires.
	Watch(collection string, fn func())
	Close() error
}

// Open selects the persistence mode once at startup: local-only when remote
// is nil, local-plus-mirror otherwise.
func Open(dataDir string, remote Remote) (Store, error) {
	local, err := localstore.New(dataDir)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		return &localOnly{Store: local}, nil
	}
	return newMirrored(local, remote), nil
}

type localOnly struct {
	*localstore.Store
}

func (s *localOnly) Watch(string, func()) {}

func (s *localOnly) Close() error { return nil }
