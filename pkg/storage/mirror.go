package storage

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"stocktrack/pkg/domain/model"
	"stocktrack/pkg/storage/localstore"
)

// mirroredStore reads from the remote mirror while it is reachable and falls
// back to the local files otherwise. Saves always land locally first; the
// mirror write is best effort and never blocks or rolls back the local one.
type mirroredStore struct {
	local  *localstore.Store
	remote Remote
	stops  []func()
}

func newMirrored(local *localstore.Store, remote Remote) *mirroredStore {
	return &mirroredStore{local: local, remote: remote}
}

func (s *mirroredStore) LoadInventory() ([]model.Item, error) {
	var items []model.Item
	switch s.loadRemote(CollectionInventory, &items) {
	case remoteHit:
		if items == nil {
			items = make([]model.Item, 0)
		}
		return items, nil
	case remoteEmpty:
		return make([]model.Item, 0), nil
	default:
		return s.local.LoadInventory()
	}
}

func (s *mirroredStore) SaveInventory(items []model.Item) error {
	if err := s.local.SaveInventory(items); err != nil {
		return err
	}
	s.saveRemote(CollectionInventory, items)
	return nil
}

func (s *mirroredStore) LoadOrders() ([]model.Order, error) {
	var orders []model.Order
	switch s.loadRemote(CollectionOrders, &orders) {
	case remoteHit:
		if orders == nil {
			orders = make([]model.Order, 0)
		}
		return orders, nil
	case remoteEmpty:
		return make([]model.Order, 0), nil
	default:
		return s.local.LoadOrders()
	}
}

func (s *mirroredStore) SaveOrders(orders []model.Order) error {
	if err := s.local.SaveOrders(orders); err != nil {
		return err
	}
	s.saveRemote(CollectionOrders, orders)
	return nil
}

func (s *mirroredStore) Watch(collection string, fn func()) {
	stop := s.remote.Subscribe(collection, func([]byte) { fn() })
	s.stops = append(s.stops, stop)
}

func (s *mirroredStore) Close() error {
	for _, stop := range s.stops {
		stop()
	}
	return s.remote.Close()
}

type remoteResult int

const (
	remoteHit remoteResult = iota
	remoteEmpty
	remoteMiss
)

// loadRemote fetches and decodes a collection document from the mirror.
// remoteMiss means the mirror could not serve the read and the caller must
// fall back to the local files.
func (s *mirroredStore) loadRemote(collection string, v interface{}) remoteResult {
	doc, ok, err := s.remote.Get(collection)
	if err != nil {
		log.WithError(err).WithField("collection", collection).Warn("remote mirror unreachable, using local data")
		return remoteMiss
	}
	if !ok {
		return remoteEmpty
	}
	if err := json.Unmarshal(doc, v); err != nil {
		log.WithError(err).WithField("collection", collection).Warn("remote mirror document malformed, using local data")
		return remoteMiss
	}
	return remoteHit
}

func (s *mirroredStore) saveRemote(collection string, v interface{}) {
	doc, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).WithField("collection", collection).Warn("mirror write skipped")
		return
	}
	if err := s.remote.Set(collection, doc); err != nil {
		log.WithError(err).WithField("collection", collection).Warn("mirror write failed, local copy kept")
	}
}
