package remotestore

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// The mirror is a single keyed table: one row per collection, holding the
// full JSON document. Revision is bumped on every write and origin records
// which process wrote it, so pollers can ignore their own echoes.
const schema = `CREATE TABLE IF NOT EXISTS collections (
	name     VARCHAR(64) NOT NULL PRIMARY KEY,
	doc      LONGTEXT    NOT NULL,
	revision BIGINT      NOT NULL,
	origin   CHAR(36)    NOT NULL
)`

// Store mirrors collection documents in a shared MySQL database and emulates
// push notifications by polling row revisions.
type Store struct {
	db       *sqlx.DB
	origin   string
	interval time.Duration

	quitOnce sync.Once
	quit     chan struct{}
}

func Open(dsn string, pollInterval time.Duration) (*Store, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect remote mirror")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "prepare collections table")
	}
	return &Store{
		db:       db,
		origin:   uuid.NewString(),
		interval: pollInterval,
		quit:     make(chan struct{}),
	}, nil
}

type collectionRow struct {
	Doc      []byte `db:"doc"`
	Revision int64  `db:"revision"`
	Origin   string `db:"origin"`
}

// Get returns the stored document for a collection, or ok=false when the
// collection has never been written.
func (s *Store) Get(collection string) ([]byte, bool, error) {
	var row collectionRow
	err := s.db.Get(&row, "SELECT doc, revision, origin FROM collections WHERE name = ?", collection)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "read collection %q", collection)
	}
	return row.Doc, true, nil
}

// Set replaces the document for a collection and bumps its revision.
func (s *Store) Set(collection string, doc []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, doc, revision, origin) VALUES (?, ?, 1, ?)
		 ON DUPLICATE KEY UPDATE doc = VALUES(doc), revision = revision + 1, origin = VALUES(origin)`,
		collection, doc, s.origin,
	)
	return errors.Wrapf(err, "write collection %q", collection)
}

// Subscribe invokes fn with the current document whenever another process
// advances the collection's revision. The returned stop function cancels
// the subscription; Close cancels all of them.
func (s *Store) Subscribe(collection string, fn func(doc []byte)) (stop func()) {
	done := make(chan struct{})
	go s.poll(collection, fn, done)

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (s *Store) poll(collection string, fn func([]byte), done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastRev int64
	for {
		select {
		case <-done:
			return
		case <-s.quit:
			return
		case <-ticker.C:
		}

		var row collectionRow
		err := s.db.Get(&row, "SELECT doc, revision, origin FROM collections WHERE name = ?", collection)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			log.WithError(err).WithField("collection", collection).Warn("remote mirror poll failed")
			continue
		}
		if row.Revision <= lastRev {
			continue
		}
		lastRev = row.Revision
		if row.Origin != s.origin {
			fn(row.Doc)
		}
	}
}

func (s *Store) Close() error {
	s.quitOnce.Do(func() { close(s.quit) })
	return s.db.Close()
}
