package journal

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// PebbleStore keeps submissions in a pebble database.
type PebbleStore struct {
	kvStore
}

// OpenPebble opens (or creates) the database in dir.
func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("journal: open pebble at %s: %w", dir, err)
	}
	return &PebbleStore{kvStore{db: pebbleBackend{db}}}, nil
}

type pebbleBackend struct {
	db *pebble.DB
}

func (b pebbleBackend) get(key []byte) ([]byte, error) {
	val, closer, err := b.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	// val is only valid until closer is closed
	return append([]byte(nil), val...), nil
}

func (b pebbleBackend) set(key, val []byte) error {
	return b.db.Set(key, val, pebble.Sync)
}

func (b pebbleBackend) close() error {
	return b.db.Close()
}
