package journal

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDBStore keeps submissions in a LevelDB database.
type LevelDBStore struct {
	kvStore
}

// OpenLevelDB opens (or creates) the database in dir.
func OpenLevelDB(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: open leveldb at %s: %w", dir, err)
	}
	return &LevelDBStore{kvStore{db: levelDBBackend{db}}}, nil
}

type levelDBBackend struct {
	db *leveldb.DB
}

func (b levelDBBackend) get(key []byte) ([]byte, error) {
	val, err := b.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (b levelDBBackend) set(key, val []byte) error {
	return b.db.Put(key, val, &opt.WriteOptions{Sync: true})
}

func (b levelDBBackend) close() error {
	return b.db.Close()
}
