package journal

import (
	"context"
	"fmt"
	"sync"

	"github.com/ugorji/go/codec"
)

var submissionPrefix = []byte("sub/")

// backend is an ordered key-value database. get returns ErrNotFound for a
// missing key.
type backend interface {
	get(key []byte) ([]byte, error)
	set(key, val []byte) error
	close() error
}

// kvStore implements Store over a backend, one encoded record per
// transaction id.
type kvStore struct {
	mu     sync.Mutex
	db     backend
	handle codec.MsgpackHandle
}

func submissionKey(txID string) []byte {
	return append(append([]byte{}, submissionPrefix...), normalizeID(txID)...)
}

func (k *kvStore) RecordSubmission(ctx context.Context, s Submission) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return ErrClosed
	}
	s.TxID = normalizeID(s.TxID)
	return k.write(s.TxID, toRecord(s))
}

func (k *kvStore) RecordOutcome(ctx context.Context, txID string, ledgerVersion uint32, result string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return ErrClosed
	}
	r, err := k.read(txID)
	if err != nil {
		return err
	}
	r.ValidatedLedgerVersion = ledgerVersion
	r.Result = result
	return k.write(txID, *r)
}

func (k *kvStore) Get(ctx context.Context, txID string) (*Submission, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return nil, ErrClosed
	}
	r, err := k.read(txID)
	if err != nil {
		return nil, err
	}
	return r.submission(), nil
}

func (k *kvStore) read(txID string) (*record, error) {
	val, err := k.db.get(submissionKey(txID))
	if err != nil {
		return nil, err
	}
	r, err := decodeRecord(&k.handle, val)
	if err != nil {
		return nil, fmt.Errorf("journal: decode %s: %w", txID, err)
	}
	return r, nil
}

func (k *kvStore) write(txID string, r record) error {
	val, err := encodeRecord(&k.handle, r)
	if err != nil {
		return fmt.Errorf("journal: encode %s: %w", txID, err)
	}
	return k.db.set(submissionKey(txID), val)
}

func (k *kvStore) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.db == nil {
		return nil
	}
	err := k.db.close()
	k.db = nil
	return err
}
