// Package journal records the transactions the gateway submitted and the
// outcome they were later found validated with.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no submission exists for a transaction id
	ErrNotFound = errors.New("submission not found")

	// ErrClosed is returned when trying to use a closed store
	ErrClosed = errors.New("journal is closed")
)

// Submission is one submitted transaction.
type Submission struct {
	TxID                  string
	TxBlob                string
	ResultCode            string
	ResultMessage         string
	EarliestLedgerVersion uint32
	SubmittedAt           time.Time

	// Set once the transaction has been seen in a validated ledger.
	ValidatedLedgerVersion uint32
	Result                 string
}

// Validated reports whether an outcome has been recorded.
func (s *Submission) Validated() bool {
	return s.ValidatedLedgerVersion != 0
}

// Store persists submissions. Implementations are safe for concurrent use.
type Store interface {
	// RecordSubmission stores s, replacing an earlier submission of the same id.
	RecordSubmission(ctx context.Context, s Submission) error

	// RecordOutcome attaches the validated outcome to a stored submission.
	// It returns ErrNotFound for an id that was never recorded.
	RecordOutcome(ctx context.Context, txID string, ledgerVersion uint32, result string) error

	Get(ctx context.Context, txID string) (*Submission, error)

	Close() error
}

// Drivers
const (
	DriverNone     = "none"
	DriverPebble   = "pebble"
	DriverLevelDB  = "leveldb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and locates the backend.
type Config struct {
	Driver string
	// Path is a directory for pebble and leveldb, a file for sqlite and a
	// connection string for postgres.
	Path string
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case "", DriverNone:
		return nil
	case DriverPebble, DriverLevelDB, DriverSQLite, DriverPostgres:
		if c.Path == "" {
			return fmt.Errorf("journal: path is required for driver %q", c.Driver)
		}
		return nil
	default:
		return fmt.Errorf("journal: unknown driver %q", c.Driver)
	}
}

// Open returns the store cfg names. The "none" driver discards everything.
func Open(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case DriverPebble:
		s, err := OpenPebble(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverLevelDB:
		s, err := OpenLevelDB(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := OpenPostgres(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return Nop{}, nil
	}
}

func normalizeID(txID string) string {
	return strings.ToUpper(txID)
}

// Nop is a Store that keeps nothing.
type Nop struct{}

func (Nop) RecordSubmission(context.Context, Submission) error          { return nil }
func (Nop) RecordOutcome(context.Context, string, uint32, string) error { return nil }
func (Nop) Get(context.Context, string) (*Submission, error)            { return nil, ErrNotFound }
func (Nop) Close() error                                                { return nil }
