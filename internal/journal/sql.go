package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"   // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// dialect captures what differs between the SQL backends.
type dialect struct {
	driver string
	schema []string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
	maxConns int
}

var sqliteDialect = dialect{
	driver: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			tx_id TEXT PRIMARY KEY,
			tx_blob TEXT NOT NULL,
			result_code TEXT NOT NULL,
			result_message TEXT NOT NULL,
			earliest_ledger_version INTEGER NOT NULL,
			submitted_at INTEGER NOT NULL,
			validated_ledger_version INTEGER NOT NULL DEFAULT 0,
			result TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at)`,
	},
	// one writer; SQLite serializes anyway
	maxConns: 1,
}

var postgresDialect = dialect{
	driver: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			tx_id VARCHAR(64) PRIMARY KEY,
			tx_blob TEXT NOT NULL,
			result_code VARCHAR(64) NOT NULL,
			result_message TEXT NOT NULL,
			earliest_ledger_version BIGINT NOT NULL,
			submitted_at BIGINT NOT NULL,
			validated_ledger_version BIGINT NOT NULL DEFAULT 0,
			result VARCHAR(64) NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at)`,
	},
	numbered: true,
	maxConns: 10,
}

// rebind rewrites ? placeholders for dialects that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const (
	upsertSubmission = `
		INSERT INTO submissions (tx_id, tx_blob, result_code, result_message, earliest_ledger_version, submitted_at, validated_ledger_version, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tx_id) DO UPDATE SET
			tx_blob = excluded.tx_blob,
			result_code = excluded.result_code,
			result_message = excluded.result_message,
			earliest_ledger_version = excluded.earliest_ledger_version,
			submitted_at = excluded.submitted_at,
			validated_ledger_version = excluded.validated_ledger_version,
			result = excluded.result`

	updateOutcome = `UPDATE submissions SET validated_ledger_version = ?, result = ? WHERE tx_id = ?`

	selectSubmission = `
		SELECT tx_id, tx_blob, result_code, result_message, earliest_ledger_version, submitted_at, validated_ledger_version, result
		FROM submissions WHERE tx_id = ?`
)

// SQLStore keeps submissions in a single submissions table, in SQLite or
// PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (or creates) the database file at path and initializes
// the schema.
func OpenSQLite(path string) (*SQLStore, error) {
	return openSQL(sqliteDialect, path)
}

// OpenPostgres connects with a lib/pq connection string, e.g.
// "postgres://gw@localhost/xrplgw?sslmode=disable", and initializes the
// schema.
func OpenPostgres(dsn string) (*SQLStore, error) {
	return openSQL(postgresDialect, dsn)
}

func openSQL(d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", d.driver, err)
	}
	db.SetMaxOpenConns(d.maxConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: init %s schema: %w", d.driver, err)
		}
	}
	return &SQLStore{db: db, dialect: d}, nil
}

func (s *SQLStore) RecordSubmission(ctx context.Context, sub Submission) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(upsertSubmission),
		normalizeID(sub.TxID), sub.TxBlob, sub.ResultCode, sub.ResultMessage,
		int64(sub.EarliestLedgerVersion), sub.SubmittedAt.UnixNano(), int64(sub.ValidatedLedgerVersion), sub.Result)
	if err != nil {
		return s.wrap("record submission", err)
	}
	return nil
}

func (s *SQLStore) RecordOutcome(ctx context.Context, txID string, ledgerVersion uint32, result string) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(updateOutcome),
		int64(ledgerVersion), result, normalizeID(txID))
	if err != nil {
		return s.wrap("record outcome", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.wrap("record outcome", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, txID string) (*Submission, error) {
	var (
		sub         Submission
		earliest    int64
		validated   int64
		submittedAt int64
	)
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(selectSubmission), normalizeID(txID)).Scan(
		&sub.TxID, &sub.TxBlob, &sub.ResultCode, &sub.ResultMessage,
		&earliest, &submittedAt, &validated, &sub.Result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.wrap("get", err)
	}
	sub.EarliestLedgerVersion = uint32(earliest)
	sub.ValidatedLedgerVersion = uint32(validated)
	sub.SubmittedAt = time.Unix(0, submittedAt).UTC()
	return &sub, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) wrap(op string, err error) error {
	return fmt.Errorf("journal: %s %s: %w", s.dialect.driver, op, err)
}
