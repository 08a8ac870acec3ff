package journal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	pebbleStore, err := Open(Config{Driver: DriverPebble, Path: filepath.Join(dir, "pebble")})
	require.NoError(t, err)
	levelStore, err := Open(Config{Driver: DriverLevelDB, Path: filepath.Join(dir, "leveldb")})
	require.NoError(t, err)
	sqliteStore, err := Open(Config{Driver: DriverSQLite, Path: filepath.Join(dir, "journal.db")})
	require.NoError(t, err)

	stores := map[string]Store{DriverPebble: pebbleStore, DriverLevelDB: levelStore, DriverSQLite: sqliteStore}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	submittedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	txID := strings.Repeat("ab", 32)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, txID)
			require.ErrorIs(t, err, ErrNotFound)
			require.ErrorIs(t, store.RecordOutcome(ctx, txID, 10, "tesSUCCESS"), ErrNotFound)

			require.NoError(t, store.RecordSubmission(ctx, Submission{
				TxID:                  txID,
				TxBlob:                "1200002280000000",
				ResultCode:            "tesSUCCESS",
				ResultMessage:         "The transaction was applied.",
				EarliestLedgerVersion: 101,
				SubmittedAt:           submittedAt,
			}))

			got, err := store.Get(ctx, txID)
			require.NoError(t, err)
			assert.Equal(t, strings.ToUpper(txID), got.TxID)
			assert.Equal(t, uint32(101), got.EarliestLedgerVersion)
			assert.True(t, submittedAt.Equal(got.SubmittedAt))
			assert.False(t, got.Validated())

			require.NoError(t, store.RecordOutcome(ctx, strings.ToUpper(txID), 102, "tesSUCCESS"))
			got, err = store.Get(ctx, txID)
			require.NoError(t, err)
			assert.True(t, got.Validated())
			assert.Equal(t, uint32(102), got.ValidatedLedgerVersion)
			assert.Equal(t, "tesSUCCESS", got.Result)
			assert.Equal(t, "1200002280000000", got.TxBlob)
		})
	}
}

func TestKeyValueStoresClosed(t *testing.T) {
	pebbleStore, err := OpenPebble(t.TempDir())
	require.NoError(t, err)
	levelStore, err := OpenLevelDB(t.TempDir())
	require.NoError(t, err)

	for name, store := range map[string]Store{DriverPebble: pebbleStore, DriverLevelDB: levelStore} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Close())
			require.NoError(t, store.Close())

			_, err := store.Get(context.Background(), "00")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, store.RecordSubmission(context.Background(), Submission{TxID: "00"}), ErrClosed)
			assert.ErrorIs(t, store.RecordOutcome(context.Background(), "00", 1, "tesSUCCESS"), ErrClosed)
		})
	}
}

func TestRecordFraming(t *testing.T) {
	var h codec.MsgpackHandle

	// a multi-signed blob repeats itself enough to compress
	long := record{TxID: strings.Repeat("AB", 32), TxBlob: strings.Repeat("F3E0107321ED", 200)}
	val, err := encodeRecord(&h, long)
	require.NoError(t, err)
	assert.Equal(t, frameLZ4, val[0])
	assert.Less(t, len(val), len(long.TxBlob))
	got, err := decodeRecord(&h, val)
	require.NoError(t, err)
	assert.Equal(t, long, *got)

	short := record{TxID: "01", ResultCode: "tesSUCCESS"}
	val, err = encodeRecord(&h, short)
	require.NoError(t, err)
	assert.Equal(t, frameRaw, val[0])
	got, err = decodeRecord(&h, val)
	require.NoError(t, err)
	assert.Equal(t, short, *got)

	_, err = decodeRecord(&h, nil)
	assert.Error(t, err)
	_, err = decodeRecord(&h, []byte{7, 1, 2})
	assert.EqualError(t, err, "unknown frame 7")
	_, err = decodeRecord(&h, []byte{frameLZ4, 0x80})
	assert.EqualError(t, err, "bad length prefix")
}

func TestPlaceholderRebind(t *testing.T) {
	q := `UPDATE submissions SET validated_ledger_version = ?, result = ? WHERE tx_id = ?`
	assert.Equal(t, q, sqliteDialect.rebind(q))
	assert.Equal(t,
		`UPDATE submissions SET validated_ledger_version = $1, result = $2 WHERE tx_id = $3`,
		postgresDialect.rebind(q))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{Driver: DriverNone}.Validate())
	assert.NoError(t, Config{Driver: DriverSQLite, Path: "x.db"}.Validate())
	assert.Error(t, Config{Driver: DriverPebble}.Validate())
	assert.Error(t, Config{Driver: DriverPostgres}.Validate())
	assert.NoError(t, Config{Driver: DriverLevelDB, Path: "x"}.Validate())
	assert.Error(t, Config{Driver: "redis", Path: "x"}.Validate())

	store, err := Open(Config{Driver: DriverNone})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, store)
	_, err = store.Get(context.Background(), "00")
	assert.ErrorIs(t, err, ErrNotFound)
}
