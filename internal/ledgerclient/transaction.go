package ledgerclient

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// rippleEpoch is 2000-01-01T00:00:00Z, the zero of ledger close times.
const rippleEpoch = 946684800

// Submit sends a signed blob. The result is tentative: a transaction that
// was applied to the open ledger may still fail to be validated.
func (c *Client) Submit(ctx context.Context, txBlob string) (*SubmitResult, error) {
	if txBlob == "" {
		return nil, validationError("txBlob is required")
	}
	if _, err := hex.DecodeString(txBlob); err != nil {
		return nil, validationError("txBlob is not hex: %v", err)
	}

	var res SubmitResult
	if err := c.request(ctx, map[string]any{"command": "submit", "tx_blob": txBlob}, &res); err != nil {
		return nil, err
	}
	res.ResultCode = res.EngineResult
	res.ResultMessage = res.EngineResultMessage
	return &res, nil
}

type txResult struct {
	Account         string          `json:"Account"`
	Fee             string          `json:"Fee"`
	Sequence        uint32          `json:"Sequence"`
	TransactionType string          `json:"TransactionType"`
	Hash            string          `json:"hash"`
	LedgerIndex     uint32          `json:"ledger_index"`
	Date            *uint32         `json:"date"`
	Validated       bool            `json:"validated"`
	Meta            *txMeta         `json:"meta"`
	Raw             json.RawMessage `json:"-"`
}

type txMeta struct {
	TransactionIndex  uint32 `json:"TransactionIndex"`
	TransactionResult string `json:"TransactionResult"`
}

// GetTransaction looks up a validated transaction. A transaction that is
// unknown, not yet validated or outside the requested range yields
// ErrNotFound; a range the node has no full history for yields
// ErrMissingLedgerHistory; a range that starts beyond the last validated
// ledger yields ErrPendingLedgerVersion.
func (c *Client) GetTransaction(ctx context.Context, id string, opts TransactionOptions) (*TransactionResult, error) {
	if len(id) != 64 {
		return nil, validationError("id %q must be a 64 character hex hash", id)
	}
	if _, err := hex.DecodeString(id); err != nil {
		return nil, validationError("id %q must be a 64 character hex hash", id)
	}
	id = strings.ToUpper(id)
	if opts.MaxLedgerVersion != nil && *opts.MaxLedgerVersion < opts.MinLedgerVersion {
		return nil, validationError("minLedgerVersion must not be greater than maxLedgerVersion")
	}

	if cached, ok := c.txCache.Get(id); ok && inRange(cached.Outcome.LedgerVersion, opts) {
		return cached, nil
	}

	var raw json.RawMessage
	err := c.request(ctx, map[string]any{"command": "tx", "transaction": id, "binary": false}, &raw)
	if err != nil {
		if le, ok := AsLedgerError(err); ok && le.Data != nil && le.Data.Error == "txnNotFound" {
			return nil, c.notFound(ctx, opts)
		}
		return nil, err
	}

	var tx txResult
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, newError(ErrResponseFormat, NameResponseFormat, "tx result: %v", err)
	}
	tx.Raw = raw

	if !tx.Validated || tx.Meta == nil {
		return nil, newError(ErrNotFound, NameNotFound, "Transaction has not been validated yet; try again later")
	}
	if !inRange(tx.LedgerIndex, opts) {
		return nil, newError(ErrNotFound, NameNotFound, "Transaction not found")
	}

	result, err := formatTransaction(&tx)
	if err != nil {
		return nil, err
	}
	c.txCache.Add(id, result)
	return result, nil
}

// notFound tells apart a transaction that does not exist in a fully known
// range from one the node cannot vouch for.
func (c *Client) notFound(ctx context.Context, opts TransactionOptions) error {
	validated, err := c.GetLedgerVersion(ctx)
	if err != nil {
		return err
	}
	if opts.MinLedgerVersion > validated {
		return newError(ErrPendingLedgerVersion, NamePendingLedgerVersion,
			"minLedgerVersion is greater than server's most recent validated ledger: %d", validated)
	}
	maxLedger := validated
	if opts.MaxLedgerVersion != nil {
		if *opts.MaxLedgerVersion > validated {
			return newError(ErrPendingLedgerVersion, NamePendingLedgerVersion,
				"maxLedgerVersion is greater than server's most recent validated ledger: %d", validated)
		}
		maxLedger = *opts.MaxLedgerVersion
	}

	info, err := c.serverInfo(ctx)
	if err != nil {
		return err
	}
	minLedger := opts.MinLedgerVersion
	if minLedger == 0 {
		minLedger = 1
	}
	if hasCompleteLedgerRange(info.Info.CompleteLedgers, minLedger, maxLedger) {
		return newError(ErrNotFound, NameNotFound, "Transaction not found")
	}
	return newError(ErrMissingLedgerHistory, NameMissingLedgerHistory,
		"Server is missing ledger history in the specified range")
}

func inRange(ledger uint32, opts TransactionOptions) bool {
	if ledger < opts.MinLedgerVersion {
		return false
	}
	return opts.MaxLedgerVersion == nil || ledger <= *opts.MaxLedgerVersion
}

// hasCompleteLedgerRange reports whether complete, rippled's
// "a-b,c,d-e" list, covers [lo, hi].
func hasCompleteLedgerRange(complete string, lo, hi uint32) bool {
	if complete == "" || complete == "empty" {
		return false
	}
	for _, part := range strings.Split(complete, ",") {
		bounds := strings.SplitN(strings.TrimSpace(part), "-", 2)
		first, err := strconv.ParseUint(bounds[0], 10, 32)
		if err != nil {
			return false
		}
		last := first
		if len(bounds) == 2 {
			if last, err = strconv.ParseUint(bounds[1], 10, 32); err != nil {
				return false
			}
		}
		if uint64(lo) >= first && uint64(hi) <= last {
			return true
		}
	}
	return false
}

func formatTransaction(tx *txResult) (*TransactionResult, error) {
	fee, err := DropsToXRP(tx.Fee)
	if err != nil && tx.Fee != "" {
		return nil, newError(ErrResponseFormat, NameResponseFormat, "tx Fee: %v", err)
	}
	var timestamp string
	if tx.Date != nil {
		timestamp = time.Unix(int64(*tx.Date)+rippleEpoch, 0).UTC().Format(time.RFC3339)
	}
	return &TransactionResult{
		Type:     lowerFirst(tx.TransactionType),
		Address:  tx.Account,
		Sequence: tx.Sequence,
		ID:       strings.ToUpper(tx.Hash),
		Outcome: TransactionOutcome{
			Result:        tx.Meta.TransactionResult,
			LedgerVersion: tx.LedgerIndex,
			IndexInLedger: tx.Meta.TransactionIndex,
			Fee:           fee,
			Timestamp:     timestamp,
		},
		Raw: tx.Raw,
	}, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
