// Package ledgerclient talks to a rippled node. It queries accounts,
// prepares, submits and looks up transactions over the WebSocket API, signs
// and combines locally, and relays ledger close notifications to listeners.
package ledgerclient

import (
	"context"
	"encoding/json"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

// LedgerClient is the capability the gateway services are built on.
type LedgerClient interface {
	Connect(ctx context.Context) error
	Disconnect() error
	IsConnected() bool

	GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error)

	GenerateAddress(opts GenerateOptions) (*GeneratedAddress, error)
	GenerateXAddress(opts GenerateOptions) (*GeneratedXAddress, error)
	IsValidAddress(address string) bool

	PrepareTransaction(ctx context.Context, tx Transaction, instructions Instructions) (*Prepared, error)
	Sign(txJSON, secret string, opts SignOptions) (*SignResult, error)
	Submit(ctx context.Context, txBlob string) (*SubmitResult, error)
	GetTransaction(ctx context.Context, id string, opts TransactionOptions) (*TransactionResult, error)
	Combine(signedTransactions []string) (*CombineResult, error)
	GetLedgerVersion(ctx context.Context) (uint32, error)

	// AddLedgerListener registers fn for every ledger close. Listeners run
	// one at a time, in registration order, on a single dispatcher goroutine.
	AddLedgerListener(fn LedgerListener) ListenerID
	// RemoveLedgerListener unregisters id. It reports whether id was
	// registered; removing twice is harmless.
	RemoveLedgerListener(id ListenerID) bool
	// SessionDone is closed when the current connection ends.
	SessionDone() <-chan struct{}
}

// LedgerEvent is one ledger close reported by the node.
type LedgerEvent struct {
	LedgerVersion    uint32 `json:"ledger_index"`
	LedgerHash       string `json:"ledger_hash"`
	LedgerTime       uint32 `json:"ledger_time"`
	TxnCount         int    `json:"txn_count"`
	FeeBase          uint64 `json:"fee_base"`
	ReserveBase      uint64 `json:"reserve_base"`
	ReserveIncrement uint64 `json:"reserve_inc"`
	ValidatedLedgers string `json:"validated_ledgers"`
}

type (
	ListenerID     uint64
	LedgerListener func(LedgerEvent)
)

// AccountInfo is the validated state of an account root.
type AccountInfo struct {
	Sequence                                  uint32
	XRPBalance                                string
	OwnerCount                                uint32
	PreviousAffectingTransactionID            string
	PreviousAffectingTransactionLedgerVersion uint32
}

// GenerateOptions select the key algorithm and network of a new address.
type GenerateOptions struct {
	Algorithm crypto.KeyType
	Test      bool
}

type GeneratedAddress struct {
	XAddress       string
	ClassicAddress string
	Address        string
	Secret         string
}

type GeneratedXAddress struct {
	XAddress string
	Secret   string
}

// Transaction is the body PrepareTransaction completes.
type Transaction struct {
	TransactionType string
	Account         string
	Amount          string
	Destination     string
}

// Instructions override PrepareTransaction's autofill. A nil field is
// filled in from the node.
type Instructions struct {
	Fee                    *string
	MaxFee                 *string
	MaxLedgerVersion       *uint32
	MaxLedgerVersionOffset *uint32
	Sequence               *uint32
	SignersCount           *uint32
}

// ResolvedInstructions are the values PrepareTransaction settled on.
// MaxLedgerVersion is nil when the transaction does not expire.
type ResolvedInstructions struct {
	Fee              string  `json:"fee"`
	Sequence         uint32  `json:"sequence"`
	MaxLedgerVersion *uint32 `json:"maxLedgerVersion"`
}

type Prepared struct {
	TxJSON       string
	Instructions ResolvedInstructions
}

type SignOptions struct {
	SignAs string
}

type SignResult struct {
	SignedTransaction string
	ID                string
}

// SubmitResult is the tentative outcome of a submission.
type SubmitResult struct {
	ResultCode          string          `json:"resultCode"`
	ResultMessage       string          `json:"resultMessage"`
	EngineResult        string          `json:"engine_result"`
	EngineResultCode    int             `json:"engine_result_code"`
	EngineResultMessage string          `json:"engine_result_message"`
	TxBlob              string          `json:"tx_blob"`
	TxJSON              json.RawMessage `json:"tx_json,omitempty"`
}

// TransactionOptions bound the ledger range searched by GetTransaction.
type TransactionOptions struct {
	MinLedgerVersion uint32
	MaxLedgerVersion *uint32
}

type TransactionOutcome struct {
	Result        string `json:"result"`
	LedgerVersion uint32 `json:"ledgerVersion"`
	IndexInLedger uint32 `json:"indexInLedger"`
	Fee           string `json:"fee"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// TransactionResult is a validated transaction.
type TransactionResult struct {
	Type     string             `json:"type"`
	Address  string             `json:"address"`
	Sequence uint32             `json:"sequence"`
	ID       string             `json:"id"`
	Outcome  TransactionOutcome `json:"outcome"`
	Raw      json.RawMessage    `json:"rawTransaction"`
}

// CombineResult is a multi-signed transaction ready for submission.
type CombineResult struct {
	SignedTransaction string
	ID                string
}
