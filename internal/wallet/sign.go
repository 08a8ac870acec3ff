package wallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	binarycodec "github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

// DefaultMaxFeeDrops bounds the Fee a transaction may carry when signed.
const DefaultMaxFeeDrops = 2_000_000

var (
	ErrAlreadySigned     = errors.New("txJSON must not contain `TxnSignature` or `Signers` properties")
	ErrFeeTooHigh        = errors.New("fee exceeds the configured maximum")
	ErrNotSameTx         = errors.New("txJSON is not the same for all signedTransactions")
	ErrNoSigners         = errors.New("signed transaction has no Signers")
	ErrDuplicateSigner   = errors.New("conflicting signatures for the same signer")
	ErrInvalidSignature  = errors.New("signer signature does not verify")
	ErrNoTransactions    = errors.New("no signed transactions to combine")
	ErrMalformedTxJSON   = errors.New("malformed txJSON")
	ErrMalformedSignedTx = errors.New("malformed signed transaction")
)

// SignOptions tune Sign.
type SignOptions struct {
	// SignAs produces a multi-signature for this account instead of a
	// single signature.
	SignAs string
	// MaxFeeDrops rejects transactions whose Fee is larger. Zero selects
	// DefaultMaxFeeDrops.
	MaxFeeDrops uint64
}

// Signed is a serialized transaction and its hash.
type Signed struct {
	TxBlob string
	ID     string
}

// SignJSON signs a transaction given as JSON text.
func (w *Wallet) SignJSON(txJSON string, opts SignOptions) (*Signed, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(txJSON)))
	dec.UseNumber()
	var tx map[string]any
	if err := dec.Decode(&tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTxJSON, err)
	}
	return w.Sign(tx, opts)
}

// Sign signs tx. Without SignAs, SigningPubKey and TxnSignature are set.
// With SignAs, SigningPubKey is empty and a single entry Signers array
// carries this wallet's signature, ready for Combine.
func (w *Wallet) Sign(tx map[string]any, opts SignOptions) (*Signed, error) {
	if _, ok := tx["TxnSignature"]; ok {
		return nil, ErrAlreadySigned
	}
	if _, ok := tx["Signers"]; ok {
		return nil, ErrAlreadySigned
	}
	if err := checkFee(tx, opts.MaxFeeDrops); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(tx)+2)
	for k, v := range tx {
		out[k] = v
	}

	if opts.SignAs == "" {
		out["SigningPubKey"] = w.PublicKey
		data, err := binarycodec.EncodeForSigning(out)
		if err != nil {
			return nil, err
		}
		sig, err := w.sign(data)
		if err != nil {
			return nil, err
		}
		out["TxnSignature"] = sig
	} else {
		signer, err := normalizeSigner(opts.SignAs)
		if err != nil {
			return nil, err
		}
		out["SigningPubKey"] = ""
		data, err := binarycodec.EncodeForMultisigning(out, signer)
		if err != nil {
			return nil, err
		}
		sig, err := w.sign(data)
		if err != nil {
			return nil, err
		}
		out["Signers"] = []any{map[string]any{"Signer": map[string]any{
			"Account":       signer,
			"SigningPubKey": w.PublicKey,
			"TxnSignature":  sig,
		}}}
	}

	blob, err := binarycodec.EncodeBytes(out)
	if err != nil {
		return nil, err
	}
	return &Signed{TxBlob: strings.ToUpper(hex.EncodeToString(blob)), ID: binarycodec.TransactionID(blob)}, nil
}

func normalizeSigner(address string) (string, error) {
	id, _, err := addresscodec.AccountIDFromAddress(address)
	if err != nil {
		return "", fmt.Errorf("signAs: %w", err)
	}
	return addresscodec.EncodeAccountID(id), nil
}

func checkFee(tx map[string]any, maxDrops uint64) error {
	if maxDrops == 0 {
		maxDrops = DefaultMaxFeeDrops
	}
	raw, ok := tx["Fee"]
	if !ok {
		return nil
	}
	var fee string
	switch v := raw.(type) {
	case string:
		fee = v
	case json.Number:
		fee = v.String()
	default:
		return fmt.Errorf("%w: Fee must be a drops string", ErrMalformedTxJSON)
	}
	var drops uint64
	if _, err := fmt.Sscan(fee, &drops); err != nil {
		return fmt.Errorf("%w: Fee %q", ErrMalformedTxJSON, fee)
	}
	if drops > maxDrops {
		return fmt.Errorf("%w: %d > %d drops", ErrFeeTooHigh, drops, maxDrops)
	}
	return nil
}

type signerEntry struct {
	id     crypto.AccountID
	signer map[string]any
}

// Combine merges multi-signed copies of one transaction into a single blob
// with every signer, sorted by account ID as rippled requires. Every input
// must carry Signers, agree on all other fields, and hold valid signatures.
func Combine(signedTransactions []string) (*Signed, error) {
	if len(signedTransactions) == 0 {
		return nil, ErrNoTransactions
	}

	var (
		base    map[string]any
		entries []signerEntry
		seen    = make(map[crypto.AccountID]string)
	)
	for i, blob := range signedTransactions {
		tx, err := binarycodec.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrMalformedSignedTx, i, err)
		}
		signers, ok := tx["Signers"].([]any)
		if !ok || len(signers) == 0 {
			return nil, fmt.Errorf("%w: transaction %d", ErrNoSigners, i)
		}
		delete(tx, "Signers")

		if base == nil {
			base = tx
		} else if !reflect.DeepEqual(base, tx) {
			return nil, ErrNotSameTx
		}

		for _, s := range signers {
			entry, err := parseSigner(s)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrMalformedSignedTx, i, err)
			}
			sig, _ := entry.signer["TxnSignature"].(string)
			if prev, dup := seen[entry.id]; dup {
				if prev != sig {
					return nil, ErrDuplicateSigner
				}
				continue
			}
			seen[entry.id] = sig
			entries = append(entries, entry)
		}
	}

	for _, e := range entries {
		if err := verifySigner(base, e); err != nil {
			return nil, err
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].id.Less(entries[j].id) })
	signers := make([]any, len(entries))
	for i, e := range entries {
		signers[i] = map[string]any{"Signer": e.signer}
	}
	base["Signers"] = signers

	blob, err := binarycodec.EncodeBytes(base)
	if err != nil {
		return nil, err
	}
	return &Signed{TxBlob: strings.ToUpper(hex.EncodeToString(blob)), ID: binarycodec.TransactionID(blob)}, nil
}

func parseSigner(v any) (signerEntry, error) {
	wrapper, ok := v.(map[string]any)
	if !ok {
		return signerEntry{}, errors.New("signer entry is not an object")
	}
	signer, ok := wrapper["Signer"].(map[string]any)
	if !ok {
		return signerEntry{}, errors.New("signer entry has no Signer")
	}
	account, _ := signer["Account"].(string)
	id, err := addresscodec.DecodeClassicAddress(account)
	if err != nil {
		return signerEntry{}, err
	}
	return signerEntry{id: id, signer: signer}, nil
}

func verifySigner(tx map[string]any, e signerEntry) error {
	account, _ := e.signer["Account"].(string)
	pubHex, _ := e.signer["SigningPubKey"].(string)
	sigHex, _ := e.signer["TxnSignature"].(string)
	pub, err := hex.DecodeString(pubHex)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, account)
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, account)
	}
	data, err := binarycodec.EncodeForMultisigning(tx, account)
	if err != nil {
		return err
	}
	if !crypto.Verify(data, pub, sig) {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, account)
	}
	return nil
}
