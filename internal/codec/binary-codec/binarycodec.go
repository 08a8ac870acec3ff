// Package binarycodec converts XRPL transactions between their JSON form and
// the canonical binary form that is signed, hashed and submitted.
package binarycodec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/serdes"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

var ErrTrailingBytes = errors.New("trailing bytes after transaction")

// Encode serializes a transaction and returns upper case hex.
func Encode(tx map[string]any) (string, error) {
	b, err := EncodeBytes(tx)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// EncodeBytes serializes a transaction.
func EncodeBytes(tx map[string]any) ([]byte, error) {
	return (&types.STObject{}).FromJSON(tx)
}

// EncodeForSigning returns the single-signing message: STX\0 followed by
// the transaction without TxnSignature and Signers.
func EncodeForSigning(tx map[string]any) ([]byte, error) {
	b, err := (&types.STObject{OnlySigning: true}).FromJSON(tx)
	if err != nil {
		return nil, err
	}
	return crypto.SigningData(b), nil
}

// EncodeForMultisigning returns the message signer signs as one of the
// signers of tx. SigningPubKey must be empty for multi-signed transactions.
func EncodeForMultisigning(tx map[string]any, signer string) ([]byte, error) {
	id, err := addresscodec.DecodeClassicAddress(signer)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}

	withEmptyKey := make(map[string]any, len(tx))
	for k, v := range tx {
		withEmptyKey[k] = v
	}
	withEmptyKey["SigningPubKey"] = ""

	b, err := (&types.STObject{OnlySigning: true}).FromJSON(withEmptyKey)
	if err != nil {
		return nil, err
	}
	return crypto.MultiSigningData(b, id), nil
}

// Decode parses a hex encoded transaction into its JSON form.
func Decode(blob string) (map[string]any, error) {
	b, err := hex.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return DecodeBytes(b)
}

// DecodeBytes parses a serialized transaction.
func DecodeBytes(b []byte) (map[string]any, error) {
	p := serdes.NewBinaryParser(b, definitions.Get())
	v, err := (&types.STObject{}).ToJSON(p)
	if err != nil {
		return nil, err
	}
	if p.HasMore() {
		return nil, ErrTrailingBytes
	}
	return v.(map[string]any), nil
}

// TransactionID returns the upper case hex hash of a serialized transaction.
func TransactionID(blob []byte) string {
	id := crypto.TransactionID(blob)
	return strings.ToUpper(hex.EncodeToString(id[:]))
}
