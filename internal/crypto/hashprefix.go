package crypto

import (
	"encoding/binary"

	"github.com/LeJamon/goXRPLGateway/internal/crypto/common"
)

// HashPrefix separates the hash spaces of the different objects XRPL signs or hashes.
type HashPrefix uint32

const (
	// HashPrefixTransactionID is the prefix for transaction ID calculation (TXN\0).
	HashPrefixTransactionID HashPrefix = 0x54584E00

	// HashPrefixTxSign is the prefix for single-signing a transaction (STX\0).
	HashPrefixTxSign HashPrefix = 0x53545800

	// HashPrefixTxMultiSign is the prefix for multi-signing a transaction (SMT\0).
	HashPrefixTxMultiSign HashPrefix = 0x534D5400
)

// Bytes returns the hash prefix as a 4-byte big-endian slice.
func (hp HashPrefix) Bytes() []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(hp))
	return b
}

// Prepend returns prefix || data in a new slice.
func (hp HashPrefix) Prepend(data []byte) []byte {
	out := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(out, uint32(hp))
	copy(out[4:], data)
	return out
}

// SigningData is the message a single signer signs: STX\0 || tx.
func SigningData(txFields []byte) []byte {
	return HashPrefixTxSign.Prepend(txFields)
}

// MultiSigningData is the message one signer of a multi-signed transaction
// signs: SMT\0 || tx || signer account ID. The account ID binds the
// signature to that signer.
func MultiSigningData(txFields []byte, signer AccountID) []byte {
	out := make([]byte, 0, 4+len(txFields)+AccountIDSize)
	out = append(out, HashPrefixTxMultiSign.Bytes()...)
	out = append(out, txFields...)
	return append(out, signer[:]...)
}

// TransactionID hashes a fully serialized, signed transaction into its ID.
func TransactionID(txBlob []byte) [32]byte {
	return common.Sha512Half(HashPrefixTransactionID.Prepend(txBlob))
}
