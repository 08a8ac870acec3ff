package crypto

import (
	"bytes"
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an XRPL account ID in bytes.
const AccountIDSize = 20

// AccountID is the 160-bit identifier behind a classic address.
type AccountID [AccountIDSize]byte

// CalcAccountID computes RIPEMD160(SHA256(publicKey)). The whole public key,
// including its type prefix, is hashed for both key types.
func CalcAccountID(publicKey []byte) AccountID {
	sha := sha256.Sum256(publicKey)

	h := ripemd160.New()
	h.Write(sha[:])

	var id AccountID
	copy(id[:], h.Sum(nil))
	return id
}

// AccountIDFromBytes copies b into an AccountID. ok is false when b is not
// exactly 20 bytes long.
func AccountIDFromBytes(b []byte) (id AccountID, ok bool) {
	if len(b) != AccountIDSize {
		return id, false
	}
	copy(id[:], b)
	return id, true
}

// Less orders account IDs numerically, the order rippled requires for the
// Signers array of a multi-signed transaction.
func (id AccountID) Less(other AccountID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// IsZero reports whether the account ID is all zeros.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}
