package crypto

import (
	"bytes"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Canonicality is the canonical form status of a transaction signature.
type Canonicality int

const (
	// CanonicityNone marks a malformed or out-of-range signature.
	CanonicityNone Canonicality = iota
	// CanonicityCanonical marks a well formed ECDSA signature with a high S value.
	CanonicityCanonical
	// CanonicityFullyCanonical marks a signature rippled accepts under
	// tfFullyCanonicalSig.
	CanonicityFullyCanonical
)

var (
	secp256k1Order     = secp256k1.S256().N
	secp256k1HalfOrder = new(big.Int).Rsh(secp256k1Order, 1)

	// ed25519Order is L, big-endian.
	ed25519Order = []byte{
		0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x14, 0xDE, 0xF9, 0xDE, 0xA2, 0xF7, 0x9C, 0xD6,
		0x58, 0x12, 0x63, 0x1A, 0x5C, 0xF5, 0xD3, 0xED,
	}
)

// SignatureCanonicality classifies sig for the given public key's algorithm.
func SignatureCanonicality(pubKey, sig []byte) Canonicality {
	switch PublicKeyType(pubKey) {
	case KeyTypeSecp256k1:
		return ECDSACanonicality(sig)
	case KeyTypeEd25519:
		if ed25519Canonical(sig) {
			return CanonicityFullyCanonical
		}
	}
	return CanonicityNone
}

// ECDSACanonicality checks a DER encoded ECDSA signature:
// 0x30 <len> 0x02 <r-len> <r> 0x02 <s-len> <s>, with 0 < R,S < N.
// It is fully canonical when additionally S <= N/2.
func ECDSACanonicality(sig []byte) Canonicality {
	if len(sig) < 8 || len(sig) > 72 {
		return CanonicityNone
	}
	if sig[0] != 0x30 || int(sig[1]) != len(sig)-2 {
		return CanonicityNone
	}

	rBytes, rest, ok := parseDERInteger(sig[2:])
	if !ok {
		return CanonicityNone
	}
	sBytes, rest, ok := parseDERInteger(rest)
	if !ok || len(rest) != 0 {
		return CanonicityNone
	}

	r := new(big.Int).SetBytes(rBytes)
	s := new(big.Int).SetBytes(sBytes)
	if r.Sign() <= 0 || r.Cmp(secp256k1Order) >= 0 {
		return CanonicityNone
	}
	if s.Sign() <= 0 || s.Cmp(secp256k1Order) >= 0 {
		return CanonicityNone
	}
	if s.Cmp(secp256k1HalfOrder) <= 0 {
		return CanonicityFullyCanonical
	}
	return CanonicityCanonical
}

// parseDERInteger reads 0x02 <len> <bytes> and returns the integer bytes and
// the remainder. Negative and non-minimal encodings are rejected.
func parseDERInteger(data []byte) ([]byte, []byte, bool) {
	if len(data) < 2 || data[0] != 0x02 {
		return nil, nil, false
	}
	length := int(data[1])
	if length < 1 || length > 33 || len(data) < 2+length {
		return nil, nil, false
	}

	n := data[2 : 2+length]
	if n[0]&0x80 != 0 {
		return nil, nil, false
	}
	if n[0] == 0 && (length == 1 || n[1]&0x80 == 0) {
		return nil, nil, false
	}
	return n, data[2+length:], true
}

// ed25519Canonical requires the little-endian S half of the signature to be below L.
func ed25519Canonical(sig []byte) bool {
	if len(sig) != 64 {
		return false
	}
	s := make([]byte, 32)
	for i := 0; i < 32; i++ {
		s[i] = sig[63-i]
	}
	return bytes.Compare(s, ed25519Order) < 0
}
