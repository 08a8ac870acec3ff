// Package crypto provides the key derivation, signing and hashing primitives
// the gateway needs to produce and combine XRPL transactions locally.
package crypto

import (
	"fmt"
	"strings"
)

// KeyType is the signing algorithm of an XRPL key pair.
type KeyType int

const (
	// KeyTypeUnknown indicates an unknown or invalid key type.
	KeyTypeUnknown KeyType = iota
	// KeyTypeSecp256k1 indicates a secp256k1 (ECDSA) key.
	KeyTypeSecp256k1
	// KeyTypeEd25519 indicates an Ed25519 key.
	KeyTypeEd25519
)

// String returns the name used for the key type in node responses and options.
func (kt KeyType) String() string {
	switch kt {
	case KeyTypeSecp256k1:
		return "secp256k1"
	case KeyTypeEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// ParseKeyType maps an algorithm name to a KeyType. An empty name selects
// secp256k1, the network default.
func ParseKeyType(name string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "secp256k1", "ecdsa-secp256k1":
		return KeyTypeSecp256k1, nil
	case "ed25519":
		return KeyTypeEd25519, nil
	default:
		return KeyTypeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, name)
	}
}

// PublicKeyType determines the key type from a public key's raw bytes.
//
//   - Ed25519: 33 bytes, first byte is 0xED
//   - secp256k1: 33 bytes, first byte is 0x02 or 0x03 (compressed format)
func PublicKeyType(pubKey []byte) KeyType {
	if len(pubKey) != 33 {
		return KeyTypeUnknown
	}

	switch pubKey[0] {
	case 0xED:
		return KeyTypeEd25519
	case 0x02, 0x03:
		return KeyTypeSecp256k1
	default:
		return KeyTypeUnknown
	}
}
