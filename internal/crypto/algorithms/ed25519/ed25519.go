// Package ed25519 implements XRPL Ed25519 key derivation and signing.
package ed25519

import (
	"crypto/ed25519"
	"errors"

	"github.com/LeJamon/goXRPLGateway/internal/crypto/common"
)

// KeyPrefix marks both halves of an Ed25519 key pair in XRPL encodings.
const KeyPrefix = 0xED

var (
	ErrValidatorNotSupported = errors.New("validator keypairs cannot use Ed25519")
	ErrInvalidPrivateKey     = errors.New("invalid ed25519 private key")
)

// DeriveKeypair derives the key pair of an ed25519 family seed. Both keys are
// 33 bytes with the 0xED prefix; the private key holds the 32-byte seed
// sha512Half(seed).
func DeriveKeypair(seed []byte, validator bool) (privKey, pubKey []byte, err error) {
	if validator {
		return nil, nil, ErrValidatorNotSupported
	}

	material := common.Sha512Half(seed)
	key := ed25519.NewKeyFromSeed(material[:])

	privKey = append([]byte{KeyPrefix}, material[:]...)
	pubKey = append([]byte{KeyPrefix}, key.Public().(ed25519.PublicKey)...)
	return privKey, pubKey, nil
}

// Sign signs message directly; Ed25519 does its own hashing.
func Sign(message, privKey []byte) ([]byte, error) {
	if len(privKey) != 33 || privKey[0] != KeyPrefix {
		return nil, ErrInvalidPrivateKey
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(privKey[1:]), message), nil
}

// Verify checks an Ed25519 signature against a prefixed public key.
func Verify(message, pubKey, signature []byte) bool {
	if len(pubKey) != 33 || pubKey[0] != KeyPrefix {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey[1:]), message, signature)
}

// PublicKey returns the prefixed public key for a prefixed private key.
func PublicKey(privKey []byte) ([]byte, error) {
	if len(privKey) != 33 || privKey[0] != KeyPrefix {
		return nil, ErrInvalidPrivateKey
	}
	pub := ed25519.NewKeyFromSeed(privKey[1:]).Public().(ed25519.PublicKey)
	return append([]byte{KeyPrefix}, pub...), nil
}
