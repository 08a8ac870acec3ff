// Package secp256k1 implements XRPL family-seed key derivation and
// transaction signing on the secp256k1 curve.
package secp256k1

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/LeJamon/goXRPLGateway/internal/crypto/common"
)

// PrivateKeyPrefix is prepended to 32-byte private keys in their hex form.
const PrivateKeyPrefix = 0x00

var (
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")
	ErrInvalidPublicKey  = errors.New("invalid secp256k1 public key")
	ErrNoValidScalar     = errors.New("no valid scalar derived from seed")
)

// DeriveKeypair derives the account key pair of a family seed. The returned
// private key is 33 bytes (0x00 prefix) and the public key is the 33-byte
// compressed point. When validator is true the root (generator) key pair is
// returned instead of the first account key pair.
func DeriveKeypair(seed []byte, validator bool) (privKey, pubKey []byte, err error) {
	root, err := deriveScalar(seed, nil)
	if err != nil {
		return nil, nil, err
	}

	priv := root
	if !validator {
		rootPub := secp256k1.NewPrivateKey(&root).PubKey().SerializeCompressed()
		var accountIndex uint32
		tweak, err := deriveScalar(rootPub, &accountIndex)
		if err != nil {
			return nil, nil, err
		}
		priv.Add(&tweak)
		if priv.IsZero() {
			return nil, nil, ErrNoValidScalar
		}
	}

	raw := priv.Bytes()
	_, pub := btcec.PrivKeyFromBytes(raw[:])

	privKey = make([]byte, 33)
	privKey[0] = PrivateKeyPrefix
	copy(privKey[1:], raw[:])
	return privKey, pub.SerializeCompressed(), nil
}

// deriveScalar returns the first sha512Half(input || [discriminator] || i)
// that is a valid private key scalar.
func deriveScalar(input []byte, discriminator *uint32) (secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	buf := make([]byte, 4)
	for i := uint32(0); i < 0xFFFFFFFF; i++ {
		parts := [][]byte{input}
		if discriminator != nil {
			d := make([]byte, 4)
			binary.BigEndian.PutUint32(d, *discriminator)
			parts = append(parts, d)
		}
		binary.BigEndian.PutUint32(buf, i)
		parts = append(parts, buf)

		candidate := common.Sha512Half(parts...)
		overflow := s.SetByteSlice(candidate[:])
		if !overflow && !s.IsZero() {
			return s, nil
		}
	}
	return s, ErrNoValidScalar
}

// Sign signs sha512Half(message) and returns a DER encoded, low-S signature.
// privKey may carry the 0x00 prefix.
func Sign(message, privKey []byte) ([]byte, error) {
	raw, err := stripPrefix(privKey)
	if err != nil {
		return nil, err
	}
	key, _ := btcec.PrivKeyFromBytes(raw)
	digest := common.Sha512Half(message)
	return ecdsa.Sign(key, digest[:]).Serialize(), nil
}

// Verify checks a DER signature over sha512Half(message).
func Verify(message, pubKey, signature []byte) bool {
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	digest := common.Sha512Half(message)
	return sig.Verify(digest[:], pub)
}

// PublicKey returns the compressed public key of a (possibly prefixed) private key.
func PublicKey(privKey []byte) ([]byte, error) {
	raw, err := stripPrefix(privKey)
	if err != nil {
		return nil, err
	}
	_, pub := btcec.PrivKeyFromBytes(raw)
	return pub.SerializeCompressed(), nil
}

func stripPrefix(privKey []byte) ([]byte, error) {
	switch {
	case len(privKey) == 33 && privKey[0] == PrivateKeyPrefix:
		return privKey[1:], nil
	case len(privKey) == 32:
		return privKey, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPrivateKey, len(privKey))
	}
}
