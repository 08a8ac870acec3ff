// Package addresscodec encodes and decodes XRPL seeds, classic addresses,
// public keys and X-addresses.
package addresscodec

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

const (
	// AccountAddressPrefix is the version byte of classic addresses ("r...").
	AccountAddressPrefix = 0x00
	// AccountPublicKeyPrefix is the version byte of account public keys ("a...").
	AccountPublicKeyPrefix = 0x23
	// AccountSecretKeyPrefix is the version byte of account secret keys ("p...").
	AccountSecretKeyPrefix = 0x22
	// FamilySeedPrefix is the version byte of secp256k1 seeds ("s...").
	FamilySeedPrefix = 0x21
	// NodePublicKeyPrefix is the version byte of node public keys ("n...").
	NodePublicKeyPrefix = 0x1C

	// AccountIDLength is the size of a decoded classic address payload.
	AccountIDLength = 20
	// SeedLength is the size of a decoded seed payload.
	SeedLength = 16
	// PublicKeyLength is the size of a compressed or prefixed public key.
	PublicKeyLength = 33

	// Alphabet is the XRPL base58 dictionary.
	Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

	checksumLength = 4
)

// ED25519SeedPrefix is the three-byte version of ed25519 seeds ("sEd...").
var ED25519SeedPrefix = []byte{0x01, 0xE1, 0x4B}

var (
	ErrInvalidSeed           = errors.New("invalid seed; could not determine encoding algorithm")
	ErrChecksum              = errors.New("checksum mismatch")
	ErrInvalidBase58         = errors.New("invalid base58 string")
	ErrInvalidClassicAddress = errors.New("invalid classic address")
	ErrInvalidPublicKey      = errors.New("invalid public key")

	xrplAlphabet = base58.NewAlphabet(Alphabet)
)

// Base58CheckEncode encodes prefix || payload || checksum with the XRPL alphabet.
func Base58CheckEncode(payload []byte, prefix ...byte) string {
	buf := make([]byte, 0, len(prefix)+len(payload)+checksumLength)
	buf = append(buf, prefix...)
	buf = append(buf, payload...)
	buf = append(buf, checksum(buf)...)
	return base58.EncodeAlphabet(buf, xrplAlphabet)
}

// Base58CheckDecode decodes s and verifies its checksum. The returned slice
// still carries the version prefix.
func Base58CheckDecode(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrInvalidBase58
	}
	raw, err := base58.DecodeAlphabet(s, xrplAlphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase58, err)
	}
	if len(raw) < checksumLength+1 {
		return nil, ErrInvalidBase58
	}
	body, sum := raw[:len(raw)-checksumLength], raw[len(raw)-checksumLength:]
	if !bytes.Equal(checksum(body), sum) {
		return nil, ErrChecksum
	}
	return body, nil
}

func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}

// EncodeSeed encodes 16 bytes of entropy as a family seed for keyType.
func EncodeSeed(entropy []byte, keyType crypto.KeyType) (string, error) {
	if len(entropy) != SeedLength {
		return "", ErrInvalidSeed
	}
	switch keyType {
	case crypto.KeyTypeSecp256k1:
		return Base58CheckEncode(entropy, FamilySeedPrefix), nil
	case crypto.KeyTypeEd25519:
		return Base58CheckEncode(entropy, ED25519SeedPrefix...), nil
	default:
		return "", crypto.ErrUnsupportedKeyType
	}
}

// DecodeSeed returns the entropy of a family seed and the key type its
// version prefix selects.
func DecodeSeed(seed string) ([]byte, crypto.KeyType, error) {
	body, err := Base58CheckDecode(seed)
	if err != nil {
		return nil, crypto.KeyTypeUnknown, ErrInvalidSeed
	}
	switch {
	case len(body) == len(ED25519SeedPrefix)+SeedLength && bytes.HasPrefix(body, ED25519SeedPrefix):
		return body[len(ED25519SeedPrefix):], crypto.KeyTypeEd25519, nil
	case len(body) == 1+SeedLength && body[0] == FamilySeedPrefix:
		return body[1:], crypto.KeyTypeSecp256k1, nil
	default:
		return nil, crypto.KeyTypeUnknown, ErrInvalidSeed
	}
}

// EncodeAccountID encodes a 20-byte account ID as a classic address.
func EncodeAccountID(id crypto.AccountID) string {
	return Base58CheckEncode(id[:], AccountAddressPrefix)
}

// DecodeClassicAddress returns the account ID behind a classic address.
func DecodeClassicAddress(address string) (crypto.AccountID, error) {
	var id crypto.AccountID
	body, err := Base58CheckDecode(address)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrInvalidClassicAddress, err)
	}
	if len(body) != 1+AccountIDLength || body[0] != AccountAddressPrefix {
		return id, ErrInvalidClassicAddress
	}
	copy(id[:], body[1:])
	return id, nil
}

// IsValidClassicAddress reports whether address decodes to an account ID.
func IsValidClassicAddress(address string) bool {
	_, err := DecodeClassicAddress(address)
	return err == nil
}

// EncodeClassicAddressFromPublicKey derives the classic address of a public key.
func EncodeClassicAddressFromPublicKey(pubKey []byte) (string, error) {
	if len(pubKey) != PublicKeyLength {
		return "", ErrInvalidPublicKey
	}
	return EncodeAccountID(crypto.CalcAccountID(pubKey)), nil
}

// EncodeClassicAddressFromPublicKeyHex is EncodeClassicAddressFromPublicKey
// for hex encoded keys.
func EncodeClassicAddressFromPublicKeyHex(pubKeyHex string) (string, error) {
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return EncodeClassicAddressFromPublicKey(pubKey)
}

// EncodeAccountPublicKey encodes a public key in the "a..." form.
func EncodeAccountPublicKey(pubKey []byte) (string, error) {
	if len(pubKey) != PublicKeyLength {
		return "", ErrInvalidPublicKey
	}
	return Base58CheckEncode(pubKey, AccountPublicKeyPrefix), nil
}

// EncodeNodePublicKey encodes a public key in the "n..." form.
func EncodeNodePublicKey(pubKey []byte) (string, error) {
	if len(pubKey) != PublicKeyLength {
		return "", ErrInvalidPublicKey
	}
	return Base58CheckEncode(pubKey, NodePublicKeyPrefix), nil
}
