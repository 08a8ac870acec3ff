package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/LeJamon/goXRPLGateway/internal/crypto/algorithms/ed25519"
	"github.com/LeJamon/goXRPLGateway/internal/crypto/algorithms/secp256k1"
)

// SeedSize is the length of a family seed's entropy.
const SeedSize = 16

var (
	// ErrUnsupportedKeyType is returned when an unsupported key type is requested.
	ErrUnsupportedKeyType = errors.New("unsupported key type")
	// ErrRandomGeneration is returned when random number generation fails.
	ErrRandomGeneration = errors.New("failed to generate random bytes")
	// ErrInvalidSeedLength is returned for seeds that are not 16 bytes.
	ErrInvalidSeedLength = errors.New("seed must be 16 bytes")
)

// KeyPair is a derived account key pair. The private key never leaves the
// process; callers should Close the pair once they are done signing.
type KeyPair struct {
	Type       KeyType
	PublicKey  []byte
	privateKey []byte
}

// RandomSeed returns 16 bytes of entropy from the system CSPRNG.
func RandomSeed() ([]byte, error) {
	return randomBytes(rand.Reader, SeedSize)
}

func randomBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomGeneration, err)
	}
	return b, nil
}

// DeriveKeyPair derives the first account key pair of a family seed.
func DeriveKeyPair(seed []byte, keyType KeyType) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, ErrInvalidSeedLength
	}

	var (
		priv, pub []byte
		err       error
	)
	switch keyType {
	case KeyTypeSecp256k1:
		priv, pub, err = secp256k1.DeriveKeypair(seed, false)
	case KeyTypeEd25519:
		priv, pub, err = ed25519.DeriveKeypair(seed, false)
	default:
		return nil, ErrUnsupportedKeyType
	}
	if err != nil {
		return nil, fmt.Errorf("derive %s keypair: %w", keyType, err)
	}
	return &KeyPair{Type: keyType, PublicKey: pub, privateKey: priv}, nil
}

// AccountID returns the account the key pair controls as its master key.
func (kp *KeyPair) AccountID() AccountID {
	return CalcAccountID(kp.PublicKey)
}

// Sign signs message with the pair's private key. secp256k1 signatures are
// DER encoded with a low S value.
func (kp *KeyPair) Sign(message []byte) ([]byte, error) {
	if kp.privateKey == nil {
		return nil, errors.New("key pair is closed")
	}
	switch kp.Type {
	case KeyTypeSecp256k1:
		return secp256k1.Sign(message, kp.privateKey)
	case KeyTypeEd25519:
		return ed25519.Sign(message, kp.privateKey)
	default:
		return nil, ErrUnsupportedKeyType
	}
}

// Close erases the private key.
func (kp *KeyPair) Close() {
	SecureErase(kp.privateKey)
	kp.privateKey = nil
}

// Verify checks signature over message for the algorithm implied by pubKey.
func Verify(message, pubKey, signature []byte) bool {
	switch PublicKeyType(pubKey) {
	case KeyTypeSecp256k1:
		return secp256k1.Verify(message, pubKey, signature)
	case KeyTypeEd25519:
		return ed25519.Verify(message, pubKey, signature)
	default:
		return false
	}
}

// SecureErase zeroes b in place.
func SecureErase(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
