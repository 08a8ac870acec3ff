// Package wallet derives accounts from family seeds and signs, multi-signs
// and combines transactions without contacting a node.
package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

var (
	ErrInvalidSecret = errors.New("invalid secret")
	ErrClosed        = errors.New("wallet is closed")
)

// Wallet is an account key pair together with the seed it came from.
type Wallet struct {
	Seed           string
	KeyType        crypto.KeyType
	ClassicAddress string
	PublicKey      string

	keys *crypto.KeyPair
}

// Generate creates a wallet from fresh entropy.
func Generate(keyType crypto.KeyType) (*Wallet, error) {
	entropy, err := crypto.RandomSeed()
	if err != nil {
		return nil, err
	}
	defer crypto.SecureErase(entropy)

	seed, err := addresscodec.EncodeSeed(entropy, keyType)
	if err != nil {
		return nil, err
	}
	return fromEntropy(seed, entropy, keyType)
}

// FromSeed restores the wallet of an encoded family seed. The key type is
// taken from the seed's version prefix.
func FromSeed(seed string) (*Wallet, error) {
	entropy, keyType, err := addresscodec.DecodeSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return fromEntropy(seed, entropy, keyType)
}

func fromEntropy(seed string, entropy []byte, keyType crypto.KeyType) (*Wallet, error) {
	keys, err := crypto.DeriveKeyPair(entropy, keyType)
	if err != nil {
		return nil, err
	}
	address, err := addresscodec.EncodeClassicAddressFromPublicKey(keys.PublicKey)
	if err != nil {
		keys.Close()
		return nil, err
	}
	return &Wallet{
		Seed:           seed,
		KeyType:        keyType,
		ClassicAddress: address,
		PublicKey:      strings.ToUpper(hex.EncodeToString(keys.PublicKey)),
		keys:           keys,
	}, nil
}

// XAddress encodes the wallet's account as an X-address.
func (w *Wallet) XAddress(tag *uint32, testnet bool) (string, error) {
	return addresscodec.ClassicAddressToXAddress(w.ClassicAddress, tag, testnet)
}

// Close erases the private key. The wallet cannot sign afterwards.
func (w *Wallet) Close() {
	if w.keys != nil {
		w.keys.Close()
		w.keys = nil
	}
}

func (w *Wallet) sign(message []byte) (string, error) {
	if w.keys == nil {
		return "", ErrClosed
	}
	sig, err := w.keys.Sign(message)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(sig)), nil
}
