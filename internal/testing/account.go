package testing

import (
	"crypto/sha512"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/wallet"
)

// MasterSeed is the family seed of the genesis account, derived from
// "masterpassphrase".
const MasterSeed = "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"

// Account is a test account with a deterministic family seed.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	KeyType crypto.KeyType

	// Secret is the encoded family seed, as passed to SignTransaction.
	Secret string

	// Address is the classic address (e.g., "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh").
	Address string

	// PublicKey is the upper case hex public key.
	PublicKey string
}

// NewAccount creates a new test account with a deterministic keypair derived from the name.
// Using the same name will always produce the same account, making tests reproducible.
// By default, uses secp256k1 key derivation.
func NewAccount(name string) *Account {
	return NewAccountWithKeyType(name, crypto.KeyTypeSecp256k1)
}

// NewAccountWithKeyType creates a new test account with the specified key type.
func NewAccountWithKeyType(name string, keyType crypto.KeyType) *Account {
	hash := sha512.Sum512([]byte(name))
	seed, err := addresscodec.EncodeSeed(hash[:crypto.SeedSize], keyType)
	if err != nil {
		panic("failed to encode seed for account " + name + ": " + err.Error())
	}
	return NewAccountFromSeed(name, seed)
}

// MasterAccount returns the genesis account rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh.
func MasterAccount() *Account {
	return NewAccountFromSeed("master", MasterSeed)
}

// NewAccountFromSeed creates a test account from an encoded family seed.
func NewAccountFromSeed(name, seed string) *Account {
	w, err := wallet.FromSeed(seed)
	if err != nil {
		panic("failed to restore account " + name + ": " + err.Error())
	}
	defer w.Close()

	return &Account{
		Name:      name,
		KeyType:   w.KeyType,
		Secret:    seed,
		Address:   w.ClassicAddress,
		PublicKey: w.PublicKey,
	}
}

// Wallet restores the account's signing wallet. Close it when done.
func (a *Account) Wallet() *wallet.Wallet {
	w, err := wallet.FromSeed(a.Secret)
	if err != nil {
		panic("failed to restore account " + a.Name + ": " + err.Error())
	}
	return w
}

// XAddress encodes the account as a main network X-address with an
// optional tag.
func (a *Account) XAddress(tag *uint32) string {
	x, err := addresscodec.ClassicAddressToXAddress(a.Address, tag, false)
	if err != nil {
		panic("failed to encode X-address for " + a.Name + ": " + err.Error())
	}
	return x
}

func (a *Account) String() string {
	return a.Name + "(" + a.Address + ")"
}
