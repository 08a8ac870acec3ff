package ledgerclient

import (
	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/wallet"
)

// The methods in this file never contact the node.

func (c *Client) GenerateAddress(opts GenerateOptions) (*GeneratedAddress, error) {
	w, err := generate(opts)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	x, err := w.XAddress(nil, opts.Test)
	if err != nil {
		return nil, newError(ErrValidation, NameValidation, "encode X-address: %v", err)
	}
	return &GeneratedAddress{
		XAddress:       x,
		ClassicAddress: w.ClassicAddress,
		Address:        w.ClassicAddress,
		Secret:         w.Seed,
	}, nil
}

func (c *Client) GenerateXAddress(opts GenerateOptions) (*GeneratedXAddress, error) {
	w, err := generate(opts)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	x, err := w.XAddress(nil, opts.Test)
	if err != nil {
		return nil, newError(ErrValidation, NameValidation, "encode X-address: %v", err)
	}
	return &GeneratedXAddress{XAddress: x, Secret: w.Seed}, nil
}

func generate(opts GenerateOptions) (*wallet.Wallet, error) {
	keyType := opts.Algorithm
	if keyType == crypto.KeyTypeUnknown {
		keyType = crypto.KeyTypeSecp256k1
	}
	w, err := wallet.Generate(keyType)
	if err != nil {
		return nil, validationError("generate %s wallet: %v", keyType, err)
	}
	return w, nil
}

// IsValidAddress accepts classic addresses and X-addresses.
func (c *Client) IsValidAddress(address string) bool {
	return addresscodec.IsValidAddress(address)
}

// Sign signs txJSON with the family seed secret. With opts.SignAs the
// result carries a multi-signature for that account.
func (c *Client) Sign(txJSON, secret string, opts SignOptions) (*SignResult, error) {
	w, err := wallet.FromSeed(secret)
	if err != nil {
		return nil, validationError("invalid secret")
	}
	defer w.Close()

	signed, err := w.SignJSON(txJSON, wallet.SignOptions{SignAs: opts.SignAs, MaxFeeDrops: c.cfg.MaxFeeDrops})
	if err != nil {
		return nil, validationError("%v", err)
	}
	return &SignResult{SignedTransaction: signed.TxBlob, ID: signed.ID}, nil
}

// Combine merges multi-signed blobs of the same transaction.
func (c *Client) Combine(signedTransactions []string) (*CombineResult, error) {
	combined, err := wallet.Combine(signedTransactions)
	if err != nil {
		return nil, validationError("%v", err)
	}
	return &CombineResult{SignedTransaction: combined.TxBlob, ID: combined.ID}, nil
}
