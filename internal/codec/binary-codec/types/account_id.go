package types

import (
	"fmt"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

// AccountID is a classic address in JSON and 20 VL encoded bytes on the wire.
type AccountID struct{}

func (a *AccountID) FromJSON(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("account must be a string, got %T", value)
	}
	id, err := addresscodec.DecodeClassicAddress(s)
	if err != nil {
		return nil, err
	}
	return id[:], nil
}

func (a *AccountID) ToJSON(p interfaces.BinaryParser, opts ...int) (any, error) {
	length := crypto.AccountIDSize
	if len(opts) > 0 {
		length = opts[0]
	}
	b, err := p.ReadBytes(length)
	if err != nil {
		return nil, err
	}
	id, ok := crypto.AccountIDFromBytes(b)
	if !ok {
		return nil, fmt.Errorf("account ID must be %d bytes, got %d", crypto.AccountIDSize, len(b))
	}
	return addresscodec.EncodeAccountID(id), nil
}
