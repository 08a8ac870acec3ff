package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
)

var ErrInvalidHashLength = errors.New("invalid hash length")

// Hash is a fixed width hex value.
type Hash struct {
	length int
}

// NewHash128 returns the 16-byte hash type.
func NewHash128() *Hash { return &Hash{length: 16} }

// NewHash256 returns the 32-byte hash type.
func NewHash256() *Hash { return &Hash{length: 32} }

func (h *Hash) FromJSON(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("hash must be a hex string, got %T", value)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != h.length {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidHashLength, h.length, len(b))
	}
	return b, nil
}

func (h *Hash) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	b, err := p.ReadBytes(h.length)
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Blob is variable length binary data, hex encoded in JSON.
type Blob struct{}

func (b *Blob) FromJSON(value any) ([]byte, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("blob must be a hex string, got %T", value)
	}
	return hex.DecodeString(s)
}

// ToJSON reads opts[0] bytes, the length the parser read from the VL prefix.
func (b *Blob) ToJSON(p interfaces.BinaryParser, opts ...int) (any, error) {
	if len(opts) == 0 {
		return nil, errors.New("blob length not provided")
	}
	raw, err := p.ReadBytes(opts[0])
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}
