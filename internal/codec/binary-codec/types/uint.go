package types

import (
	"encoding/binary"
	"math"

	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
)

// UInt8 is a one byte unsigned integer.
type UInt8 struct{}

func (u *UInt8) FromJSON(value any) ([]byte, error) {
	v, err := toUint64(value, math.MaxUint8)
	if err != nil {
		return nil, err
	}
	return []byte{byte(v)}, nil
}

func (u *UInt8) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	b, err := p.ReadByte()
	if err != nil {
		return nil, err
	}
	return uint32(b), nil
}

// UInt16 is a big-endian 16-bit unsigned integer.
type UInt16 struct{}

func (u *UInt16) FromJSON(value any) ([]byte, error) {
	v, err := toUint64(value, math.MaxUint16)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(v))
	return out, nil
}

func (u *UInt16) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	b, err := p.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	return uint32(binary.BigEndian.Uint16(b)), nil
}

// UInt32 is a big-endian 32-bit unsigned integer.
type UInt32 struct{}

func (u *UInt32) FromJSON(value any) ([]byte, error) {
	v, err := toUint64(value, math.MaxUint32)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(v))
	return out, nil
}

func (u *UInt32) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	b, err := p.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	return binary.BigEndian.Uint32(b), nil
}
