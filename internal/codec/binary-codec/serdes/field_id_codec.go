// Package serdes reads and writes field headers, variable length prefixes
// and field values of the XRPL binary format.
package serdes

import (
	"errors"

	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"
)

const (
	// ObjectEndMarker terminates an inner STObject.
	ObjectEndMarker byte = 0xE1
	// ArrayEndMarker terminates an STArray.
	ArrayEndMarker byte = 0xF1

	maxSingleByteLength = 192
	maxDoubleByteLength = 12480
	maxTripleByteLength = 918744
)

var (
	ErrInvalidFieldHeader = errors.New("invalid field header")
	ErrLengthOutOfRange   = errors.New("variable length out of range")
)

// EncodeFieldID encodes a field header into one to three bytes.
func EncodeFieldID(fh definitions.FieldHeader) ([]byte, error) {
	t, n := fh.TypeCode, fh.FieldCode
	if t < 1 || t > 255 || n < 1 || n > 255 {
		return nil, ErrInvalidFieldHeader
	}
	switch {
	case t < 16 && n < 16:
		return []byte{byte(t<<4 | n)}, nil
	case t >= 16 && n < 16:
		return []byte{byte(n), byte(t)}, nil
	case t < 16 && n >= 16:
		return []byte{byte(t << 4), byte(n)}, nil
	default:
		return []byte{0, byte(t), byte(n)}, nil
	}
}

// EncodeVariableLength encodes the length prefix of a VL field.
func EncodeVariableLength(length int) ([]byte, error) {
	switch {
	case length < 0:
		return nil, ErrLengthOutOfRange
	case length <= maxSingleByteLength:
		return []byte{byte(length)}, nil
	case length <= maxDoubleByteLength:
		l := length - 193
		return []byte{byte(193 + (l >> 8)), byte(l & 0xFF)}, nil
	case length <= maxTripleByteLength:
		l := length - 12481
		return []byte{byte(241 + (l >> 16)), byte((l >> 8) & 0xFF), byte(l & 0xFF)}, nil
	default:
		return nil, ErrLengthOutOfRange
	}
}
