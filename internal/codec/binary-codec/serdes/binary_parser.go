package serdes

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/serdes/interfaces"
)

var ErrParserOutOfBounds = errors.New("parser out of bounds")

// BinaryParser reads a serialized object front to back.
type BinaryParser struct {
	data []byte
	defs interfaces.Definitions
}

// NewBinaryParser returns a parser over data.
func NewBinaryParser(data []byte, defs interfaces.Definitions) *BinaryParser {
	return &BinaryParser{data: data, defs: defs}
}

// ReadByte consumes one byte.
func (p *BinaryParser) ReadByte() (byte, error) {
	if len(p.data) == 0 {
		return 0, ErrParserOutOfBounds
	}
	b := p.data[0]
	p.data = p.data[1:]
	return b, nil
}

// Peek returns the next byte without consuming it.
func (p *BinaryParser) Peek() (byte, error) {
	if len(p.data) == 0 {
		return 0, ErrParserOutOfBounds
	}
	return p.data[0], nil
}

// ReadBytes consumes n bytes.
func (p *BinaryParser) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(p.data) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrParserOutOfBounds, n, len(p.data))
	}
	out := p.data[:n]
	p.data = p.data[n:]
	return out, nil
}

// HasMore reports whether unread bytes remain.
func (p *BinaryParser) HasMore() bool {
	return len(p.data) > 0
}

// ReadField reads a field header and resolves it to a field instance.
func (p *BinaryParser) ReadField() (*definitions.FieldInstance, error) {
	first, err := p.ReadByte()
	if err != nil {
		return nil, err
	}

	typeCode := int32(first >> 4)
	fieldCode := int32(first & 0x0F)
	if typeCode == 0 {
		b, err := p.ReadByte()
		if err != nil {
			return nil, err
		}
		if b < 16 {
			return nil, ErrInvalidFieldHeader
		}
		typeCode = int32(b)
	}
	if fieldCode == 0 {
		b, err := p.ReadByte()
		if err != nil {
			return nil, err
		}
		if b < 16 {
			return nil, ErrInvalidFieldHeader
		}
		fieldCode = int32(b)
	}

	name, err := p.defs.GetFieldNameByFieldHeader(p.defs.CreateFieldHeader(typeCode, fieldCode))
	if err != nil {
		return nil, err
	}
	return p.defs.GetFieldInstanceByFieldName(name)
}

// ReadVariableLength decodes a VL length prefix.
func (p *BinaryParser) ReadVariableLength() (int, error) {
	b1, err := p.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b1 <= maxSingleByteLength:
		return int(b1), nil
	case b1 <= 240:
		b2, err := p.ReadByte()
		if err != nil {
			return 0, err
		}
		return 193 + (int(b1)-193)*256 + int(b2), nil
	case b1 <= 254:
		rest, err := p.ReadBytes(2)
		if err != nil {
			return 0, err
		}
		return 12481 + (int(b1)-241)*65536 + int(rest[0])*256 + int(rest[1]), nil
	default:
		return 0, ErrLengthOutOfRange
	}
}
