package serdes

import (
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"
)

// BinarySerializer accumulates serialized fields.
type BinarySerializer struct {
	sink []byte
}

// NewBinarySerializer returns an empty serializer.
func NewBinarySerializer() *BinarySerializer {
	return &BinarySerializer{}
}

// WriteFieldAndValue appends the field header, a length prefix for VL
// encoded fields, and the value. Inner objects get their end marker.
func (s *BinarySerializer) WriteFieldAndValue(fi definitions.FieldInstance, value []byte) error {
	header, err := EncodeFieldID(*fi.FieldHeader)
	if err != nil {
		return err
	}
	s.sink = append(s.sink, header...)

	if fi.IsVLEncoded {
		vl, err := EncodeVariableLength(len(value))
		if err != nil {
			return err
		}
		s.sink = append(s.sink, vl...)
	}
	s.sink = append(s.sink, value...)

	if fi.Type == "STObject" {
		s.sink = append(s.sink, ObjectEndMarker)
	}
	return nil
}

// GetSink returns the bytes written so far.
func (s *BinarySerializer) GetSink() []byte {
	return s.sink
}
