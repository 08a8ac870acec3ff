// Package interfaces defines the parser and serializer contracts the
// serialized types are written against.
//
//revive:disable:var-naming
package interfaces

import "github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"

// BinaryParser reads fields and values from a serialized object.
type BinaryParser interface {
	ReadByte() (byte, error)
	ReadField() (*definitions.FieldInstance, error)
	Peek() (byte, error)
	ReadBytes(n int) ([]byte, error)
	HasMore() bool
	ReadVariableLength() (int, error)
}
