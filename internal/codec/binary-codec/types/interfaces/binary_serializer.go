//revive:disable:var-naming
package interfaces

import "github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"

// BinarySerializer appends field headers and values to a sink.
type BinarySerializer interface {
	WriteFieldAndValue(fieldInstance definitions.FieldInstance, value []byte) error
	GetSink() []byte
}
