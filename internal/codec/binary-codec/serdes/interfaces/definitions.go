package interfaces

import "github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"

// Definitions is the field lookup the parser and serializer depend on.
type Definitions interface {
	GetFieldNameByFieldHeader(fh definitions.FieldHeader) (string, error)
	GetFieldInstanceByFieldName(fieldName string) (*definitions.FieldInstance, error)
	CreateFieldHeader(typecode, fieldcode int32) definitions.FieldHeader
}
