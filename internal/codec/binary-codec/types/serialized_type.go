// Package types implements the serialized types of the XRPL binary format.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
)

// SerializedType converts between a JSON value and its binary form.
type SerializedType interface {
	FromJSON(value any) ([]byte, error)
	ToJSON(p interfaces.BinaryParser, opts ...int) (any, error)
}

var ErrUnsupportedType = errors.New("unsupported serialized type")

// GetSerializedType returns the codec of a named type.
func GetSerializedType(typeName string) (SerializedType, error) {
	switch typeName {
	case "UInt8":
		return &UInt8{}, nil
	case "UInt16":
		return &UInt16{}, nil
	case "UInt32":
		return &UInt32{}, nil
	case "Hash128":
		return NewHash128(), nil
	case "Hash256":
		return NewHash256(), nil
	case "Amount":
		return &Amount{}, nil
	case "Blob":
		return &Blob{}, nil
	case "AccountID":
		return &AccountID{}, nil
	case "STObject":
		return &STObject{}, nil
	case "STArray":
		return &STArray{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typeName)
	}
}

// toUint64 accepts the number shapes JSON decoding and Go callers produce.
func toUint64(value any, max uint64) (uint64, error) {
	var v uint64
	switch n := value.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, fmt.Errorf("not an unsigned integer: %v", n)
		}
		v = uint64(n)
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value: %d", n)
		}
		v = uint64(n)
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("negative value: %d", n)
		}
		v = uint64(n)
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value: %d", n)
		}
		v = uint64(n)
	case uint8:
		v = uint64(n)
	case uint16:
		v = uint64(n)
	case uint32:
		v = uint64(n)
	case uint64:
		v = n
	case json.Number:
		parsed, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return 0, err
		}
		v = parsed
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, err
		}
		v = parsed
	default:
		return 0, fmt.Errorf("unexpected value type %T", value)
	}
	if v > max {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return v, nil
}
