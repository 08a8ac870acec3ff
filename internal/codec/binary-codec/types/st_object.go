package types

import (
	"errors"
	"fmt"
	"unicode"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/serdes"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
)

var ErrConflictingTag = errors.New("X-address tag conflicts with explicit tag field")

// STObject is a set of fields written in canonical order. When OnlySigning
// is set, fields excluded from signing data are skipped.
type STObject struct {
	OnlySigning bool
}

// FromJSON serializes a JSON object. Lower case keys (hash, date, and other
// API annotations) are ignored; an unknown capitalized key is an error since
// dropping it would change what gets signed.
func (o *STObject) FromJSON(value any) ([]byte, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("object expected, got %T", value)
	}
	obj, err := expandXAddresses(obj)
	if err != nil {
		return nil, err
	}

	defs := definitions.Get()
	names := make([]string, 0, len(obj))
	for name := range obj {
		fi, err := defs.GetFieldInstanceByFieldName(name)
		if err != nil {
			if name != "" && unicode.IsUpper(rune(name[0])) {
				return nil, err
			}
			continue
		}
		if !fi.IsSerialized || (o.OnlySigning && !fi.IsSigningField) {
			continue
		}
		names = append(names, name)
	}
	defs.SortFields(names)

	s := serdes.NewBinarySerializer()
	for _, name := range names {
		fi := defs.Fields[name]
		encoded, err := encodeField(fi, obj[name], o.OnlySigning)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		if err := s.WriteFieldAndValue(*fi, encoded); err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
	}
	return s.GetSink(), nil
}

func encodeField(fi *definitions.FieldInstance, value any, onlySigning bool) ([]byte, error) {
	if fi.FieldName == "TransactionType" {
		if name, ok := value.(string); ok {
			code, err := definitions.Get().GetTransactionTypeCodeByName(name)
			if err != nil {
				return nil, err
			}
			value = code
		}
	}
	switch fi.Type {
	case "STObject":
		return (&STObject{OnlySigning: onlySigning}).FromJSON(value)
	case "STArray":
		return (&STArray{OnlySigning: onlySigning}).FromJSON(value)
	}
	st, err := GetSerializedType(fi.Type)
	if err != nil {
		return nil, err
	}
	return st.FromJSON(value)
}

// expandXAddresses rewrites Account and Destination X-addresses into a
// classic address plus SourceTag or DestinationTag.
func expandXAddresses(obj map[string]any) (map[string]any, error) {
	tagFields := map[string]string{"Account": "SourceTag", "Destination": "DestinationTag"}
	var out map[string]any
	for field, tagField := range tagFields {
		s, ok := obj[field].(string)
		if !ok || !addresscodec.IsValidXAddress(s) {
			continue
		}
		classic, tag, _, err := addresscodec.XAddressToClassicAddress(s)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]any, len(obj)+1)
			for k, v := range obj {
				out[k] = v
			}
		}
		out[field] = classic
		if tag != nil {
			if existing, ok := obj[tagField]; ok {
				if v, err := toUint64(existing, 1<<32-1); err != nil || uint32(v) != *tag {
					return nil, ErrConflictingTag
				}
			}
			out[tagField] = *tag
		}
	}
	if out == nil {
		return obj, nil
	}
	return out, nil
}

// ToJSON reads fields until the parser is exhausted or an object end marker.
func (o *STObject) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	out := make(map[string]any)
	for p.HasMore() {
		next, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if next == serdes.ObjectEndMarker {
			_, _ = p.ReadByte()
			break
		}

		fi, err := p.ReadField()
		if err != nil {
			return nil, err
		}
		value, err := decodeField(p, fi)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fi.FieldName, err)
		}
		out[fi.FieldName] = value
	}
	return out, nil
}

func decodeField(p interfaces.BinaryParser, fi *definitions.FieldInstance) (any, error) {
	var opts []int
	if fi.IsVLEncoded {
		n, err := p.ReadVariableLength()
		if err != nil {
			return nil, err
		}
		opts = append(opts, n)
	}
	st, err := GetSerializedType(fi.Type)
	if err != nil {
		return nil, err
	}
	value, err := st.ToJSON(p, opts...)
	if err != nil {
		return nil, err
	}
	if fi.FieldName == "TransactionType" {
		code, _ := value.(uint32)
		return definitions.Get().GetTransactionTypeNameByCode(int32(code))
	}
	return value, nil
}
