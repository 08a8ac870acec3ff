package types

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/definitions"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/serdes"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
)

var ErrInvalidArrayElement = errors.New("array elements must be single-key objects wrapping an inner object")

// STArray is a list of wrapped inner objects, e.g. [{"Memo": {...}}].
type STArray struct {
	OnlySigning bool
}

func (a *STArray) FromJSON(value any) ([]byte, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("array expected, got %T", value)
	}

	defs := definitions.Get()
	s := serdes.NewBinarySerializer()
	for _, item := range items {
		wrapper, ok := item.(map[string]any)
		if !ok || len(wrapper) != 1 {
			return nil, ErrInvalidArrayElement
		}
		for name, inner := range wrapper {
			fi, err := defs.GetFieldInstanceByFieldName(name)
			if err != nil {
				return nil, err
			}
			if fi.Type != "STObject" {
				return nil, ErrInvalidArrayElement
			}
			encoded, err := (&STObject{OnlySigning: a.OnlySigning}).FromJSON(inner)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if err := s.WriteFieldAndValue(*fi, encoded); err != nil {
				return nil, err
			}
		}
	}
	return append(s.GetSink(), serdes.ArrayEndMarker), nil
}

func (a *STArray) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	items := make([]any, 0)
	for p.HasMore() {
		next, err := p.Peek()
		if err != nil {
			return nil, err
		}
		if next == serdes.ArrayEndMarker {
			_, _ = p.ReadByte()
			break
		}

		fi, err := p.ReadField()
		if err != nil {
			return nil, err
		}
		if fi.Type != "STObject" {
			return nil, ErrInvalidArrayElement
		}
		inner, err := (&STObject{}).ToJSON(p)
		if err != nil {
			return nil, err
		}
		items = append(items, map[string]any{fi.FieldName: inner})
	}
	return items, nil
}
