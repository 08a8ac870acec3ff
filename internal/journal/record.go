package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"
)

// Value framing for the key-value backends
const (
	frameRaw byte = 0
	frameLZ4 byte = 1
)

// record is the msgpack form of a Submission.
type record struct {
	TxID                   string `codec:"id"`
	TxBlob                 string `codec:"blob"`
	ResultCode             string `codec:"rc"`
	ResultMessage          string `codec:"rm"`
	EarliestLedgerVersion  uint32 `codec:"elv"`
	SubmittedAtUnixNano    int64  `codec:"at"`
	ValidatedLedgerVersion uint32 `codec:"vlv"`
	Result                 string `codec:"res"`
}

func toRecord(s Submission) record {
	return record{
		TxID:                   s.TxID,
		TxBlob:                 s.TxBlob,
		ResultCode:             s.ResultCode,
		ResultMessage:          s.ResultMessage,
		EarliestLedgerVersion:  s.EarliestLedgerVersion,
		SubmittedAtUnixNano:    s.SubmittedAt.UnixNano(),
		ValidatedLedgerVersion: s.ValidatedLedgerVersion,
		Result:                 s.Result,
	}
}

func (r record) submission() *Submission {
	return &Submission{
		TxID:                   r.TxID,
		TxBlob:                 r.TxBlob,
		ResultCode:             r.ResultCode,
		ResultMessage:          r.ResultMessage,
		EarliestLedgerVersion:  r.EarliestLedgerVersion,
		SubmittedAt:            time.Unix(0, r.SubmittedAtUnixNano).UTC(),
		ValidatedLedgerVersion: r.ValidatedLedgerVersion,
		Result:                 r.Result,
	}
}

// encodeRecord msgpack-encodes r and lz4-compresses it when that saves
// space. Compressed values carry their decoded length.
func encodeRecord(h *codec.MsgpackHandle, r record) ([]byte, error) {
	var raw []byte
	if err := codec.NewEncoderBytes(&raw, h).Encode(r); err != nil {
		return nil, err
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, compressed, nil)
	if err != nil || n == 0 || n+binary.MaxVarintLen64 >= len(raw) {
		// incompressible
		return append([]byte{frameRaw}, raw...), nil
	}

	out := make([]byte, 1, 1+binary.MaxVarintLen64+n)
	out[0] = frameLZ4
	out = binary.AppendUvarint(out, uint64(len(raw)))
	return append(out, compressed[:n]...), nil
}

func decodeRecord(h *codec.MsgpackHandle, val []byte) (*record, error) {
	if len(val) == 0 {
		return nil, errors.New("empty value")
	}

	raw := val[1:]
	switch val[0] {
	case frameRaw:
	case frameLZ4:
		size, n := binary.Uvarint(raw)
		if n <= 0 {
			return nil, errors.New("bad length prefix")
		}
		decoded := make([]byte, size)
		m, err := lz4.UncompressBlock(raw[n:], decoded)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		raw = decoded[:m]
	default:
		return nil, fmt.Errorf("unknown frame %d", val[0])
	}

	var r record
	if err := codec.NewDecoderBytes(raw, h).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
