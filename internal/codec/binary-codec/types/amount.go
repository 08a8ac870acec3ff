package types

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
	"github.com/LeJamon/goXRPLGateway/internal/codec/binary-codec/types/interfaces"
	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

const (
	// MaxDrops is the total XRP supply in drops.
	MaxDrops uint64 = 100_000_000_000_000_000

	notXRPBit   = 0x8000000000000000
	positiveBit = 0x4000000000000000

	minIOUMantissa uint64 = 1_000_000_000_000_000
	maxIOUMantissa uint64 = 9_999_999_999_999_999
	minIOUExponent        = -96
	maxIOUExponent        = 80

	iouAmountLength = 48
)

var (
	ErrInvalidXRPAmount      = errors.New("invalid XRP amount")
	ErrInvalidIssuedAmount   = errors.New("invalid issued currency amount")
	ErrInvalidCurrency       = errors.New("invalid currency code")
	ErrIssuedAmountPrecision = errors.New("issued currency amount exceeds 16 significant digits")
)

// Amount is either a drops string (XRP) or an issued currency object
// {"currency", "issuer", "value"}.
type Amount struct{}

func (a *Amount) FromJSON(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return serializeXRPAmount(v)
	case map[string]any:
		return serializeIssuedAmount(v)
	default:
		return nil, fmt.Errorf("%w: unexpected %T", ErrInvalidXRPAmount, value)
	}
}

func serializeXRPAmount(drops string) ([]byte, error) {
	negative := strings.HasPrefix(drops, "-")
	digits := strings.TrimPrefix(drops, "-")
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || n > MaxDrops {
		return nil, fmt.Errorf("%w: %q", ErrInvalidXRPAmount, drops)
	}
	v := n
	if !negative || n == 0 {
		v |= positiveBit
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, v)
	return out, nil
}

func serializeIssuedAmount(obj map[string]any) ([]byte, error) {
	value, _ := obj["value"].(string)
	currency, _ := obj["currency"].(string)
	issuer, _ := obj["issuer"].(string)
	if value == "" || currency == "" || issuer == "" {
		return nil, ErrInvalidIssuedAmount
	}

	amount, err := encodeIssuedValue(value)
	if err != nil {
		return nil, err
	}
	code, err := encodeCurrency(currency)
	if err != nil {
		return nil, err
	}
	id, err := addresscodec.DecodeClassicAddress(issuer)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, iouAmountLength)
	out = append(out, amount...)
	out = append(out, code...)
	return append(out, id[:]...), nil
}

// encodeIssuedValue packs a decimal string into the 64-bit mantissa and
// exponent form used by issued amounts.
func encodeIssuedValue(value string) ([]byte, error) {
	negative, mantissa, exponent, err := parseDecimal(value)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 8)
	if mantissa == 0 {
		binary.BigEndian.PutUint64(out, notXRPBit)
		return out, nil
	}
	for mantissa < minIOUMantissa {
		mantissa *= 10
		exponent--
	}
	for mantissa > maxIOUMantissa {
		if mantissa%10 != 0 {
			return nil, ErrIssuedAmountPrecision
		}
		mantissa /= 10
		exponent++
	}
	if exponent < minIOUExponent || exponent > maxIOUExponent {
		return nil, fmt.Errorf("%w: exponent %d", ErrInvalidIssuedAmount, exponent)
	}

	v := uint64(notXRPBit) | mantissa | uint64(exponent+97)<<54
	if !negative {
		v |= positiveBit
	}
	binary.BigEndian.PutUint64(out, v)
	return out, nil
}

// parseDecimal splits "-12.50e3" into sign, integer mantissa and base-10 exponent.
func parseDecimal(s string) (negative bool, mantissa uint64, exponent int, err error) {
	if s == "" {
		return false, 0, 0, ErrInvalidIssuedAmount
	}
	if s[0] == '-' || s[0] == '+' {
		negative = s[0] == '-'
		s = s[1:]
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, perr := strconv.Atoi(s[i+1:])
		if perr != nil {
			return false, 0, 0, ErrInvalidIssuedAmount
		}
		exponent = exp
		s = s[:i]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	digits := strings.TrimLeft(intPart+fracPart, "0")
	exponent -= len(fracPart)
	if intPart+fracPart == "" {
		return false, 0, 0, ErrInvalidIssuedAmount
	}
	for _, c := range intPart + fracPart {
		if c < '0' || c > '9' {
			return false, 0, 0, ErrInvalidIssuedAmount
		}
	}
	for len(digits) > 0 && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
		exponent++
	}
	if digits == "" {
		return negative, 0, 0, nil
	}
	if len(digits) > 16 {
		return false, 0, 0, ErrIssuedAmountPrecision
	}
	mantissa, err = strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return false, 0, 0, ErrInvalidIssuedAmount
	}
	return negative, mantissa, exponent, nil
}

func encodeCurrency(code string) ([]byte, error) {
	out := make([]byte, 20)
	switch len(code) {
	case 3:
		if code == "XRP" {
			return nil, fmt.Errorf("%w: XRP is not an issued currency", ErrInvalidCurrency)
		}
		copy(out[12:15], code)
		return out, nil
	case 40:
		b, err := hex.DecodeString(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCurrency, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
}

func decodeCurrency(b []byte) string {
	if bytes.Equal(b[:12], make([]byte, 12)) && bytes.Equal(b[15:], make([]byte, 5)) {
		return string(b[12:15])
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

func (a *Amount) ToJSON(p interfaces.BinaryParser, _ ...int) (any, error) {
	head, err := p.Peek()
	if err != nil {
		return nil, err
	}
	if head&0x80 == 0 {
		b, err := p.ReadBytes(8)
		if err != nil {
			return nil, err
		}
		v := binary.BigEndian.Uint64(b)
		drops := strconv.FormatUint(v&^positiveBit, 10)
		if v&positiveBit == 0 && v != 0 {
			drops = "-" + drops
		}
		return drops, nil
	}

	b, err := p.ReadBytes(iouAmountLength)
	if err != nil {
		return nil, err
	}
	var issuer crypto.AccountID
	copy(issuer[:], b[28:48])
	return map[string]any{
		"value":    decodeIssuedValue(binary.BigEndian.Uint64(b[:8])),
		"currency": decodeCurrency(b[8:28]),
		"issuer":   addresscodec.EncodeAccountID(issuer),
	}, nil
}

func decodeIssuedValue(v uint64) string {
	mantissa := v & (1<<54 - 1)
	if mantissa == 0 {
		return "0"
	}
	exponent := int((v>>54)&0xFF) - 97
	digits := strconv.FormatUint(mantissa, 10)
	for strings.HasSuffix(digits, "0") {
		digits = digits[:len(digits)-1]
		exponent++
	}

	var s string
	switch {
	case exponent >= 0:
		s = digits + strings.Repeat("0", exponent)
	case -exponent < len(digits):
		point := len(digits) + exponent
		s = digits[:point] + "." + digits[point:]
	default:
		s = "0." + strings.Repeat("0", -exponent-len(digits)) + digits
	}
	if v&positiveBit == 0 {
		s = "-" + s
	}
	return s
}
