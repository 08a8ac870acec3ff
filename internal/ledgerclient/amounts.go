package ledgerclient

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

const dropsPerXRP = 1_000_000

var bigDropsPerXRP = big.NewRat(dropsPerXRP, 1)

// XRPToDrops converts a decimal XRP amount to an integer drops string.
// Amounts below one drop, negative amounts and non-decimal input are
// rejected.
func XRPToDrops(xrp string) (string, error) {
	r, ok := parseDecimal(xrp)
	if !ok {
		return "", validationError("xrpToDrops: invalid value %q", xrp)
	}
	if r.Sign() < 0 {
		return "", validationError("xrpToDrops: value %q must not be negative", xrp)
	}
	r.Mul(r, bigDropsPerXRP)
	if !r.IsInt() {
		return "", validationError("xrpToDrops: value %q has too many decimal places", xrp)
	}
	return r.Num().String(), nil
}

// FloatXRPToDrops converts an XRP amount carried as a float. The shortest
// decimal that round-trips the float is used, so 10.5 becomes "10500000".
func FloatXRPToDrops(xrp float64) (string, error) {
	if math.IsNaN(xrp) || math.IsInf(xrp, 0) {
		return "", validationError("xrpToDrops: value %v is not a finite number", xrp)
	}
	return XRPToDrops(strconv.FormatFloat(xrp, 'f', -1, 64))
}

// DropsToXRP converts an integer drops string to XRP without trailing zeros.
func DropsToXRP(drops string) (string, error) {
	n, ok := new(big.Int).SetString(drops, 10)
	if !ok {
		return "", fmt.Errorf("dropsToXrp: invalid value %q", drops)
	}
	sign := ""
	if n.Sign() < 0 {
		sign = "-"
		n.Neg(n)
	}
	whole, frac := new(big.Int).QuoRem(n, big.NewInt(dropsPerXRP), new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String(), nil
	}
	fs := frac.String()
	fs = strings.TrimRight(strings.Repeat("0", 6-len(fs))+fs, "0")
	return sign + whole.String() + "." + fs, nil
}

// parseDecimal accepts plain decimal notation only (no exponents, fractions
// or hex).
func parseDecimal(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if body == "" || body == "." {
		return nil, false
	}
	dot := false
	for _, ch := range body {
		switch {
		case ch == '.' && !dot:
			dot = true
		case ch >= '0' && ch <= '9':
		default:
			return nil, false
		}
	}
	r, ok := new(big.Rat).SetString(s)
	return r, ok
}

func floatRat(f float64) *big.Rat {
	r, _ := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', -1, 64))
	return r
}

// roundDrops rounds an XRP value half up to whole drops.
func roundDrops(xrp *big.Rat) *big.Int {
	d := new(big.Rat).Mul(xrp, bigDropsPerXRP)
	num := new(big.Int).Mul(d.Num(), big.NewInt(2))
	num.Add(num, d.Denom())
	den := new(big.Int).Mul(d.Denom(), big.NewInt(2))
	return num.Div(num, den)
}

// calculateFeeDrops is the autofilled fee: base fee × load factor × cushion,
// capped at maxFeeXRP, then multiplied by signersCount+1 so that every
// signature of a multi-signed transaction is paid for.
func calculateFeeDrops(baseFeeXRP string, loadFactor, cushion float64, maxFeeXRP string, signersCount uint32) (string, error) {
	// rippled reports the base fee as a JSON number, e.g. 1e-05.
	base, ok := new(big.Rat).SetString(baseFeeXRP)
	if !ok || base.Sign() < 0 {
		return "", newError(ErrResponseFormat, NameResponseFormat, "base fee %q", baseFeeXRP)
	}
	maxFee, ok := parseDecimal(maxFeeXRP)
	if !ok || maxFee.Sign() < 0 {
		return "", validationError("maxFee %q is not a valid XRP amount", maxFeeXRP)
	}
	if loadFactor <= 0 || math.IsNaN(loadFactor) {
		loadFactor = 1
	}

	fee := new(big.Rat).Mul(base, floatRat(loadFactor))
	fee.Mul(fee, floatRat(cushion))
	if fee.Cmp(maxFee) > 0 {
		fee = maxFee
	}

	drops := roundDrops(fee)
	drops.Mul(drops, big.NewInt(int64(signersCount)+1))
	return drops.String(), nil
}
