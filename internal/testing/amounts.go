package testing

import "strconv"

// DropsPerXRP is the number of drops in one XRP.
const DropsPerXRP uint64 = 1_000_000

// XRP converts an XRP amount to drops.
// For example, XRP(100) returns 100,000,000 drops.
func XRP(n uint64) uint64 {
	return n * DropsPerXRP
}

// Drops returns the drop amount unchanged.
func Drops(n uint64) uint64 {
	return n
}

// DropsString formats drops the way rippled serializes XRP amounts.
func DropsString(drops uint64) string {
	return strconv.FormatUint(drops, 10)
}
