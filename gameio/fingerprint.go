package gameio

import (
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/stig/Moth/game"
)

// Fingerprint is a stable 64-bit id of a position, computed over its
// encoded form. Unlike zobrist keys it is the same in every process.
func Fingerprint(s game.State) uint64 {
	d := xxhash.New()
	// Writes to a hash never fail.
	EncodeState(d, s)
	return d.Sum64()
}

// PositionID is Fingerprint as a fixed-width hex string.
func PositionID(s game.State) string {
	return fmt.Sprintf("%016x", Fingerprint(s))
}
