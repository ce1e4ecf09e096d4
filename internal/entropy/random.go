// Package entropy provides the seeded random source used by the people pools.
// Every pool owns its own Random so guest spawning stays independent of staff
// ordering, and a fixed seed replays the same history.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
)

// Random is a deterministic pseudo-random source.
type Random struct {
	seed int64
	rng  *mrand.Rand
}

// New creates a Random with the given seed.
func New(seed int64) *Random {
	return &Random{
		seed: seed,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

// Uniform returns a number in [0, n). n must be positive.
func (r *Random) Uniform(n int) int {
	return r.rng.Intn(n)
}

// Success1024 returns true with probability p/1024: a uniform sample from
// 0..1023 is compared against p. p <= 0 never succeeds, p >= 1024 always does.
func (r *Random) Success1024(p int) bool {
	return r.rng.Intn(1024) < p
}

// Float returns a number in [0, 1).
func (r *Random) Float() float64 {
	return r.rng.Float64()
}

// CryptoSeed returns a seed from crypto/rand, used when a scenario asks for
// a fresh world instead of a fixed seed.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed seed.
		slog.Warn("crypto seed unavailable", "error", err)
		return 42
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
