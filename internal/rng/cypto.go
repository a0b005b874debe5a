package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto wraps the crypto/rand library
type Crypto struct{}

// Intn returns a random number in [0, n)
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// Seed returns a crypto-random non-zero int64, suitable for seeding a
// math/rand source when the caller wants entropy but still wants the
// resulting seed recorded for replay.
func (c Crypto) Seed() int64 {
	b, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		panic(err)
	}

	seed := b.Int64()
	if seed == 0 {
		seed = 1
	}

	return seed
}
