package crypto

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"

	"golang.org/x/crypto/blake2b"
)

// Random source names accepted by NewRandom.
const (
	SourceCrypto = "crypto"
	SourceMath   = "math"
)

var ErrUnknownRandomSource = errors.New("unknown random source")

// Random is the randomness the password builder depends on.
type Random interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Sample returns k distinct indices from [0, n) chosen uniformly, in random order.
	Sample(n, k int) []int
	// Shuffle applies a uniform random permutation to n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

// NewRandom returns the source named by kind. A non-empty seed always selects
// a deterministic source regardless of kind.
func NewRandom(kind, seed string) (Random, error) {
	if seed != "" {
		return NewSeededRandom(seed), nil
	}
	switch kind {
	case "", SourceCrypto:
		return NewCryptoRandom(), nil
	case SourceMath:
		return NewMathRandom(), nil
	}
	return nil, ErrUnknownRandomSource
}

// NewCryptoRandom returns a source backed by crypto/rand.
func NewCryptoRandom() Random {
	return &randSource{r: rand.New(cryptoSource{})}
}

// NewMathRandom returns a fast, non-cryptographic PCG source.
func NewMathRandom() Random {
	return &randSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRandom returns a reproducible ChaCha8 source keyed by the
// BLAKE2b-256 digest of seed.
func NewSeededRandom(seed string) Random {
	return &randSource{r: rand.New(rand.NewChaCha8(blake2b.Sum256([]byte(seed))))}
}

type randSource struct {
	r *rand.Rand
}

func (s *randSource) IntN(n int) int {
	return s.r.IntN(n)
}

// Sample runs a partial Fisher-Yates shuffle over the index range.
func (s *randSource) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func (s *randSource) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// cryptoSource adapts crypto/rand to a math/rand/v2 Source.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}
