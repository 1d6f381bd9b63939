package crypto

import (
	"errors"
	"fmt"
)

var (
	ErrNoCharacterTypes   = errors.New("at least one character type must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
	ErrLengthExceedsPool  = errors.New("password length exceeds the number of available characters")
	ErrLengthTooLarge     = fmt.Errorf("password length must be at most %d", MaxLength)
)

// MaxLength bounds a single password so an absurd request fails instead of
// exhausting memory.
const MaxLength = 1 << 20

// OversizePolicy decides what happens when the requested length is larger
// than the character pool.
type OversizePolicy string

const (
	// OversizeExtend fills positions beyond the pool size with independent
	// draws from the pool.
	OversizeExtend OversizePolicy = "extend"
	// OversizeReject refuses lengths larger than the pool.
	OversizeReject OversizePolicy = "reject"
)

// ParseOversizePolicy validates a policy name. The empty string means OversizeExtend.
func ParseOversizePolicy(s string) (OversizePolicy, error) {
	switch OversizePolicy(s) {
	case "", OversizeExtend:
		return OversizeExtend, nil
	case OversizeReject:
		return OversizeReject, nil
	}
	return "", fmt.Errorf("unknown oversize policy %q", s)
}

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length    int
	Selection Selection
	Oversize  OversizePolicy
}

// Generate builds a password of opts.Length characters drawn from the pool
// of enabled classes, containing at least one character of every enabled class.
func Generate(opts GeneratorOptions, rng Random) (string, error) {
	classes := opts.Selection.Classes()
	pool := BuildPool(opts.Selection)
	if pool == "" {
		return "", ErrNoCharacterTypes
	}
	if opts.Length < MinLength(opts.Selection) {
		return "", ErrLengthInsufficient
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLarge
	}
	if opts.Length > len(pool) && opts.Oversize == OversizeReject {
		return "", ErrLengthExceedsPool
	}

	result := make([]byte, opts.Length)

	// Distinct pool positions first, then with replacement once the pool is used up.
	positions := rng.Sample(len(pool), opts.Length)
	for i, p := range positions {
		result[i] = pool[p]
	}
	for i := len(positions); i < opts.Length; i++ {
		result[i] = pool[rng.IntN(len(pool))]
	}

	// Guarantee at least one character from each selected type.
	for i, class := range classes {
		alphabet := class.Alphabet()
		result[i] = alphabet[rng.IntN(len(alphabet))]
	}

	// The guaranteed characters sit at the front until shuffled.
	rng.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})

	return string(result), nil
}
