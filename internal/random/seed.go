// Package random provides seed generation and the default seeded source
// for dice evaluation.
//
// Seeds are non-negative so a roll can always be replayed by passing its
// seed back on the command line.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/dicelang/internal/platform/errors"
)

// NewSeed generates a positive random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// ResolveSeed returns seed unchanged when it is positive and a fresh seed
// when it is zero. Negative seeds are rejected.
func ResolveSeed(seed int64) (int64, error) {
	switch {
	case seed < 0:
		return 0, apperrors.WithMetadata(
			apperrors.CodeSeedOutOfRange,
			fmt.Sprintf("seed %d is negative", seed),
			map[string]string{"Seed": strconv.FormatInt(seed, 10)},
		)
	case seed == 0:
		return NewSeed()
	default:
		return seed, nil
	}
}
