// Package locator issues six-character reservation codes (PNRs).
package locator

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/Domenick1991/airreserve/internal/domain"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length of a PNR. 36^6 combinations keeps collisions rare relative to
	// the number of live bookings.
	Length = 6

	maxAttempts = 50
)

// Exists reports whether a candidate code is already taken.
type Exists func(ctx context.Context, pnr string) (bool, error)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate draws uniform candidates until one is free. Persistent collision
// is an operational anomaly and surfaces as ErrLocatorExhausted.
func (g *Generator) Generate(ctx context.Context, exists Exists) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := draw()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrLocatorExhausted
}

func draw() (string, error) {
	buf := make([]byte, Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
