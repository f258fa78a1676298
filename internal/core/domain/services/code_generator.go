package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
)

// CodeGenerator produces single-use confirmation codes for bookings.
// Implementations must be stateless between calls and safe for concurrent
// use; code generation has no side effects on shared state.
type CodeGenerator interface {
	Generate() (delivery.ConfirmationCode, error)
}

// CryptoCodeGenerator draws codes uniformly from a fixed-width numeric
// space using crypto/rand, so codes cannot be predicted from previous ones.
// Width 4 gives the 10,000-value space of the reference behavior; leading
// zeros are preserved as characters.
type CryptoCodeGenerator struct {
	width int
}

// NewCryptoCodeGenerator creates a generator for codes of the given width.
// Width must lie within the delivery.ConfirmationCode bounds.
func NewCryptoCodeGenerator(width int) (CryptoCodeGenerator, error) {
	if width < delivery.MinCodeLength || width > delivery.MaxCodeLength {
		return CryptoCodeGenerator{}, errs.NewValueIsOutOfRangeError(
			"code width", width, delivery.MinCodeLength, delivery.MaxCodeLength)
	}
	return CryptoCodeGenerator{width: width}, nil
}

// Generate returns a fresh confirmation code.
func (g CryptoCodeGenerator) Generate() (delivery.ConfirmationCode, error) {
	space := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.width)), nil)

	n, err := rand.Int(rand.Reader, space)
	if err != nil {
		return delivery.ConfirmationCode{}, fmt.Errorf("generating confirmation code: %w", err)
	}

	return delivery.NewConfirmationCode(fmt.Sprintf("%0*d", g.width, n))
}
