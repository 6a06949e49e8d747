package power

import (
	"fmt"
	"math"
)

// BetaFromR2 converts variance explained into the magnitude of the per-allele
// effect on a standardized phenotype under additive coding, using
// r2 ~= 2*maf*(1-maf)*beta^2. For the same r2, rarer variants need larger
// effects.
func BetaFromR2(r2, maf float64) (float64, error) {
	if !inOpenUnitInterval(r2) {
		return math.NaN(), fmt.Errorf("BetaFromR2: r2 %v is outside of (0,1): %w", r2, ErrInvalidInput)
	}

	if !inOpenUnitInterval(maf) {
		return math.NaN(), fmt.Errorf("BetaFromR2: maf %v is outside of (0,1): %w", maf, ErrInvalidInput)
	}

	return math.Sqrt(r2 / (2 * maf * (1 - maf))), nil
}
