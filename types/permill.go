package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// PermillDenominator is the number of parts a Permill divides a whole into.
const PermillDenominator = 1_000_000

// Permill is a fixed point fraction expressed in parts per million.
type Permill uint32

// PermillFromPercent converts a whole percentage into a Permill.
func PermillFromPercent(percent uint32) Permill {
	return Permill(percent * 10_000)
}

// Validate ensures the fraction does not exceed one.
func (p Permill) Validate() error {
	if p > PermillDenominator {
		return fmt.Errorf("permill value %d exceeds %d", p, PermillDenominator)
	}

	return nil
}

// MulTruncate returns p * amount, truncating any fractional remainder.
func (p Permill) MulTruncate(amount math.Int) math.Int {
	return MulDivTruncate(amount, uint64(p), PermillDenominator)
}

// String implements fmt.Stringer.
func (p Permill) String() string {
	return fmt.Sprintf("%d/%d", uint32(p), PermillDenominator)
}
