package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// MaxBalance is the largest amount representable by math.Int. Saturating
// additions clamp to it instead of panicking.
var MaxBalance = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

// SaturatingAdd returns a + b, clamped to MaxBalance.
func SaturatingAdd(a, b math.Int) math.Int {
	res, err := a.SafeAdd(b)
	if err != nil {
		return MaxBalance
	}

	return res
}

// SaturatingSub returns a - b, clamped to zero.
func SaturatingSub(a, b math.Int) math.Int {
	if a.LTE(b) {
		return math.ZeroInt()
	}

	return a.Sub(b)
}

// MulDivTruncate returns amount * num / den with the remainder dropped. A zero
// denominator yields zero.
func MulDivTruncate(amount math.Int, num, den uint64) math.Int {
	if den == 0 || amount.IsZero() || num == 0 {
		return math.ZeroInt()
	}

	n := math.NewIntFromUint64(num)
	d := math.NewIntFromUint64(den)

	product, err := amount.SafeMul(n)
	if err != nil {
		// divide first and accept the extra truncation
		return amount.Quo(d).Mul(n)
	}

	return product.Quo(d)
}

// IsPositive reports whether amount is non-nil and strictly positive.
func IsPositive(amount math.Int) bool {
	return !amount.IsNil() && amount.IsPositive()
}
