package record

import (
	"errors"
	"math"
)

// ErrRealOverflow is returned when a value is too large for an eight byte real.
var ErrRealOverflow = errors.New("value out of range for GDSII real")

const mantissaMask = 1<<56 - 1

// DecodeReal8 converts an eight byte GDSII real to float64.
//
// Layout: sign bit, 7-bit base-16 exponent biased by 64, 56-bit fraction.
// value = (-1)^sign * fraction/2^56 * 16^(exponent-64)
func DecodeReal8(bits uint64) float64 {
	mant := bits & mantissaMask
	if mant == 0 {
		return 0
	}
	exp := int((bits >> 56) & 0x7F)
	v := math.Ldexp(float64(mant), 4*(exp-64)-56)
	if bits>>63 != 0 {
		v = -v
	}
	return v
}

// EncodeReal8 converts f to an eight byte GDSII real. Values too small to be
// represented encode as zero.
func EncodeReal8(f float64) (uint64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrRealOverflow
	}
	if f == 0 {
		return 0, nil
	}

	var sign uint64
	if f < 0 {
		sign = 1 << 63
		f = -f
	}

	// f = frac * 2^exp2 with frac in [0.5, 1). Pick exp16 = ceil(exp2/4) so
	// that f = m * 16^exp16 with m in [1/16, 1).
	frac, exp2 := math.Frexp(f)
	exp16 := (exp2 + 3) >> 2
	mant := uint64(math.Ldexp(frac, 56+exp2-4*exp16))

	biased := exp16 + 64
	if biased > 0x7F {
		return 0, ErrRealOverflow
	}
	if biased < 0 {
		return 0, nil
	}
	return sign | uint64(biased)<<56 | mant, nil
}
