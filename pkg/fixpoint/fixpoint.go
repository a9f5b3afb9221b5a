// Package fixpoint converts between host reals and the signed 16-bit
// Q-format words of the accelerator's register file, and moves whole arrays
// of them through the streaming ports.
package fixpoint

import (
	"fmt"
	"math"

	"github.com/eneriz-daniel/mibci-qcnns/pkg/regwin"
)

// DefaultIntBits selects Q8.8, the format the MIBCI-QCNN design is
// synthesized with. Reads and writes of the same register must agree on the
// integer-bits parameter.
const DefaultIntBits = 8

// Encode quantizes v into a signed 16-bit fixed-point word with intBits
// integer bits: round(v * 2^(16-intBits)), half away from zero, rounded
// before clamping. Values outside the representable range saturate to
// [-2^15, 2^15-1]; saturation is silent, never an error.
func Encode(v float64, intBits int) int16 {
	scaled := math.Round(v * math.Exp2(float64(16-intBits)))
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}

// Decode is the inverse of Encode up to quantization: raw * 2^-(16-intBits).
func Decode(raw int16, intBits int) float64 {
	return float64(raw) * math.Exp2(float64(intBits-16))
}

// Step returns the quantization step (one ULP) of the format: 2^-(16-intBits).
func Step(intBits int) float64 {
	return math.Exp2(float64(intBits - 16))
}

// Write encodes v and stores it at byte offset off in the window. Exactly two
// bytes land, little-endian; a rejected offset writes nothing.
func Write(w regwin.Window, off int64, v float64, intBits int) error {
	raw := Encode(v, intBits)
	if err := w.WriteU16(off, uint16(raw)); err != nil {
		return fmt.Errorf("cannot write %v (raw %d) @ 0x%X: %w", v, raw, off, err)
	}
	return nil
}

// Read loads the 16-bit word at byte offset off and decodes it.
func Read(w regwin.Window, off int64, intBits int) (float64, error) {
	raw, err := w.ReadU16(off)
	if err != nil {
		return 0, fmt.Errorf("cannot read fixed-point value @ 0x%X: %w", off, err)
	}
	return Decode(int16(raw), intBits), nil
}
