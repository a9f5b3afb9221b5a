package fixpoint

import (
	"fmt"

	"github.com/eneriz-daniel/mibci-qcnns/pkg/regwin"
)

// The streaming ports move one 32-bit beat per address step: two 16-bit
// lanes, so two array elements per 4-byte stride.
const (
	laneSize = 2
	beatSize = 4
)

// WriteArray streams vals into the window starting at base: vals[2i] lands at
// base+4i and vals[2i+1] at base+4i+2. An odd trailing element does not fill
// a full beat and is not transferred; the returned count reports how many
// elements actually landed, making the truncation visible to the caller.
//
// On any element failure the transfer stops immediately: the error names the
// element index, value and offset, and the count covers only the elements
// already written. No retries are attempted at this layer.
func WriteArray(w regwin.Window, base int64, vals []float64, intBits int) (int, error) {
	pairs := len(vals) / 2
	for i := 0; i < pairs; i++ {
		off := base + int64(i)*beatSize
		if err := Write(w, off, vals[2*i], intBits); err != nil {
			return 2 * i, fmt.Errorf("array write aborted at element %d: %w", 2*i, err)
		}
		if err := Write(w, off+laneSize, vals[2*i+1], intBits); err != nil {
			return 2*i + 1, fmt.Errorf("array write aborted at element %d: %w", 2*i+1, err)
		}
	}
	return 2 * pairs, nil
}

// ReadArray is symmetric to WriteArray: it decodes count elements starting at
// base, two per 4-byte stride. An odd count is truncated to full beats, so
// the returned slice holds 2*(count/2) elements. On failure it returns nil
// and an error naming the element index and offset; it never returns a
// partially filled array as a success.
func ReadArray(w regwin.Window, base int64, count int, intBits int) ([]float64, error) {
	pairs := count / 2
	out := make([]float64, 0, 2*pairs)
	for i := 0; i < pairs; i++ {
		off := base + int64(i)*beatSize
		lo, err := Read(w, off, intBits)
		if err != nil {
			return nil, fmt.Errorf("array read aborted at element %d: %w", 2*i, err)
		}
		hi, err := Read(w, off+laneSize, intBits)
		if err != nil {
			return nil, fmt.Errorf("array read aborted at element %d: %w", 2*i+1, err)
		}
		out = append(out, lo, hi)
	}
	return out, nil
}
