package fixpoint

import (
	"math"
	"testing"

	"github.com/eneriz-daniel/mibci-qcnns/pkg/regwin"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		desc    string
		value   float64
		intBits int
		wantRaw int16
	}{
		{
			desc:    "0.6 in Q8.8 rounds up to 154",
			value:   0.6,
			intBits: 8,
			wantRaw: 154,
		},
		{
			desc:    "-1.0 in Q8.8 is raw -256 (0xFF00 LE)",
			value:   -1.0,
			intBits: 8,
			wantRaw: -256,
		},
		{
			desc:    "Zero",
			value:   0,
			intBits: 8,
			wantRaw: 0,
		},
		{
			desc:    "1.5 in Q2.14",
			value:   1.5,
			intBits: 2,
			wantRaw: 24576,
		},
		{
			desc:    "Positive overflow saturates",
			value:   200.0,
			intBits: 8,
			wantRaw: math.MaxInt16,
		},
		{
			desc:    "Negative overflow saturates",
			value:   -200.0,
			intBits: 8,
			wantRaw: math.MinInt16,
		},
		{
			desc:    "Largest representable Q8.8 value",
			value:   127.99609375,
			intBits: 8,
			wantRaw: math.MaxInt16,
		},
		{
			desc:    "Most negative representable Q8.8 value",
			value:   -128.0,
			intBits: 8,
			wantRaw: math.MinInt16,
		},
	}

	for _, tc := range testCases {
		if raw := Encode(tc.value, tc.intBits); raw != tc.wantRaw {
			t.Errorf("Test %q: Encode(%v, %d) = %d, want %d", tc.desc, tc.value, tc.intBits, raw, tc.wantRaw)
		}
	}
}

func TestDecode(t *testing.T) {
	if got := Decode(154, 8); got != 0.6015625 {
		t.Errorf("Decode(154, 8) = %v, want 0.6015625", got)
	}
	if got := Decode(-256, 8); got != -1.0 {
		t.Errorf("Decode(-256, 8) = %v, want -1.0", got)
	}
}

func TestRoundTripWithinOneStep(t *testing.T) {
	values := []float64{0, 0.6, -0.6, 1.0, -1.0, 3.14159, -2.71828, 100.25, -100.25, 0.00390625}
	for _, intBits := range []int{2, 4, 8, 12} {
		step := Step(intBits)
		maxRep := float64(math.MaxInt16) * step
		minRep := float64(math.MinInt16) * step
		for _, v := range values {
			if v > maxRep || v < minRep {
				continue
			}
			got := Decode(Encode(v, intBits), intBits)
			if diff := math.Abs(got - v); diff > step {
				t.Errorf("Round trip of %v with %d integer bits: got %v, off by %v (> step %v)", v, intBits, got, diff, step)
			}
		}
	}
}

func TestWriteReadWindow(t *testing.T) {
	win := regwin.NewMemBuf(64)

	if err := Write(win, 0x10, 0.6, 8); err != nil {
		t.Fatalf("Cannot Write(): %v", err)
	}

	// 0.6 * 256 = 153.6, rounds to raw 154 = 0x009A, little-endian on the wire.
	raw, err := win.ReadRegion(0x10, 2)
	if err != nil {
		t.Fatalf("Cannot read back raw bytes: %v", err)
	}
	if raw[0] != 0x9A || raw[1] != 0x00 {
		t.Fatalf("Raw bytes = [0x%02X 0x%02X], want [0x9A 0x00]", raw[0], raw[1])
	}

	got, err := Read(win, 0x10, 8)
	if err != nil {
		t.Fatalf("Cannot Read(): %v", err)
	}
	if got != 0.6015625 {
		t.Fatalf("Read() = %v, want 0.6015625", got)
	}
}

func TestWriteMinusOneBitPattern(t *testing.T) {
	win := regwin.NewMemBuf(64)

	if err := Write(win, 0x20, -1.0, 8); err != nil {
		t.Fatalf("Cannot Write(): %v", err)
	}
	raw, err := win.ReadRegion(0x20, 2)
	if err != nil {
		t.Fatalf("Cannot read back raw bytes: %v", err)
	}
	if raw[0] != 0x00 || raw[1] != 0xFF {
		t.Fatalf("Raw bytes = [0x%02X 0x%02X], want [0x00 0xFF]", raw[0], raw[1])
	}

	got, err := Read(win, 0x20, 8)
	if err != nil {
		t.Fatalf("Cannot Read(): %v", err)
	}
	if got != -1.0 {
		t.Fatalf("Read() = %v, want -1.0", got)
	}
}

func TestWriteOutOfRangeWritesNothing(t *testing.T) {
	win := regwin.NewMemBuf(16)

	if err := Write(win, 15, 1.0, 8); err == nil {
		t.Fatal("Expected Write() past the window end to fail")
	}
	buf, err := win.ReadRegion(0, win.Len())
	if err != nil {
		t.Fatalf("Cannot read back window: %v", err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Errorf("Byte %d is 0x%02X after rejected write, want 0", i, b)
		}
	}
}
