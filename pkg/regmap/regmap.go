// Package regmap holds the fixed register layout of the MIBCI-QCNN design.
// The offsets mirror the synthesized address decoder and must be reproduced
// exactly for hardware compatibility.
package regmap

import "fmt"

const (
	// PhysBase is the AXI base address the accelerator is synthesized at.
	PhysBase = 0x43C00000
	// WinLen is the length of the register window in bytes.
	WinLen = 0x10000

	// SampleLen is the flattened length of one EEG input sample.
	SampleLen = 960
	// NumClasses is the length of the class-score vector the design produces.
	NumClasses = 4

	// CtrlStart in the ctrl register starts one inference pass.
	CtrlStart = 1 << 0
	// StatusReady in the status register reports that the class scores are
	// latched and readable. The design does not finish instantly after
	// CtrlStart; consumers must poll this bit rather than assume zero latency.
	StatusReady = 1 << 0
)

// Reg describes one named range of 16-bit slots in the window.
type Reg struct {
	Name   string
	Offset int64 // byte offset from the window base
	Count  int   // number of 16-bit slots
}

// Size returns the size of the range in bytes.
func (r Reg) Size() int64 { return int64(r.Count) * 2 }

// End returns the first byte offset past the range.
func (r Reg) End() int64 { return r.Offset + r.Size() }

func (r Reg) String() string {
	return fmt.Sprintf("%s: [0x%04X, 0x%04X) %d slots", r.Name, r.Offset, r.End(), r.Count)
}

var (
	Conv1Weights = Reg{"conv1.weights", 0x0000, 192}
	Conv1Bias    = Reg{"conv1.bias", 0x0180, 8}
	Conv2Weights = Reg{"conv2.weights", 0x0190, 256}
	Conv2Bias    = Reg{"conv2.bias", 0x0390, 16}
	DenseWeights = Reg{"dense.weights", 0x03B0, 384}
	DenseBias    = Reg{"dense.bias", 0x06B0, 4}

	Ctrl   = Reg{"ctrl", 0x0700, 1}
	Status = Reg{"status", 0x0702, 1}

	InputPort  = Reg{"input", 0x1000, SampleLen}
	OutputPort = Reg{"output", 0x2000, NumClasses}
)

// Params lists the parameter tensors in load order.
var Params = []Reg{Conv1Weights, Conv1Bias, Conv2Weights, Conv2Bias, DenseWeights, DenseBias}

// All lists every named register range of the design.
var All = []Reg{
	Conv1Weights, Conv1Bias, Conv2Weights, Conv2Bias, DenseWeights, DenseBias,
	Ctrl, Status, InputPort, OutputPort,
}

// ByName returns the register range called name.
func ByName(name string) (Reg, error) {
	for _, r := range All {
		if r.Name == name {
			return r, nil
		}
	}
	return Reg{}, fmt.Errorf("no register named %q", name)
}

// ForOffset returns the register range containing the byte offset off.
func ForOffset(off int64) (Reg, error) {
	if off < 0 || off >= WinLen {
		return Reg{}, fmt.Errorf("offset 0x%X is out of bounds [0x0, 0x%X)", off, int64(WinLen))
	}
	for _, r := range All {
		if off >= r.Offset && off < r.End() {
			return r, nil
		}
	}
	return Reg{}, fmt.Errorf("no register at offset 0x%X", off)
}
