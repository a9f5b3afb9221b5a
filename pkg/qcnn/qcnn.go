// Package qcnn drives the MIBCI-QCNN accelerator through its register
// window: loads parameter tensors, streams EEG samples in and class scores
// out.
package qcnn

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eneriz-daniel/mibci-qcnns/pkg/fixpoint"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/netparams"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/regmap"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/regwin"
)

// ErrNotReady means the design never raised the ready bit after a start.
var ErrNotReady = errors.New("accelerator did not signal ready")

// The design latches the input immediately but needs time to push a sample
// through the layers. Classify polls the status register instead of assuming
// zero latency.
const (
	readyPollInterval = 10 * time.Microsecond
	// DefaultReadyTimeout bounds the ready poll. Generous: a healthy design
	// answers in microseconds, so hitting this means the hardware is gone.
	DefaultReadyTimeout = 100 * time.Millisecond
)

// Accel is a controller for one accelerator instance. It assumes exclusive
// ownership of the window; all operations are synchronous.
type Accel struct {
	win          regwin.Window
	intBits      int
	readyTimeout time.Duration
}

// ForWindow returns a controller for the accelerator mapped at win, using
// the Q8.8 format the design is synthesized with.
func ForWindow(win regwin.Window) *Accel {
	return &Accel{
		win:          win,
		intBits:      fixpoint.DefaultIntBits,
		readyTimeout: DefaultReadyTimeout,
	}
}

// SetReadyTimeout overrides the ready-poll deadline.
func (a *Accel) SetReadyTimeout(d time.Duration) {
	a.readyTimeout = d
}

// LoadParams writes every parameter tensor of the set into its register
// range. The set must hold each tensor of the register map with exactly the
// synthesized element count.
func (a *Accel) LoadParams(set *netparams.Set) error {
	for _, reg := range regmap.Params {
		vals, err := set.Array(reg.Name)
		if err != nil {
			return err
		}
		if len(vals) != reg.Count {
			return fmt.Errorf("tensor %q: got %d elements, want %d", reg.Name, len(vals), reg.Count)
		}
		if _, err := fixpoint.WriteArray(a.win, reg.Offset, vals, a.intBits); err != nil {
			return fmt.Errorf("cannot load tensor %q: %w", reg.Name, err)
		}
		log.Printf("Loaded tensor %q: %d values @ 0x%X", reg.Name, len(vals), reg.Offset)
	}
	return nil
}

// Classify runs one inference: streams the sample into the input port,
// starts the design, waits for the ready bit and reads the class scores.
func (a *Accel) Classify(sample []float64) ([]float64, error) {
	if len(sample) != regmap.SampleLen {
		return nil, fmt.Errorf("sample has %d values, want %d", len(sample), regmap.SampleLen)
	}
	if _, err := fixpoint.WriteArray(a.win, regmap.InputPort.Offset, sample, a.intBits); err != nil {
		return nil, fmt.Errorf("cannot write input sample: %w", err)
	}
	if err := a.win.WriteU16(regmap.Ctrl.Offset, regmap.CtrlStart); err != nil {
		return nil, fmt.Errorf("cannot start inference: %w", err)
	}
	if err := a.waitReady(); err != nil {
		return nil, err
	}
	scores, err := fixpoint.ReadArray(a.win, regmap.OutputPort.Offset, regmap.NumClasses, a.intBits)
	if err != nil {
		return nil, fmt.Errorf("cannot read class scores: %w", err)
	}
	return scores, nil
}

func (a *Accel) waitReady() error {
	deadline := time.Now().Add(a.readyTimeout)
	for {
		status, err := a.win.ReadU16(regmap.Status.Offset)
		if err != nil {
			return fmt.Errorf("cannot read status register: %w", err)
		}
		if status&regmap.StatusReady != 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("status 0x%04X after %v: %w", status, a.readyTimeout, ErrNotReady)
		}
		time.Sleep(readyPollInterval)
	}
}

// Predict returns the index of the winning class.
func Predict(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
