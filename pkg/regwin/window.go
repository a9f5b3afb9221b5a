// Package regwin gives access to the accelerator's memory-mapped register
// window: a fixed-length range of 16-bit registers addressed by byte offset.
package regwin

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange = errors.New("access out of window bounds")
	ErrMisaligned = errors.New("misaligned register access")
	ErrAccess     = errors.New("cannot access physical memory device")
	ErrClosed     = errors.New("window is closed")
)

// Window is a mapped register window. A consumer reads and writes 16-bit
// registers and raw byte regions at byte offsets relative to the window base.
// A Window has exactly one owner; concurrent use from several goroutines is
// not supported and must be serialized by the caller.
type Window interface {
	// Name() returns a name and maybe some extra info about this Window. This info is not machine readable.
	Name() string
	// Len returns the window length in bytes. The length never changes after creation.
	Len() int64
	// ReadU16 reads the 16-bit register at byte offset off.
	ReadU16(off int64) (uint16, error)
	// WriteU16 writes the 16-bit register at byte offset off.
	WriteU16(off int64, v uint16) error
	ReadRegion(off, size int64) ([]byte, error)
	WriteRegion(off int64, b []byte) error
	// Close releases the mapping. The Window must not be used afterwards.
	Close() error
}

func checkAccess(winLen, off, size int64) error {
	if off < 0 || size < 0 || off+size > winLen {
		return fmt.Errorf("region [0x%X, 0x%X) out of bounds [0x0, 0x%X): %w", off, off+size, winLen, ErrOutOfRange)
	}
	return nil
}

// checkReg enforces the 2-byte alignment of the 16-bit register file on top
// of the bounds check.
func checkReg(winLen, off int64) error {
	if err := checkAccess(winLen, off, 2); err != nil {
		return err
	}
	if off%2 != 0 {
		return fmt.Errorf("offset 0x%X is not 16-bit aligned: %w", off, ErrMisaligned)
	}
	return nil
}
