package regwin

import (
	"encoding/binary"
	"fmt"
)

// MemBuf is an in-memory Window of a fixed length. It stands in for the real
// hardware in tests and dry runs, the way a flash dump file stands in for a
// real device.
type MemBuf struct {
	buf []byte
}

// NewMemBuf returns a zero-filled in-memory window of size bytes.
func NewMemBuf(size int64) *MemBuf {
	return &MemBuf{buf: make([]byte, size)}
}

func (m *MemBuf) Name() string {
	return fmt.Sprintf("in-memory window, %d bytes", len(m.buf))
}

func (m *MemBuf) Len() int64 {
	return int64(len(m.buf))
}

func (m *MemBuf) ReadU16(off int64) (uint16, error) {
	if m.buf == nil {
		return 0, ErrClosed
	}
	if err := checkReg(m.Len(), off); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.buf[off:]), nil
}

func (m *MemBuf) WriteU16(off int64, v uint16) error {
	if m.buf == nil {
		return ErrClosed
	}
	if err := checkReg(m.Len(), off); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.buf[off:], v)
	return nil
}

func (m *MemBuf) ReadRegion(off, size int64) ([]byte, error) {
	if m.buf == nil {
		return nil, ErrClosed
	}
	if err := checkAccess(m.Len(), off, size); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	copy(buf, m.buf[off:off+size])
	return buf, nil
}

func (m *MemBuf) WriteRegion(off int64, b []byte) error {
	if m.buf == nil {
		return ErrClosed
	}
	if err := checkAccess(m.Len(), off, int64(len(b))); err != nil {
		return err
	}
	copy(m.buf[off:], b)
	return nil
}

func (m *MemBuf) Close() error {
	if m.buf == nil {
		return fmt.Errorf("already closed: %w", ErrClosed)
	}
	m.buf = nil
	return nil
}
