package regwin

import (
	"fmt"
	"log"
	"unsafe"

	"golang.org/x/sys/unix"
)

const defaultDevMemPath = "/dev/mem"

// DevMem is a Window mapped onto a physical address range through /dev/mem.
// The bitstream for the target design must already be active when the
// mapping is created, otherwise reads and writes hit inactive logic.
type DevMem struct {
	physBase int64
	length   int64
	fd       int
	mapping  []byte // page-aligned mmap area
	win      []byte // the window itself, inside mapping
}

// OpenDevMem maps the physical range [physBase, physBase+length) read/write.
// Needs permission to open /dev/mem, so usually root.
func OpenDevMem(physBase, length int64) (*DevMem, error) {
	return openDevMemPath(defaultDevMemPath, physBase, length)
}

func openDevMemPath(path string, physBase, length int64) (*DevMem, error) {
	if physBase < 0 || length <= 0 {
		return nil, fmt.Errorf("bad physical range [0x%X, 0x%X): %w", physBase, physBase+length, ErrAccess)
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %v: %w", path, err, ErrAccess)
	}

	// The base the hardware is synthesized at need not be page aligned;
	// map from the enclosing page start and keep the in-page offset.
	pageSize := int64(unix.Getpagesize())
	pageBase := physBase &^ (pageSize - 1)
	pageOff := physBase - pageBase

	mapping, err := unix.Mmap(fd, pageBase, int(pageOff+length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("cannot mmap [0x%X, 0x%X): %v: %w", physBase, physBase+length, err, ErrAccess)
	}

	log.Printf("Mapped physical window [0x%X, 0x%X)", physBase, physBase+length)
	return &DevMem{
		physBase: physBase,
		length:   length,
		fd:       fd,
		mapping:  mapping,
		win:      mapping[pageOff : pageOff+length],
	}, nil
}

func (d *DevMem) Name() string {
	return fmt.Sprintf("physical window @ 0x%X, %d bytes", d.physBase, d.length)
}

func (d *DevMem) Len() int64 {
	return d.length
}

// ReadU16 issues a single 16-bit load so the AXI bus sees a halfword access,
// not two byte reads. The target SoC is little-endian, matching the wire
// format of the register file.
func (d *DevMem) ReadU16(off int64) (uint16, error) {
	if d.win == nil {
		return 0, ErrClosed
	}
	if err := checkReg(d.length, off); err != nil {
		return 0, err
	}
	return *(*uint16)(unsafe.Pointer(&d.win[off])), nil
}

func (d *DevMem) WriteU16(off int64, v uint16) error {
	if d.win == nil {
		return ErrClosed
	}
	if err := checkReg(d.length, off); err != nil {
		return err
	}
	*(*uint16)(unsafe.Pointer(&d.win[off])) = v
	return nil
}

func (d *DevMem) ReadRegion(off, size int64) ([]byte, error) {
	if d.win == nil {
		return nil, ErrClosed
	}
	if err := checkAccess(d.length, off, size); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	copy(buf, d.win[off:off+size])
	return buf, nil
}

func (d *DevMem) WriteRegion(off int64, b []byte) error {
	if d.win == nil {
		return ErrClosed
	}
	if err := checkAccess(d.length, off, int64(len(b))); err != nil {
		return err
	}
	copy(d.win[off:], b)
	return nil
}

func (d *DevMem) Close() error {
	if d.win == nil {
		return fmt.Errorf("already closed: %w", ErrClosed)
	}
	d.win = nil
	if err := unix.Munmap(d.mapping); err != nil {
		unix.Close(d.fd)
		return fmt.Errorf("cannot unmap window @ 0x%X: %v", d.physBase, err)
	}
	d.mapping = nil
	return unix.Close(d.fd)
}
