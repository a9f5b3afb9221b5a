// Package bitstream programs the accelerator's configuration image into the
// programmable logic. Programming is a one-shot administrative step: it must
// complete before a register window onto the design is established, and it is
// not repeatable mid-session without re-establishing the window.
package bitstream

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// ErrBadImage marks an artifact that does not look like a bitstream.
var ErrBadImage = errors.New("not a bitstream image")

// DefaultDevice is the Zynq-7000 PL configuration interface.
const DefaultDevice = "/dev/xdevcfg"

// Check validates that path has the expected bitstream shape (.bit file).
func Check(path string) error {
	if filepath.Ext(path) != ".bit" {
		return fmt.Errorf("%q: want a .bit file: %w", path, ErrBadImage)
	}
	return nil
}

// Load streams the image at imagePath into the configuration device at
// devPath, reprogramming the logic. This is an observable side effect on the
// hardware: any register state of a previously loaded design is gone.
func Load(imagePath, devPath string) error {
	if err := Check(imagePath); err != nil {
		return err
	}

	img, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("cannot open bitstream %q: %v", imagePath, err)
	}
	defer img.Close()

	dev, err := os.OpenFile(devPath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("cannot open configuration device %q: %v", devPath, err)
	}
	defer dev.Close()

	n, err := io.Copy(dev, img)
	if err != nil {
		return fmt.Errorf("error programming PL after %d bytes: %v", n, err)
	}
	log.Printf("Programmed PL with %q (%d bytes)", imagePath, n)
	return nil
}
