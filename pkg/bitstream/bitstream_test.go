package bitstream

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheck(t *testing.T) {
	testCases := []struct {
		desc      string
		path      string
		wantError bool
	}{
		{
			desc: "Bitstream file",
			path: "design.bit",
		},
		{
			desc: "Bitstream with directories",
			path: "build/overlays/design.bit",
		},
		{
			desc:      "Raw binary is not accepted",
			path:      "design.bin",
			wantError: true,
		},
		{
			desc:      "No extension",
			path:      "design",
			wantError: true,
		},
	}

	for _, tc := range testCases {
		err := Check(tc.path)
		if (err != nil) != tc.wantError {
			t.Errorf("Test %q: Check(%q) = %v, want failure = %t", tc.desc, tc.path, err, tc.wantError)
		}
		if err != nil && !errors.Is(err, ErrBadImage) {
			t.Errorf("Test %q: error %v is not an %v", tc.desc, err, ErrBadImage)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "design.bit")
	devPath := filepath.Join(dir, "xdevcfg")

	image := []byte{0x00, 0x09, 0x0F, 0xF0, 0x0F, 0xF0, 0x0F, 0xF0}
	if err := os.WriteFile(imagePath, image, 0o644); err != nil {
		t.Fatalf("Cannot write test image: %v", err)
	}
	if err := os.WriteFile(devPath, nil, 0o644); err != nil {
		t.Fatalf("Cannot create fake configuration device: %v", err)
	}

	if err := Load(imagePath, devPath); err != nil {
		t.Fatalf("Cannot Load(): %v", err)
	}

	got, err := os.ReadFile(devPath)
	if err != nil {
		t.Fatalf("Cannot read back configuration device: %v", err)
	}
	if string(got) != string(image) {
		t.Fatalf("Configuration device got % X, want % X", got, image)
	}
}

func TestLoadRejectsWrongShape(t *testing.T) {
	if err := Load("design.npy", "/dev/null"); !errors.Is(err, ErrBadImage) {
		t.Fatalf("Load() of a non-bitstream = %v, want %v", err, ErrBadImage)
	}
}
