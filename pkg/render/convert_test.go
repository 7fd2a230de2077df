package render

import (
	"bytes"
	"errors"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10" fill="#ff6b6b"/></svg>`

func TestMissingConverter(t *testing.T) {
	old := converter
	converter = "flowboard-no-such-binary"
	t.Cleanup(func() { converter = old })

	if Available() {
		t.Fatal("Available() = true for missing binary")
	}
	if _, err := ToPDF([]byte(tinySVG)); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPDF() error = %v, want ErrConverterMissing", err)
	}
	if _, err := ToPNG([]byte(tinySVG), 2); !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPNG() error = %v, want ErrConverterMissing", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG([]byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF([]byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
