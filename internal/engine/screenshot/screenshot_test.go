package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedCapture(dir string) *Capture {
	c := New(dir, "test")
	c.now = func() time.Time {
		return time.Date(2024, 5, 17, 9, 30, 15, 250_000_000, time.UTC)
	}
	return c
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"no dir", "", "test_2024-05-17_09-30-15.250.png"},
		{"with dir", "shots", filepath.Join("shots", "test_2024-05-17_09-30-15.250.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixedCapture(tt.dir).Filename(); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPrefix(t *testing.T) {
	c := New("", "")
	if !strings.HasPrefix(c.Filename(), "meadow_") {
		t.Errorf("Filename() = %q, want meadow_ prefix", c.Filename())
	}
}

func TestSaveRGBAFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := fixedCapture(dir)

	// 1x2 image: bottom row red, top row blue in GL order
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := c.SaveRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("SaveRGBA: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestSaveRGBAErrors(t *testing.T) {
	c := fixedCapture(t.TempDir())

	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"size mismatch", make([]byte, 7), 1, 2},
		{"zero width", nil, 0, 2},
		{"negative height", nil, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.SaveRGBA(tt.pixels, tt.width, tt.height); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
