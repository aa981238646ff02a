// Package screenshot writes framebuffer captures to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture saves screenshots under a directory with a common file prefix.
type Capture struct {
	dir    string
	prefix string

	// now is replaced in tests.
	now func() time.Time
}

// New creates a capture that writes <dir>/<prefix>_<timestamp>.png files.
// An empty dir writes to the working directory.
func New(dir, prefix string) *Capture {
	if prefix == "" {
		prefix = "meadow"
	}
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture would be written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format("2006-01-02_15-04-05.000"))
	if c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}

// SaveRGBA writes tightly packed RGBA pixels read back from OpenGL.
// Rows are flipped, since GL's origin is bottom-left.
func (c *Capture) SaveRGBA(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return c.Save(img)
}

// Save encodes img as PNG. The file appears only once fully written.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	tmp := filename + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming file: %w", err)
	}
	return filename, nil
}
