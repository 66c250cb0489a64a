// Package debug provides screenshots and overlay drawing for inspecting
// the game screen.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format is an image file format.
type Format string

const (
	FormatBMP Format = "bmp"
	FormatPNG Format = "png"
)

// FormatFromPath picks the format from a file extension, defaulting to BMP.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatBMP
}

// Upscale returns img enlarged by an integer factor with nearest-neighbour
// sampling, so pixel art stays crisp.
func Upscale(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img scaled by scale in the given format.
func Encode(w io.Writer, img image.Image, format Format, scale int) error {
	img = Upscale(img, scale)

	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
	return nil
}

// SaveFile writes img to path, choosing the format from the extension.
func SaveFile(path string, img image.Image, scale int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	return Encode(file, img, FormatFromPath(path), scale)
}

// ScreenshotCapture writes uniquely named screenshots into a directory.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
	scale     int
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string, format Format, scale int) *ScreenshotCapture {
	if format == "" {
		format = FormatBMP
	}
	if scale < 1 {
		scale = 1
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		scale:     scale,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// GenerateFilename returns a new unique screenshot path. Names embed a
// version 7 UUID so they sort by capture time.
func (sc *ScreenshotCapture) GenerateFilename() string {
	name := fmt.Sprintf("%s_%s.%s", sc.prefix, uuid.Must(uuid.NewV7()), sc.format)
	if sc.outputDir != "" {
		name = filepath.Join(sc.outputDir, name)
	}
	return name
}

// Capture saves img and returns the file written.
func (sc *ScreenshotCapture) Capture(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	if err := SaveFile(filename, img, sc.scale); err != nil {
		return "", err
	}
	return filename, nil
}
