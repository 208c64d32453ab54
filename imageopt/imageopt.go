// Package imageopt resizes and re-encodes the site's image assets.
package imageopt

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 80

// ErrUnsupportedFormat is returned for output formats that cannot be encoded.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Options controls one optimization. Zero Width and Height keep the size.
// An empty Format keeps the source format where it can be encoded.
type Options struct {
	Width     int
	Height    int
	Quality   int
	Format    string
	Recursive bool
}

// Result is the outcome for one file.
type Result struct {
	File       string `json:"file"`
	OutputPath string `json:"outputPath,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Optimize decodes in, fits it inside the requested box without enlarging
// it and writes the encoded result to out.
func Optimize(in, out string, opts Options) error {
	format, err := outputFormat(opts.Format, filepath.Ext(in))
	if err != nil {
		return err
	}

	src, err := decode(in)
	if err != nil {
		return err
	}
	img := Fit(src, opts.Width, opts.Height)

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := encode(w, img, format, opts.Quality); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Fit scales img to fit inside width x height keeping its aspect ratio.
// A zero bound is unconstrained. Images already inside the box are
// returned unchanged.
func Fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	scale := 1.0
	if width > 0 && w > width {
		scale = float64(width) / float64(w)
	}
	if height > 0 && float64(h)*scale > float64(height) {
		scale = float64(height) / float64(h)
	}
	if scale >= 1 {
		return img
	}

	nw := max(int(float64(w)*scale+0.5), 1)
	nh := max(int(float64(h)*scale+0.5), 1)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// OutputName returns the output file name for name in format, or name
// unchanged when format is empty and the source can be re-encoded as is.
func OutputName(name, format string) (string, error) {
	ext := filepath.Ext(name)
	f, err := outputFormat(format, ext)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(name, ext)
	switch {
	case f == "jpeg" && isJPEG(ext), f == "png" && strings.EqualFold(ext, ".png"):
		return name, nil
	case f == "jpeg":
		return base + ".jpg", nil
	default:
		return base + "." + f, nil
	}
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// outputFormat resolves the encoder for the requested format. Sources that
// cannot be written back (webp, gif) fall back to jpeg and png.
func outputFormat(requested, srcExt string) (string, error) {
	switch strings.ToLower(requested) {
	case "jpeg", "jpg":
		return "jpeg", nil
	case "png":
		return "png", nil
	case "":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, requested)
	}

	switch strings.ToLower(srcExt) {
	case ".png", ".gif":
		return "png", nil
	default:
		return "jpeg", nil
	}
}

func encode(w *bufio.Writer, img image.Image, format string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	switch format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if quality >= 90 {
			enc.CompressionLevel = png.DefaultCompression
		}
		return enc.Encode(w, img)
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
}

func isJPEG(ext string) bool {
	return strings.EqualFold(ext, ".jpg") || strings.EqualFold(ext, ".jpeg")
}
