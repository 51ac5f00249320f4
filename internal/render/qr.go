// =============================================================================
// Lotto QR Generator - QR Rendering
// =============================================================================
//
// This module turns payload text into a PNG QR code. The rest of the program
// only sees the Renderer interface; the QR library is an implementation
// detail of QRRenderer.
//
// RENDERING OPTIONS:
//   - Level   : error correction (L, M, Q, H)
//   - BoxSize : pixels per module
//   - Border  : quiet zone width in modules
//   - Version : fixed symbol version 1-40, or 0 to pick the smallest fit
//
// With a fixed version, text that does not fit is an error. It is never
// truncated.
//
// =============================================================================

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Level is a QR error correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// ParseLevel accepts L, M, Q, H in either case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelL, LevelM, LevelQ, LevelH:
		return l, nil
	case "":
		return LevelM, nil
	default:
		return "", fmt.Errorf("unknown error correction level %q, want L, M, Q, or H", s)
	}
}

func (l Level) recovery() (qrcode.RecoveryLevel, error) {
	switch l {
	case LevelL:
		return qrcode.Low, nil
	case LevelM, "":
		return qrcode.Medium, nil
	case LevelQ:
		return qrcode.High, nil
	case LevelH:
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unknown error correction level %q", string(l))
	}
}

// Options controls the rendered image.
type Options struct {
	Level   Level
	BoxSize int
	Border  int
	Version int
}

// DefaultOptions returns medium error correction, 8 pixel modules, and a
// two module border.
func DefaultOptions() Options {
	return Options{Level: LevelM, BoxSize: 8, Border: 2}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.BoxSize < 1 {
		return fmt.Errorf("box size must be positive, got %d", o.BoxSize)
	}
	if o.Border < 0 {
		return fmt.Errorf("border must not be negative, got %d", o.Border)
	}
	if o.Version < 0 || o.Version > 40 {
		return fmt.Errorf("version must be 0 (auto) or 1-40, got %d", o.Version)
	}
	if _, err := o.Level.recovery(); err != nil {
		return err
	}
	return nil
}

// Renderer turns text into an encoded image.
type Renderer interface {
	Render(text string, opts Options) ([]byte, error)
}

// QRRenderer renders PNG QR codes. It holds no state; every call builds its
// own symbol.
type QRRenderer struct{}

// NewQRRenderer returns a QRRenderer.
func NewQRRenderer() *QRRenderer {
	return &QRRenderer{}
}

// Render implements Renderer.
func (r *QRRenderer) Render(text string, opts Options) ([]byte, error) {
	img, err := r.Image(text, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Image renders text without encoding it.
func (r *QRRenderer) Image(text string, opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	level, _ := opts.Level.recovery()

	var (
		q   *qrcode.QRCode
		err error
	)
	if opts.Version > 0 {
		q, err = qrcode.NewWithForcedVersion(text, opts.Version, level)
	} else {
		q, err = qrcode.New(text, level)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code (version %d, level %s, %d bytes): %w",
			opts.Version, opts.Level, len(text), err)
	}
	q.DisableBorder = true

	return draw(q.Bitmap(), opts.BoxSize, opts.Border), nil
}

// draw scales a module bitmap and surrounds it with a quiet zone.
func draw(bitmap [][]bool, box, border int) *image.Paletted {
	modules := len(bitmap)
	side := (modules + 2*border) * box

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)

	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + border) * box
			y0 := (y + border) * box
			for py := y0; py < y0+box; py++ {
				for px := x0; px < x0+box; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}
	return img
}
