// Package imaging turns uploaded photos into gallery artifacts: decoded,
// capped to a maximum width, and re-encoded as JPEG data URLs.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/pkordes/triplog/internal/domain"
)

const (
	// DefaultMaxWidth is the widest image stored in a gallery. Narrower images
	// are never upscaled.
	DefaultMaxWidth = 1600
	// DefaultQuality is the JPEG quality used for every stored image.
	DefaultQuality = 78
	// DefaultMaxPixels caps the canvas an upload may declare. The header is
	// checked before the full decode allocates the canvas.
	DefaultMaxPixels = 50_000_000

	dataURLPrefix = "data:image/jpeg;base64,"
)

// Artifact is one processed image ready to be stored.
type Artifact struct {
	DataURL string
	Width   int
	Height  int
}

// Downscaler resamples and re-encodes images. The zero value is not usable;
// construct with NewDownscaler.
type Downscaler struct {
	MaxWidth  int
	Quality   int
	MaxPixels int
}

// NewDownscaler returns a Downscaler with the default width cap and quality.
func NewDownscaler() *Downscaler {
	return &Downscaler{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality, MaxPixels: DefaultMaxPixels}
}

// Process decodes raw, scales it by min(1, MaxWidth/width), and encodes the
// result as a JPEG data URL. It checks ctx between the decode and resample
// stages so a cancelled upload stops early.
// Returns domain.ErrMalformedInput when raw is not a decodable image or its
// header declares more than MaxPixels pixels.
func (d *Downscaler) Process(ctx context.Context, raw []byte) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: decode image header: %v", domain.ErrMalformedInput, err)
	}
	if d.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(d.MaxPixels) {
		return Artifact{}, fmt.Errorf("%w: image is %dx%d, over the %d pixel limit",
			domain.ErrMalformedInput, cfg.Width, cfg.Height, d.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: decode image: %v", domain.ErrMalformedInput, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Artifact{}, fmt.Errorf("%w: image has no pixels", domain.ErrMalformedInput)
	}
	dw, dh := TargetSize(w, h, d.MaxWidth)

	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	if dw == w && dh == h {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: d.Quality}); err != nil {
		return Artifact{}, fmt.Errorf("imaging.Downscaler.Process: encode: %w", err)
	}
	return Artifact{
		DataURL: dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   dw,
		Height:  dh,
	}, nil
}

// TargetSize returns the output dimensions for a w×h image under maxWidth.
// Fractional pixels are truncated, with a floor of one pixel per side.
func TargetSize(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	// w*scale is exactly maxWidth; h*scale is computed in integers to avoid
	// float rounding just below a whole pixel.
	return maxWidth, max(h*maxWidth/w, 1)
}

// Dimensions decodes only the header of a stored data URL and returns its
// pixel size.
func Dimensions(dataURL string) (int, int, error) {
	raw, err := DecodeDataURL(dataURL)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: decode image header: %v", domain.ErrMalformedInput, err)
	}
	return cfg.Width, cfg.Height, nil
}

// DecodeDataURL returns the bytes carried by a base64 data URL of any image
// media type.
func DecodeDataURL(dataURL string) ([]byte, error) {
	meta, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: not a base64 image data URL", domain.ErrMalformedInput)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: data URL payload: %v", domain.ErrMalformedInput, err)
	}
	return raw, nil
}
