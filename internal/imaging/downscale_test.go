package imaging_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/imaging"
)

// pngBytes returns a w×h PNG filled with a gradient so the encoder has some
// detail to work with.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_WideImageIsCapped(t *testing.T) {
	d := imaging.NewDownscaler()

	art, err := d.Process(context.Background(), pngBytes(t, 3200, 800))

	require.NoError(t, err)
	assert.Equal(t, 1600, art.Width)
	assert.Equal(t, 400, art.Height)

	w, h, err := imaging.Dimensions(art.DataURL)
	require.NoError(t, err)
	assert.LessOrEqual(t, w, 1600)
	assert.Equal(t, 400, h)
}

func TestProcess_NarrowImageIsNotUpscaled(t *testing.T) {
	d := imaging.NewDownscaler()

	art, err := d.Process(context.Background(), pngBytes(t, 640, 480))

	require.NoError(t, err)
	w, h, err := imaging.Dimensions(art.DataURL)
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Contains(t, art.DataURL, "data:image/jpeg;base64,")
}

func TestProcess_Garbage(t *testing.T) {
	_, err := imaging.NewDownscaler().Process(context.Background(), []byte("definitely not a png"))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

// pngHeader returns the signature and IHDR chunk of a grayscale PNG that
// declares a w×h canvas. DecodeConfig accepts it; a full decode would need
// the missing pixel data.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	chunk := append([]byte("IHDR"), ihdr...)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcess_RejectsOversizedCanvas(t *testing.T) {
	raw := pngHeader(20000, 20000)
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 20000, cfg.Width)

	_, err = imaging.NewDownscaler().Process(context.Background(), raw)

	require.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Contains(t, err.Error(), "pixel limit")
}

func TestProcess_PixelLimitIsConfigurable(t *testing.T) {
	d := imaging.NewDownscaler()
	d.MaxPixels = 99

	_, err := d.Process(context.Background(), pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)

	_, err = d.Process(context.Background(), pngBytes(t, 9, 11))
	assert.NoError(t, err)
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imaging.NewDownscaler().Process(ctx, pngBytes(t, 10, 10))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTargetSize(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{1600, 900, 1600, 1600, 900},
		{4000, 3000, 1600, 1600, 1200},
		{1601, 1, 1600, 1600, 1},
		{5000, 2, 1600, 1600, 1},
		{800, 600, 1600, 800, 600},
	}
	for _, tc := range cases {
		w, h := imaging.TargetSize(tc.w, tc.h, tc.max)
		assert.Equal(t, tc.wantW, w, "%dx%d", tc.w, tc.h)
		assert.Equal(t, tc.wantH, h, "%dx%d", tc.w, tc.h)
	}
}

func TestDecodeDataURL_Rejects(t *testing.T) {
	for _, in := range []string{"", "data:text/plain;base64,AAAA", "data:image/png,raw", "data:image/png;base64,@@@"} {
		_, err := imaging.DecodeDataURL(in)
		assert.ErrorIs(t, err, domain.ErrMalformedInput, "input %q", in)
	}
}
