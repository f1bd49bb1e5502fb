package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func decodeJPEG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	return img
}

func TestNormalizeDownscalesOversized(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.jpg")
	writePNG(t, src, 400, 200)

	require.NoError(t, Normalize(src, dst, 100))

	out := decodeJPEG(t, dst)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestNormalizePortraitAspectPreserved(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.jpg")
	writePNG(t, src, 120, 300)

	require.NoError(t, Normalize(src, dst, 150))

	out := decodeJPEG(t, dst)
	assert.Equal(t, 150, out.Bounds().Dy())
	assert.Equal(t, 60, out.Bounds().Dx())
}

func TestNormalizeSmallImagePassesThrough(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.jpg")
	writePNG(t, src, 80, 60)

	require.NoError(t, Normalize(src, dst, 3000))

	out := decodeJPEG(t, dst)
	assert.Equal(t, 80, out.Bounds().Dx())
	assert.Equal(t, 60, out.Bounds().Dy())
}

func TestNormalizeUndecodableCopiesVerbatim(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.heic")
	dst := filepath.Join(dir, "dst.jpg")
	payload := []byte("not an image at all")
	require.NoError(t, os.WriteFile(src, payload, 0o644))

	require.NoError(t, Normalize(src, dst, 3000))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, copied)
}

func TestNormalizeMissingSource(t *testing.T) {
	dir := t.TempDir()

	err := Normalize(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "dst.jpg"), 3000)

	assert.Error(t, err)
}
