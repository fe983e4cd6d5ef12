package source

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 0xFF, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20"><rect width="10" height="20" fill="#ff0000"/></svg>`

func TestLoadPNG(t *testing.T) {
	src, err := Load(pngBytes(t, 30, 40), "image/png")
	require.NoError(t, err)
	assert.Equal(t, 30, src.Width)
	assert.Equal(t, 40, src.Height)
	assert.Equal(t, "image/png", src.MIME)
}

func TestLoadSniffsFormat(t *testing.T) {
	src, err := Load(pngBytes(t, 8, 8), "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", src.MIME)
}

func TestLoadSVGSizesFromViewBox(t *testing.T) {
	src, err := Load([]byte(testSVG), "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, 10, src.Width)
	assert.Equal(t, 20, src.Height)
	assert.Equal(t, "image/svg+xml", src.MIME)
}

func TestLoadSniffsSVG(t *testing.T) {
	src, err := Load([]byte(testSVG), "")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", src.MIME)
	assert.Equal(t, 10, src.Width)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte("definitely not an image"), "image/png")
	assert.Error(t, err)

	_, err = Load(nil, "image/png")
	assert.ErrorIs(t, err, icnerrors.ErrDecode)

	_, err = Load([]byte("<svg bad"), "image/svg+xml")
	assert.ErrorIs(t, err, icnerrors.ErrDecode)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 12, 12), 0o644))

	src, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 12, src.Width)

	_, err = LoadFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
