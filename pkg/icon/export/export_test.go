package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
	"github.com/iconsmith/iconsmith/pkg/icon/ico"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

func photoSource() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1024, 1024))
	for y := 0; y < 1024; y++ {
		for x := 0; x < 1024; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x / 4), G: uint8(y / 4), B: 0x40, A: 0xFF})
		}
	}
	return img
}

func readZip(t *testing.T, blob []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)

	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = data
	}
	return out
}

func TestExportSinglePack(t *testing.T) {
	res, err := Export(photoSource(), Options{PackIDs: []string{"windows-ico"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "zip", res.Format)
	assert.Equal(t, ".zip", res.Extension)

	files := readZip(t, res.Archive)
	require.Contains(t, files, "app.ico")
	require.Contains(t, files, ManifestPath)

	// Single selection stays unprefixed.
	assert.NotContains(t, files, "windows-ico/app.ico")

	dir, err := ico.ParseDirectory(files["app.ico"])
	require.NoError(t, err)
	require.Len(t, dir, 7)
	assert.Equal(t, 16, dir[0].PixelSize())
	assert.Equal(t, 256, dir[6].PixelSize())
}

func TestExportNamespacesMultiplePacks(t *testing.T) {
	res, err := Export(photoSource(), Options{PackIDs: []string{"favicon", "pwa"}}, nil)
	require.NoError(t, err)

	files := readZip(t, res.Archive)
	assert.Contains(t, files, "favicon/favicon.ico")
	assert.Contains(t, files, "pwa/icons/icon-512.png")
	assert.Contains(t, files, ManifestPath)
	assert.NotContains(t, files, "favicon.ico")

	// Archive entries match the plan plus the manifest.
	assert.Len(t, files, len(res.Plan.Entries)+1)
}

func TestExportManifest(t *testing.T) {
	res, err := Export(photoSource(), Options{PackIDs: []string{"slack-emoji"}}, nil)
	require.NoError(t, err)

	files := readZip(t, res.Archive)
	var m Manifest
	require.NoError(t, json.Unmarshal(files[ManifestPath], &m))
	assert.Equal(t, "iconsmith", m.Tool)
	assert.Equal(t, Version, m.Version)
	assert.Equal(t, []string{"slack-emoji"}, m.Packs)
	assert.Equal(t, 1, m.Files)
}

func TestExportRejectsManifestPathClaim(t *testing.T) {
	// A pack claiming iconsmith.json at the root would collide with the
	// manifest entry appended after the plan's own collision check.
	spec.Register(&spec.Pack{
		ID:   "manifest-shadow",
		Name: "Manifest shadow",
		Outputs: []spec.Output{
			spec.StaticText{Path: ManifestPath, Content: "{}"},
		},
	})

	_, err := Export(photoSource(), Options{PackIDs: []string{"manifest-shadow"}}, nil)
	assert.ErrorIs(t, err, icnerrors.ErrDuplicatePath)
	assert.ErrorContains(t, err, ManifestPath)
}

func TestExportDeterministic(t *testing.T) {
	opts := Options{PackIDs: []string{"favicon", "chrome-extension"}}

	first, err := Export(photoSource(), opts, nil)
	require.NoError(t, err)
	second, err := Export(photoSource(), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Archive, second.Archive)
}

func TestExportTarGz(t *testing.T) {
	res, err := Export(photoSource(), Options{
		PackIDs:       []string{"slack-emoji"},
		ArchiveFormat: "tar.gz",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "tar.gz", res.Format)
	assert.Equal(t, ".tar.gz", res.Extension)
	assert.NotEmpty(t, res.Archive)
}

func TestExportErrors(t *testing.T) {
	_, err := Export(photoSource(), Options{}, nil)
	assert.ErrorIs(t, err, icnerrors.ErrNoSelection)

	_, err = Export(photoSource(), Options{PackIDs: []string{"nope"}}, nil)
	assert.ErrorIs(t, err, icnerrors.ErrUnknownPack)

	_, err = Export(photoSource(), Options{PackIDs: []string{"favicon"}, ArchiveFormat: "rar"}, nil)
	assert.ErrorIs(t, err, icnerrors.ErrUnknownArchive)

	_, err = Export(photoSource(), Options{
		PackIDs:  []string{"favicon"},
		Defaults: spec.Placement{Padding: 0.75},
	}, nil)
	assert.ErrorIs(t, err, icnerrors.ErrInvalidPadding)
}
