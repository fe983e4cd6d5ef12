package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

func sampleEntries() []Entry {
	return []Entry{
		{Path: "favicon.ico", Data: []byte{0, 0, 1, 0}},
		{Path: "icons/icon-192.png", Data: bytes.Repeat([]byte("png"), 100)},
		{Path: "site.webmanifest", Data: []byte("{}\n")},
	}
}

func TestRegistryLookup(t *testing.T) {
	for _, name := range []string{"zip", "tar.gz", "tar.bz2"} {
		a, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, a.Name())
	}

	// Empty selects zip.
	a, err := Get("")
	require.NoError(t, err)
	assert.Equal(t, "zip", a.Name())

	_, err = Get("rar")
	assert.ErrorIs(t, err, icnerrors.ErrUnknownArchive)
}

func TestZipRoundTrip(t *testing.T) {
	a := &ZipAssembler{}
	blob, err := a.Assemble(sampleEntries())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	for i, want := range sampleEntries() {
		f := zr.File[i]
		assert.Equal(t, want.Path, f.Name)
		assert.True(t, f.Modified.Equal(FixedModTime), "entry %s timestamp", f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, want.Data, got)
	}
}

func TestZipDeterministic(t *testing.T) {
	a := &ZipAssembler{}

	first, err := a.Assemble(sampleEntries())
	require.NoError(t, err)
	second, err := a.Assemble(sampleEntries())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTarGzRoundTrip(t *testing.T) {
	a := &TarGzAssembler{}
	blob, err := a.Assemble(sampleEntries())
	require.NoError(t, err)

	gr, err := gzip.NewReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer gr.Close()
	checkTar(t, gr)
}

func TestTarBz2RoundTrip(t *testing.T) {
	a := &TarBz2Assembler{}
	blob, err := a.Assemble(sampleEntries())
	require.NoError(t, err)

	br, err := bzip2.NewReader(bytes.NewReader(blob), nil)
	require.NoError(t, err)
	defer br.Close()
	checkTar(t, br)
}

func checkTar(t *testing.T, r io.Reader) {
	t.Helper()
	tr := tar.NewReader(r)
	for _, want := range sampleEntries() {
		hdr, err := tr.Next()
		require.NoError(t, err)
		assert.Equal(t, want.Path, hdr.Name)
		assert.True(t, hdr.ModTime.Equal(FixedModTime))

		got, err := io.ReadAll(tr)
		require.NoError(t, err)
		assert.Equal(t, want.Data, got)
	}
	_, err := tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTarGzDeterministic(t *testing.T) {
	a := &TarGzAssembler{}

	first, err := a.Assemble(sampleEntries())
	require.NoError(t, err)
	second, err := a.Assemble(sampleEntries())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssembleRejectsBadEntrySets(t *testing.T) {
	for name, a := range Registry {
		t.Run(name, func(t *testing.T) {
			_, err := a.Assemble(nil)
			assert.ErrorIs(t, err, icnerrors.ErrAssembly, "empty entry list")

			_, err = a.Assemble([]Entry{{Path: "x", Data: nil}})
			assert.ErrorIs(t, err, icnerrors.ErrMissingBytes, "nil data")

			_, err = a.Assemble([]Entry{{Path: "", Data: []byte{1}}})
			assert.ErrorIs(t, err, icnerrors.ErrAssembly, "empty path")
		})
	}
}
