package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

func init() {
	Register(&ZipAssembler{})
}

// ZipAssembler produces deterministic zip archives. Compression is
// pinned to flate.BestCompression: assembly runs once per export and
// the archives are small, so ratio wins over speed.
type ZipAssembler struct{}

func (a *ZipAssembler) Name() string { return "zip" }

func (a *ZipAssembler) Extension() string { return ".zip" }

// Assemble writes all entries into one zip buffer.
func (a *ZipAssembler) Assemble(entries []Entry) ([]byte, error) {
	if err := checkEntries(entries); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:     slashPath(e.Path),
			Method:   zip.Deflate,
			Modified: FixedModTime,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("%w: zip header %s: %v", icnerrors.ErrAssembly, e.Path, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, fmt.Errorf("%w: zip data %s: %v", icnerrors.ErrAssembly, e.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing zip: %v", icnerrors.ErrAssembly, err)
	}
	return buf.Bytes(), nil
}
