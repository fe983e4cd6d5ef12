// Package archive serializes the flattened (path, bytes) entries of an
// export into one deliverable archive blob.
//
// Every assembler is deterministic: entry timestamps are pinned to
// FixedModTime and compression levels are fixed, so two exports of the
// same inputs are byte-identical.
package archive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

// FixedModTime is the constant modification timestamp embedded in every
// archive entry in place of wall-clock time.
var FixedModTime = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one archive member.
type Entry struct {
	Path string
	Data []byte
}

// Assembler produces one archive format.
type Assembler interface {
	// Name returns the format key (e.g. "zip", "tar.gz")
	Name() string

	// Extension returns the conventional file extension including the dot
	Extension() string

	// Assemble serializes the entries into one archive buffer
	Assemble(entries []Entry) ([]byte, error)
}

// Registry maps format names to implementations.
var Registry = make(map[string]Assembler)

// Register registers an assembler implementation.
func Register(a Assembler) {
	Registry[a.Name()] = a
}

// Get retrieves an assembler by format name. The empty string selects
// zip.
func Get(name string) (Assembler, error) {
	if name == "" {
		name = "zip"
	}
	a, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", icnerrors.ErrUnknownArchive, name)
	}
	return a, nil
}

// checkEntries rejects assemblies that would produce a partial or
// meaningless archive.
func checkEntries(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries", icnerrors.ErrAssembly)
	}
	for _, e := range entries {
		if e.Path == "" {
			return fmt.Errorf("%w: entry with empty path", icnerrors.ErrAssembly)
		}
		if e.Data == nil {
			return fmt.Errorf("%w: %s", icnerrors.ErrMissingBytes, e.Path)
		}
	}
	return nil
}

// slashPath normalizes an entry path to forward slashes regardless of
// host platform.
func slashPath(p string) string {
	return filepath.ToSlash(p)
}

// writeTar serializes entries into an uncompressed tar stream with
// deterministic headers. Shared by the tar-based assemblers.
func writeTar(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, e := range entries {
		hdr := &tar.Header{
			Name:     slashPath(e.Path),
			Mode:     0o644,
			Size:     int64(len(e.Data)),
			ModTime:  FixedModTime,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("%w: tar header %s: %v", icnerrors.ErrAssembly, e.Path, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			return nil, fmt.Errorf("%w: tar data %s: %v", icnerrors.ErrAssembly, e.Path, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing tar: %v", icnerrors.ErrAssembly, err)
	}
	return buf.Bytes(), nil
}
