package archive

import (
	"bytes"
	"compress/gzip"
	"fmt"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

func init() {
	Register(&TarGzAssembler{})
}

// TarGzAssembler produces deterministic tar.gz archives. The gzip
// header carries no name and a zero timestamp.
type TarGzAssembler struct{}

func (a *TarGzAssembler) Name() string { return "tar.gz" }

func (a *TarGzAssembler) Extension() string { return ".tar.gz" }

// Assemble tars the entries then compresses with gzip.
func (a *TarGzAssembler) Assemble(entries []Entry) ([]byte, error) {
	if err := checkEntries(entries); err != nil {
		return nil, err
	}

	tarData, err := writeTar(entries)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: creating gzip writer: %v", icnerrors.ErrAssembly, err)
	}
	if _, err := gw.Write(tarData); err != nil {
		gw.Close()
		return nil, fmt.Errorf("%w: writing gzip data: %v", icnerrors.ErrAssembly, err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing gzip writer: %v", icnerrors.ErrAssembly, err)
	}

	return buf.Bytes(), nil
}
