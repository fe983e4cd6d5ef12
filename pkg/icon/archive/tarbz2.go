package archive

import (
	"bytes"
	"fmt"

	"github.com/dsnet/compress/bzip2"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

func init() {
	Register(&TarBz2Assembler{})
}

// TarBz2Assembler produces deterministic tar.bz2 archives.
type TarBz2Assembler struct{}

func (a *TarBz2Assembler) Name() string { return "tar.bz2" }

func (a *TarBz2Assembler) Extension() string { return ".tar.bz2" }

// Assemble tars the entries then compresses with BZIP2 at level 9.
func (a *TarBz2Assembler) Assemble(entries []Entry) ([]byte, error) {
	if err := checkEntries(entries); err != nil {
		return nil, err
	}

	tarData, err := writeTar(entries)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: 9})
	if err != nil {
		return nil, fmt.Errorf("%w: creating bzip2 writer: %v", icnerrors.ErrAssembly, err)
	}
	if _, err := bw.Write(tarData); err != nil {
		bw.Close()
		return nil, fmt.Errorf("%w: writing bzip2 data: %v", icnerrors.ErrAssembly, err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing bzip2 writer: %v", icnerrors.ErrAssembly, err)
	}

	return buf.Bytes(), nil
}
