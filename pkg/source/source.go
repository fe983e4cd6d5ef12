// Package source decodes user-supplied bytes into the immutable bitmap
// every export reads from. PNG, JPEG and GIF come from the standard
// decoders, BMP and WebP from golang.org/x/image, and SVG is sized from
// its viewBox and rasterized once (no general vector engine).
package source

import (
	"bytes"
	"fmt"
	"image"
	"mime"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

// Source is one decoded input image. It is read-only once loaded and
// exclusively owned by the caller for the duration of an export.
type Source struct {
	Image  image.Image
	Width  int
	Height int
	MIME   string
}

// Load decodes raw bytes with a declared media type. An empty mime
// falls back to content sniffing.
func Load(data []byte, mimeType string) (*Source, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", icnerrors.ErrDecode)
	}

	var img image.Image
	var err error
	if isSVG(data, mimeType) {
		img, err = decodeSVG(data)
		mimeType = "image/svg+xml"
	} else {
		var format string
		img, format, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", icnerrors.ErrDecode, err)
		}
		if mimeType == "" {
			mimeType = "image/" + format
		}
	}
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", icnerrors.ErrDecode)
	}

	return &Source{Image: img, Width: b.Dx(), Height: b.Dy(), MIME: mimeType}, nil
}

// LoadFile reads and decodes one file, deriving the media type from the
// extension.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, mime.TypeByExtension(filepath.Ext(path)))
}

func isSVG(data []byte, mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/svg") {
		return true
	}
	if mimeType != "" {
		return false
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
