package source

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

// defaultSVGSize sizes documents that declare neither dimensions nor a
// usable viewBox.
const defaultSVGSize = 512

// decodeSVG rasterizes an SVG document once at its intrinsic size. The
// only normalization applied is giving the root an explicit pixel size
// from its viewBox before rendering; all scaling to target geometry
// happens later in the rasterizer like any other bitmap.
func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: svg: %v", icnerrors.ErrDecode, err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = defaultSVGSize, defaultSVGSize
	}
	pw := int(math.Ceil(w))
	ph := int(math.Ceil(h))

	icon.SetTarget(0, 0, float64(pw), float64(ph))

	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	scanner := rasterx.NewScannerGV(pw, ph, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(pw, ph, scanner), 1.0)

	return img, nil
}
