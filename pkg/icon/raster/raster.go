// Package raster turns one decoded source image plus placement
// parameters into an encoded image buffer of an exact target size.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

// JPEGQuality is fixed so that identical inputs always encode to
// identical bytes. It is deliberately not caller-configurable.
const JPEGQuality = 90

// Options describes one rasterization: target geometry, resolved
// placement parameters and the encoding format.
type Options struct {
	Width  int
	Height int
	Place  spec.Placement
	Format spec.Format
}

// Render composites src onto a Width×Height canvas and encodes it.
//
// The source is scaled with a Lanczos3 filter (never nearest-neighbor)
// and centered. FitContain guarantees every source pixel stays visible,
// FitCover guarantees the padded inner box is fully covered. JPEG output
// cannot carry alpha, so a missing background is substituted with white
// rather than rejected.
func Render(src image.Image, opt Options) ([]byte, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", icnerrors.ErrInvalidGeometry, opt.Width, opt.Height)
	}
	if err := opt.Place.Validate(); err != nil {
		return nil, err
	}

	srcBounds := src.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()
	if srcW < 1 || srcH < 1 {
		return nil, fmt.Errorf("%w: empty source image", icnerrors.ErrInvalidGeometry)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, opt.Width, opt.Height))

	bg := opt.Place.Background
	if bg == nil && opt.Format == spec.FormatJPEG {
		bg = &color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	if bg != nil {
		xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(*bg), image.Point{}, xdraw.Src)
	}

	// Padding is a fraction of the smaller target dimension, reserved
	// on all four sides before fitting. The inner box never collapses
	// below one pixel.
	minDim := opt.Width
	if opt.Height < minDim {
		minDim = opt.Height
	}
	pad := int(math.Round(float64(minDim) * opt.Place.Padding))
	targetW := max(1, opt.Width-2*pad)
	targetH := max(1, opt.Height-2*pad)

	sx := float64(targetW) / float64(srcW)
	sy := float64(targetH) / float64(srcH)
	var scale float64
	switch opt.Place.Fit {
	case spec.FitCover:
		scale = math.Max(sx, sy)
	default:
		scale = math.Min(sx, sy)
	}

	drawW := max(1, int(math.Round(float64(srcW)*scale)))
	drawH := max(1, int(math.Round(float64(srcH)*scale)))

	scaled := resize.Resize(uint(drawW), uint(drawH), src, resize.Lanczos3)

	dx := int(math.Round(float64(opt.Width-drawW) / 2))
	dy := int(math.Round(float64(opt.Height-drawH) / 2))
	dest := image.Rect(dx, dy, dx+drawW, dy+drawH)
	xdraw.Draw(canvas, dest, scaled, scaled.Bounds().Min, xdraw.Over)

	return Encode(canvas, opt.Format)
}

// Encode serializes a canvas to the requested format.
func Encode(img image.Image, format spec.Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case spec.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: png: %v", icnerrors.ErrEncode, err)
		}
	case spec.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("%w: jpeg: %v", icnerrors.ErrEncode, err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", icnerrors.ErrUnknownFormat, format)
	}
	return buf.Bytes(), nil
}
