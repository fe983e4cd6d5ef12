// Package expand walks a pack's output descriptors and produces the
// (relative path, bytes) entries for one pack.
package expand

import (
	"fmt"
	"image"
	"math"

	"github.com/hashicorp/go-hclog"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
	"github.com/iconsmith/iconsmith/pkg/icon/ico"
	"github.com/iconsmith/iconsmith/pkg/icon/raster"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

// File is one generated output: a pack-relative path and its bytes.
type File struct {
	Path string
	Data []byte
}

// Result collects one pack's generated files plus any size-limit
// warnings. Warnings never block an export, they only annotate it.
type Result struct {
	Files    []File
	Warnings []string
}

// Expander handles descriptor expansion for packs.
//
// Each descriptor is processed in declaration order:
//   - StaticText content passes through as UTF-8 bytes
//   - Raster resolves descriptor overrides over the caller defaults and
//     invokes the rasterizer
//   - IconContainer renders each declared size with fit=contain (icon
//     containers conventionally never crop) and assembles the ICO
//
// A hard failure in any descriptor aborts the whole pack: a clear
// full-stop beats a partially filled archive.
type Expander struct {
	defaults spec.Placement
	logger   hclog.Logger
}

// New creates an expander with the caller-supplied placement defaults.
func New(defaults spec.Placement, logger hclog.Logger) *Expander {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Expander{defaults: defaults, logger: logger}
}

// Expand produces all entries for one pack from an already-decoded
// source image.
func (e *Expander) Expand(p *spec.Pack, src image.Image) (*Result, error) {
	e.logger.Debug("📂 Expanding pack", "id", p.ID, "outputs", len(p.Outputs))

	res := &Result{Files: make([]File, 0, len(p.Outputs))}

	for _, out := range p.Outputs {
		switch d := out.(type) {
		case spec.StaticText:
			res.Files = append(res.Files, File{Path: d.Path, Data: []byte(d.Content)})

		case spec.Raster:
			data, err := raster.Render(src, raster.Options{
				Width:  d.Width,
				Height: d.Height,
				Place:  d.Place.Apply(e.defaults),
				Format: d.Format,
			})
			if err != nil {
				return nil, fmt.Errorf("pack %s: %s: %w", p.ID, d.Path, err)
			}
			e.checkLimit(res, d.Path, int64(len(data)), d.WarnOverBytes)
			res.Files = append(res.Files, File{Path: d.Path, Data: data})

		case spec.IconContainer:
			place := d.Place.Apply(e.defaults)
			place.Fit = spec.FitContain

			entries := make([]ico.Entry, 0, len(d.Sizes))
			for _, size := range d.Sizes {
				data, err := raster.Render(src, raster.Options{
					Width:  size,
					Height: size,
					Place:  place,
					Format: spec.FormatPNG,
				})
				if err != nil {
					return nil, fmt.Errorf("pack %s: %s (%dpx): %w", p.ID, d.Path, size, err)
				}
				entries = append(entries, ico.Entry{Size: size, Data: data})
			}

			data, err := ico.Build(entries)
			if err != nil {
				return nil, fmt.Errorf("pack %s: %s: %w", p.ID, d.Path, err)
			}
			e.checkLimit(res, d.Path, int64(len(data)), d.WarnOverBytes)
			res.Files = append(res.Files, File{Path: d.Path, Data: data})

		default:
			return nil, fmt.Errorf("%w: %T in pack %s", icnerrors.ErrUnknownKind, out, p.ID)
		}
	}

	e.logger.Debug("✅ Pack expanded", "id", p.ID, "files", len(res.Files), "warnings", len(res.Warnings))
	return res, nil
}

func (e *Expander) checkLimit(res *Result, path string, size, limit int64) {
	if limit <= 0 || size <= limit {
		return
	}
	msg := fmt.Sprintf("%s: %d KB exceeds the %d KB limit", path, roundKB(size), roundKB(limit))
	e.logger.Warn("⚠️ Output over size limit", "path", path, "size", size, "limit", limit)
	res.Warnings = append(res.Warnings, msg)
}

func roundKB(n int64) int64 {
	return int64(math.Round(float64(n) / 1024))
}
