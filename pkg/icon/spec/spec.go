// Package spec defines the declarative data model consumed by the
// asset-generation pipeline: placement parameters, output descriptors
// and pack specifications.
//
// The three descriptor kinds (Raster, IconContainer, StaticText) form a
// closed sum type. Consumers type-switch over Output and treat any other
// implementation as a bug.
package spec

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

// FitMode relates the source aspect ratio to the target box.
type FitMode uint8

const (
	// FitContain keeps the whole source visible, possibly letterboxing.
	FitContain FitMode = iota
	// FitCover fills the target box completely, possibly cropping.
	FitCover
)

func (m FitMode) String() string {
	switch m {
	case FitContain:
		return "contain"
	case FitCover:
		return "cover"
	default:
		return fmt.Sprintf("fit(%d)", uint8(m))
	}
}

// ParseFit parses "contain" or "cover".
func ParseFit(s string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contain":
		return FitContain, nil
	case "cover":
		return FitCover, nil
	default:
		return FitContain, fmt.Errorf("unknown fit mode %q", s)
	}
}

// Format is a raster encoding format.
type Format uint8

const (
	FormatPNG Format = iota
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseBackground parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into a fill
// color. The empty string means no background (transparent). Anything
// else is rejected, never clamped or guessed.
func ParseBackground(s string) (*color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return nil, fmt.Errorf("%w: %q", icnerrors.ErrInvalidBackground, s)
	}

	var r, g, b, a uint64
	var err error
	a = 0xFF
	switch len(hex) {
	case 3:
		if r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 8); err == nil {
			if g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 8); err == nil {
				b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 8)
			}
		}
	case 8:
		a, err = strconv.ParseUint(hex[6:8], 16, 8)
		fallthrough
	case 6:
		if err == nil {
			if r, err = strconv.ParseUint(hex[0:2], 16, 8); err == nil {
				if g, err = strconv.ParseUint(hex[2:4], 16, 8); err == nil {
					b, err = strconv.ParseUint(hex[4:6], 16, 8)
				}
			}
		}
	default:
		err = fmt.Errorf("length %d", len(hex))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q", icnerrors.ErrInvalidBackground, s)
	}

	return &color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// MustBackground is ParseBackground for static catalog literals.
func MustBackground(s string) *color.NRGBA {
	bg, err := ParseBackground(s)
	if err != nil {
		panic(err)
	}
	return bg
}

// Placement is the fully resolved set of placement parameters handed to
// the rasterizer: fit mode, padding ratio and optional background fill.
type Placement struct {
	Fit        FitMode
	Padding    float64
	Background *color.NRGBA
}

// DefaultPlacement returns the global fallback placement: contain, no
// padding, transparent background.
func DefaultPlacement() Placement {
	return Placement{Fit: FitContain}
}

// Validate rejects padding ratios outside [0, 0.5). Values at or above
// 0.5 would invert the inner target box.
func (p Placement) Validate() error {
	if !validPadding(p.Padding) {
		return fmt.Errorf("%w: got %v", icnerrors.ErrInvalidPadding, p.Padding)
	}
	return nil
}

// validPadding reports whether v is in [0, 0.5). NaN fails both range
// comparisons, so it needs an explicit check.
func validPadding(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v < 0.5
}

// Override carries per-descriptor placement overrides. Nil fields fall
// through to the caller-supplied defaults.
type Override struct {
	Fit        *FitMode
	Padding    *float64
	Background *color.NRGBA
}

// Apply layers the override on top of a base placement.
func (o Override) Apply(base Placement) Placement {
	out := base
	if o.Fit != nil {
		out.Fit = *o.Fit
	}
	if o.Padding != nil {
		out.Padding = *o.Padding
	}
	if o.Background != nil {
		out.Background = o.Background
	}
	return out
}

// Pad returns a padding-ratio override value for catalog literals.
func Pad(v float64) *float64 { return &v }

// Fit returns a fit-mode override value for catalog literals.
func Fit(m FitMode) *FitMode { return &m }

// Output is one declared deliverable within a pack. Exactly three
// implementations exist: Raster, IconContainer and StaticText.
type Output interface {
	// OutPath returns the relative output path, unique within the pack.
	OutPath() string

	sealed()
}

// Raster declares a single encoded image at a fixed size.
type Raster struct {
	Path          string
	Width         int
	Height        int
	Format        Format
	Place         Override
	WarnOverBytes int64 // 0 = no size warning threshold
}

func (r Raster) OutPath() string { return r.Path }
func (Raster) sealed()           {}

// IconContainer declares one multi-size ICO file. Sizes are rendered in
// declaration order; fit is always contain regardless of defaults.
type IconContainer struct {
	Path          string
	Sizes         []int
	Place         Override // Fit field is ignored; containers never crop
	WarnOverBytes int64
}

func (c IconContainer) OutPath() string { return c.Path }
func (IconContainer) sealed()           {}

// StaticText declares a literal UTF-8 file.
type StaticText struct {
	Path    string
	Content string
}

func (t StaticText) OutPath() string { return t.Path }
func (StaticText) sealed()           {}

// Pack is one immutable catalog entry: an id, human-readable metadata
// and an ordered sequence of output descriptors.
type Pack struct {
	ID          string
	Name        string
	Description string
	Outputs     []Output
}

// Validate checks the pack invariants: unique output paths, positive
// raster geometry, padding overrides in range and container sizes
// representable in an ICO directory entry.
func (p *Pack) Validate() error {
	seen := make(map[string]struct{}, len(p.Outputs))
	for _, out := range p.Outputs {
		path := out.OutPath()
		if path == "" {
			return fmt.Errorf("pack %s: descriptor with empty path", p.ID)
		}
		if _, dup := seen[path]; dup {
			return fmt.Errorf("%w: %s in pack %s", icnerrors.ErrDuplicatePath, path, p.ID)
		}
		seen[path] = struct{}{}

		switch d := out.(type) {
		case Raster:
			if d.Width <= 0 || d.Height <= 0 {
				return fmt.Errorf("%w: %s is %dx%d", icnerrors.ErrInvalidGeometry, path, d.Width, d.Height)
			}
			if err := validateOverride(d.Place, path); err != nil {
				return err
			}
		case IconContainer:
			if len(d.Sizes) == 0 {
				return fmt.Errorf("%w: %s", icnerrors.ErrEmptyContainer, path)
			}
			for _, s := range d.Sizes {
				if s < 1 || s > 256 {
					return fmt.Errorf("%w: %s declares %d", icnerrors.ErrContainerSize, path, s)
				}
			}
			if err := validateOverride(d.Place, path); err != nil {
				return err
			}
		case StaticText:
			// Literal content, nothing to check.
		default:
			return fmt.Errorf("%w: %T", icnerrors.ErrUnknownKind, out)
		}
	}
	return nil
}

func validateOverride(o Override, path string) error {
	if o.Padding != nil && !validPadding(*o.Padding) {
		return fmt.Errorf("%w: %s declares %v", icnerrors.ErrInvalidPadding, path, *o.Padding)
	}
	return nil
}
