// Package export drives one full export: plan the selection, expand
// each pack against the source image, and assemble the archive.
//
// An export either completes or fails as a unit. Nothing here retries:
// every step is a deterministic transform over in-memory bytes, so a
// retry without changed inputs would reproduce the same failure.
package export

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/iconsmith/iconsmith/pkg/icon/archive"
	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
	"github.com/iconsmith/iconsmith/pkg/icon/expand"
	"github.com/iconsmith/iconsmith/pkg/icon/plan"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

// Version is the tool version recorded in the bundle manifest.
const Version = "0.3.0"

// ManifestPath is the name of the metadata entry appended to every
// bundle.
const ManifestPath = "iconsmith.json"

// Options selects the packs, placement defaults and archive format for
// one export.
type Options struct {
	PackIDs       []string
	Defaults      spec.Placement
	ArchiveFormat string // "" selects zip
}

// Result is one completed export.
type Result struct {
	Archive   []byte
	Format    string
	Extension string
	Plan      *plan.Plan
	Warnings  []string
}

// Manifest is the deterministic metadata entry written as the last
// archive member. It carries no wall-clock timestamp.
type Manifest struct {
	Tool     string   `json:"tool"`
	Version  string   `json:"version"`
	Packs    []string `json:"packs"`
	Files    int      `json:"files"`
	Warnings []string `json:"warnings,omitempty"`
}

// Export runs the whole pipeline for one already-decoded source image.
func Export(src image.Image, opts Options, logger hclog.Logger) (*Result, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := opts.Defaults.Validate(); err != nil {
		return nil, err
	}

	assembler, err := archive.Get(opts.ArchiveFormat)
	if err != nil {
		return nil, err
	}

	pl, err := plan.For(opts.PackIDs)
	if err != nil {
		return nil, err
	}
	logger.Info("📦 Export starting", "packs", pl.PackIDs, "planned_files", len(pl.Entries), "format", assembler.Name())

	expander := expand.New(opts.Defaults, logger)

	var entries []archive.Entry
	var warnings []string
	for _, id := range pl.PackIDs {
		pack, err := spec.Get(id)
		if err != nil {
			return nil, err
		}
		res, err := expander.Expand(pack, src)
		if err != nil {
			// Abort the whole export; a partial archive is worse than
			// a clear failure.
			return nil, err
		}

		prefix := pl.Prefix(id)
		for _, f := range res.Files {
			entries = append(entries, archive.Entry{Path: prefix + f.Path, Data: f.Data})
		}
		warnings = append(warnings, res.Warnings...)
	}

	// The manifest entry sits outside the plan, so the plan's collision
	// invariant does not protect it.
	for _, e := range entries {
		if e.Path == ManifestPath {
			return nil, fmt.Errorf("%w: %s is reserved for the bundle manifest", icnerrors.ErrDuplicatePath, ManifestPath)
		}
	}

	manifest := Manifest{
		Tool:     "iconsmith",
		Version:  Version,
		Packs:    pl.PackIDs,
		Files:    len(entries),
		Warnings: warnings,
	}
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", icnerrors.ErrAssembly, err)
	}
	entries = append(entries, archive.Entry{Path: ManifestPath, Data: append(manifestData, '\n')})

	blob, err := assembler.Assemble(entries)
	if err != nil {
		return nil, err
	}

	logger.Info("✅ Export complete", "files", len(entries), "bytes", len(blob), "warnings", len(warnings))
	return &Result{
		Archive:   blob,
		Format:    assembler.Name(),
		Extension: assembler.Extension(),
		Plan:      pl,
		Warnings:  warnings,
	}, nil
}
