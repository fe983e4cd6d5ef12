// Package plan derives the flattened output-path plan for a pack
// selection. The plan is computed, never stored: it previews exactly
// the relative paths the archive assembler will receive.
package plan

import (
	"fmt"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

// Entry is one planned output path and the pack that produces it.
type Entry struct {
	Path   string
	PackID string
}

// Plan is the flattened, collision-checked path list for a selection.
// When more than one pack is selected every path is namespaced under
// `<pack-id>/`; a single selected pack keeps its paths unprefixed.
type Plan struct {
	PackIDs    []string
	Namespaced bool
	Entries    []Entry
}

// For builds the plan for the given pack ids, in selection order with
// catalog declaration order within each pack.
func For(ids []string) (*Plan, error) {
	if len(ids) == 0 {
		return nil, icnerrors.ErrNoSelection
	}

	p := &Plan{
		PackIDs:    append([]string(nil), ids...),
		Namespaced: len(ids) > 1,
	}

	seen := make(map[string]string)
	for _, id := range ids {
		pack, err := spec.Get(id)
		if err != nil {
			return nil, err
		}
		for _, out := range pack.Outputs {
			path := p.Prefix(id) + out.OutPath()
			if prev, dup := seen[path]; dup {
				return nil, fmt.Errorf("%w: %s claimed by packs %s and %s",
					icnerrors.ErrDuplicatePath, path, prev, id)
			}
			seen[path] = id
			p.Entries = append(p.Entries, Entry{Path: path, PackID: id})
		}
	}

	return p, nil
}

// Prefix returns the path prefix applied to one pack's outputs under
// this plan.
func (p *Plan) Prefix(packID string) string {
	if !p.Namespaced {
		return ""
	}
	return packID + "/"
}
