package pkg

import (
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/iconsmith/iconsmith/pkg/icon/export"
	"github.com/iconsmith/iconsmith/pkg/source"
)

// BuildBundle generates the selected packs from a source image file and
// writes the archive to outputPath.
func BuildBundle(sourcePath, outputPath string, packIDs []string) ([]string, error) {
	return BuildBundleWithOptions(sourcePath, outputPath, export.Options{PackIDs: packIDs}, nil)
}

// BuildBundleWithOptions is BuildBundle with full control over defaults
// and archive format. It returns the collected size warnings.
func BuildBundleWithOptions(sourcePath, outputPath string, opts export.Options, logger hclog.Logger) ([]string, error) {
	src, err := source.LoadFile(sourcePath)
	if err != nil {
		return nil, err
	}

	res, err := export.Export(src.Image, opts, logger)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, res.Archive, 0o644); err != nil {
		return nil, err
	}
	return res.Warnings, nil
}
