package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iconsmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
defaults:
  fit: cover
  padding: 0.1
  background: "#336699"
packs:
  - favicon
  - pwa
archive:
  format: tar.gz
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"favicon", "pwa"}, cfg.Packs)
	assert.Equal(t, "tar.gz", cfg.Archive.Format)

	place, err := cfg.Placement()
	require.NoError(t, err)
	assert.Equal(t, spec.FitCover, place.Fit)
	assert.Equal(t, 0.1, place.Padding)
	require.NotNil(t, place.Background)
	assert.EqualValues(t, 0x33, place.Background.R)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultPlacement(t *testing.T) {
	place, err := Default().Placement()
	require.NoError(t, err)
	assert.Equal(t, spec.FitContain, place.Fit)
	assert.Zero(t, place.Padding)
	assert.Nil(t, place.Background)
}

func TestPlacementRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Padding = 0.5
	_, err := cfg.Placement()
	assert.ErrorIs(t, err, icnerrors.ErrInvalidPadding)

	cfg = Default()
	cfg.Defaults.Background = "notacolor"
	_, err = cfg.Placement()
	assert.ErrorIs(t, err, icnerrors.ErrInvalidBackground)

	cfg = Default()
	cfg.Defaults.Fit = "stretch"
	_, err = cfg.Placement()
	assert.Error(t, err)
}
