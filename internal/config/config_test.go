package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewLayout checks required working directory and derived paths.
func TestNewLayout(t *testing.T) {
	t.Parallel()

	_, err := NewLayout("")
	require.Error(t, err)

	dir := t.TempDir()

	layout, err := NewLayout(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "out"), layout.OutputDir())
	require.Equal(t, filepath.Join(dir, "out", "temp"), layout.ScratchDir())
	require.Equal(t, filepath.Join(dir, "tools", "bin"), layout.ToolsDir())
}

// TestLayout_ResolveSource verifies relative sources anchor to the working directory.
func TestLayout_ResolveSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	layout, err := NewLayout(dir)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "OTA"), layout.ResolveSource(""))
	require.Equal(t, filepath.Join(dir, "rom", "system"), layout.ResolveSource(filepath.Join("rom", "system")))

	abs := filepath.Join(t.TempDir(), "elsewhere")
	require.Equal(t, abs, layout.ResolveSource(abs+string(filepath.Separator)))
}
