package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "auto", cfg.Format)
	require.Equal(t, "default", cfg.Theme)
	require.Equal(t, 30, cfg.TimeoutSeconds)
	require.False(t, cfg.Insecure)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".treport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: llm\ntimeout_seconds: 5\ninsecure: true\n"), 0o644))

	cfg, err := fromFile(path)
	require.NoError(t, err)
	require.Equal(t, "llm", cfg.Format)
	require.Equal(t, 5, cfg.TimeoutSeconds)
	require.True(t, cfg.Insecure)
	require.Empty(t, cfg.Theme) // unset fields stay zero for merge
}

func TestFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".treport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0o644))

	_, err := fromFile(path)
	require.Error(t, err)
}

func TestMerge_PartialOverride(t *testing.T) {
	got := merge(Default(), Config{Theme: "mono"})
	require.Equal(t, "mono", got.Theme)
	require.Equal(t, "auto", got.Format)
	require.Equal(t, 30, got.TimeoutSeconds)
}

func TestLoad_LocalFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".treport.yaml"), []byte("theme: mono\n"), 0o644))
	t.Chdir(dir)

	cfg := Load()
	require.Equal(t, "mono", cfg.Theme)
	require.Equal(t, "auto", cfg.Format)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.Equal(t, Default(), Load())
}
