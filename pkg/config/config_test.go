package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Part)
	require.Equal(t, 1000, cfg.Retrieval.BatchSize)
	require.Equal(t, 10, cfg.Retrieval.TopK)
	require.Equal(t, 1, cfg.Workers)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xqa.yaml")
	content := `
data_dir: /data/xqa
language: fi
part: train
workers: 4
retrieval:
  batch_size: 500
  top_k: 5
  lowercase: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/xqa", cfg.DataDir)
	require.Equal(t, "fi", cfg.Language)
	require.Equal(t, "train", cfg.Part)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 500, cfg.Retrieval.BatchSize)
	require.Equal(t, 5, cfg.Retrieval.TopK)
	require.True(t, cfg.Retrieval.Lowercase)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xqa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: fi\n"), 0o644))
	t.Setenv("XQA_LANGUAGE", "ja")
	t.Setenv("XQA_BATCH_SIZE", "250")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "ja", cfg.Language)
	require.Equal(t, 250, cfg.Retrieval.BatchSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"fi", "finnish"},
		{"in", "indonesian"},
		{"en", "english"},
		{"pt", "pt"},
		{"finnish", "finnish"},
	}
	for _, tt := range tests {
		if got := LanguageName(tt.code); got != tt.want {
			t.Errorf("LanguageName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
