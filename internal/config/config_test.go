package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakflow/internal/provider"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "groq", cfg.Providers[0].ID)
	assert.Equal(t, provider.ShapeChatCompletions, cfg.Providers[0].Shape)
	assert.Equal(t, "gemini", cfg.Providers[1].ID)
	assert.Equal(t, provider.ShapeGenerativeContent, cfg.Providers[1].Shape)
	assert.NotEmpty(t, cfg.Storage.Path)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  path: /tmp/test.db
providers:
  - id: local
    shape: chat-completions
    base_url: http://localhost:8080/v1
    model: test-model
    api_key: k
pipeline:
  timeout: 3s
  retry_budget: 5
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "local", cfg.Providers[0].ID)
	assert.Equal(t, "test-model", cfg.Providers[0].Model)
	assert.Equal(t, 5, cfg.Pipeline.RetryBudget)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout())
}

func TestLoadInvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers: [not: valid: yaml"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadEmptyProvidersFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  path: /tmp/x.db\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.Path)
	require.Len(t, cfg.Providers, 2)
}

func TestProviderTimeoutFallback(t *testing.T) {
	for _, raw := range []string{"", "garbage", "-2s", "0s"} {
		cfg := &Config{Pipeline: PipelineConfig{Timeout: raw}}
		assert.Equal(t, provider.DefaultTimeout, cfg.ProviderTimeout(), "timeout %q", raw)
	}
}
