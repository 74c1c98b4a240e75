package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 4, cfg.Limits.MaxPets)
	assert.Equal(t, "2s", cfg.Limits.SignupNudgeDelay)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "Mia", cfg.Feed.Passphrase)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Limits, cfg.Limits)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DAILYDOSE_DB", "")
	t.Setenv("DAILYDOSE_ADMIN_PASSPHRASE", "")

	path := filepath.Join(t.TempDir(), "dailydose.yaml")
	data := `
llm:
  api_key: file-key
  model: gemini-2.0-flash
  timeout: 45s
limits:
  max_pets: 6
  signup_nudge_delay: 500ms
feed:
  passphrase: Rex
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 6, cfg.Limits.MaxPets)
	assert.Equal(t, "Rex", cfg.Feed.Passphrase)
	assert.Equal(t, 45*time.Second, cfg.GetLLMTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.GetSignupNudgeDelay())
}

func TestEnvOverrides(t *testing.T) {
	t.Run("API_KEY applies when set", func(t *testing.T) {
		t.Setenv("API_KEY", "legacy-key")
		t.Setenv("GEMINI_API_KEY", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "legacy-key", cfg.LLM.APIKey)
	})

	t.Run("GEMINI_API_KEY wins over API_KEY", func(t *testing.T) {
		t.Setenv("API_KEY", "legacy-key")
		t.Setenv("GEMINI_API_KEY", "gemini-key")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
	})

	t.Run("db path and passphrase", func(t *testing.T) {
		t.Setenv("DAILYDOSE_DB", "/tmp/alt.db")
		t.Setenv("DAILYDOSE_ADMIN_PASSPHRASE", "Rex")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/tmp/alt.db", cfg.Storage.DatabasePath)
		assert.Equal(t, "Rex", cfg.Feed.Passphrase)
	})
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()

	cfg.LLM.Timeout = ""
	assert.Equal(t, time.Duration(0), cfg.GetLLMTimeout(), "no timeout unless configured")

	cfg.LLM.Timeout = "bogus"
	assert.Equal(t, time.Duration(0), cfg.GetLLMTimeout())

	cfg.Limits.SignupNudgeDelay = "bogus"
	assert.Equal(t, 2*time.Second, cfg.GetSignupNudgeDelay())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxPets = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Storage.DatabasePath = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DAILYDOSE_DB", "")
	t.Setenv("DAILYDOSE_ADMIN_PASSPHRASE", "")

	cfg := DefaultConfig()
	cfg.Limits.MaxPets = 8

	path := filepath.Join(t.TempDir(), "sub", "dailydose.yaml")
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Limits.MaxPets)
}
