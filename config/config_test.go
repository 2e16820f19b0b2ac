package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearHarnessEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"HARNESS_ENV", "HARNESS_BASE_URL", "HARNESS_BROWSER",
		"HARNESS_HEADLESS", "HARNESS_ARTIFACT_DIR", "HARNESS_S3_BUCKET",
		"HARNESS_S3_PREFIX",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearHarnessEnv(t)
	env := Load(nil)

	assert.Equal(t, "development", env.Tag)
	assert.Equal(t, "", env.BaseURL)
	assert.Equal(t, "chromium", env.Browser)
	assert.True(t, env.Headless)
	assert.Equal(t, "artifacts", env.ArtifactDir)
	assert.Equal(t, "", env.S3Bucket)
}

func TestLoadReadsHarnessVariables(t *testing.T) {
	clearHarnessEnv(t)
	t.Setenv("HARNESS_ENV", "staging")
	t.Setenv("HARNESS_BASE_URL", "https://staging.example.com")
	t.Setenv("HARNESS_BROWSER", "firefox")
	t.Setenv("HARNESS_HEADLESS", "false")
	t.Setenv("HARNESS_S3_BUCKET", "e2e-artifacts")
	t.Setenv("HARNESS_S3_PREFIX", "nightly")

	env := Load(nil)
	assert.Equal(t, "staging", env.Tag)
	assert.Equal(t, "https://staging.example.com", env.BaseURL)
	assert.Equal(t, "firefox", env.Browser)
	assert.False(t, env.Headless)
	assert.Equal(t, "e2e-artifacts", env.S3Bucket)
	assert.Equal(t, "nightly", env.S3Prefix)
}

func TestLoadIgnoresMalformedBooleans(t *testing.T) {
	clearHarnessEnv(t)
	t.Setenv("HARNESS_HEADLESS", "definitely")

	env := Load(nil)
	assert.True(t, env.Headless)
}
