// Package config reads the harness's runtime settings from the process
// environment, optionally seeded from a .env file in the working directory.
// Command-line flags take precedence over these values; see params.go at the
// repository root.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sitetest/browser-test-harness/framework"
)

// Environment holds the settings that describe one harness run.
type Environment struct {
	// Tag names the deployment the run targets (development, qa, staging,
	// production). It prefixes every composed test title.
	Tag string

	// BaseURL is the root of the site under test. When empty, the harness
	// starts its bundled demo site.
	BaseURL string

	// Browser is the engine to launch: chromium, firefox, or webkit.
	Browser string

	// Headless controls whether the browser runs without a window.
	Headless bool

	// ArtifactDir is the local directory for screenshots and reports.
	ArtifactDir string

	// S3Bucket, when set, enables mirroring run artifacts to S3.
	S3Bucket string

	// S3Prefix is an optional key prefix inside the bucket.
	S3Prefix string
}

// Load builds an Environment from HARNESS_* environment variables, first
// loading a .env file if one exists. Missing variables fall back to defaults
// suitable for local development.
func Load(logger framework.Logger) Environment {
	if logger == nil {
		logger = framework.NullLogger()
	}
	if err := godotenv.Load(); err == nil {
		logger.Printf("Loaded settings from .env")
	}
	return Environment{
		Tag:         getString("HARNESS_ENV", "development"),
		BaseURL:     os.Getenv("HARNESS_BASE_URL"),
		Browser:     getString("HARNESS_BROWSER", "chromium"),
		Headless:    getBool("HARNESS_HEADLESS", true),
		ArtifactDir: getString("HARNESS_ARTIFACT_DIR", "artifacts"),
		S3Bucket:    os.Getenv("HARNESS_S3_BUCKET"),
		S3Prefix:    os.Getenv("HARNESS_S3_PREFIX"),
	}
}

func getString(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

func getBool(name string, defaultValue bool) bool {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
