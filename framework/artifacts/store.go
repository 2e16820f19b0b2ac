// Package artifacts manages the files a test run produces: screenshots taken
// by the steps package and reports written at the end of the run. Files are
// collected in a per-run local directory and can be mirrored to remote
// storage (see S3Uploader) once the run finishes, which is how CI keeps
// failure evidence after the build machine is recycled.
package artifacts

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitetest/browser-test-harness/framework"
)

// Store is the artifact sink for one test run. It is safe for concurrent use
// by independently running cases, since every write goes to a distinct file.
type Store struct {
	dir      string
	runID    string
	logger   framework.Logger
	uploader Uploader
}

// Uploader mirrors one artifact to remote storage.
type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
}

// NewStore creates the artifact directory for a new run. Each run gets a
// unique subdirectory of baseDir so that consecutive runs never overwrite
// each other's captures.
func NewStore(baseDir string, logger framework.Logger) (*Store, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	runID := uuid.NewString()[:8]
	dir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}
	return &Store{dir: dir, runID: runID, logger: logger}, nil
}

// WithUploader configures remote mirroring for Flush.
func (s *Store) WithUploader(u Uploader) *Store {
	s.uploader = u
	return s
}

// RunID returns the unique identifier of this run.
func (s *Store) RunID() string { return s.runID }

// Dir returns the local directory artifacts are written to.
func (s *Store) Dir() string { return s.dir }

// ScreenshotPath returns the file path for a capture taken in the given scope
// and step. The name is derived from the scope, the step, and a millisecond
// timestamp, so repeated captures within one step stay distinguishable.
func (s *Store) ScreenshotPath(scope, step string) string {
	name := fmt.Sprintf("%s_%s_%d.png", sanitizeName(scope), sanitizeName(step), time.Now().UnixMilli())
	return filepath.Join(s.dir, name)
}

// SaveFile writes an artifact under the run directory and returns its path.
func (s *Store) SaveFile(name string, data []byte) (string, error) {
	p := filepath.Join(s.dir, sanitizeName(strings.TrimSuffix(name, filepath.Ext(name)))+filepath.Ext(name))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", name, err)
	}
	return p, nil
}

// Flush mirrors everything in the run directory to the configured uploader.
// It is a no-op when no uploader is set. Individual upload failures are
// logged and the first one is returned, but they do not stop the remaining
// files from being attempted.
func (s *Store) Flush(ctx context.Context) error {
	if s.uploader == nil {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading artifact directory: %w", err)
	}
	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Printf("could not read artifact %s: %s", entry.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		key := path.Join(s.runID, entry.Name())
		contentType := mime.TypeByExtension(filepath.Ext(entry.Name()))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.uploader.Upload(ctx, key, contentType, data); err != nil {
			s.logger.Printf("could not upload artifact %s: %s", key, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.logger.Printf("uploaded artifact %s", key)
	}
	return firstErr
}

// sanitizeName makes a scope or step name safe for use in a file name.
func sanitizeName(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
