package artifacts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	keys         []string
	contentTypes map[string]string
	failOn       string
}

func (u *recordingUploader) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if u.failOn != "" && strings.Contains(key, u.failOn) {
		return errors.New("simulated upload failure")
	}
	u.keys = append(u.keys, key)
	if u.contentTypes == nil {
		u.contentTypes = make(map[string]string)
	}
	u.contentTypes[key] = contentType
	return nil
}

func TestNewStoreCreatesRunDirectory(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base, nil)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(base, store.RunID()), store.Dir())
}

func TestConsecutiveStoresDoNotCollide(t *testing.T) {
	base := t.TempDir()
	s1, err := NewStore(base, nil)
	require.NoError(t, err)
	s2, err := NewStore(base, nil)
	require.NoError(t, err)
	assert.NotEqual(t, s1.Dir(), s2.Dir())
}

func TestScreenshotPathSanitizesNames(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	p := store.ScreenshotPath("qa: TC-1 - Login flow (1/2)", "click submit!")
	name := filepath.Base(p)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Contains(t, name, "qa-tc-1-login-flow-1-2")
	assert.Contains(t, name, "click-submit")
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, ":")
	assert.Equal(t, store.Dir(), filepath.Dir(p))
}

func TestSaveFileWritesUnderRunDirectory(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	p, err := store.SaveFile("report.xml", []byte("<testsuites/>"))
	require.NoError(t, err)
	assert.Equal(t, store.Dir(), filepath.Dir(p))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "<testsuites/>", string(data))
}

func TestFlushWithoutUploaderIsNoOp(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = store.SaveFile("a.txt", []byte("x"))
	require.NoError(t, err)

	assert.NoError(t, store.Flush(context.Background()))
}

func TestFlushUploadsEveryArtifact(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = store.SaveFile("shot.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	_, err = store.SaveFile("report.xml", []byte("<testsuites/>"))
	require.NoError(t, err)

	up := &recordingUploader{}
	store.WithUploader(up)
	require.NoError(t, store.Flush(context.Background()))

	require.Len(t, up.keys, 2)
	for _, key := range up.keys {
		assert.True(t, strings.HasPrefix(key, store.RunID()+"/"))
	}
	for key, ct := range up.contentTypes {
		if strings.HasSuffix(key, ".png") {
			assert.Equal(t, "image/png", ct)
		}
	}
}

func TestFlushContinuesPastFailedUploads(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = store.SaveFile("bad.png", []byte("x"))
	require.NoError(t, err)
	_, err = store.SaveFile("good.xml", []byte("y"))
	require.NoError(t, err)

	up := &recordingUploader{failOn: "bad"}
	store.WithUploader(up)
	err = store.Flush(context.Background())
	assert.Error(t, err)
	require.Len(t, up.keys, 1)
	assert.True(t, strings.HasSuffix(up.keys[0], "good.xml"))
}
