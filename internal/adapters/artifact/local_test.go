package artifact

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
)

func setupLocalStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "saved_models")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestLocalStore_PutCreatesDirectory(t *testing.T) {
	store, dir := setupLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "heart_model.sav", bytes.NewReader([]byte("v1"))))
	// A second run finds the directory already present.
	require.NoError(t, store.Put(ctx, "heart_model.sav", bytes.NewReader([]byte("v2"))))

	data, err := os.ReadFile(filepath.Join(dir, "heart_model.sav"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStore_Get(t *testing.T) {
	store, _ := setupLocalStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "diabetes_model.sav")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "diabetes_model.sav", bytes.NewReader([]byte("model"))))
	rc, err := store.Get(ctx, "diabetes_model.sav")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "model", string(data))
}

func TestLocalStore_RejectsPaths(t *testing.T) {
	store, _ := setupLocalStore(t)
	for _, name := range []string{"", "..", "../x.sav", "a/b.sav"} {
		err := store.Put(context.Background(), name, bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestLocalStore_FailedWriteKeepsOldArtifact(t *testing.T) {
	store, dir := setupLocalStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "heart_model.sav", bytes.NewReader([]byte("good"))))

	err := store.Put(ctx, "heart_model.sav", io.MultiReader(bytes.NewReader([]byte("partial")), errReader{}))
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "heart_model.sav"))
	require.NoError(t, err)
	assert.Equal(t, "good", string(data))
}

func TestFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.ModelDir = t.TempDir()
	store, err := FromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	cfg.ArtifactBackend = "ftp"
	_, err = FromConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
