package artifact

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers path-style GET and PUT object requests from memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		f.puts = append(f.puts, r.URL.Path)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func setupS3Store(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(context.Background(), S3Options{
		Bucket:          "models",
		Prefix:          "/medassist/",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)
	return store, fake
}

func TestS3Store_Location(t *testing.T) {
	store, _ := setupS3Store(t)
	assert.Equal(t, "s3://models/medassist/heart_model.sav", store.Location("heart_model.sav"))
}

func TestS3Store_Get(t *testing.T) {
	store, fake := setupS3Store(t)
	fake.objects["/models/medassist/heart_model.sav"] = []byte(`{"kind":"random_forest"}`)

	rc, err := store.Get(context.Background(), "heart_model.sav")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"random_forest"}`, string(data))
}

func TestS3Store_GetMissing(t *testing.T) {
	store, _ := setupS3Store(t)
	_, err := store.Get(context.Background(), "diabetes_model.sav")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Store_PutUsesPrefixedKey(t *testing.T) {
	store, fake := setupS3Store(t)
	require.NoError(t, store.Put(context.Background(), "diabetes_model.sav", bytes.NewReader([]byte("model"))))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{"/models/medassist/diabetes_model.sav"}, fake.puts)
}

func TestS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{})
	assert.ErrorIs(t, err, ErrInvalidName)
}
