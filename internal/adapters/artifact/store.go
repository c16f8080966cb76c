// Package artifact stores serialized models by name on the local disk or in
// an S3 compatible bucket.
package artifact

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
)

// Store persists model artifacts. Put replaces any existing artifact with the
// same name; Get returns ErrNotFound when nothing was stored.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	// Location describes where name lives, for logs.
	Location(name string) string
}

// FromConfig opens the backend selected by cfg.ArtifactBackend.
func FromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ArtifactBackend {
	case config.BackendLocal, "":
		return NewLocalStore(cfg.ModelDir)
	case config.BackendS3:
		return NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.ArtifactBackend)
	}
}

func checkName(name string) error {
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." || name == "." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
