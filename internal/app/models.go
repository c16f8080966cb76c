package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/artifact"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// Model is a loaded classifier with the header it was stored with.
type Model struct {
	classifier.Classifier
	Header classifier.Header
}

// Models maps each disease to its loaded model.
type Models map[schema.Disease]Model

// LoadModels reads every declared model once. Any missing, corrupt or
// mismatched artifact fails the whole load.
func LoadModels(ctx context.Context, store artifact.Store) (Models, error) {
	models := make(Models, len(schema.All()))
	for _, s := range schema.All() {
		m, err := loadModel(ctx, store, s)
		if err != nil {
			return nil, err
		}
		models[s.Disease] = m
	}
	return models, nil
}

func loadModel(ctx context.Context, store artifact.Store, s schema.Schema) (Model, error) {
	rc, err := store.Get(ctx, s.Artifact)
	if err != nil {
		return Model{}, fmt.Errorf("%w: %s: %w", ErrMissingArtifact, s.Disease, err)
	}
	defer rc.Close()

	clf, header, err := classifier.Decode(rc)
	if err != nil {
		return Model{}, fmt.Errorf("%w: %s: %w", ErrMissingArtifact, store.Location(s.Artifact), err)
	}
	if header.Schema != s.ID() || !slices.Equal(header.Features, s.Columns()) {
		return Model{}, fmt.Errorf("%w: %s holds %s, want %s",
			ErrSchemaMismatch, store.Location(s.Artifact), header.Schema, s.ID())
	}
	return Model{Classifier: clf, Header: header}, nil
}
