package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// CreatedBy tags artifacts written by this module.
const CreatedBy = "medassist-train"

// Header describes a persisted model.
type Header struct {
	Kind      string    `json:"kind"`
	Schema    string    `json:"schema"`
	Features  []string  `json:"features"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type artifact struct {
	Header
	Model json.RawMessage `json:"model"`
}

// Encode writes clf as a JSON artifact declaring schema s.
func Encode(w io.Writer, s schema.Schema, clf Classifier) error {
	var kind string
	switch clf.(type) {
	case *LogisticRegression:
		kind = KindLogisticRegression
	case *RandomForest:
		kind = KindRandomForest
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, clf)
	}
	model, err := json.Marshal(clf)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	a := artifact{
		Header: Header{
			Kind:      kind,
			Schema:    s.ID(),
			Features:  s.Columns(),
			CreatedBy: CreatedBy,
			CreatedAt: time.Now().UTC(),
		},
		Model: model,
	}
	return json.NewEncoder(w).Encode(a)
}

// Decode reads an artifact written by Encode.
func Decode(r io.Reader) (Classifier, Header, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, Header{}, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
	}
	if len(a.Model) == 0 {
		return nil, a.Header, fmt.Errorf("%w: no model payload", ErrCorruptArtifact)
	}

	var (
		clf      Classifier
		features int
	)
	switch a.Kind {
	case KindLogisticRegression:
		m := &LogisticRegression{}
		if err := json.Unmarshal(a.Model, m); err != nil {
			return nil, a.Header, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
		}
		clf, features = m, m.features()
	case KindRandomForest:
		m := &RandomForest{}
		if err := json.Unmarshal(a.Model, m); err != nil {
			return nil, a.Header, fmt.Errorf("%w: %w", ErrCorruptArtifact, err)
		}
		if len(m.Trees) == 0 {
			return nil, a.Header, fmt.Errorf("%w: forest has no trees", ErrCorruptArtifact)
		}
		clf, features = m, m.Features
	default:
		return nil, a.Header, fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
	}

	if features == 0 || features != len(a.Features) {
		return nil, a.Header, fmt.Errorf("%w: model expects %d features, header lists %d",
			ErrCorruptArtifact, features, len(a.Features))
	}
	return clf, a.Header, nil
}

// IsArtifactError reports whether err came from reading a bad artifact.
func IsArtifactError(err error) bool {
	return errors.Is(err, ErrCorruptArtifact) || errors.Is(err, ErrUnknownKind)
}
