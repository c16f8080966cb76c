package api

import (
	"net/http"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

type featureView struct {
	Name   string   `json:"name"`
	Column string   `json:"column"`
	Labels []string `json:"labels,omitempty"`
}

type modelView struct {
	Kind      string    `json:"kind"`
	Schema    string    `json:"schema"`
	CreatedAt time.Time `json:"created_at"`
}

type schemaView struct {
	ID          string         `json:"id"`
	Disease     schema.Disease `json:"disease"`
	LabelColumn string         `json:"label_column"`
	Artifact    string         `json:"artifact"`
	Features    []featureView  `json:"features"`
	Model       *modelView     `json:"model,omitempty"`
}

// categorical lists the dropdown tables by heart feature name.
var categorical = map[string]schema.Table{
	"Sex":               schema.Sex,
	"ChestPainType":     schema.ChestPainType,
	"FastingBloodSugar": schema.FastingBloodSugar,
	"RestingECG":        schema.RestingECG,
	"ExerciseAngina":    schema.ExerciseAngina,
	"Thalassemia":       schema.Thalassemia,
}

// SchemasHandler lists the declared feature layouts and the loaded models.
type SchemasHandler struct {
	deps Dependencies
}

// NewSchemasHandler creates a new schemas handler.
func NewSchemasHandler(deps Dependencies) *SchemasHandler {
	return &SchemasHandler{deps: deps}
}

// HandleSchemas handles GET /api/v1/schemas requests.
func (h *SchemasHandler) HandleSchemas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	views := make([]schemaView, 0, len(schema.All()))
	for _, s := range schema.All() {
		v := schemaView{
			ID:          s.ID(),
			Disease:     s.Disease,
			LabelColumn: s.LabelColumn,
			Artifact:    s.Artifact,
		}
		for _, f := range s.Features {
			fv := featureView{Name: f.Name, Column: f.Column}
			if s.Disease == schema.HeartDisease {
				if t, ok := categorical[f.Name]; ok {
					fv.Labels = t.Labels()
				}
			}
			v.Features = append(v.Features, fv)
		}
		if hdr, ok := h.deps.Header(s.Disease); ok {
			v.Model = &modelView{Kind: hdr.Kind, Schema: hdr.Schema, CreatedAt: hdr.CreatedAt}
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}
