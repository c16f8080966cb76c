package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/artifact"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/http/api"
	app "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/risk"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
)

// storeModel fits a tiny model whose label follows the first feature and puts
// it into store under the schema's artifact name.
func storeModel(t *testing.T, store artifact.Store, s schema.Schema, tr classifier.Trainer) {
	t.Helper()
	var X [][]float64
	var y []int
	for i := range 40 {
		row := make([]float64, s.Len())
		row[0] = float64(20 + i*2)
		for j := 1; j < s.Len(); j++ {
			row[j] = float64((i + j) % 3)
		}
		X = append(X, row)
		label := 0
		if i >= 20 {
			label = 1
		}
		y = append(y, label)
	}
	clf, err := tr.Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := classifier.Encode(&buf, s, clf); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(context.Background(), s.Artifact, &buf); err != nil {
		t.Fatal(err)
	}
}

func TestServerWiring(t *testing.T) {
	convey.Convey("Given trained artifacts in a local store", t, func() {
		ctx := context.Background()
		store, err := artifact.NewLocalStore(t.TempDir())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the store is empty", func() {
			_, err := app.LoadModels(ctx, store)

			convey.Convey("Then startup fails on the missing artifact", func() {
				convey.So(errors.Is(err, app.ErrMissingArtifact), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When both models are present", func() {
			storeModel(t, store, schema.Diabetes, classifier.NewLogisticTrainer(300, 0.1))
			storeModel(t, store, schema.Heart, classifier.NewForestTrainer(5, 3, 7))

			models, err := app.LoadModels(ctx, store)
			convey.So(err, convey.ShouldBeNil)

			cfg := config.New()
			cfg.AllowedOrigins = []string{"https://clinic.example"}
			h := newHandler(ctx, cfg, app.New(models), logger.Nop())

			convey.Convey("Then the diabetes API answers with a consistent tier", func() {
				body := `{"gender":"Male","glucose":140,"blood_pressure":80,"skin_thickness":20,"insulin":90,"bmi":31.2,"diabetes_pedigree_function":0.4,"age":52}`
				req := httptest.NewRequest(http.MethodPost, "/api/v1/predict/diabetes", strings.NewReader(body))
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
				var out app.Outcome
				convey.So(json.Unmarshal(w.Body.Bytes(), &out), convey.ShouldBeNil)
				convey.So(out.Result.ProbabilityPercent, convey.ShouldBeBetweenOrEqual, 0.0, 100.0)
				convey.So(out.Tier, convey.ShouldEqual, risk.Classify(out.Result.ProbabilityPercent))
				convey.So(out.Schema, convey.ShouldEqual, "diabetes/v1")
			})

			convey.Convey("And an incomplete heart request is rejected", func() {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/predict/heart", strings.NewReader(`{"age":54}`))
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusUnprocessableEntity)
			})

			convey.Convey("And the forms, docs and schemas are mounted", func() {
				for _, path := range []string{"/", "/diabetes", "/heart", "/api-docs", "/openapi.yaml", "/api/v1/schemas"} {
					w := httptest.NewRecorder()
					h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("And CORS is applied for configured origins", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/schemas", nil)
				req.Header.Set("Origin", "https://clinic.example")
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "https://clinic.example")
			})
		})
	})
}
