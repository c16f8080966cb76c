package training

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/artifact"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/adapters/dataset"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/config"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/classifier"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/metrics"
)

// writeDataset writes rows of random features whose label follows the first
// column, with the label column placed last.
func writeDataset(t *testing.T, dir string, s schema.Schema, rows int, labelColumn string) string {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	var b strings.Builder
	b.WriteString(strings.Join(s.Columns(), ",") + "," + labelColumn + "\n")
	for range rows {
		vals := make([]string, 0, s.Len()+1)
		first := rng.Float64() * 100
		vals = append(vals, fmt.Sprintf("%.2f", first))
		for j := 1; j < s.Len(); j++ {
			vals = append(vals, fmt.Sprintf("%d", rng.IntN(4)))
		}
		label := 0
		if first > 50 {
			label = 1
		}
		vals = append(vals, fmt.Sprint(label))
		b.WriteString(strings.Join(vals, ",") + "\n")
	}
	path := filepath.Join(dir, string(s.Disease)+".csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.ModelDir = filepath.Join(dir, "saved_models")
	cfg.ForestTrees = 10
	cfg.ForestMaxDepth = 4
	cfg.LogRegIterations = 200
	cfg.DiabetesDataset = writeDataset(t, dir, schema.Diabetes, 120, schema.Diabetes.LabelColumn)
	cfg.HeartDataset = writeDataset(t, dir, schema.Heart, 120, schema.Heart.LabelColumn)
	return cfg, dir
}

func TestPipelineRun(t *testing.T) {
	Convey("Given two valid datasets", t, func() {
		cfg, _ := testConfig(t)
		store, err := artifact.NewLocalStore(cfg.ModelDir)
		So(err, ShouldBeNil)
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))

		p := New(store, JobsFromConfig(cfg), WithHoldout(0.25, 7), WithMetrics(m))
		report := p.Run(context.Background())

		Convey("Both artifacts are written and load with their schema", func() {
			So(report.OK(), ShouldBeTrue)
			So(len(report.Results), ShouldEqual, 2)

			for _, s := range schema.All() {
				rc, err := store.Get(context.Background(), s.Artifact)
				So(err, ShouldBeNil)
				_, header, err := classifier.Decode(rc)
				rc.Close()
				So(err, ShouldBeNil)
				So(header.Schema, ShouldEqual, s.ID())
			}
			So(report.Results[0].Kind, ShouldEqual, classifier.KindLogisticRegression)
			So(report.Results[1].Kind, ShouldEqual, classifier.KindRandomForest)
		})

		Convey("Holdout figures are reported", func() {
			for _, res := range report.Results {
				So(res.Rows, ShouldEqual, 120)
				So(res.Holdout.Samples, ShouldEqual, 30)
				So(res.Holdout.Accuracy, ShouldBeBetweenOrEqual, 0, 1)
			}
			So(report.Results[0].Holdout.Accuracy, ShouldBeGreaterThan, 0.8)
		})

		Convey("Training runs are counted", func() {
			n, err := testutil.GatherAndCount(reg, "medassist_risk_training_runs_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})

		Convey("The summary lists both jobs", func() {
			var buf bytes.Buffer
			So(report.WriteSummary(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "diabetes")
			So(buf.String(), ShouldContainSubstring, "heart")
		})
	})
}

func TestPipelineFailSoft(t *testing.T) {
	Convey("Given a missing diabetes dataset", t, func() {
		cfg, dir := testConfig(t)
		cfg.DiabetesDataset = filepath.Join(dir, "absent.csv")
		store, err := artifact.NewLocalStore(cfg.ModelDir)
		So(err, ShouldBeNil)

		report := New(store, JobsFromConfig(cfg)).Run(context.Background())

		Convey("Only the diabetes job fails", func() {
			So(report.OK(), ShouldBeFalse)
			failed := report.Failed()
			So(len(failed), ShouldEqual, 1)
			So(failed[0].Disease, ShouldEqual, schema.DiabetesDisease)
			So(errors.Is(failed[0].Err, dataset.ErrMissingDataset), ShouldBeTrue)
		})

		Convey("The heart artifact is still produced", func() {
			_, err := os.Stat(filepath.Join(cfg.ModelDir, schema.Heart.Artifact))
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(cfg.ModelDir, schema.Diabetes.Artifact))
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})

	Convey("Given a heart dataset without its label column", t, func() {
		cfg, _ := testConfig(t)
		cfg.HeartDataset = writeDataset(t, t.TempDir(), schema.Heart, 40, "diagnosis")
		store, err := artifact.NewLocalStore(cfg.ModelDir)
		So(err, ShouldBeNil)

		report := New(store, JobsFromConfig(cfg)).Run(context.Background())

		Convey("No heart artifact is written", func() {
			So(len(report.Failed()), ShouldEqual, 1)
			So(errors.Is(report.Failed()[0].Err, dataset.ErrMissingLabel), ShouldBeTrue)
			_, err := os.Stat(filepath.Join(cfg.ModelDir, schema.Heart.Artifact))
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		cfg, _ := testConfig(t)
		store, err := artifact.NewLocalStore(cfg.ModelDir)
		So(err, ShouldBeNil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report := New(store, JobsFromConfig(cfg)).Run(ctx)
		So(len(report.Failed()), ShouldEqual, 2)
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given a classifier that always says positive", t, func() {
		ev, err := Evaluate(context.Background(), always(1), [][]float64{{0}, {0}, {0}, {0}}, []int{1, 1, 0, 0})
		So(err, ShouldBeNil)
		So(ev.Samples, ShouldEqual, 4)
		So(ev.Accuracy, ShouldEqual, 0.5)
		So(ev.Precision, ShouldEqual, 0.5)
		So(ev.Recall, ShouldEqual, 1)
	})

	Convey("No positives predicted leaves precision at zero", t, func() {
		ev, err := Evaluate(context.Background(), always(0), [][]float64{{0}, {0}}, []int{1, 0})
		So(err, ShouldBeNil)
		So(ev.Precision, ShouldEqual, 0)
		So(ev.Recall, ShouldEqual, 0)
	})

	Convey("An empty holdout is all zeros", t, func() {
		ev, err := Evaluate(context.Background(), always(0), nil, nil)
		So(err, ShouldBeNil)
		So(ev, ShouldResemble, Evaluation{})
	})
}

type always int

func (a always) Predict(context.Context, []float64) (int, error) { return int(a), nil }
func (a always) PredictProbability(context.Context, []float64) (float64, error) {
	return float64(a), nil
}
