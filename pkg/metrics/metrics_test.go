package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "medassist")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 10})
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on an isolated registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When a positive diabetes prediction is recorded", func() {
			m.RecordPrediction("diabetes", true, "high", 0.4)

			Convey("Then verdict and tier counters move", func() {
				So(testutil.ToFloat64(m.predictions.WithLabelValues("diabetes", "positive")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.predictions.WithLabelValues("diabetes", "negative")), ShouldEqual, 0)
				So(testutil.ToFloat64(m.riskTiers.WithLabelValues("diabetes", "high")), ShouldEqual, 1)
			})
		})

		Convey("When validation failures and errors are recorded", func() {
			m.RecordValidationFailure("heart", "incomplete_input")
			m.RecordValidationFailure("heart", "incomplete_input")
			m.RecordPredictionError("heart", "timeout")

			Convey("Then they are counted per label", func() {
				So(testutil.ToFloat64(m.validationFailures.WithLabelValues("heart", "incomplete_input")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.predictionErrors.WithLabelValues("heart", "timeout")), ShouldEqual, 1)
			})
		})

		Convey("When training and model loading are recorded", func() {
			m.RecordTraining("heart", "ok", 12, 303, 0.85)
			m.MarkModelLoaded("heart", "heart/v1", "random_forest")

			Convey("Then gauges hold the last values", func() {
				So(testutil.ToFloat64(m.trainingRuns.WithLabelValues("heart", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.trainingRows.WithLabelValues("heart")), ShouldEqual, 303)
				So(testutil.ToFloat64(m.trainingAccuracy.WithLabelValues("heart")), ShouldEqual, 0.85)
				So(testutil.ToFloat64(m.modelLoaded.WithLabelValues("heart", "heart/v1", "random_forest")), ShouldEqual, 1)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			m.RecordHTTPRequest("predict_heart", "POST", "200", 3)

			Convey("Then the counter is incremented", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("predict_heart", "POST", "200")), ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("Then recording is a no-op", func() {
			m.RecordPrediction("diabetes", false, "low", 1)
			m.RecordTraining("diabetes", "failed", 1, 0, 0)
			So(testutil.ToFloat64(m.predictions.WithLabelValues("diabetes", "negative")), ShouldEqual, 0)
			So(testutil.ToFloat64(m.trainingRuns.WithLabelValues("diabetes", "failed")), ShouldEqual, 0)
		})
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("The global manager is bound to the custom registry", t, func() {
		So(Default(), ShouldNotBeNil)
		So(GetRegistry(), ShouldNotBeNil)
		So(func() { Default().RecordHTTPRequest("healthz", "GET", "200", 1) }, ShouldNotPanic)
		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)
		So(len(families), ShouldBeGreaterThan, 0)
	})
}
