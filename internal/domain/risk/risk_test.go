package risk

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

func TestClassify(t *testing.T) {
	Convey("Given probabilities around the thresholds", t, func() {
		cases := []struct {
			percent float64
			want    Tier
		}{
			{0, Low},
			{29.99, Low},
			{30, Moderate},
			{69.99, Moderate},
			{70, High},
			{100, High},
		}
		for _, c := range cases {
			So(Classify(c.percent), ShouldEqual, c.want)
		}
	})
}

func TestColorsAndBands(t *testing.T) {
	Convey("Tiers map to gauge colors", t, func() {
		So(Low.Color(), ShouldEqual, "green")
		So(Moderate.Color(), ShouldEqual, "yellow")
		So(High.Color(), ShouldEqual, "red")
	})

	Convey("Bands cover 0..100 without gaps", t, func() {
		bands := Bands()
		So(len(bands), ShouldEqual, 3)
		So(bands[0].From, ShouldEqual, 0)
		So(bands[len(bands)-1].To, ShouldEqual, 100)
		for i := 1; i < len(bands); i++ {
			So(bands[i].From, ShouldEqual, bands[i-1].To)
		}
	})
}

func TestVerdict(t *testing.T) {
	Convey("Positive diabetes advice lists follow-up actions", t, func() {
		a := Verdict(schema.DiabetesDisease, true)
		So(a.Headline, ShouldContainSubstring, "POSITIVE")
		So(len(a.Actions), ShouldEqual, 3)
		So(a.Actions[1], ShouldContainSubstring, "HbA1c")
	})

	Convey("Negative outcomes carry no actions", t, func() {
		So(Verdict(schema.DiabetesDisease, false).Actions, ShouldBeEmpty)
		So(Verdict(schema.HeartDisease, false).Headline, ShouldEqual, "HEART IS HEALTHY")
	})

	Convey("Unknown diseases get empty advice", t, func() {
		So(Verdict(schema.Disease("liver"), true), ShouldResemble, Advice{})
	})
}
