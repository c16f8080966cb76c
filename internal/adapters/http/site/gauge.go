package site

import (
	"strconv"

	service "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/risk"
)

// gaugeWidth is the SVG width of the 0..100 scale.
const gaugeWidth = 300.0

type gaugeBand struct {
	X     float64
	Width float64
	Color string
}

// gauge is a horizontal bar over the tier bands with a marker at the probability.
type gauge struct {
	Bands  []gaugeBand
	Fill   float64
	Color  string
	Marker float64
}

func newGauge(percent float64, tier risk.Tier) gauge {
	g := gauge{Color: tier.Color()}
	for _, b := range risk.Bands() {
		g.Bands = append(g.Bands, gaugeBand{
			X:     b.From * gaugeWidth / 100,
			Width: (b.To - b.From) * gaugeWidth / 100,
			Color: b.Color,
		})
	}
	g.Fill = clamp(percent) * gaugeWidth / 100
	g.Marker = g.Fill
	return g
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

type resultPage struct {
	Title   string
	Outcome service.Outcome
	Gauge   gauge
	Back    string
}

func newResultPage(out service.Outcome, back string) resultPage {
	return resultPage{
		Title:   "Result",
		Outcome: out,
		Gauge:   newGauge(out.Result.ProbabilityPercent, out.Tier),
		Back:    back,
	}
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + "%"
}
