// Package intake validates raw patient form fields and assembles them into
// the FeatureVector layout declared by package schema.
package intake

import (
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// Input is a patient request for one predictor.
type Input interface {
	Disease() schema.Disease
	// Validate reports every problem with the request, or nil.
	Validate() error
	// Vector validates and returns the FeatureVector in schema order.
	Vector() ([]float64, error)
}

// Upper bounds accepted by the forms.
const (
	maxAge           = 120
	maxPregnancies   = 20
	maxGlucose       = 500
	maxBloodPressure = 200
	maxSkinThickness = 100
	maxInsulin       = 900
	maxBMI           = 70
	maxPedigree      = 2.5

	maxRestingBP    = 250
	maxCholesterol  = 600
	maxHeartRate    = 250
	maxSTDepression = 10
	maxSlope        = 2
	maxVessels      = 3
)

// Gender values accepted by the diabetes form.
const (
	GenderFemale = "Female"
	GenderMale   = "Male"
)
