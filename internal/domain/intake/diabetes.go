package intake

import (
	"strings"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// DiabetesInput carries the diabetes form fields.
type DiabetesInput struct {
	Gender                   string  `json:"gender" schema:"gender"`
	Pregnancies              float64 `json:"pregnancies" schema:"pregnancies"`
	Glucose                  float64 `json:"glucose" schema:"glucose"`
	BloodPressure            float64 `json:"blood_pressure" schema:"blood_pressure"`
	SkinThickness            float64 `json:"skin_thickness" schema:"skin_thickness"`
	Insulin                  float64 `json:"insulin" schema:"insulin"`
	BMI                      float64 `json:"bmi" schema:"bmi"`
	DiabetesPedigreeFunction float64 `json:"diabetes_pedigree_function" schema:"diabetes_pedigree_function"`
	Age                      float64 `json:"age" schema:"age"`
}

// Disease implements Input.
func (DiabetesInput) Disease() schema.Disease { return schema.DiabetesDisease }

// Validate implements Input. Age, Glucose and BMI of exactly 0 are treated as
// unset and rejected, so a clinically recorded zero cannot be submitted.
func (in DiabetesInput) Validate() error {
	p := problems{disease: schema.DiabetesDisease}

	switch strings.TrimSpace(in.Gender) {
	case "":
		p.missingField("gender")
	case GenderFemale:
		p.inRange("pregnancies", in.Pregnancies, maxPregnancies)
		p.integral("pregnancies", in.Pregnancies)
	case GenderMale:
	default:
		p.invalid("gender", "must be %s or %s", GenderFemale, GenderMale)
	}

	p.requirePositive("age", in.Age, maxAge)
	p.requirePositive("glucose", in.Glucose, maxGlucose)
	p.requirePositive("bmi", in.BMI, maxBMI)
	p.inRange("blood_pressure", in.BloodPressure, maxBloodPressure)
	p.inRange("skin_thickness", in.SkinThickness, maxSkinThickness)
	p.inRange("insulin", in.Insulin, maxInsulin)
	p.inRange("diabetes_pedigree_function", in.DiabetesPedigreeFunction, maxPedigree)

	return p.err()
}

// Vector implements Input.
func (in DiabetesInput) Vector() ([]float64, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	pregnancies := in.Pregnancies
	if strings.TrimSpace(in.Gender) == GenderMale {
		pregnancies = 0
	}
	v := []float64{
		pregnancies,
		in.Glucose,
		in.BloodPressure,
		in.SkinThickness,
		in.Insulin,
		in.BMI,
		in.DiabetesPedigreeFunction,
		in.Age,
	}
	return v, schema.Diabetes.Validate(v)
}
