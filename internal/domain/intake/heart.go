package intake

import (
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// HeartInput carries the heart disease form fields. Categorical fields hold the
// dropdown label; they are encoded with the schema tables.
type HeartInput struct {
	Age               float64 `json:"age" schema:"age"`
	Sex               string  `json:"sex" schema:"sex"`
	ChestPainType     string  `json:"chest_pain_type" schema:"chest_pain_type"`
	RestingBP         float64 `json:"resting_bp" schema:"resting_bp"`
	Cholesterol       float64 `json:"cholesterol" schema:"cholesterol"`
	FastingBloodSugar string  `json:"fasting_blood_sugar" schema:"fasting_blood_sugar"`
	RestingECG        string  `json:"resting_ecg" schema:"resting_ecg"`
	MaxHeartRate      float64 `json:"max_heart_rate" schema:"max_heart_rate"`
	ExerciseAngina    string  `json:"exercise_angina" schema:"exercise_angina"`
	STDepression      float64 `json:"st_depression" schema:"st_depression"`
	SlopeOfPeakST     float64 `json:"slope_of_peak_st" schema:"slope_of_peak_st"`
	MajorVessels      float64 `json:"major_vessels" schema:"major_vessels"`
	Thalassemia       string  `json:"thalassemia" schema:"thalassemia"`
}

// Disease implements Input.
func (HeartInput) Disease() schema.Disease { return schema.HeartDisease }

// Validate implements Input.
func (in HeartInput) Validate() error {
	_, err := in.encode()
	return err
}

// Vector implements Input.
func (in HeartInput) Vector() ([]float64, error) {
	v, err := in.encode()
	if err != nil {
		return nil, err
	}
	return v, schema.Heart.Validate(v)
}

func (in HeartInput) encode() ([]float64, error) {
	p := problems{disease: schema.HeartDisease}

	sex := p.category("sex", schema.Sex, in.Sex)
	cp := p.category("chest_pain_type", schema.ChestPainType, in.ChestPainType)
	fbs := p.category("fasting_blood_sugar", schema.FastingBloodSugar, in.FastingBloodSugar)
	ecg := p.category("resting_ecg", schema.RestingECG, in.RestingECG)
	exang := p.category("exercise_angina", schema.ExerciseAngina, in.ExerciseAngina)
	thal := p.category("thalassemia", schema.Thalassemia, in.Thalassemia)

	p.requirePositive("age", in.Age, maxAge)
	p.inRange("resting_bp", in.RestingBP, maxRestingBP)
	p.inRange("cholesterol", in.Cholesterol, maxCholesterol)
	p.inRange("max_heart_rate", in.MaxHeartRate, maxHeartRate)
	p.inRange("st_depression", in.STDepression, maxSTDepression)
	p.inRange("slope_of_peak_st", in.SlopeOfPeakST, maxSlope)
	p.integral("slope_of_peak_st", in.SlopeOfPeakST)
	p.inRange("major_vessels", in.MajorVessels, maxVessels)
	p.integral("major_vessels", in.MajorVessels)

	if err := p.err(); err != nil {
		return nil, err
	}
	return []float64{
		in.Age,
		sex,
		cp,
		in.RestingBP,
		in.Cholesterol,
		fbs,
		ecg,
		in.MaxHeartRate,
		exang,
		in.STDepression,
		in.SlopeOfPeakST,
		in.MajorVessels,
		thal,
	}, nil
}
