package smoke

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/intake"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// generatePatients alternates diabetes and heart patients drawn from
// clinically plausible ranges.
func generatePatients(cfg *Config) []Patient {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	out := make([]Patient, cfg.Patients)
	for i := range out {
		p := Patient{ID: uuid.NewString()}
		incomplete := rng.Float64() < cfg.Incomplete
		if i%2 == 0 {
			in := diabetesPatient(rng)
			if incomplete {
				in.Gender = ""
			}
			p.Disease, p.Body = schema.DiabetesDisease, in
		} else {
			in := heartPatient(rng)
			if incomplete {
				in.Sex = ""
			}
			p.Disease, p.Body = schema.HeartDisease, in
		}
		p.ExpectRejected = incomplete
		out[i] = p
	}
	return out
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func whole(rng *rand.Rand, lo, hi int) float64 {
	return float64(lo + rng.IntN(hi-lo+1))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func pick(rng *rand.Rand, labels []string) string {
	return labels[rng.IntN(len(labels))]
}

func diabetesPatient(rng *rand.Rand) intake.DiabetesInput {
	in := intake.DiabetesInput{
		Gender:                   pick(rng, []string{intake.GenderFemale, intake.GenderMale}),
		Glucose:                  whole(rng, 60, 200),
		BloodPressure:            whole(rng, 50, 110),
		SkinThickness:            whole(rng, 10, 50),
		Insulin:                  whole(rng, 0, 300),
		BMI:                      round(between(rng, 18, 45), 1),
		DiabetesPedigreeFunction: round(between(rng, 0.08, 2.0), 3),
		Age:                      whole(rng, 21, 80),
	}
	if in.Gender == intake.GenderFemale {
		in.Pregnancies = whole(rng, 0, 10)
	}
	return in
}

func heartPatient(rng *rand.Rand) intake.HeartInput {
	return intake.HeartInput{
		Age:               whole(rng, 29, 77),
		Sex:               pick(rng, schema.Sex.Labels()),
		ChestPainType:     pick(rng, schema.ChestPainType.Labels()),
		RestingBP:         whole(rng, 94, 200),
		Cholesterol:       whole(rng, 126, 564),
		FastingBloodSugar: pick(rng, schema.FastingBloodSugar.Labels()),
		RestingECG:        pick(rng, schema.RestingECG.Labels()),
		MaxHeartRate:      whole(rng, 71, 202),
		ExerciseAngina:    pick(rng, schema.ExerciseAngina.Labels()),
		STDepression:      round(between(rng, 0, 6.2), 1),
		SlopeOfPeakST:     whole(rng, 0, 2),
		MajorVessels:      whole(rng, 0, 3),
		Thalassemia:       pick(rng, schema.Thalassemia.Labels()),
	}
}
