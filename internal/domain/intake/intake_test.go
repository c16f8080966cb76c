package intake

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

func validDiabetes() DiabetesInput {
	return DiabetesInput{
		Gender:                   GenderFemale,
		Pregnancies:              0,
		Glucose:                  130,
		BloodPressure:            70,
		SkinThickness:            20,
		Insulin:                  80,
		BMI:                      28.5,
		DiabetesPedigreeFunction: 0.5,
		Age:                      45,
	}
}

func validHeart() HeartInput {
	return HeartInput{
		Age:               54,
		Sex:               "Male",
		ChestPainType:     "Asymptomatic",
		RestingBP:         130,
		Cholesterol:       246,
		FastingBloodSugar: "False",
		RestingECG:        "Normal",
		MaxHeartRate:      150,
		ExerciseAngina:    "No",
		STDepression:      1.0,
		SlopeOfPeakST:     1,
		MajorVessels:      0,
		Thalassemia:       "Normal",
	}
}

func problemFields(err error) []string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]string, len(ve.Fields))
	for i, p := range ve.Fields {
		out[i] = p.Field
	}
	return out
}

func TestDiabetesInput(t *testing.T) {
	Convey("Given a diabetes form", t, func() {
		in := validDiabetes()

		Convey("A complete female entry yields an 8-feature vector in schema order", func() {
			v, err := in.Vector()
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []float64{0, 130, 70, 20, 80, 28.5, 0.5, 45})
			So(len(v), ShouldEqual, schema.Diabetes.Len())
		})

		Convey("A male entry always carries zero pregnancies", func() {
			in.Gender = GenderMale
			in.Pregnancies = 3
			v, err := in.Vector()
			So(err, ShouldBeNil)
			So(v[0], ShouldEqual, 0)
		})

		Convey("Unset gender is incomplete input", func() {
			in.Gender = ""
			_, err := in.Vector()
			So(errors.Is(err, ErrIncompleteInput), ShouldBeTrue)
			So(problemFields(err), ShouldContain, "gender")
		})

		Convey("Age of zero is rejected as invalid", func() {
			in.Age = 0
			err := in.Validate()
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(problemFields(err), ShouldResemble, []string{"age"})
		})

		Convey("Zero glucose and BMI are both reported", func() {
			in.Glucose = 0
			in.BMI = 0
			So(problemFields(in.Validate()), ShouldResemble, []string{"glucose", "bmi"})
		})

		Convey("Out of range values are invalid", func() {
			in.Insulin = 1200
			in.DiabetesPedigreeFunction = -1
			err := in.Validate()
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(problemFields(err), ShouldResemble, []string{"insulin", "diabetes_pedigree_function"})
		})

		Convey("Fractional pregnancies are invalid", func() {
			in.Pregnancies = 1.5
			So(problemFields(in.Validate()), ShouldResemble, []string{"pregnancies"})
		})

		Convey("Missing fields outrank invalid ones", func() {
			in.Gender = ""
			in.Age = 0
			err := in.Validate()
			So(errors.Is(err, ErrIncompleteInput), ShouldBeTrue)
			var ve *ValidationError
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.KindLabel(), ShouldEqual, "incomplete_input")
			So(len(ve.Fields), ShouldEqual, 2)
			So(ve.Error(), ShouldContainSubstring, "gender: required")
		})

		Convey("Non-finite numbers are invalid, never unset", func() {
			in.Age = math.NaN()
			in.Glucose = math.Inf(1)
			in.BMI = math.NaN()
			in.Pregnancies = math.NaN()
			err := in.Validate()
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(problemFields(err), ShouldResemble, []string{"pregnancies", "age", "glucose", "bmi"})
			var ve *ValidationError
			So(errors.As(err, &ve), ShouldBeTrue)
			So(ve.Fields[1].Reason, ShouldEqual, "must be a number")
			_, err = in.Vector()
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown gender is invalid", func() {
			in.Gender = "Other"
			So(errors.Is(in.Validate(), ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestHeartInput(t *testing.T) {
	Convey("Given a heart form", t, func() {
		in := validHeart()

		Convey("Categorical labels are encoded into a 13-feature vector", func() {
			v, err := in.Vector()
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []float64{54, 1, 3, 130, 246, 0, 0, 150, 0, 1.0, 1, 0, 0})
		})

		Convey("Each chest pain label maps to its code", func() {
			for code, label := range []string{"Typical Angina", "Atypical Angina", "Non-anginal Pain", "Asymptomatic"} {
				in.ChestPainType = label
				v, err := in.Vector()
				So(err, ShouldBeNil)
				So(v[2], ShouldEqual, float64(code))
			}
		})

		Convey("A missing dropdown is incomplete input", func() {
			in.Thalassemia = ""
			err := in.Validate()
			So(errors.Is(err, ErrIncompleteInput), ShouldBeTrue)
			So(problemFields(err), ShouldResemble, []string{"thalassemia"})
		})

		Convey("An unknown label is invalid input", func() {
			in.RestingECG = "Sinus"
			err := in.Validate()
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(problemFields(err), ShouldResemble, []string{"resting_ecg"})
		})

		Convey("Age of zero is rejected", func() {
			in.Age = 0
			So(errors.Is(in.Validate(), ErrInvalidInput), ShouldBeTrue)
		})

		Convey("Vessel count must be a whole number up to 3", func() {
			in.MajorVessels = 4
			So(problemFields(in.Validate()), ShouldResemble, []string{"major_vessels"})
			in.MajorVessels = 1.5
			So(problemFields(in.Validate()), ShouldResemble, []string{"major_vessels"})
		})

		Convey("A NaN ST depression is invalid", func() {
			in.STDepression = math.NaN()
			in.MajorVessels = math.Inf(-1)
			err := in.Validate()
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(problemFields(err), ShouldResemble, []string{"st_depression", "major_vessels"})
			_, err = in.Vector()
			So(err, ShouldNotBeNil)
		})

		Convey("Zero cholesterol and resting BP are accepted", func() {
			in.Cholesterol = 0
			in.RestingBP = 0
			So(in.Validate(), ShouldBeNil)
		})
	})
}

func TestInputInterface(t *testing.T) {
	Convey("Both forms satisfy Input", t, func() {
		inputs := []Input{validDiabetes(), validHeart()}
		So(inputs[0].Disease(), ShouldEqual, schema.DiabetesDisease)
		So(inputs[1].Disease(), ShouldEqual, schema.HeartDisease)
	})
}
