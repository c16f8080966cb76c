package schema

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSchemaLayout(t *testing.T) {
	Convey("Given the declared schemas", t, func() {
		Convey("Then the diabetes layout has 8 features in training order", func() {
			So(Diabetes.Len(), ShouldEqual, 8)
			So(Diabetes.Names(), ShouldResemble, []string{
				"Pregnancies", "Glucose", "BloodPressure", "SkinThickness",
				"Insulin", "BMI", "DiabetesPedigreeFunction", "Age",
			})
			So(Diabetes.LabelColumn, ShouldEqual, "Outcome")
			So(Diabetes.ID(), ShouldEqual, "diabetes/v1")
			So(Diabetes.Artifact, ShouldEqual, "diabetes_model.sav")
		})

		Convey("And the heart layout has 13 features in training order", func() {
			So(Heart.Len(), ShouldEqual, 13)
			So(Heart.Names(), ShouldResemble, []string{
				"Age", "Sex", "ChestPainType", "RestingBP", "Cholesterol", "FastingBloodSugar",
				"RestingECG", "MaxHeartRate", "ExerciseAngina", "STDepression", "SlopeOfPeakST",
				"MajorVessels", "Thalassemia",
			})
			So(Heart.Columns()[2], ShouldEqual, "cp")
			So(Heart.LabelColumn, ShouldEqual, "target")
			So(Heart.Artifact, ShouldEqual, "heart_model.sav")
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a disease name", t, func() {
		s, err := Lookup(HeartDisease)
		So(err, ShouldBeNil)
		So(s.ID(), ShouldEqual, "heart/v1")

		_, err = Lookup("flu")
		So(errors.Is(err, ErrUnknownDisease), ShouldBeTrue)
	})
}

func TestValidateAndMatch(t *testing.T) {
	Convey("Given a feature vector", t, func() {
		So(Diabetes.Validate(make([]float64, 8)), ShouldBeNil)
		So(errors.Is(Diabetes.Validate(make([]float64, 13)), ErrVectorLength), ShouldBeTrue)
	})

	Convey("Given dataset headers", t, func() {
		So(Diabetes.MatchColumns(Diabetes.Columns()), ShouldBeNil)

		Convey("Then reordered columns are rejected", func() {
			cols := Diabetes.Columns()
			cols[0], cols[1] = cols[1], cols[0]
			So(errors.Is(Diabetes.MatchColumns(cols), ErrColumnMismatch), ShouldBeTrue)
		})

		Convey("Then missing columns are rejected", func() {
			So(errors.Is(Heart.MatchColumns(Heart.Columns()[:12]), ErrColumnMismatch), ShouldBeTrue)
		})
	})
}

func TestEncodingTables(t *testing.T) {
	Convey("Given the categorical tables", t, func() {
		Convey("Then every code matches the training encoding", func() {
			cases := []struct {
				table Table
				label string
				code  int
			}{
				{ChestPainType, "Typical Angina", 0},
				{ChestPainType, "Atypical Angina", 1},
				{ChestPainType, "Non-anginal Pain", 2},
				{ChestPainType, "Asymptomatic", 3},
				{RestingECG, "Normal", 0},
				{RestingECG, "ST-T Wave Abnormality", 1},
				{RestingECG, "LV Hypertrophy", 2},
				{Thalassemia, "Normal", 0},
				{Thalassemia, "Fixed Defect", 1},
				{Thalassemia, "Reversable Defect", 2},
				{Sex, "Male", 1},
				{Sex, "Female", 0},
				{FastingBloodSugar, "True", 1},
				{FastingBloodSugar, "False", 0},
				{ExerciseAngina, "Yes", 1},
				{ExerciseAngina, "No", 0},
			}
			for _, tc := range cases {
				code, ok := tc.table.Encode(tc.label)
				So(ok, ShouldBeTrue)
				So(code, ShouldEqual, tc.code)
			}
		})

		Convey("And unknown labels are reported", func() {
			_, ok := ChestPainType.Encode("asymptomatic")
			So(ok, ShouldBeFalse)
		})

		Convey("And Labels returns a copy in code order", func() {
			labels := RestingECG.Labels()
			So(labels, ShouldResemble, []string{"Normal", "ST-T Wave Abnormality", "LV Hypertrophy"})
			labels[0] = "changed"
			So(RestingECG.Labels()[0], ShouldEqual, "Normal")
		})
	})
}
