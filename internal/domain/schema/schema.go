// Package schema is the single declaration of every model's feature layout.
//
// The training pipeline and the inference service both read their column
// order from here, so a FeatureVector can never drift from the layout the
// persisted model was fitted on.
package schema

import (
	"fmt"
	"strings"
)

// Disease identifies one of the supported predictors.
type Disease string

const (
	DiabetesDisease Disease = "diabetes"
	HeartDisease    Disease = "heart"
)

// Feature is one slot of a FeatureVector.
type Feature struct {
	// Name is the human readable field name used by the API and forms.
	Name string `json:"name"`
	// Column is the dataset header the value is read from at training time.
	Column string `json:"column"`
}

// Schema describes the ordered features and label of a model.
type Schema struct {
	Disease     Disease   `json:"disease"`
	Version     int       `json:"version"`
	LabelColumn string    `json:"label_column"`
	Artifact    string    `json:"artifact"`
	Features    []Feature `json:"features"`
}

// Diabetes is the Pima-style diabetes layout.
var Diabetes = Schema{
	Disease:     DiabetesDisease,
	Version:     1,
	LabelColumn: "Outcome",
	Artifact:    "diabetes_model.sav",
	Features: []Feature{
		{Name: "Pregnancies", Column: "Pregnancies"},
		{Name: "Glucose", Column: "Glucose"},
		{Name: "BloodPressure", Column: "BloodPressure"},
		{Name: "SkinThickness", Column: "SkinThickness"},
		{Name: "Insulin", Column: "Insulin"},
		{Name: "BMI", Column: "BMI"},
		{Name: "DiabetesPedigreeFunction", Column: "DiabetesPedigreeFunction"},
		{Name: "Age", Column: "Age"},
	},
}

// Heart is the Cleveland-style heart disease layout.
var Heart = Schema{
	Disease:     HeartDisease,
	Version:     1,
	LabelColumn: "target",
	Artifact:    "heart_model.sav",
	Features: []Feature{
		{Name: "Age", Column: "age"},
		{Name: "Sex", Column: "sex"},
		{Name: "ChestPainType", Column: "cp"},
		{Name: "RestingBP", Column: "trestbps"},
		{Name: "Cholesterol", Column: "chol"},
		{Name: "FastingBloodSugar", Column: "fbs"},
		{Name: "RestingECG", Column: "restecg"},
		{Name: "MaxHeartRate", Column: "thalach"},
		{Name: "ExerciseAngina", Column: "exang"},
		{Name: "STDepression", Column: "oldpeak"},
		{Name: "SlopeOfPeakST", Column: "slope"},
		{Name: "MajorVessels", Column: "ca"},
		{Name: "Thalassemia", Column: "thal"},
	},
}

// All returns every declared schema in a stable order.
func All() []Schema {
	return []Schema{Diabetes, Heart}
}

// Lookup returns the schema for disease.
func Lookup(disease Disease) (Schema, error) {
	for _, s := range All() {
		if s.Disease == disease {
			return s, nil
		}
	}
	return Schema{}, fmt.Errorf("%w: %q", ErrUnknownDisease, disease)
}

// ID is the stable identifier stamped into model artifacts, e.g. "heart/v1".
func (s Schema) ID() string {
	return fmt.Sprintf("%s/v%d", s.Disease, s.Version)
}

// Len is the FeatureVector length.
func (s Schema) Len() int {
	return len(s.Features)
}

// Names returns the feature names in vector order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Features))
	for i, f := range s.Features {
		names[i] = f.Name
	}
	return names
}

// Columns returns the dataset columns in vector order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s.Features))
	for i, f := range s.Features {
		cols[i] = f.Column
	}
	return cols
}

// Validate checks that vector has exactly the schema's length.
func (s Schema) Validate(vector []float64) error {
	if len(vector) != s.Len() {
		return fmt.Errorf("%w: %s expects %d values, got %d", ErrVectorLength, s.ID(), s.Len(), len(vector))
	}
	return nil
}

// MatchColumns verifies that the feature columns of a dataset header (the
// header with the label column removed) are the schema columns in order.
func (s Schema) MatchColumns(featureColumns []string) error {
	want := s.Columns()
	if len(featureColumns) != len(want) {
		return fmt.Errorf("%w: %s expects columns [%s], got [%s]",
			ErrColumnMismatch, s.ID(), strings.Join(want, ","), strings.Join(featureColumns, ","))
	}
	for i, col := range featureColumns {
		if strings.TrimSpace(col) != want[i] {
			return fmt.Errorf("%w: %s column %d is %q, want %q", ErrColumnMismatch, s.ID(), i, col, want[i])
		}
	}
	return nil
}
