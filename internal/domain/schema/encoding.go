package schema

// Table maps categorical form labels to the integer codes the models were
// trained on. Labels are kept in code order.
type Table struct {
	Name   string
	labels []string
	codes  []int
}

func newTable(name string, pairs ...any) Table {
	t := Table{Name: name}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.labels = append(t.labels, pairs[i].(string))
		t.codes = append(t.codes, pairs[i+1].(int))
	}
	return t
}

// Encoding tables shared by the heart form and the heart dataset.
var (
	ChestPainType = newTable("ChestPainType",
		"Typical Angina", 0,
		"Atypical Angina", 1,
		"Non-anginal Pain", 2,
		"Asymptomatic", 3,
	)
	RestingECG = newTable("RestingECG",
		"Normal", 0,
		"ST-T Wave Abnormality", 1,
		"LV Hypertrophy", 2,
	)
	Thalassemia = newTable("Thalassemia",
		"Normal", 0,
		"Fixed Defect", 1,
		"Reversable Defect", 2,
	)
	Sex = newTable("Sex",
		"Female", 0,
		"Male", 1,
	)
	FastingBloodSugar = newTable("FastingBloodSugar",
		"False", 0,
		"True", 1,
	)
	ExerciseAngina = newTable("ExerciseAngina",
		"No", 0,
		"Yes", 1,
	)
)

// Encode returns the code for label. ok is false for unknown labels.
func (t Table) Encode(label string) (code int, ok bool) {
	for i, l := range t.labels {
		if l == label {
			return t.codes[i], true
		}
	}
	return 0, false
}

// Labels returns the accepted labels in code order.
func (t Table) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}
