// Package record defines the internal patient-record model that every data
// source is normalized into, plus the pure helpers used during that
// normalization: the reference-range parser, the lab alert classifier, the
// antecedent categorizer and the age calculator.
package record

// Category classifies a clinical-history item.
type Category string

const (
	CategoryPatologico Category = "PATOLOGICO"
	CategoryFamiliar   Category = "FAMILIAR"
	CategoryQuirurgico Category = "QUIRURGICO"
	CategoryHabito     Category = "HABITO"
	CategoryAlergia    Category = "ALERGIA"
)

var validCategories = map[Category]bool{
	CategoryPatologico: true, CategoryFamiliar: true, CategoryQuirurgico: true,
	CategoryHabito: true, CategoryAlergia: true,
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool { return validCategories[c] }

// MedicationStatus is binary: anything upstream that is not case-insensitively
// "active" maps to suspended.
type MedicationStatus string

const (
	MedicationActive    MedicationStatus = "ACTIVE"
	MedicationSuspended MedicationStatus = "SUSPENDED"
)

// Alert is the computed severity of a lab value against its reference range.
type Alert string

const (
	AlertNormal   Alert = "normal"
	AlertWarning  Alert = "warning"
	AlertCritical Alert = "critical"
)

// MaxReferenceValue is the finite sentinel stored for unbounded reference
// maxima ("> 40" style ranges). Alert classification happens before the
// substitution, on the true unbounded value.
const MaxReferenceValue = 9999

// Patient is the demographic snapshot of a chart. It is rebuilt fresh on
// every fetch and never cached across requests.
type Patient struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DocumentNumber string `json:"documentNumber"`
	BirthDate      string `json:"birthDate"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"` // "M" or "F"
	BloodType      string `json:"bloodType"`
	RhFactor       string `json:"rhFactor"` // "+" or "-"
	HealthInsurance string `json:"healthInsurance"`
}

// Antecedente is a clinical-history item (allergy, surgery, family history,
// habit or chronic condition).
type Antecedente struct {
	Category     Category `json:"category"`
	Name         string   `json:"name"`
	Value        string   `json:"value"`
	Observations string   `json:"observations,omitempty"`
}

// EvolutionField is one named field of a visit note. The field set is
// upstream-defined and open-ended.
type EvolutionField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Evolution is a single visit/consultation note.
type Evolution struct {
	ID         int64            `json:"id"`
	DoctorName string           `json:"doctorName"`
	Specialty  string           `json:"specialty"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Fields     []EvolutionField `json:"fields"`
}

// Medication is one entry of the current-medication list.
type Medication struct {
	Name      string           `json:"name"`
	Dose      string           `json:"dose"`
	Frequency string           `json:"frequency"`
	Status    MedicationStatus `json:"status"`
	StartDate string           `json:"startDate"`
}

// LabResult is a single numeric lab measurement. Alert is always recomputed
// from (Value, ReferenceMin, ReferenceMax), never trusted from upstream.
type LabResult struct {
	TestName     string  `json:"testName"`
	Value        float64 `json:"value"`
	Unit         string  `json:"unit"`
	ReferenceMin float64 `json:"referenceMin"`
	ReferenceMax float64 `json:"referenceMax"`
	Alert        Alert   `json:"alert"`
	Date         string  `json:"date"`
}

// PatientRecord is the aggregate root handed to every assistant feature and
// UI panel.
type PatientRecord struct {
	Patient      Patient       `json:"patient"`
	Antecedentes []Antecedente `json:"antecedentes"`
	Evolutions   []Evolution   `json:"evolutions"`
	Medications  []Medication  `json:"medications"`
	Labs         []LabResult   `json:"labs"`
}

// ActiveMedications returns the subset of medications with status ACTIVE.
func (r *PatientRecord) ActiveMedications() []Medication {
	var active []Medication
	for _, m := range r.Medications {
		if m.Status == MedicationActive {
			active = append(active, m)
		}
	}
	return active
}

// PatientSearchResult is the reduced projection used for search-result
// lists, never for detail views.
type PatientSearchResult struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Age             int    `json:"age"`
	HealthInsurance string `json:"healthInsurance"`
}
