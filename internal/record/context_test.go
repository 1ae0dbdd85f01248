package record

import (
	"strings"
	"testing"
)

func sampleRecord() *PatientRecord {
	return &PatientRecord{
		Patient: Patient{
			ID: "p-001", FirstName: "Carlos", LastName: "Mendez",
			Age: 65, Gender: "M", BloodType: "A", RhFactor: "+",
			HealthInsurance: "OSDE 310",
		},
		Antecedentes: []Antecedente{
			{Category: CategoryPatologico, Name: "Hipertension arterial", Value: "SI", Observations: "Buen control"},
			{Category: CategoryAlergia, Name: "Penicilina", Value: "SI"},
		},
		Evolutions: []Evolution{
			{ID: 1, DoctorName: "Dr. Rodriguez", Specialty: "Cardiologia", Date: "2026-02-10",
				Fields: []EvolutionField{{Name: "Motivo de consulta", Value: "Control"}}},
		},
		Medications: []Medication{
			{Name: "Aspirina 100mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: MedicationActive},
			{Name: "Clopidogrel 75mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: MedicationSuspended},
		},
		Labs: []LabResult{
			{TestName: "Glucemia", Value: 128, Unit: "mg/dL", ReferenceMin: 70, ReferenceMax: 110, Alert: AlertWarning, Date: "2026-01-22"},
			{TestName: "Creatinina", Value: 3.1, Unit: "mg/dL", ReferenceMin: 0.7, ReferenceMax: 1.3, Alert: AlertCritical, Date: "2026-01-22"},
		},
	}
}

func TestBuildContext_Sections(t *testing.T) {
	ctx := BuildContext(sampleRecord())

	for _, want := range []string{
		"## PACIENTE", "## ANTECEDENTES", "## EVOLUCIONES RECIENTES",
		"## MEDICACION ACTUAL", "## ULTIMO LABORATORIO (2026-01-22)",
		"- Nombre: Carlos Mendez",
		"- Grupo sanguineo: A+",
		"### Patologicos", "### Alergias",
		"- Hipertension arterial: SI (Buen control)",
		"### 2026-02-10 - Dr. Rodriguez (Cardiologia)",
		"**Motivo de consulta:** Control",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q", want)
		}
	}
}

func TestBuildContext_OnlyActiveMedication(t *testing.T) {
	ctx := BuildContext(sampleRecord())
	if !strings.Contains(ctx, "Aspirina 100mg") {
		t.Error("active medication missing from context")
	}
	if strings.Contains(ctx, "Clopidogrel") {
		t.Error("suspended medication should not appear in context")
	}
}

func TestBuildContext_LabFlags(t *testing.T) {
	ctx := BuildContext(sampleRecord())
	if !strings.Contains(ctx, "Glucemia: 128 mg/dL (ref: 70-110) [ALERTA]") {
		t.Errorf("warning lab line malformed:\n%s", ctx)
	}
	if !strings.Contains(ctx, "[CRITICO]") {
		t.Error("critical lab flag missing")
	}
}

func TestBuildContext_CapsEvolutions(t *testing.T) {
	rec := sampleRecord()
	rec.Evolutions = nil
	for i := 0; i < 15; i++ {
		rec.Evolutions = append(rec.Evolutions, Evolution{ID: int64(i), DoctorName: "Dr. X", Specialty: "General", Date: "2026-01-01"})
	}
	ctx := BuildContext(rec)
	if got := strings.Count(ctx, "### 2026-01-01"); got != maxContextEvolutions {
		t.Errorf("expected %d evolution headers, got %d", maxContextEvolutions, got)
	}
}

func TestActiveMedications(t *testing.T) {
	rec := sampleRecord()
	active := rec.ActiveMedications()
	if len(active) != 1 || active[0].Name != "Aspirina 100mg" {
		t.Errorf("unexpected active set: %+v", active)
	}
}
