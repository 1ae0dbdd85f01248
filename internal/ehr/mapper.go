package ehr

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mediscribe/mediscribe/internal/record"
)

// Fallback labels for absent upstream fields.
const (
	noCoverage       = "Sin cobertura"
	unknownBloodType = "Desconocido"
	noDoctorData     = "Sin datos"
	defaultSpecialty = "General"
)

// healthInsuranceLabel joins the first health plan's name and plan label,
// dropping the plan label when absent.
func healthInsuranceLabel(plans []healthPlanDTO) string {
	if len(plans) == 0 {
		return noCoverage
	}
	if plans[0].Plan == "" {
		return plans[0].Name
	}
	return plans[0].Name + " " + plans[0].Plan
}

func mapGender(gender string) string {
	if strings.HasPrefix(strings.ToUpper(gender), "F") {
		return "F"
	}
	return "M"
}

func mapPatient(dto patientDTO) record.Patient {
	bloodType := dto.BloodType
	if bloodType == "" {
		bloodType = unknownBloodType
	}
	rh := "+"
	if dto.RhFactor == "-" {
		rh = "-"
	}
	return record.Patient{
		ID:              strconv.FormatInt(dto.UserID, 10),
		FirstName:       dto.Name,
		LastName:        dto.LastName,
		DocumentNumber:  dto.Document,
		BirthDate:       dto.BirthDate,
		Age:             record.Age(dto.BirthDate),
		Gender:          mapGender(dto.Gender),
		BloodType:       bloodType,
		RhFactor:        rh,
		HealthInsurance: healthInsuranceLabel(dto.HealthPlans),
	}
}

// antecedenteCategory resolves the category for one upstream item. An
// explicit upstream classification that names one of the five categories
// wins outright. Otherwise the keyword categorizer runs over the upstream
// type label, and when that label carries no signal (generic labels like
// "Antecedente" fall through to the default) over the item name itself.
func antecedenteCategory(dto antecedenteDTO) record.Category {
	if dto.DataType != nil && dto.DataType.Name != "" {
		if cat := record.Category(strings.ToUpper(dto.DataType.Name)); cat.Valid() {
			return cat
		}
		if cat := record.InferCategory(dto.DataType.Name); cat != record.CategoryPatologico {
			return cat
		}
	}
	return record.InferCategory(dto.Name)
}

func mapAntecedentes(dtos []antecedenteDTO) []record.Antecedente {
	out := make([]record.Antecedente, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, record.Antecedente{
			Category:     antecedenteCategory(dto),
			Name:         dto.Name,
			Value:        dto.Value,
			Observations: dto.Observations,
		})
	}
	return out
}

func mapEvoluciones(dtos []evolucionDTO) []record.Evolution {
	out := make([]record.Evolution, 0, len(dtos))
	for _, dto := range dtos {
		doctorName := noDoctorData
		specialty := defaultSpecialty
		if dto.Doctor != nil {
			doctorName = "Dr. " + dto.Doctor.Name + " " + dto.Doctor.LastName
			if len(dto.Doctor.Specialities) > 0 && dto.Doctor.Specialities[0].Name != "" {
				specialty = dto.Doctor.Specialities[0].Name
			}
		}
		fields := make([]record.EvolutionField, 0, len(dto.Data))
		for _, f := range dto.Data {
			fields = append(fields, record.EvolutionField{Name: f.FieldName, Value: f.Value})
		}
		out = append(out, record.Evolution{
			ID:         dto.ID,
			DoctorName: doctorName,
			Specialty:  specialty,
			Date:       record.DateOnly(dto.Date),
			Fields:     fields,
		})
	}
	return out
}

func mapMedications(dtos []medicationDTO) []record.Medication {
	out := make([]record.Medication, 0, len(dtos))
	for _, dto := range dtos {
		status := record.MedicationSuspended
		if strings.EqualFold(dto.Status, "active") {
			status = record.MedicationActive
		}
		out = append(out, record.Medication{
			Name:      dto.Name,
			Dose:      dto.Dose,
			Frequency: dto.Frequency,
			Status:    status,
			StartDate: record.DateOnly(dto.StartDate),
		})
	}
	return out
}

// mapLabs joins lab-value rows to their study dates and grades each value.
// Rows with a non-numeric value are dropped: they cannot be classified or
// charted. An unmatched study id is logged and leaves the date empty.
func mapLabs(studies []studyDTO, rows []labRowDTO, policy record.AlertPolicy, logger zerolog.Logger) []record.LabResult {
	studyDates := make(map[int64]string, len(studies))
	for _, s := range studies {
		studyDates[s.ID] = record.DateOnly(s.Date)
	}

	out := make([]record.LabResult, 0, len(rows))
	for _, row := range rows {
		value, err := strconv.ParseFloat(strings.TrimSpace(row.Value), 64)
		if err != nil {
			continue
		}

		min, max := record.ParseReferenceValue(row.BloodTest.ReferenceValue)
		if min == 0 && math.IsInf(max, 1) && strings.TrimSpace(row.BloodTest.ReferenceValue) != "" {
			logger.Warn().
				Str("test", row.BloodTest.Name).
				Str("reference", row.BloodTest.ReferenceValue).
				Msg("unparseable reference range, using open range")
		}
		alert := policy.Classify(value, min, max)

		date, ok := studyDates[row.StudyID]
		if !ok {
			logger.Warn().
				Int64("study_id", row.StudyID).
				Str("test", row.BloodTest.Name).
				Msg("lab row references unknown study")
		}

		refMax := max
		if math.IsInf(refMax, 1) {
			refMax = record.MaxReferenceValue
		}
		out = append(out, record.LabResult{
			TestName:     row.BloodTest.Name,
			Value:        value,
			Unit:         row.BloodTest.Unit,
			ReferenceMin: min,
			ReferenceMax: refMax,
			Alert:        alert,
			Date:         date,
		})
	}
	return out
}

// mapSearchResults projects search rows the same way the patient mapper
// derives age and coverage. This path never needs the full record.
func mapSearchResults(rows []searchRowDTO) []record.PatientSearchResult {
	out := make([]record.PatientSearchResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, record.PatientSearchResult{
			ID:              strconv.FormatInt(r.UserID, 10),
			FirstName:       r.Name,
			LastName:        r.LastName,
			Age:             record.Age(r.BirthDate),
			HealthInsurance: healthInsuranceLabel(r.HealthPlans),
		})
	}
	return out
}
