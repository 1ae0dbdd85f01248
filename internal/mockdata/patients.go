// Package mockdata holds the built-in demo dataset served when the
// application runs without an upstream EHR. The table is a process-wide
// read-only constant: safe for concurrent readers, never mutated.
package mockdata

import (
	"strings"

	"github.com/mediscribe/mediscribe/internal/record"
)

// PatientByID returns the chart for a known id, nil otherwise.
func PatientByID(id string) *record.PatientRecord {
	for i := range Patients {
		if Patients[i].Patient.ID == id {
			rec := Patients[i]
			return &rec
		}
	}
	return nil
}

// Search filters the dataset by case-insensitive substring over first name,
// last name and document number.
func Search(query string) []record.PatientSearchResult {
	q := strings.ToLower(query)
	results := []record.PatientSearchResult{}
	for i := range Patients {
		p := Patients[i].Patient
		if strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			strings.Contains(p.DocumentNumber, q) {
			results = append(results, record.PatientSearchResult{
				ID:              p.ID,
				FirstName:       p.FirstName,
				LastName:        p.LastName,
				Age:             p.Age,
				HealthInsurance: p.HealthInsurance,
			})
		}
	}
	return results
}

// Patients is the demo dataset: three charts covering a post-infarct
// diabetic, a young asthmatic and an elderly patient with heart failure and
// COPD, so every assistant panel has material to work with.
var Patients = []record.PatientRecord{
	{
		Patient: record.Patient{
			ID: "p-001", FirstName: "Carlos", LastName: "Mendez",
			DocumentNumber: "18.456.789", BirthDate: "1960-03-15", Age: 65,
			Gender: "M", BloodType: "A", RhFactor: "+", HealthInsurance: "OSDE 310",
		},
		Antecedentes: []record.Antecedente{
			{Category: record.CategoryPatologico, Name: "Hipertension arterial", Value: "SI", Observations: "Diagnosticada en 2010. Buen control con medicacion"},
			{Category: record.CategoryPatologico, Name: "Diabetes mellitus tipo 2", Value: "SI", Observations: "Diagnosticada en 2015. HbA1c ultima: 7.2%"},
			{Category: record.CategoryPatologico, Name: "Dislipemia", Value: "SI", Observations: "Colesterol total elevado, en tratamiento con estatinas"},
			{Category: record.CategoryPatologico, Name: "Infarto agudo de miocardio", Value: "SI", Observations: "IAM anterior en 2020. Angioplastia con stent en DA"},
			{Category: record.CategoryFamiliar, Name: "Padre: IAM a los 58 anos", Value: "SI"},
			{Category: record.CategoryFamiliar, Name: "Madre: DBT tipo 2", Value: "SI"},
			{Category: record.CategoryQuirurgico, Name: "Angioplastia coronaria", Value: "SI", Observations: "2020 - Stent farmacologico en DA"},
			{Category: record.CategoryQuirurgico, Name: "Colecistectomia laparoscopica", Value: "SI", Observations: "2018"},
			{Category: record.CategoryHabito, Name: "Tabaquismo", Value: "Ex-tabaquista", Observations: "Dejo en 2020 post-IAM. Fumaba 20 cig/dia por 30 anos"},
			{Category: record.CategoryHabito, Name: "Alcohol", Value: "Social", Observations: "1-2 copas de vino los fines de semana"},
			{Category: record.CategoryAlergia, Name: "Penicilina", Value: "SI", Observations: "Rash cutaneo"},
		},
		Evolutions: []record.Evolution{
			{
				ID: 1, DoctorName: "Dr. Rodriguez", Specialty: "Cardiologia", Date: "2026-02-10",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control cardiologico semestral"},
					{Name: "Enfermedad actual", Value: "Paciente de 65 anos con antecedente de IAM anterior (2020) con stent en DA. Refiere buena tolerancia al ejercicio, camina 30 minutos diarios sin angor ni disnea."},
					{Name: "Examen fisico", Value: "TA 130/82 mmHg. FC 68 lpm regular. Peso 86kg. IMC 28.1. Ruidos cardiacos normofonicos, sin soplos. Sin edemas."},
					{Name: "Diagnostico", Value: "Cardiopatia isquemica cronica. Post-angioplastia con stent en DA. HTA controlada. DBT2 en seguimiento."},
					{Name: "Plan", Value: "Mantiene medicacion actual. Solicito ergometria de control. Laboratorio con perfil lipidico y HbA1c. Control en 6 meses."},
				},
			},
			{
				ID: 2, DoctorName: "Dra. Fernandez", Specialty: "Clinica Medica", Date: "2026-01-20",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control de diabetes y chequeo general"},
					{Name: "Enfermedad actual", Value: "Paciente diabetico tipo 2 en tratamiento con metformina y empagliflozina. Automonitoreo glucemico con valores de ayuno entre 110-140 mg/dL. Niega hipoglucemias."},
					{Name: "Examen fisico", Value: "TA 128/80. FC 72. Peso 86kg (estable). Pies: pulsos presentes, sensibilidad conservada, sin lesiones."},
					{Name: "Diagnostico", Value: "DBT tipo 2 con control glucemico aceptable. HTA controlada. Sobrepeso."},
					{Name: "Plan", Value: "Solicito HbA1c, glucemia, funcion renal, perfil lipidico. Derivar a oftalmologia para fondo de ojo anual. Control en 3 meses."},
				},
			},
			{
				ID: 3, DoctorName: "Dr. Rodriguez", Specialty: "Cardiologia", Date: "2025-08-05",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control post-ergometria"},
					{Name: "Enfermedad actual", Value: "Trae resultado de ergometria: prueba clinica y electricamente negativa. Alcanza 8.5 METS. Asintomatico."},
					{Name: "Examen fisico", Value: "TA 126/78. FC 64. Sin hallazgos patologicos."},
					{Name: "Diagnostico", Value: "Cardiopatia isquemica cronica estable. Buena capacidad funcional."},
					{Name: "Plan", Value: "Continuar tratamiento. Ecocardiograma Doppler de control. Proximo control en 6 meses."},
				},
			},
		},
		Medications: []record.Medication{
			{Name: "Aspirina 100mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: record.MedicationActive, StartDate: "2020-05-10"},
			{Name: "Clopidogrel 75mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: record.MedicationSuspended, StartDate: "2020-05-10"},
			{Name: "Atorvastatina 40mg", Dose: "1 comprimido", Frequency: "Una vez al dia (noche)", Status: record.MedicationActive, StartDate: "2020-05-10"},
			{Name: "Enalapril 10mg", Dose: "1 comprimido", Frequency: "Cada 12 horas", Status: record.MedicationActive, StartDate: "2010-03-20"},
			{Name: "Metformina 850mg", Dose: "1 comprimido", Frequency: "Cada 12 horas (con comidas)", Status: record.MedicationActive, StartDate: "2015-07-15"},
			{Name: "Empagliflozina 10mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: record.MedicationActive, StartDate: "2023-01-10"},
			{Name: "Bisoprolol 2.5mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: record.MedicationActive, StartDate: "2020-05-10"},
		},
		Labs: []record.LabResult{
			{TestName: "Glucemia", Value: 128, Unit: "mg/dL", ReferenceMin: 70, ReferenceMax: 110, Alert: record.AlertWarning, Date: "2026-01-22"},
			{TestName: "HbA1c", Value: 7.2, Unit: "%", ReferenceMin: 4, ReferenceMax: 6.5, Alert: record.AlertWarning, Date: "2026-01-22"},
			{TestName: "Colesterol total", Value: 185, Unit: "mg/dL", ReferenceMin: 0, ReferenceMax: 200, Alert: record.AlertNormal, Date: "2026-01-22"},
			{TestName: "LDL", Value: 88, Unit: "mg/dL", ReferenceMin: 0, ReferenceMax: 100, Alert: record.AlertNormal, Date: "2026-01-22"},
			{TestName: "HDL", Value: 42, Unit: "mg/dL", ReferenceMin: 40, ReferenceMax: 200, Alert: record.AlertNormal, Date: "2026-01-22"},
			{TestName: "Trigliceridos", Value: 178, Unit: "mg/dL", ReferenceMin: 0, ReferenceMax: 150, Alert: record.AlertWarning, Date: "2026-01-22"},
			{TestName: "Creatinina", Value: 1.1, Unit: "mg/dL", ReferenceMin: 0.7, ReferenceMax: 1.3, Alert: record.AlertNormal, Date: "2026-01-22"},
			{TestName: "Hemoglobina", Value: 14.2, Unit: "g/dL", ReferenceMin: 13, ReferenceMax: 17, Alert: record.AlertNormal, Date: "2026-01-22"},
		},
	},
	{
		Patient: record.Patient{
			ID: "p-002", FirstName: "Maria Elena", LastName: "Gutierrez",
			DocumentNumber: "28.912.345", BirthDate: "1982-07-22", Age: 44,
			Gender: "F", BloodType: "0", RhFactor: "-", HealthInsurance: "Swiss Medical SMG20",
		},
		Antecedentes: []record.Antecedente{
			{Category: record.CategoryPatologico, Name: "Asma bronquial", Value: "SI", Observations: "Desde la infancia. Intermitente leve, bien controlada"},
			{Category: record.CategoryPatologico, Name: "Hipotiroidismo", Value: "SI", Observations: "Diagnosticado en 2019. En tratamiento con levotiroxina"},
			{Category: record.CategoryFamiliar, Name: "Madre: hipotiroidismo", Value: "SI"},
			{Category: record.CategoryQuirurgico, Name: "Cesarea", Value: "SI", Observations: "2012 y 2015"},
			{Category: record.CategoryHabito, Name: "Ejercicio", Value: "Regular", Observations: "Natacion 3 veces por semana"},
			{Category: record.CategoryAlergia, Name: "AINEs", Value: "SI", Observations: "Broncoespasmo con ibuprofeno"},
		},
		Evolutions: []record.Evolution{
			{
				ID: 4, DoctorName: "Dra. Paz", Specialty: "Endocrinologia", Date: "2026-02-02",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control de hipotiroidismo"},
					{Name: "Enfermedad actual", Value: "Paciente con hipotiroidismo en tratamiento con levotiroxina 75mcg. Refiere buen estado general, sin astenia ni cambios de peso."},
					{Name: "Examen fisico", Value: "TA 110/70. FC 66. Peso 61kg. Tiroides no palpable. Sin edemas."},
					{Name: "Diagnostico", Value: "Hipotiroidismo primario en tratamiento sustitutivo."},
					{Name: "Plan", Value: "Solicito TSH y T4 libre. Mantiene dosis actual. Control en 6 meses con laboratorio."},
				},
			},
			{
				ID: 5, DoctorName: "Dr. Bianchi", Specialty: "Neumonologia", Date: "2025-11-18",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control de asma"},
					{Name: "Enfermedad actual", Value: "Asma intermitente leve. Uso de salbutamol de rescate menos de 2 veces por mes. Sin despertares nocturnos ni limitacion de actividad."},
					{Name: "Examen fisico", Value: "Buena entrada de aire bilateral, sin sibilancias. SatO2 98%."},
					{Name: "Diagnostico", Value: "Asma intermitente leve controlada."},
					{Name: "Plan", Value: "Continuar salbutamol a demanda. Espirometria anual. Pauta escrita de crisis."},
				},
			},
		},
		Medications: []record.Medication{
			{Name: "Levotiroxina 75mcg", Dose: "1 comprimido", Frequency: "Una vez al dia (ayunas)", Status: record.MedicationActive, StartDate: "2019-04-02"},
			{Name: "Salbutamol inhalador", Dose: "2 disparos", Frequency: "A demanda", Status: record.MedicationActive, StartDate: "2005-01-01"},
		},
		Labs: []record.LabResult{
			{TestName: "TSH", Value: 2.8, Unit: "mUI/L", ReferenceMin: 0.4, ReferenceMax: 4.5, Alert: record.AlertNormal, Date: "2026-01-28"},
			{TestName: "T4 libre", Value: 1.2, Unit: "ng/dL", ReferenceMin: 0.8, ReferenceMax: 1.8, Alert: record.AlertNormal, Date: "2026-01-28"},
			{TestName: "Hemoglobina", Value: 12.6, Unit: "g/dL", ReferenceMin: 12, ReferenceMax: 16, Alert: record.AlertNormal, Date: "2026-01-28"},
			{TestName: "Ferritina", Value: 18, Unit: "ng/mL", ReferenceMin: 20, ReferenceMax: 200, Alert: record.AlertWarning, Date: "2026-01-28"},
		},
	},
	{
		Patient: record.Patient{
			ID: "p-003", FirstName: "Roberto", LastName: "Villalba",
			DocumentNumber: "10.234.567", BirthDate: "1948-11-30", Age: 77,
			Gender: "M", BloodType: "B", RhFactor: "+", HealthInsurance: "PAMI",
		},
		Antecedentes: []record.Antecedente{
			{Category: record.CategoryPatologico, Name: "Insuficiencia cardiaca", Value: "SI", Observations: "FEy 35%. Clase funcional II-III"},
			{Category: record.CategoryPatologico, Name: "Fibrilacion auricular", Value: "SI", Observations: "Permanente, anticoagulado con apixaban"},
			{Category: record.CategoryPatologico, Name: "EPOC", Value: "SI", Observations: "Gold III. Oxigeno nocturno"},
			{Category: record.CategoryPatologico, Name: "Enfermedad renal cronica", Value: "SI", Observations: "Estadio 3b"},
			{Category: record.CategoryHabito, Name: "Tabaquismo", Value: "Ex-tabaquista", Observations: "IPA 90. Dejo en 2015"},
		},
		Evolutions: []record.Evolution{
			{
				ID: 6, DoctorName: "Dra. Castro", Specialty: "Cardiologia", Date: "2026-02-18",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control de insuficiencia cardiaca"},
					{Name: "Enfermedad actual", Value: "Paciente con IC con FEy reducida. Refiere disnea CF II-III, ortopnea de 2 almohadas. Aumento de 2kg en el ultimo mes. Edemas maleolares vespertinos."},
					{Name: "Examen fisico", Value: "TA 138/82. FC 78 irregular. Ingurgitacion yugular 2/3. Rales crepitantes bibasales. Edemas godet +/+++."},
					{Name: "Diagnostico", Value: "IC descompensada leve. FA permanente. ERC 3b."},
					{Name: "Plan", Value: "Aumento furosemida a 80mg/dia. Laboratorio con funcion renal e ionograma en 1 semana. Control en 15 dias."},
				},
			},
			{
				ID: 7, DoctorName: "Dr. Gimenez", Specialty: "Neumonologia", Date: "2026-01-08",
				Fields: []record.EvolutionField{
					{Name: "Motivo de consulta", Value: "Control de EPOC"},
					{Name: "Enfermedad actual", Value: "EPOC Gold III, ex tabaquista IPA 90. Triple terapia inhalatoria. Oxigeno nocturno 2L/min. Una exacerbacion en los ultimos 6 meses, tratada ambulatoriamente."},
					{Name: "Examen fisico", Value: "SatO2 92% (AA). Hipersonoridad, espiracion prolongada, roncus basales bilaterales."},
					{Name: "Diagnostico", Value: "EPOC Gold III grupo E. Ex tabaquista."},
					{Name: "Plan", Value: "Mantiene triple terapia. Espirometria de control. Refuerzo de vacunacion antineumococica. Control en 3 meses."},
				},
			},
		},
		Medications: []record.Medication{
			{Name: "Apixaban 5mg", Dose: "1 comprimido", Frequency: "Cada 12 horas", Status: record.MedicationActive, StartDate: "2021-03-15"},
			{Name: "Furosemida 40mg", Dose: "1 comprimido", Frequency: "Una vez al dia (manana)", Status: record.MedicationActive, StartDate: "2023-06-01"},
			{Name: "Bisoprolol 2.5mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: record.MedicationActive, StartDate: "2023-06-01"},
			{Name: "Enalapril 10mg", Dose: "1 comprimido", Frequency: "Cada 12 horas", Status: record.MedicationActive, StartDate: "2015-01-01"},
			{Name: "Espironolactona 25mg", Dose: "1 comprimido", Frequency: "Una vez al dia", Status: record.MedicationActive, StartDate: "2023-06-01"},
			{Name: "Tiotropio 18mcg", Dose: "1 capsula inhalada", Frequency: "Una vez al dia", Status: record.MedicationActive, StartDate: "2018-09-01"},
			{Name: "Formoterol/Budesonide 12/400mcg", Dose: "1 inhalacion", Frequency: "Cada 12 horas", Status: record.MedicationActive, StartDate: "2020-01-15"},
			{Name: "Omeprazol 20mg", Dose: "1 capsula", Frequency: "En ayunas", Status: record.MedicationActive, StartDate: "2020-01-15"},
		},
		Labs: []record.LabResult{
			{TestName: "Creatinina", Value: 1.8, Unit: "mg/dL", ReferenceMin: 0.7, ReferenceMax: 1.3, Alert: record.AlertCritical, Date: "2026-02-18"},
			{TestName: "Urea", Value: 58, Unit: "mg/dL", ReferenceMin: 10, ReferenceMax: 50, Alert: record.AlertWarning, Date: "2026-02-18"},
			{TestName: "Potasio", Value: 5.4, Unit: "mEq/L", ReferenceMin: 3.5, ReferenceMax: 5.0, Alert: record.AlertWarning, Date: "2026-02-18"},
			{TestName: "Sodio", Value: 133, Unit: "mEq/L", ReferenceMin: 135, ReferenceMax: 145, Alert: record.AlertWarning, Date: "2026-02-18"},
			{TestName: "BNP", Value: 890, Unit: "pg/mL", ReferenceMin: 0, ReferenceMax: 100, Alert: record.AlertCritical, Date: "2026-02-18"},
			{TestName: "Hemoglobina", Value: 11.8, Unit: "g/dL", ReferenceMin: 13, ReferenceMax: 17, Alert: record.AlertWarning, Date: "2026-02-18"},
			{TestName: "INR", Value: 1.1, Unit: "", ReferenceMin: 0.8, ReferenceMax: 1.2, Alert: record.AlertNormal, Date: "2026-02-18"},
		},
	},
}
