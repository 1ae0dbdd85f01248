package record

import (
	"fmt"
	"strings"
)

var categoryLabels = map[Category]string{
	CategoryPatologico: "Patologicos",
	CategoryFamiliar:   "Familiares",
	CategoryQuirurgico: "Quirurgicos",
	CategoryHabito:     "Habitos",
	CategoryAlergia:    "Alergias",
}

// maxContextEvolutions caps how many visit notes go into the prompt context.
const maxContextEvolutions = 10

// BuildContext renders a record as the markdown chart summary handed to the
// AI assistants as grounding context.
func BuildContext(rec *PatientRecord) string {
	var b strings.Builder
	p := rec.Patient

	b.WriteString("## PACIENTE\n")
	fmt.Fprintf(&b, "- Nombre: %s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(&b, "- Edad: %d anos\n", p.Age)
	sex := "Masculino"
	if p.Gender == "F" {
		sex = "Femenino"
	}
	fmt.Fprintf(&b, "- Sexo: %s\n", sex)
	fmt.Fprintf(&b, "- Grupo sanguineo: %s%s\n", p.BloodType, p.RhFactor)
	fmt.Fprintf(&b, "- Obra social: %s\n\n", p.HealthInsurance)

	b.WriteString("## ANTECEDENTES\n")
	var seen []Category
	for _, a := range rec.Antecedentes {
		if !containsCategory(seen, a.Category) {
			seen = append(seen, a.Category)
		}
	}
	for _, cat := range seen {
		fmt.Fprintf(&b, "### %s\n", categoryLabels[cat])
		for _, a := range rec.Antecedentes {
			if a.Category != cat {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s", a.Name, a.Value)
			if a.Observations != "" {
				fmt.Fprintf(&b, " (%s)", a.Observations)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## EVOLUCIONES RECIENTES\n")
	evos := rec.Evolutions
	if len(evos) > maxContextEvolutions {
		evos = evos[:maxContextEvolutions]
	}
	for _, evo := range evos {
		fmt.Fprintf(&b, "### %s - %s (%s)\n", evo.Date, evo.DoctorName, evo.Specialty)
		for _, f := range evo.Fields {
			fmt.Fprintf(&b, "**%s:** %s\n", f.Name, f.Value)
		}
		b.WriteString("\n")
	}

	b.WriteString("## MEDICACION ACTUAL\n")
	for _, med := range rec.ActiveMedications() {
		fmt.Fprintf(&b, "- %s - %s, %s\n", med.Name, med.Dose, med.Frequency)
	}

	if len(rec.Labs) > 0 {
		fmt.Fprintf(&b, "\n## ULTIMO LABORATORIO (%s)\n", rec.Labs[0].Date)
		for _, lab := range rec.Labs {
			flag := ""
			switch lab.Alert {
			case AlertCritical:
				flag = " [CRITICO]"
			case AlertWarning:
				flag = " [ALERTA]"
			}
			fmt.Fprintf(&b, "- %s: %v %s (ref: %v-%v)%s\n",
				lab.TestName, lab.Value, lab.Unit, lab.ReferenceMin, lab.ReferenceMax, flag)
		}
	}

	return b.String()
}

func containsCategory(cats []Category, c Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}
