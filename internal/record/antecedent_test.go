package record

import "testing"

func TestInferCategory(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"Alergia a penicilina", CategoryAlergia},
		{"Intolerancia a la lactosa", CategoryAlergia},
		{"Apendicectomia 2005", CategoryQuirurgico},
		{"Colecistectomia laparoscopica", CategoryQuirurgico},
		{"Cirugia de cadera", CategoryQuirurgico},
		{"Padre: IAM a los 58 anos", CategoryFamiliar},
		{"Madre con DBT tipo 2", CategoryFamiliar},
		{"Tabaquismo", CategoryHabito},
		{"Consumo de alcohol", CategoryHabito},
		{"Hipertensión arterial", CategoryPatologico},
		{"Diabetes mellitus tipo 2", CategoryPatologico},
		{"", CategoryPatologico},
	}
	for _, tc := range cases {
		if got := InferCategory(tc.name); got != tc.want {
			t.Errorf("InferCategory(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestInferCategory_CaseInsensitive(t *testing.T) {
	if got := InferCategory("ALERGIA A AINES"); got != CategoryAlergia {
		t.Errorf("uppercase input = %s, want %s", got, CategoryAlergia)
	}
}

func TestInferCategory_PriorityOrder(t *testing.T) {
	// A label matching both allergy and family keywords resolves to the
	// higher-priority allergy category.
	if got := InferCategory("Alergia familiar al latex"); got != CategoryAlergia {
		t.Errorf("mixed keywords = %s, want %s", got, CategoryAlergia)
	}
}

func TestInferCategory_AlwaysValid(t *testing.T) {
	for _, name := range []string{"x", "asma", "fractura de tibia", "colesterol"} {
		if got := InferCategory(name); !got.Valid() {
			t.Errorf("InferCategory(%q) returned invalid category %q", name, got)
		}
	}
}
