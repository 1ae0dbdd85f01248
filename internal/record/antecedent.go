package record

import "strings"

// Keyword lists for inferring a category from a free-text antecedent label.
// Only consulted when upstream supplies no usable classification metadata.
var categoryKeywords = map[Category][]string{
	CategoryAlergia: {"alergia", "alergico", "alergica", "intolerancia"},
	CategoryQuirurgico: {
		"cirugia", "quirurgico", "operacion", "intervencion",
		"colecistectomia", "apendicectomia", "cesarea", "angioplastia",
		"artroscopia", "protesis",
	},
	CategoryFamiliar: {"padre", "madre", "hermano", "hermana", "abuelo", "abuela", "familiar", "familia"},
	CategoryHabito:   {"tabaco", "tabaquismo", "alcohol", "droga", "ejercicio", "actividad fisica", "habito"},
}

// Inference priority. PATOLOGICO is the default, not a keyword match.
var categoryOrder = []Category{CategoryAlergia, CategoryQuirurgico, CategoryFamiliar, CategoryHabito}

// InferCategory guesses the clinical-history category of a free-text label.
// The first category whose keyword list matches wins; no match defaults to
// PATOLOGICO, so the result is always a valid category.
func InferCategory(name string) Category {
	lower := strings.ToLower(name)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return CategoryPatologico
}
