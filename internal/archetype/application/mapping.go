package application

import cdomain "ecgdigitizer/internal/classifier/domain"

// findingToArchetype is the static finding-key -> archetype mapping table,
// with normal_sinus as the final fallback for unmapped findings.
var findingToArchetype = map[string]string{
	"normal_sinus":          "normal_sinus",
	"rbbb":                  "RBBB_typical",
	"lbbb":                  "LBBB_typical",
	"lafb":                  "LAFB",
	"inferior_stemi":        "inferior_STEMI_explanatory",
	"anterior_stemi":        "anterior_STEMI_explanatory",
	"atrial_fibrillation":   "afib_typical",
	"third_degree_av_block": "third_degree_block",
	"wpw":                   "WPW_typical",
	"lvh":                   "LVH_typical",
}

// SelectArchetype walks the ranked differential list (highest probability
// first) and returns the first mapped archetype id, falling back to
// normal_sinus when nothing in the list maps.
func SelectArchetype(diffs []cdomain.Differential) string {
	for _, d := range diffs {
		if id, ok := findingToArchetype[d.Key]; ok {
			return id
		}
	}
	return "normal_sinus"
}
