package application

// icd10ByKey is a static lookup from checker key to ICD-10 code. Absence is
// permitted; normal_sinus deliberately has none.
var icd10ByKey = map[string]string{
	"sinus_tachycardia":          "R00.0",
	"sinus_bradycardia":          "R00.1",
	"atrial_fibrillation":        "I48.91",
	"atrial_flutter":             "I48.92",
	"svt":                        "I47.1",
	"rbbb":                       "I45.10",
	"lbbb":                       "I44.7",
	"lafb":                       "I44.4",
	"lpfb":                       "I44.5",
	"first_degree_av_block":      "I44.0",
	"second_degree_mobitz_i":     "I44.1",
	"second_degree_mobitz_ii":    "I44.1",
	"third_degree_av_block":      "I44.2",
	"wpw":                        "I45.6",
	"lvh":                        "I51.7",
	"rvh":                        "I51.7",
	"inferior_stemi":             "I21.1",
	"anterior_stemi":             "I21.0",
	"lateral_stemi":              "I21.2",
	"posterior_stemi":            "I21.29",
	"nstemi":                     "I21.4",
	"early_repolarization":       "I45.81",
	"pericarditis":               "I30.9",
	"digitalis_effect":           "T46.0X5A",
	"hypokalemia":                "E87.6",
	"hyperkalemia":               "E87.5",
}
