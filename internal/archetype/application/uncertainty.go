package application

import (
	"fmt"

	cdomain "ecgdigitizer/internal/classifier/domain"
	"ecgdigitizer/internal/archetype/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

const (
	averagedCellCaveat    = "the model averages millions of myocytes into one effective dipole; no single-cell behavior is represented"
	coronaryAnatomyCaveat = "injury-current regions are inferred from lead territory conventions, not from a patient-specific coronary anatomy"
)

// ambiguityPair is one entry in the static alternate-model ambiguity table
//.
type ambiguityPair struct {
	left, right         []string
	description         string
	discriminatingTest  string
}

var ambiguityTable = []ambiguityPair{
	{
		left: []string{"inferior_stemi"}, right: []string{"early_repolarization"},
		description:        "Inferior ST elevation may reflect acute injury or a benign early repolarization variant",
		discriminatingTest: "serial troponin and comparison with a prior ECG",
	},
	{
		left: []string{"pericarditis"}, right: []string{"inferior_stemi", "anterior_stemi", "lateral_stemi", "posterior_stemi", "nstemi"},
		description:        "Diffuse ST elevation may reflect pericarditis or acute myocardial injury",
		discriminatingTest: "assess for PR depression and echocardiographic effusion versus regional wall-motion abnormality",
	},
	{
		left: []string{"lbbb"}, right: []string{"lvh"},
		description:        "Wide QRS with secondary repolarization changes may reflect conduction disease or hypertrophy-related strain",
		discriminatingTest: "echocardiographic wall-thickness measurement",
	},
	{
		left: []string{"rbbb"}, right: []string{"rvh"},
		description:        "RSR' pattern in V1 may reflect conduction disease or right ventricular hypertrophy",
		discriminatingTest: "echocardiographic right-heart assessment",
	},
	{
		left: []string{"wpw"}, right: []string{"lbbb"},
		description:        "A short PR with a wide, slurred QRS may reflect pre-excitation or left bundle branch block",
		discriminatingTest: "look for a delta wave and assess PR interval duration",
	},
	{
		left: []string{"hyperkalemia"}, right: []string{"third_degree_av_block"},
		description:        "Bradycardic, widened conduction may reflect hyperkalemia-induced conduction slowing or intrinsic AV block",
		discriminatingTest: "serum potassium level",
	},
}

func differentialByKeys(diffs []cdomain.Differential, keys []string) *cdomain.Differential {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	for i := range diffs {
		if set[diffs[i].Key] {
			return &diffs[i]
		}
	}
	return nil
}

// BuildUncertainty assembles the uncertainty record: underdetermined scalar
// measurements, the fixed activation-sequence caveat, two inherent-
// limitation caveats, and alternate-model entries from the ambiguity table
// plus the second-ranked differential.
func BuildUncertainty(m *mdomain.Measurements, diffs []cdomain.Differential, alternateModelMinP, secondRankMinP float64) domain.Uncertainty {
	underdetermined := underdeterminedParameters(m)
	underdetermined = append(underdetermined, "the internal activation sequence is reconstructed, not measured")
	underdetermined = append(underdetermined, averagedCellCaveat, coronaryAnatomyCaveat)

	var alternates []domain.AlternateModel
	for _, pair := range ambiguityTable {
		left := differentialByKeys(diffs, pair.left)
		right := differentialByKeys(diffs, pair.right)
		if left != nil && right != nil && left.Probability >= alternateModelMinP && right.Probability >= alternateModelMinP {
			alternates = append(alternates, domain.AlternateModel{
				Description:        pair.description,
				DiscriminatingTest: pair.discriminatingTest,
			})
		}
	}

	if len(diffs) >= 2 && diffs[1].Probability >= secondRankMinP {
		alternates = append(alternates, domain.AlternateModel{
			Description:        fmt.Sprintf("%s (p=%.2f) is also consistent with the measured findings", diffs[1].Name, diffs[1].Probability),
			DiscriminatingTest: "clinical correlation and, where relevant, a confirmatory study",
		})
	}

	return domain.Uncertainty{
		UnderdeterminedParameters: underdetermined,
		AlternateModels:           alternates,
	}
}

type namedScalar struct {
	name string
	s    mdomain.MeasurementScalar
}

func measurementScalars(m *mdomain.Measurements) []namedScalar {
	return []namedScalar{
		{"rate", m.Rate}, {"pr", m.PR}, {"qrs", m.QRS}, {"qt", m.QT},
		{"qtc_bazett", m.QTcBazett}, {"qtc_fridericia", m.QTcFridericia}, {"axis", m.Axis},
	}
}

func underdeterminedParameters(m *mdomain.Measurements) []string {
	var out []string
	for _, s := range measurementScalars(m) {
		if s.s.Confidence < 0.5 {
			out = append(out, fmt.Sprintf("%s (confidence %.2f)", s.name, s.s.Confidence))
		}
	}
	return out
}

// evidenceSupportedParameters lists the measurements that cleared the
// confidence bar: the signal-derived quantities backing display_contract's
// evidence_supported list, as opposed to uncertainty's underdetermined ones.
func evidenceSupportedParameters(m *mdomain.Measurements) []string {
	var out []string
	for _, s := range measurementScalars(m) {
		if s.s.Confidence >= 0.5 {
			out = append(out, fmt.Sprintf("%s: %.3g %s (confidence %.2f)", s.name, s.s.Value, s.s.Unit, s.s.Confidence))
		}
	}
	return out
}
