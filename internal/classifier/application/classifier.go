package application

import (
	"regexp"
	"sort"

	"ecgdigitizer/internal/classifier/domain"
	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/logging"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

var rhythmCandidateKeys = map[string]bool{
	"normal_sinus": true, "sinus_tachycardia": true, "sinus_bradycardia": true,
	"atrial_fibrillation": true, "atrial_flutter": true, "svt": true,
}

var conductionAbnormalityKeys = map[string]bool{
	"rbbb": true, "lbbb": true, "lafb": true, "lpfb": true,
	"first_degree_av_block": true, "second_degree_mobitz_i": true,
	"second_degree_mobitz_ii": true, "third_degree_av_block": true, "wpw": true,
}

const fallbackPrimaryDiagnosis = "Indeterminate — insufficient data"

// Classifier runs the static checker table over a measurement set and
// derives the ranked differential list, primary label, rhythm, and
// conduction-abnormality list.
type Classifier struct {
	cfg config.ClassifierConfig
	log logging.Logger
}

// NewClassifier builds a Classifier with the given configuration.
func NewClassifier(cfg config.ClassifierConfig, log logging.Logger) *Classifier {
	if log == nil {
		log = &logging.NoOpLogger{}
	}
	return &Classifier{cfg: cfg, log: log}
}

// Run is the classifier's pure contract: Measurements -> Classification.
func (c *Classifier) Run(m *mdomain.Measurements) domain.Classification {
	diffs := c.runCheckers(m)

	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].Probability > diffs[j].Probability
	})

	primary := fallbackPrimaryDiagnosis
	if len(diffs) > 0 {
		primary = diffs[0].Name
	}

	rhythm := m.RhythmDescription
	for _, d := range diffs {
		if rhythmCandidateKeys[d.Key] && d.Probability >= c.cfg.RhythmCandidateMinProbability {
			rhythm = d.Name
			break
		}
	}

	var conductionAbnormalities []string
	for _, d := range diffs {
		if conductionAbnormalityKeys[d.Key] && d.Probability >= c.cfg.ConductionAbnormalityMinProbability {
			conductionAbnormalities = append(conductionAbnormalities, d.Name)
		}
	}

	return domain.Classification{
		PrimaryDiagnosis:        primary,
		Differentials:           diffs,
		Rhythm:                  rhythm,
		ConductionAbnormalities: conductionAbnormalities,
	}
}

// runCheckers evaluates every checker independently, isolating panics so one
// failing checker never takes down the rest.
func (c *Classifier) runCheckers(m *mdomain.Measurements) []domain.Differential {
	diffs := make([]domain.Differential, 0, len(checkers))
	for _, chk := range checkers {
		cr, ok := c.runOne(chk, m)
		if !ok || cr.BaseProbability < c.cfg.MinCandidateProbability {
			continue
		}
		name := sanitizeDisplayName(cr.DisplayName)
		diffs = append(diffs, domain.Differential{
			Key:            cr.Key,
			Name:           name,
			Probability:    cr.BaseProbability,
			Tier:           domain.TierFor(cr.BaseProbability, c.cfg.TierHighThreshold, c.cfg.TierModerateThreshold),
			ICD10:          icd10ByKey[cr.Key],
			Criteria:       cr.Criteria,
			AbsentCriteria: cr.AbsentCriteria,
		})
	}
	return diffs
}

func (c *Classifier) runOne(chk checkerDef, m *mdomain.Measurements) (result domain.CheckerResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("classifier checker panicked, skipping", "checker", chk.key, "panic", r)
			ok = false
		}
	}()
	return chk.fn(m), true
}

// sanitizeDisplayName enforces the system-wide "diagnose" ban at emit time
//.
func sanitizeDisplayName(name string) string {
	return diagnosePattern.ReplaceAllString(name, "identify")
}

var diagnosePattern = regexp.MustCompile(`(?i)diagnose`)
