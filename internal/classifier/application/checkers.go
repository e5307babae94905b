// Package application implements the classifier: a pure function from
// Measurements to ranked differentials over a static slice of independent,
// failure-isolated checker predicates.
package application

import (
	"ecgdigitizer/internal/classifier/domain"
	ddomain "ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// checkerFunc evaluates one differential candidate against a full
// measurement set. No runtime polymorphism is needed: checkers are plain
// functions collected into a static slice.
type checkerFunc func(m *mdomain.Measurements) domain.CheckerResult

type checkerDef struct {
	key string
	fn  checkerFunc
}

func gateProbability(criteria []domain.Criterion, gate float64) float64 {
	if len(criteria) == 0 {
		return 0
	}
	met := 0
	for _, c := range criteria {
		if c.Met {
			met++
		}
	}
	return float64(met) / float64(len(criteria)) * gate
}

func absentNames(criteria []domain.Criterion) []string {
	var out []string
	for _, c := range criteria {
		if !c.Met {
			out = append(out, c.Name)
		}
	}
	return out
}

func result(key, displayName string, criteria []domain.Criterion, gate float64) domain.CheckerResult {
	return domain.CheckerResult{
		Key:             key,
		DisplayName:     displayName,
		Criteria:        criteria,
		AbsentCriteria:  absentNames(criteria),
		BaseProbability: gateProbability(criteria, gate),
	}
}

func stLead(m *mdomain.Measurements, lead ddomain.LeadName) (value, confidence float64, found bool) {
	st := m.STByLead(lead)
	if st == nil {
		return 0, 0, false
	}
	return st.DeviationMV, st.Confidence, true
}

func twaveLead(m *mdomain.Measurements, lead ddomain.LeadName) *mdomain.TWaveDetail {
	return m.TWaveByLead(lead)
}

func pwaveLead(m *mdomain.Measurements, lead ddomain.LeadName) *mdomain.PWaveDetail {
	for i := range m.PWaves {
		if m.PWaves[i].Lead == lead {
			return &m.PWaves[i]
		}
	}
	return nil
}

func countSTAtOrAbove(m *mdomain.Measurements, leads []ddomain.LeadName, thresholdMV float64) (int, float64) {
	count := 0
	maxVal := 0.0
	for _, l := range leads {
		v, _, ok := stLead(m, l)
		if ok && v >= thresholdMV {
			count++
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return count, maxVal
}

func countSTAtOrBelow(m *mdomain.Measurements, leads []ddomain.LeadName, thresholdMV float64) int {
	count := 0
	for _, l := range leads {
		v, _, ok := stLead(m, l)
		if ok && v <= thresholdMV {
			count++
		}
	}
	return count
}

var inferiorLeads = []ddomain.LeadName{ddomain.LeadII, ddomain.LeadIII, ddomain.LeadAVF}
var anteriorLeads = []ddomain.LeadName{ddomain.LeadV1, ddomain.LeadV2, ddomain.LeadV3, ddomain.LeadV4}
var lateralLeads = []ddomain.LeadName{ddomain.LeadI, ddomain.LeadAVL, ddomain.LeadV5, ddomain.LeadV6}
var posteriorReciprocalLeads = []ddomain.LeadName{ddomain.LeadV1, ddomain.LeadV2, ddomain.LeadV3}

func checkNormalSinus(m *mdomain.Measurements) domain.CheckerResult {
	criteria := []domain.Criterion{
		{Name: "rate_60_100", Met: m.Rate.Value >= 60 && m.Rate.Value <= 100},
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
		{Name: "narrow_qrs", Met: m.QRS.Value > 0 && m.QRS.Value < 120},
	}
	gate := 0.1
	if m.BeatCount > 0 {
		gate = 0.9
	}
	return result("normal_sinus", "Normal sinus rhythm", criteria, gate)
}

func checkSinusTachycardia(m *mdomain.Measurements) domain.CheckerResult {
	criteria := []domain.Criterion{
		{Name: "rate_above_100", Met: m.Rate.Value > 100},
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
		{Name: "narrow_qrs", Met: m.QRS.Value > 0 && m.QRS.Value < 120},
	}
	gate := 0.1
	if m.Rate.Value > 100 {
		gate = 0.9
	}
	return result("sinus_tachycardia", "Sinus tachycardia", criteria, gate)
}

func checkSinusBradycardia(m *mdomain.Measurements) domain.CheckerResult {
	criteria := []domain.Criterion{
		{Name: "rate_below_60", Met: m.Rate.Value > 0 && m.Rate.Value < 60},
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
	}
	gate := 0.1
	if m.Rate.Value > 0 && m.Rate.Value < 60 {
		gate = 0.9
	}
	return result("sinus_bradycardia", "Sinus bradycardia", criteria, gate)
}

func checkAtrialFibrillation(m *mdomain.Measurements) domain.CheckerResult {
	pII := pwaveLead(m, ddomain.LeadII)
	absentP := pII == nil || pII.Confidence < 0.3
	criteria := []domain.Criterion{
		{Name: "irregularly_irregular", Met: m.RhythmRegularity == mdomain.RhythmIrregularlyIrregular},
		{Name: "absent_p_waves", Met: absentP},
		{Name: "narrow_qrs", Met: m.QRS.Value > 0 && m.QRS.Value < 120},
	}
	gate := 0.1
	if m.RhythmRegularity == mdomain.RhythmIrregularlyIrregular {
		gate = 0.9
	}
	return result("atrial_fibrillation", "Atrial fibrillation", criteria, gate)
}

func checkAtrialFlutter(m *mdomain.Measurements) domain.CheckerResult {
	criteria := []domain.Criterion{
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
		{Name: "rate_120_170", Met: m.Rate.Value >= 120 && m.Rate.Value <= 170},
	}
	gate := 0.15
	if m.RhythmRegularity == mdomain.RhythmRegular && m.Rate.Value >= 120 && m.Rate.Value <= 170 {
		gate = 0.85
	}
	return result("atrial_flutter", "Atrial flutter", criteria, gate)
}

func checkSVT(m *mdomain.Measurements) domain.CheckerResult {
	criteria := []domain.Criterion{
		{Name: "rate_above_150", Met: m.Rate.Value > 150},
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
		{Name: "narrow_qrs", Met: m.QRS.Value > 0 && m.QRS.Value < 120},
	}
	gate := 0.1
	if m.Rate.Value > 150 && m.RhythmRegularity == mdomain.RhythmRegular {
		gate = 0.9
	}
	return result("svt", "Supraventricular tachycardia", criteria, gate)
}

func checkRBBB(m *mdomain.Measurements) domain.CheckerResult {
	wideQRS := m.QRS.Value >= 120
	criteria := []domain.Criterion{
		{Name: "wide_qrs", Met: wideQRS},
		{Name: "early_precordial_transition", Met: m.PrecordialTransitionLead == ddomain.LeadV1 || m.PrecordialTransitionLead == ddomain.LeadV2},
	}
	gate := 0.1
	if wideQRS {
		gate = 0.8
	}
	return result("rbbb", "Right bundle branch block", criteria, gate)
}

func checkLBBB(m *mdomain.Measurements) domain.CheckerResult {
	wideQRS := m.QRS.Value >= 120
	criteria := []domain.Criterion{
		{Name: "wide_qrs", Met: wideQRS},
		{Name: "late_precordial_transition", Met: m.PrecordialTransitionLead == ddomain.LeadV5 || m.PrecordialTransitionLead == ddomain.LeadV6 || m.PrecordialTransitionLead == ""},
	}
	gate := 0.1
	if wideQRS {
		gate = 0.8
	}
	return result("lbbb", "Left bundle branch block", criteria, gate)
}

func checkLAFB(m *mdomain.Measurements) domain.CheckerResult {
	leftAxis := m.Axis.Value < -30
	criteria := []domain.Criterion{
		{Name: "left_axis_deviation", Met: leftAxis},
		{Name: "narrow_qrs", Met: m.QRS.Value > 0 && m.QRS.Value < 120},
	}
	gate := 0.1
	if leftAxis {
		gate = 0.9
	}
	return result("lafb", "Left anterior fascicular block", criteria, gate)
}

func checkLPFB(m *mdomain.Measurements) domain.CheckerResult {
	rightAxis := m.Axis.Value > 90
	criteria := []domain.Criterion{
		{Name: "right_axis_deviation", Met: rightAxis},
		{Name: "narrow_qrs", Met: m.QRS.Value > 0 && m.QRS.Value < 120},
	}
	gate := 0.1
	if rightAxis {
		gate = 0.9
	}
	return result("lpfb", "Left posterior fascicular block", criteria, gate)
}

func checkFirstDegreeAVBlock(m *mdomain.Measurements) domain.CheckerResult {
	prolongedPR := m.PR.Value > 200
	criteria := []domain.Criterion{
		{Name: "pr_above_200ms", Met: prolongedPR},
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
	}
	gate := 0.1
	if prolongedPR {
		gate = 0.85
	}
	return result("first_degree_av_block", "First-degree AV block", criteria, gate)
}

func checkSecondDegreeMobitzI(m *mdomain.Measurements) domain.CheckerResult {
	mildlyIrregular := m.RhythmRegularity == mdomain.RhythmMildlyIrregular
	criteria := []domain.Criterion{
		{Name: "mildly_irregular_rhythm", Met: mildlyIrregular},
		{Name: "pr_borderline", Met: m.PR.Value >= 160 && m.PR.Value <= 280},
	}
	gate := 0.1
	if mildlyIrregular {
		gate = 0.6
	}
	return result("second_degree_mobitz_i", "Second-degree AV block, Mobitz I (Wenckebach)", criteria, gate)
}

func checkSecondDegreeMobitzII(m *mdomain.Measurements) domain.CheckerResult {
	wideQRS := m.QRS.Value >= 120
	criteria := []domain.Criterion{
		{Name: "regular_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
		{Name: "wide_qrs", Met: wideQRS},
		{Name: "pr_normal", Met: m.PR.Value > 0 && m.PR.Value <= 200},
	}
	gate := 0.1
	if m.RhythmRegularity == mdomain.RhythmRegular && wideQRS {
		gate = 0.5
	}
	return result("second_degree_mobitz_ii", "Second-degree AV block, Mobitz II", criteria, gate)
}

func checkThirdDegreeAVBlock(m *mdomain.Measurements) domain.CheckerResult {
	verySlow := m.Rate.Value > 0 && m.Rate.Value < 45
	criteria := []domain.Criterion{
		{Name: "rate_below_45", Met: verySlow},
		{Name: "regular_escape_rhythm", Met: m.RhythmRegularity == mdomain.RhythmRegular},
	}
	gate := 0.1
	if verySlow {
		gate = 0.85
	}
	return result("third_degree_av_block", "Third-degree (complete) AV block", criteria, gate)
}

func checkWPW(m *mdomain.Measurements) domain.CheckerResult {
	shortPR := m.PR.Value > 0 && m.PR.Value < 120
	widenedQRS := m.QRS.Value >= 110
	criteria := []domain.Criterion{
		{Name: "short_pr", Met: shortPR},
		{Name: "widened_qrs", Met: widenedQRS},
	}
	gate := 0.1
	if shortPR && widenedQRS {
		gate = 0.85
	}
	return result("wpw", "Wolff-Parkinson-White pattern", criteria, gate)
}

func checkLVH(m *mdomain.Measurements) domain.CheckerResult {
	criteria := []domain.Criterion{
		{Name: "sokolow_lyon_criteria_met", Met: m.SokolowLyonLVH, Detail: m.SokolowLyonDetail},
		{Name: "cornell_criteria_met", Met: m.CornellLVH, Detail: m.CornellDetail},
	}
	gate := 0.2
	if m.SokolowLyonLVH || m.CornellLVH {
		gate = 0.9
	}
	return result("lvh", "Left ventricular hypertrophy", criteria, gate)
}

func checkRVH(m *mdomain.Measurements) domain.CheckerResult {
	rightAxis := m.Axis.Value > 90
	criteria := []domain.Criterion{
		{Name: "rvh_voltage_criteria_met", Met: m.RVH, Detail: m.RVHDetail},
		{Name: "right_axis_deviation", Met: rightAxis},
	}
	gate := 0.2
	if m.RVH {
		gate = 0.85
	}
	return result("rvh", "Right ventricular hypertrophy", criteria, gate)
}

func checkInferiorSTEMI(m *mdomain.Measurements) domain.CheckerResult {
	count, maxV := countSTAtOrAbove(m, inferiorLeads, 0.1)
	criteria := make([]domain.Criterion, 0, len(inferiorLeads))
	for _, l := range inferiorLeads {
		v, _, ok := stLead(m, l)
		criteria = append(criteria, domain.Criterion{Name: "st_elevation_" + string(l), Met: ok && v >= 0.1})
	}
	gate := 0.0
	if count >= 2 {
		gate = 0.9
	}
	_ = maxV
	return result("inferior_stemi", "Pattern consistent with inferior STEMI", criteria, gate)
}

func checkAnteriorSTEMI(m *mdomain.Measurements) domain.CheckerResult {
	count, _ := countSTAtOrAbove(m, anteriorLeads, 0.15)
	criteria := make([]domain.Criterion, 0, len(anteriorLeads))
	for _, l := range anteriorLeads {
		v, _, ok := stLead(m, l)
		criteria = append(criteria, domain.Criterion{Name: "st_elevation_" + string(l), Met: ok && v >= 0.15})
	}
	gate := 0.0
	if count >= 2 {
		gate = 0.9
	}
	return result("anterior_stemi", "Pattern consistent with anterior STEMI", criteria, gate)
}

func checkLateralSTEMI(m *mdomain.Measurements) domain.CheckerResult {
	count, _ := countSTAtOrAbove(m, lateralLeads, 0.1)
	criteria := make([]domain.Criterion, 0, len(lateralLeads))
	for _, l := range lateralLeads {
		v, _, ok := stLead(m, l)
		criteria = append(criteria, domain.Criterion{Name: "st_elevation_" + string(l), Met: ok && v >= 0.1})
	}
	gate := 0.1
	if count >= 2 {
		gate = 0.85
	}
	return result("lateral_stemi", "Pattern consistent with lateral STEMI", criteria, gate)
}

func checkPosteriorSTEMI(m *mdomain.Measurements) domain.CheckerResult {
	depressedCount := countSTAtOrBelow(m, posteriorReciprocalLeads, -0.1)
	criteria := make([]domain.Criterion, 0, len(posteriorReciprocalLeads))
	for _, l := range posteriorReciprocalLeads {
		v, _, ok := stLead(m, l)
		criteria = append(criteria, domain.Criterion{Name: "reciprocal_st_depression_" + string(l), Met: ok && v <= -0.1})
	}
	gate := 0.1
	if depressedCount >= 2 {
		gate = 0.6
	}
	return result("posterior_stemi", "Finding suggestive of posterior STEMI", criteria, gate)
}

func checkNSTEMI(m *mdomain.Measurements) domain.CheckerResult {
	allLeads := append(append(append([]ddomain.LeadName{}, inferiorLeads...), anteriorLeads...), lateralLeads...)
	depressedCount := countSTAtOrBelow(m, allLeads, -0.1)
	elevatedCount, _ := countSTAtOrAbove(m, allLeads, 0.1)
	criteria := []domain.Criterion{
		{Name: "st_depression_in_2_or_more_leads", Met: depressedCount >= 2},
		{Name: "no_stemi_elevation_pattern", Met: elevatedCount < 2},
	}
	gate := 0.1
	if depressedCount >= 2 && elevatedCount < 2 {
		gate = 0.6
	}
	return result("nstemi", "Finding suggestive of NSTEMI", criteria, gate)
}

func checkEarlyRepolarization(m *mdomain.Measurements) domain.CheckerResult {
	count, maxV := countSTAtOrAbove(m, anteriorLeads, 0.05)
	mild := count >= 2 && maxV < 0.2
	uprightT := true
	for _, l := range anteriorLeads {
		if t := twaveLead(m, l); t != nil && t.Morphology == mdomain.TWaveInverted {
			uprightT = false
		}
	}
	criteria := []domain.Criterion{
		{Name: "mild_precordial_st_elevation", Met: mild},
		{Name: "upright_precordial_t_waves", Met: uprightT},
	}
	gate := 0.15
	if mild {
		gate = 0.6
	}
	return result("early_repolarization", "Benign early repolarization pattern", criteria, gate)
}

func checkPericarditis(m *mdomain.Measurements) domain.CheckerResult {
	allLeads := append(append(append([]ddomain.LeadName{}, inferiorLeads...), anteriorLeads...), lateralLeads...)
	count, _ := countSTAtOrAbove(m, allLeads, 0.05)
	diffuse := count >= 4
	criteria := []domain.Criterion{
		{Name: "diffuse_st_elevation", Met: diffuse},
	}
	gate := 0.1
	if diffuse {
		gate = 0.6
	}
	return result("pericarditis", "Finding suggestive of pericarditis", criteria, gate)
}

func checkDigitalisEffect(m *mdomain.Measurements) domain.CheckerResult {
	shortQTc := m.QTcBazett.Value > 0 && m.QTcBazett.Value < 350
	criteria := []domain.Criterion{
		{Name: "short_qtc", Met: shortQTc},
	}
	gate := 0.1
	if shortQTc {
		gate = 0.5
	}
	return result("digitalis_effect", "Finding suggestive of digitalis effect", criteria, gate)
}

func checkHypokalemia(m *mdomain.Measurements) domain.CheckerResult {
	flatCount := 0
	for _, l := range ddomain.StandardLeadNames {
		if t := twaveLead(m, l); t != nil && t.Morphology == mdomain.TWaveFlat {
			flatCount++
		}
	}
	prolongedQTc := m.QTcBazett.Value > 460
	criteria := []domain.Criterion{
		{Name: "flat_t_waves_2_or_more_leads", Met: flatCount >= 2},
		{Name: "prolonged_qtc", Met: prolongedQTc},
	}
	gate := 0.1
	if flatCount >= 2 {
		gate = 0.5
	}
	return result("hypokalemia", "Finding suggestive of hypokalemia", criteria, gate)
}

func checkHyperkalemia(m *mdomain.Measurements) domain.CheckerResult {
	peakedCount := 0
	for _, l := range ddomain.StandardLeadNames {
		if t := twaveLead(m, l); t != nil && t.Morphology == mdomain.TWaveUpright && t.AmplitudeMV > 0.5 {
			peakedCount++
		}
	}
	wideQRS := m.QRS.Value >= 120
	criteria := []domain.Criterion{
		{Name: "peaked_t_waves_2_or_more_leads", Met: peakedCount >= 2},
		{Name: "widened_qrs", Met: wideQRS},
	}
	gate := 0.1
	if peakedCount >= 2 {
		gate = 0.6
	}
	return result("hyperkalemia", "Finding suggestive of hyperkalemia", criteria, gate)
}

// checkers is the static, dynamic-dispatch-free checker table:
// every checker is independent and failure-isolated by runCheckers.
var checkers = []checkerDef{
	{"normal_sinus", checkNormalSinus},
	{"sinus_tachycardia", checkSinusTachycardia},
	{"sinus_bradycardia", checkSinusBradycardia},
	{"atrial_fibrillation", checkAtrialFibrillation},
	{"atrial_flutter", checkAtrialFlutter},
	{"svt", checkSVT},
	{"rbbb", checkRBBB},
	{"lbbb", checkLBBB},
	{"lafb", checkLAFB},
	{"lpfb", checkLPFB},
	{"first_degree_av_block", checkFirstDegreeAVBlock},
	{"second_degree_mobitz_i", checkSecondDegreeMobitzI},
	{"second_degree_mobitz_ii", checkSecondDegreeMobitzII},
	{"third_degree_av_block", checkThirdDegreeAVBlock},
	{"wpw", checkWPW},
	{"lvh", checkLVH},
	{"rvh", checkRVH},
	{"inferior_stemi", checkInferiorSTEMI},
	{"anterior_stemi", checkAnteriorSTEMI},
	{"lateral_stemi", checkLateralSTEMI},
	{"posterior_stemi", checkPosteriorSTEMI},
	{"nstemi", checkNSTEMI},
	{"early_repolarization", checkEarlyRepolarization},
	{"pericarditis", checkPericarditis},
	{"digitalis_effect", checkDigitalisEffect},
	{"hypokalemia", checkHypokalemia},
	{"hyperkalemia", checkHyperkalemia},
}
