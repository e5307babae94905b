package application

import (
	"fmt"
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

// VoltageResult bundles the three voltage-criteria outcomes.
type VoltageResult struct {
	SokolowLyonLVH    bool
	SokolowLyonDetail string
	CornellLVH        bool
	CornellDetail     string
	RVH               bool
	RVHDetail         string
}

// ComputeVoltageCriteria evaluates Sokolow-Lyon LVH, Cornell LVH, and RVH
// against the precordial and limb leads named in each criterion.
func ComputeVoltageCriteria(leads map[domain.LeadName]*domain.LeadSignal, cfg config.MeasurementConfig) VoltageResult {
	_, sV1 := rsExtremesOf(leads, domain.LeadV1)
	rV5, _ := rsExtremesOf(leads, domain.LeadV5)
	rV6, _ := rsExtremesOf(leads, domain.LeadV6)
	rAVL, _ := rsExtremesOf(leads, domain.LeadAVL)
	_, sV3 := rsExtremesOf(leads, domain.LeadV3)
	rV1, _ := rsExtremesOf(leads, domain.LeadV1)

	sokolow := math.Abs(sV1) + math.Max(rV5, rV6)
	sokolowLVH := sokolow >= cfg.SokolowLyonThresholdMV

	cornell := rAVL + math.Abs(sV3)
	cornellLVH := cornell >= cfg.CornellThresholdMV

	rvh := rV1 >= cfg.RVHThresholdMV

	return VoltageResult{
		SokolowLyonLVH:    sokolowLVH,
		SokolowLyonDetail: fmt.Sprintf("|S_V1|+max(R_V5,R_V6)=%.2fmV (threshold %.1fmV)", sokolow, cfg.SokolowLyonThresholdMV),
		CornellLVH:        cornellLVH,
		CornellDetail:     fmt.Sprintf("R_aVL+|S_V3|=%.2fmV (threshold %.1fmV)", cornell, cfg.CornellThresholdMV),
		RVH:               rvh,
		RVHDetail:         fmt.Sprintf("R_V1=%.2fmV (threshold %.1fmV)", rV1, cfg.RVHThresholdMV),
	}
}

func rsExtremesOf(leads map[domain.LeadName]*domain.LeadSignal, lead domain.LeadName) (float64, float64) {
	sig := leads[lead]
	if sig == nil || sig.Failed() {
		return 0, 0
	}
	return rsExtremes(sig)
}
