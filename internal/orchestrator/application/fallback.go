package application

import (
	archapp "ecgdigitizer/internal/archetype/application"
	archdomain "ecgdigitizer/internal/archetype/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// FallbackContract builds the catastrophic-failure contract:
// "stitched" acquisition metadata with no grid or per-lead data,
// zero-valued Measurements with confidence 0, the
// sentinel primary label, archetype "normal_sinus", all parameters
// underdetermined, and an empty activation sequence. Never null.
func FallbackContract(sessionID, reason string) archdomain.VisualizationContract {
	zero := mdomain.Measurements{
		Rate:              mdomain.ZeroScalar("bpm", "rr_interval_mean"),
		PR:                mdomain.ZeroScalar("ms", "pr_baseline_deviation_backsearch"),
		QRS:               mdomain.ZeroScalar("ms", "qrs_onset_offset_derivative_threshold"),
		QT:                mdomain.ZeroScalar("ms", "qt_tangent_method"),
		QTcBazett:         mdomain.ZeroScalar("ms", "qtc_bazett"),
		QTcFridericia:     mdomain.ZeroScalar("ms", "qtc_fridericia"),
		Axis:              mdomain.ZeroScalar("deg", "axis_frontal_plane_net_qrs"),
		AxisQuadrant:      mdomain.AxisNormal,
		RhythmRegularity:  mdomain.RhythmIrregularlyIrregular,
		RhythmDescription: "no usable leads",
	}

	normalSinus := archapp.ArchetypeByID("normal_sinus")

	return archdomain.VisualizationContract{
		SessionID: sessionID,
		ECGMetadata: archdomain.ECGMetadata{
			AcquisitionType: "stitched",
		},
		Measurements: zero,
		Interpretation: archdomain.Interpretation{
			PrimaryDiagnosis: "Interpretation unavailable — pipeline degraded",
		},
		ActivationSequence:  []archdomain.ActivationStep{},
		ConductionSystem:    archdomain.ConductionSystemState{InternodalTractsIntact: true, HisBundleIntact: true},
		Repolarization:      archdomain.RepolarizationSummary{STDeviationByLead: map[string]float64{}, RepolarizationGradientMap: map[string]float64{}},
		MechanicalArchetype: normalSinus.ID,
		Uncertainty: archdomain.Uncertainty{
			UnderdeterminedParameters: []string{
				"rate (confidence 0.00)", "pr (confidence 0.00)", "qrs (confidence 0.00)",
				"qt (confidence 0.00)", "qtc_bazett (confidence 0.00)", "qtc_fridericia (confidence 0.00)",
				"axis (confidence 0.00)",
				"the internal activation sequence is reconstructed, not measured",
				"the model averages millions of myocytes into one effective dipole; no single-cell behavior is represented",
				"injury-current regions are inferred from lead territory conventions, not from a patient-specific coronary anatomy",
			},
		},
		DisplayContract: archdomain.DisplayContract{
			ModeledAssumption: []string{
				"activation sequence is a normal-sinus archetype reconstruction used as a placeholder, not a direct measurement",
				"this result reflects a degraded pipeline: " + reason,
			},
		},
		PipelineDegraded: true,
		PipelineWarnings: []string{reason},
	}
}
