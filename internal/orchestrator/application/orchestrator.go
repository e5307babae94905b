// Package application implements the thin orchestrator: a sequential
// composer over the four compute stages with per-stage timing and
// failure isolation.
package application

import (
	"fmt"
	"time"

	archapp "ecgdigitizer/internal/archetype/application"
	archdomain "ecgdigitizer/internal/archetype/domain"
	clsapp "ecgdigitizer/internal/classifier/application"
	cdomain "ecgdigitizer/internal/classifier/domain"
	"ecgdigitizer/internal/config"
	digapp "ecgdigitizer/internal/digitizer/application"
	digdomain "ecgdigitizer/internal/digitizer/domain"
	"ecgdigitizer/internal/logging"
	measapp "ecgdigitizer/internal/measurement/application"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// StageTiming records one stage's wall-clock duration.
type StageTiming struct {
	Stage      string  `json:"stage"`
	DurationMs float64 `json:"duration_ms"`
}

// Orchestrator runs Digitizer -> MeasurementEngine -> Classifier -> Mapper
// sequentially on a single worker per request.
type Orchestrator struct {
	cfg        *config.PipelineConfig
	digitizer  *digapp.Digitizer
	engine     *measapp.Engine
	classifier *clsapp.Classifier
	contracts  *archapp.ContractBuilder
	logger     logging.Logger
}

// NewOrchestrator wires the four stages against a single configuration and
// logger.
func NewOrchestrator(cfg *config.PipelineConfig, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultPipelineConfig()
	}
	if logger == nil {
		logger = logging.NewStructuredLogger(logging.LevelInfo)
	}
	return &Orchestrator{
		cfg:        cfg,
		digitizer:  digapp.NewDigitizer(cfg, logger),
		engine:     measapp.NewEngine(cfg.Measurement),
		classifier: clsapp.NewClassifier(cfg.Classifier, logger),
		contracts:  archapp.NewContractBuilder(cfg.Classifier),
		logger:     logger,
	}
}

// RunResult bundles the final contract with the per-stage timing trail.
type RunResult struct {
	Contract archdomain.VisualizationContract
	Timings  []StageTiming
}

// Run executes the full pipeline for one request.
func (o *Orchestrator) Run(bmp *digdomain.Bitmap, sessionID string) RunResult {
	timings := make([]StageTiming, 0, 4)
	errors := make(map[string]string)
	degraded := false
	warnings := []string{}

	digResult, dt := o.runDigitizer(bmp, sessionID)
	timings = append(timings, StageTiming{Stage: "digitizer", DurationMs: dt})
	if digResult == nil {
		return RunResult{Contract: FallbackContract(sessionID, "digitizer stage failed catastrophically"), Timings: timings}
	}
	warnings = append(warnings, digResult.Warnings...)

	if !digResult.ReadyForInterpretation {
		warnings = append(warnings, "no usable leads: downstream stages skipped")
		return RunResult{Contract: FallbackContract(sessionID, "no usable leads recovered from input"), Timings: timings}
	}

	measurements, mt, measErr := o.runMeasurement(digResult.Leads)
	timings = append(timings, StageTiming{Stage: "measurement", DurationMs: mt})
	if measErr != nil {
		errors["measurement"] = measErr.Error()
		degraded = true
		warnings = append(warnings, fmt.Sprintf("measurement engine failed: %s", measErr.Error()))
	}

	classification, ct := o.runClassifier(&measurements)
	timings = append(timings, StageTiming{Stage: "classifier", DurationMs: ct})

	start := time.Now()
	contract := o.contracts.Build(sessionID, digResult.Leads, digResult.Grid, digResult.AcquisitionType, measurements, classification, degraded, warnings)
	timings = append(timings, StageTiming{Stage: "mapper", DurationMs: elapsedMs(start)})

	if len(errors) > 0 {
		contract.PipelineDegraded = true
	}

	return RunResult{Contract: contract, Timings: timings}
}

func (o *Orchestrator) runDigitizer(bmp *digdomain.Bitmap, sessionID string) (result *digdomain.Result, durationMs float64) {
	start := time.Now()
	defer func() {
		durationMs = elapsedMs(start)
		if r := recover(); r != nil {
			if o.logger != nil {
				o.logger.Error("digitizer stage panicked", fmt.Errorf("%v", r), "session_id", sessionID)
			}
			result = nil
		}
	}()
	return o.digitizer.Run(bmp, sessionID), 0
}

func (o *Orchestrator) runMeasurement(leads []*digdomain.LeadSignal) (measurements mdomain.Measurements, durationMs float64, err error) {
	start := time.Now()
	defer func() {
		durationMs = elapsedMs(start)
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in measurement engine: %v", r)
		}
	}()
	measurements = o.engine.Run(leads)
	return measurements, 0, nil
}

func (o *Orchestrator) runClassifier(m *mdomain.Measurements) (classification cdomain.Classification, durationMs float64) {
	start := time.Now()
	defer func() {
		durationMs = elapsedMs(start)
		if r := recover(); r != nil {
			if o.logger != nil {
				o.logger.Error("classifier stage panicked", fmt.Errorf("%v", r))
			}
			classification = cdomain.Classification{PrimaryDiagnosis: "Interpretation unavailable — pipeline degraded"}
		}
	}()
	return o.classifier.Run(m), 0
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
