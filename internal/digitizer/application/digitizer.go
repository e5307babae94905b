// Package application implements the digitizer pipeline: preprocessing,
// grid characterization, lead segmentation, grid removal, waveform tracing,
// and calibrated resampling.
package application

import (
	"fmt"
	"image"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	"ecgdigitizer/internal/logging"
)

// Digitizer runs the full (Bitmap, SessionId) -> (LeadSignals, GridModel,
// overlay, warnings) contract. It fails soft: it
// always returns a GridModel and a LeadSignal for every expected lead,
// marking individual leads as failed rather than aborting.
type Digitizer struct {
	cfg    *config.PipelineConfig
	logger logging.Logger
}

// NewDigitizer constructs a Digitizer bound to the given configuration and
// logger (a nil logger is tolerated throughout the pipeline).
func NewDigitizer(cfg *config.PipelineConfig, logger logging.Logger) *Digitizer {
	if cfg == nil {
		cfg = config.DefaultPipelineConfig()
	}
	if logger == nil {
		logger = logging.NewStructuredLogger(logging.LevelInfo)
	}
	return &Digitizer{cfg: cfg, logger: logger}
}

// Run executes the digitizer pipeline end to end.
func (d *Digitizer) Run(bmp *domain.Bitmap, sessionID string) *domain.Result {
	result := &domain.Result{}

	if bmp.Empty() {
		result.Grid = domain.DefaultGridModel(0, 0, d.cfg.Digitizer.FallbackPitchPx, d.cfg.Digitizer.PaperSpeedMMPerSec, d.cfg.Digitizer.AmplitudeScaleMMPerMV)
		result.Warnings = append(result.Warnings, "empty bitmap supplied: no leads digitized")
		for _, name := range domain.StandardLeadNames {
			result.Leads = append(result.Leads, domain.NewFailedLeadSignal(name, "no input bitmap"))
		}
		result.AcquisitionType = domain.AcquisitionStitched
		result.ReadyForInterpretation = false
		return result
	}

	corrected, gray, warnings := Preprocess(bmp, d.cfg.Digitizer.MinContourAreaFraction)
	result.Warnings = append(result.Warnings, warnings...)

	grid, gridWarnings := CharacterizeGrid(gray, corrected.Width, corrected.Height, d.cfg.Digitizer, d.logger)
	result.Warnings = append(result.Warnings, gridWarnings...)
	result.Grid = grid

	calMV, calDetected, calWarnings := DetectCalibrationPulse(gray, corrected.Width, corrected.Height, grid, d.cfg.Digitizer)
	result.Warnings = append(result.Warnings, calWarnings...)
	if calDetected {
		grid.CalibrationMV = calMV
		grid.CalibrationDetected = true
	} else {
		result.Warnings = append(result.Warnings, "calibration pulse not detected: assuming 10 mm/mV")
	}

	regions, ok := SegmentLeadsAdaptive(gray, corrected.Width, corrected.Height, d.cfg.Digitizer)
	if !ok {
		regions = SegmentLeadsGrid(corrected.Width, corrected.Height, d.cfg.Digitizer, false)
	}
	gridBottom := 0
	for _, r := range regions {
		if r.Rect.Max.Y > gridBottom {
			gridBottom = r.Rect.Max.Y
		}
	}
	if rhythmRegion, hasRhythm := DetectRhythmStrip(gray, corrected.Width, corrected.Height, gridBottom, d.cfg.Digitizer); hasRhythm {
		regions = append(regions, rhythmRegion)
	}

	for _, region := range regions {
		signal := d.digitizeLead(corrected, gray, region, grid)
		result.Leads = append(result.Leads, signal)
	}

	usable := result.UsableLeadCount(d.cfg.Digitizer.MinUsableLeadConfidence)
	if usable < d.cfg.Digitizer.MinUsableLeadCountWarn {
		result.Warnings = append(result.Warnings, fmt.Sprintf("only %d leads reached usable confidence (warn threshold %d)", usable, d.cfg.Digitizer.MinUsableLeadCountWarn))
	}

	result.ReadyForInterpretation = false
	for _, l := range result.Leads {
		if !l.Failed() || l.Confidence > d.cfg.Digitizer.MinUsableLeadConfidence {
			result.ReadyForInterpretation = true
			break
		}
	}

	result.AcquisitionType = DetectAcquisitionType(result.Leads, d.cfg.Digitizer)
	result.Overlay = BuildOverlay(corrected, grid, regions, calDetected)

	if d.logger != nil {
		d.logger.Info("digitizer run complete",
			"session_id", sessionID,
			"lead_count", len(result.Leads),
			"usable_leads", usable,
			"ready", result.ReadyForInterpretation)
	}

	return result
}

func (d *Digitizer) digitizeLead(corrected *domain.Bitmap, gray [][]float64, region domain.LeadRegion, grid *domain.GridModel) *domain.LeadSignal {
	cropGray := cropGrayRegion(gray, region.Rect)
	cropBitmap := corrected.Crop(region.Rect)

	cleaned, _ := RemoveGrid(cropBitmap, cropGray, grid, d.cfg.Digitizer, d.logger)

	trace, ok := ExtractCenterline(cleaned, d.cfg.Digitizer)
	if !ok {
		if d.logger != nil {
			d.logger.Warn("waveform tracing failed", "lead", string(region.Lead))
		}
		return domain.NewFailedLeadSignal(region.Lead, "waveform tracing failed: insufficient traced columns")
	}

	return CalibrateAndResample(region.Lead, trace, grid, d.cfg.Digitizer)
}

func cropGrayRegion(gray [][]float64, rect image.Rectangle) [][]float64 {
	h := rect.Max.Y - rect.Min.Y
	w := rect.Max.X - rect.Min.X
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		srcY := rect.Min.Y + y
		if srcY < 0 || srcY >= len(gray) {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := rect.Min.X + x
			if srcX < 0 || srcX >= len(gray[srcY]) {
				continue
			}
			out[y][x] = gray[srcY][srcX]
		}
	}
	return out
}
