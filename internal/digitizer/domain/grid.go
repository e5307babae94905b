package domain

// GridModel describes the detected ECG graph-paper geometry. Immutable once
// produced.
type GridModel struct {
	SmallSquarePx       float64 `json:"small_square_px"`
	LargeSquarePx       float64 `json:"large_square_px"`
	PaperSpeedMMPerSec  float64 `json:"paper_speed_mm_per_sec"`
	AmplitudeScaleMMPerMV float64 `json:"amplitude_scale_mm_per_mv"`
	ImageWidth          int     `json:"image_width"`
	ImageHeight         int     `json:"image_height"`
	CalibrationMV       float64 `json:"calibration_mv,omitempty"`
	CalibrationDetected bool    `json:"calibration_detected"`
}

// DefaultGridModel returns the fallback grid used when grid characterization
// fails entirely.
func DefaultGridModel(width, height int, fallbackPitchPx, paperSpeed, amplitudeScale float64) *GridModel {
	return &GridModel{
		SmallSquarePx:         fallbackPitchPx,
		LargeSquarePx:         fallbackPitchPx * 5,
		PaperSpeedMMPerSec:    paperSpeed,
		AmplitudeScaleMMPerMV: amplitudeScale,
		ImageWidth:            width,
		ImageHeight:           height,
	}
}

// Valid reports the invariant large = 5*small.
func (g *GridModel) Valid() bool {
	if g == nil || g.SmallSquarePx <= 0 {
		return false
	}
	const epsilon = 1e-9
	diff := g.LargeSquarePx - 5*g.SmallSquarePx
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
