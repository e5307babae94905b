package application

import (
	"image"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

// gridLayout3x4 is the standard 3-row x 4-column lead assignment.
var gridLayout3x4 = [3][4]domain.LeadName{
	{domain.LeadI, domain.LeadAVR, domain.LeadV1, domain.LeadV4},
	{domain.LeadII, domain.LeadAVL, domain.LeadV2, domain.LeadV5},
	{domain.LeadIII, domain.LeadAVF, domain.LeadV3, domain.LeadV6},
}

// gridLayout6x2 is the alternative 6-row x 2-column lead assignment.
var gridLayout6x2 = [6][2]domain.LeadName{
	{domain.LeadI, domain.LeadV1},
	{domain.LeadII, domain.LeadV2},
	{domain.LeadIII, domain.LeadV3},
	{domain.LeadAVR, domain.LeadV4},
	{domain.LeadAVL, domain.LeadV5},
	{domain.LeadAVF, domain.LeadV6},
}

// SegmentLeadsGrid carves the usable region (after margins) into a fixed
// 3x4 or 6x2 layout.
func SegmentLeadsGrid(width, height int, cfg config.DigitizerConfig, use6x2 bool) []domain.LeadRegion {
	top := int(float64(height) * cfg.TopBottomMarginFraction)
	bottom := height - top
	left := int(float64(width) * cfg.LeftRightMarginFraction)
	right := width - left
	usableW := right - left
	usableH := bottom - top

	var regions []domain.LeadRegion
	if use6x2 {
		rows, cols := 6, 2
		rowH := usableH / rows
		colW := usableW / cols
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				rect := image.Rect(left+c*colW, top+r*rowH, left+(c+1)*colW, top+(r+1)*rowH)
				regions = append(regions, domain.LeadRegion{Lead: gridLayout6x2[r][c], Rect: rect})
			}
		}
		return regions
	}

	rows, cols := 3, 4
	rowH := usableH / rows
	colW := usableW / cols
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rect := image.Rect(left+c*colW, top+r*rowH, left+(c+1)*colW, top+(r+1)*rowH)
			regions = append(regions, domain.LeadRegion{Lead: gridLayout3x4[r][c], Rect: rect})
		}
	}
	return regions
}

// SegmentLeadsAdaptive derives separators from smoothed intensity-projection
// profiles, accepting the layout only when exactly 3/6 row boundaries and
// 4/2 column boundaries survive pruning.
func SegmentLeadsAdaptive(gray [][]float64, width, height int, cfg config.DigitizerConfig) ([]domain.LeadRegion, bool) {
	rowProfile := make([]float64, height)
	for y := 0; y < height; y++ {
		var s float64
		for x := 0; x < width; x++ {
			s += gray[y][x]
		}
		rowProfile[y] = s / float64(width)
	}
	colProfile := make([]float64, width)
	for x := 0; x < width; x++ {
		var s float64
		for y := 0; y < height; y++ {
			s += gray[y][x]
		}
		colProfile[x] = s / float64(height)
	}

	rowSeps := separatorMidpoints(rowProfile, cfg.AdaptiveThresholdStdDevMultiple)
	colSeps := separatorMidpoints(colProfile, cfg.AdaptiveThresholdStdDevMultiple)

	rows := len(rowSeps) + 1
	cols := len(colSeps) + 1
	if rows != 3 && rows != 6 {
		return nil, false
	}
	if cols != 4 && cols != 2 {
		return nil, false
	}

	rowBounds := boundsFromSeparators(rowSeps, height)
	colBounds := boundsFromSeparators(colSeps, width)

	var layout func(r, c int) domain.LeadName
	if rows == 3 && cols == 4 {
		layout = func(r, c int) domain.LeadName { return gridLayout3x4[r][c] }
	} else if rows == 6 && cols == 2 {
		layout = func(r, c int) domain.LeadName { return gridLayout6x2[r][c] }
	} else {
		return nil, false
	}

	var regions []domain.LeadRegion
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rect := image.Rect(colBounds[c][0], rowBounds[r][0], colBounds[c][1], rowBounds[r][1])
			regions = append(regions, domain.LeadRegion{Lead: layout(r, c), Rect: rect})
		}
	}
	return regions, true
}

// separatorMidpoints smooths a 1-D profile, thresholds at mean+k*stddev,
// and returns the midpoint of each run above threshold.
func separatorMidpoints(profile []float64, kStdDev float64) []int {
	smoothed := movingAverage(profile, 5)
	m := mean(smoothed)
	sd := stddev(smoothed)
	threshold := m + kStdDev*sd

	var seps []int
	inRun := false
	runStart := 0
	for i, v := range smoothed {
		above := v > threshold
		if above && !inRun {
			inRun = true
			runStart = i
		}
		if !above && inRun {
			inRun = false
			seps = append(seps, (runStart+i-1)/2)
		}
	}
	if inRun {
		seps = append(seps, (runStart+len(smoothed)-1)/2)
	}
	return seps
}

func boundsFromSeparators(seps []int, length int) [][2]int {
	bounds := make([][2]int, 0, len(seps)+1)
	prev := 0
	for _, s := range seps {
		bounds = append(bounds, [2]int{prev, s})
		prev = s
	}
	bounds = append(bounds, [2]int{prev, length})
	return bounds
}

// DetectRhythmStrip checks whether a full-width rhythm strip sits below the
// detected lead grid.
func DetectRhythmStrip(gray [][]float64, width, height int, gridBottomY int, cfg config.DigitizerConfig) (domain.LeadRegion, bool) {
	if float64(gridBottomY) < float64(height)*cfg.RhythmStripHeightFraction {
		return domain.LeadRegion{}, false
	}
	if gridBottomY >= height {
		return domain.LeadRegion{}, false
	}
	var values []float64
	for y := gridBottomY; y < height; y++ {
		for x := 0; x < width; x++ {
			values = append(values, gray[y][x])
		}
	}
	v := stddev(values)
	variance := v * v
	if variance <= cfg.RhythmStripMinVariance {
		return domain.LeadRegion{}, false
	}
	rect := image.Rect(0, gridBottomY, width, height)
	return domain.LeadRegion{Lead: domain.LeadIIRhythm, Rect: rect}, true
}
