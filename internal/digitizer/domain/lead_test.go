package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampledLead() *LeadSignal {
	return &LeadSignal{
		Lead:        LeadII,
		TimeMs:      []float64{0, 2, 4, 6, 8},
		AmplitudeMV: []float64{0.0, 0.1, 0.2, 0.3, 0.4},
		TargetHz:    500,
		Confidence:  0.9,
	}
}

func TestLeadSignalFailed_TrueOnlyWithReason(t *testing.T) {
	assert.False(t, (&LeadSignal{}).Failed())
	assert.True(t, (&LeadSignal{FailureReason: "x"}).Failed())
	assert.False(t, (*LeadSignal)(nil).Failed())
}

func TestNewFailedLeadSignal_IsZeroConfidenceSentinel(t *testing.T) {
	s := NewFailedLeadSignal(LeadV1, "waveform tracing failed")
	assert.Equal(t, LeadV1, s.Lead)
	assert.True(t, s.Failed())
	assert.Equal(t, 0.0, s.Confidence)
	assert.Len(t, s.TimeMs, 1)
}

func TestLeadSignalDuration_SpansFirstToLastSample(t *testing.T) {
	s := sampledLead()
	assert.Equal(t, 8.0, s.Duration())
	assert.Equal(t, 0.0, (&LeadSignal{}).Duration())
}

func TestLeadSignalSampleAt_NearestSampleWithinRange(t *testing.T) {
	s := sampledLead()
	v, ok := s.SampleAt(4)
	assert.True(t, ok)
	assert.Equal(t, 0.2, v)

	_, ok = s.SampleAt(100)
	assert.False(t, ok)
}

func TestLeadSignalIndexAt_ClampsToBounds(t *testing.T) {
	s := sampledLead()
	assert.Equal(t, 0, s.IndexAt(-5))
	assert.Equal(t, 4, s.IndexAt(100))
	assert.Equal(t, 2, s.IndexAt(4))
}

func TestLeadSignalWindow_FiltersByTimeRange(t *testing.T) {
	s := sampledLead()
	w := s.Window(2, 6)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, w)
}

func TestLeadSignalWindowIndices_ReturnsHalfOpenRange(t *testing.T) {
	s := sampledLead()
	lo, hi := s.WindowIndices(2, 6)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 4, hi)
}

func TestLeadSignalWindowIndices_RangeBeforeSignalCollapsesToEmpty(t *testing.T) {
	s := sampledLead()
	lo, hi := s.WindowIndices(-100, -50)
	assert.Equal(t, lo, hi)
}

func TestStandardLeadNames_HasTwelveEntries(t *testing.T) {
	assert.Len(t, StandardLeadNames, 12)
	assert.Contains(t, StandardLeadNames, LeadII)
	assert.NotContains(t, StandardLeadNames, LeadIIRhythm)
}
