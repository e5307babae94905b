package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultLeadByName_FindsMatchingLead(t *testing.T) {
	r := &Result{Leads: []*LeadSignal{
		{Lead: LeadI, Confidence: 0.8},
		{Lead: LeadII, Confidence: 0.9},
	}}

	l := r.LeadByName(LeadII)
	assert.NotNil(t, l)
	assert.Equal(t, 0.9, l.Confidence)
	assert.Nil(t, r.LeadByName(LeadV6))
}

func TestResultLeadByName_NilResultReturnsNil(t *testing.T) {
	assert.Nil(t, (*Result)(nil).LeadByName(LeadI))
}

func TestResultUsableLeadCount_CountsAboveFloor(t *testing.T) {
	r := &Result{Leads: []*LeadSignal{
		{Lead: LeadI, Confidence: 0.8},
		{Lead: LeadII, Confidence: 0.02},
		{Lead: LeadIII, Confidence: 0.05},
	}}

	assert.Equal(t, 1, r.UsableLeadCount(0.05))
}

func TestResultUsableLeadCount_NilResultIsZero(t *testing.T) {
	assert.Equal(t, 0, (*Result)(nil).UsableLeadCount(0.05))
}
