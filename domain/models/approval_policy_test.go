package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholds_Classify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name  string
		score float64
		want  Decision
	}{
		{"well below review", 0.10, DecisionReject},
		{"just below review", 0.4999, DecisionReject},
		{"exactly review", 0.50, DecisionPending},
		{"between bars", 0.60, DecisionPending},
		{"just below auto", 0.6499, DecisionPending},
		{"exactly auto", 0.65, DecisionApproved},
		{"perfect", 1.0, DecisionApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Classify(tt.score))
		})
	}
}

func TestThresholds_ClassifyClockOutNeverRejects(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, DecisionPending, th.ClassifyClockOut(0.0))
	assert.Equal(t, DecisionPending, th.ClassifyClockOut(0.64))
	assert.Equal(t, DecisionApproved, th.ClassifyClockOut(0.65))
}

func TestThresholds_CustomBars(t *testing.T) {
	th := Thresholds{AutoApprove: 0.9, AdminReview: 0.7}

	assert.Equal(t, DecisionReject, th.Classify(0.69))
	assert.Equal(t, DecisionPending, th.Classify(0.85))
	assert.Equal(t, DecisionApproved, th.Classify(0.9))
}

func TestDecision_Statuses(t *testing.T) {
	assert.Equal(t, ShiftStatusApprovedIn, DecisionApproved.ClockInStatus())
	assert.Equal(t, ShiftStatusPendingIn, DecisionPending.ClockInStatus())
	assert.Equal(t, ShiftStatusApprovedOut, DecisionApproved.ClockOutStatus())
	assert.Equal(t, ShiftStatusPendingOut, DecisionPending.ClockOutStatus())
}

func TestConfidenceFromDistance(t *testing.T) {
	assert.InDelta(t, 1.0, ConfidenceFromDistance(0), 1e-9)
	assert.InDelta(t, 0.5, ConfidenceFromDistance(0.6), 1e-9)
	assert.InDelta(t, 0.65, ConfidenceFromDistance(0.42), 1e-9)
	assert.Equal(t, 0.0, ConfidenceFromDistance(2.0))
	assert.Equal(t, 1.0, ConfidenceFromDistance(-0.1))
}
