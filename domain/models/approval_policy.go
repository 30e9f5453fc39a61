package models

// Default confidence thresholds. Confidence is 1 - euclideanDistance/1.2, so the
// conventional 0.6 match distance lands exactly on the review threshold.
const (
	DefaultAutoApproveThreshold = 0.65 // distance < 0.42
	DefaultAdminReviewThreshold = 0.50 // distance < 0.60

	confidenceDistanceScale = 1.2
)

type Decision string

const (
	DecisionReject   Decision = "reject"
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
)

// Thresholds are the branch approval bars for a recognition confidence score.
type Thresholds struct {
	AutoApprove float64
	AdminReview float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoApprove: DefaultAutoApproveThreshold,
		AdminReview: DefaultAdminReviewThreshold,
	}
}

// Classify maps a clock-in confidence score onto a decision.
func (t Thresholds) Classify(score float64) Decision {
	switch {
	case score < t.AdminReview:
		return DecisionReject
	case score < t.AutoApprove:
		return DecisionPending
	default:
		return DecisionApproved
	}
}

// ClassifyClockOut only applies the auto-approve bar: the subject is already inside an
// approved shift, so a weak match is held for review instead of rejected.
func (t Thresholds) ClassifyClockOut(score float64) Decision {
	if score >= t.AutoApprove {
		return DecisionApproved
	}
	return DecisionPending
}

func (d Decision) ClockInStatus() ShiftStatus {
	if d == DecisionApproved {
		return ShiftStatusApprovedIn
	}
	return ShiftStatusPendingIn
}

func (d Decision) ClockOutStatus() ShiftStatus {
	if d == DecisionApproved {
		return ShiftStatusApprovedOut
	}
	return ShiftStatusPendingOut
}

// ConfidenceFromDistance converts a face descriptor distance into the 0..1 score
// the clock operations expect.
func ConfidenceFromDistance(distance float64) float64 {
	c := 1 - distance/confidenceDistanceScale
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
