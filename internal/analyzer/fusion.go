package analyzer

import (
	"math"

	"github.com/ludo-technologies/plagscan/domain"
)

// ScoreFuser combines per-signal scores into one overall score and risk tier
type ScoreFuser struct {
	weights    domain.FusionWeights
	thresholds domain.RiskThresholds
}

// NewScoreFuser creates a fuser with default weights and thresholds
func NewScoreFuser() *ScoreFuser {
	return &ScoreFuser{
		weights:    domain.DefaultFusionWeights(),
		thresholds: domain.DefaultRiskThresholds(),
	}
}

// NewScoreFuserWithConfig creates a fuser after validating weights and thresholds
func NewScoreFuserWithConfig(weights domain.FusionWeights, thresholds domain.RiskThresholds) (*ScoreFuser, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &ScoreFuser{weights: weights, thresholds: thresholds}, nil
}

// Weights returns the fusion weights
func (f *ScoreFuser) Weights() domain.FusionWeights {
	return f.weights
}

// Thresholds returns the tier boundaries
func (f *ScoreFuser) Thresholds() domain.RiskThresholds {
	return f.thresholds
}

// Fuse computes the weighted score of a breakdown, clamped to [0,1], and its tier.
// Dividing by the weight sum keeps all-ones breakdowns at exactly 1.0.
func (f *ScoreFuser) Fuse(b domain.SimilarityBreakdown) (float64, domain.RiskLevel) {
	w := f.weights
	total := w.Semantic + w.Structural + w.Lexical + w.TokenSequence
	if total <= 0 {
		return 0.0, domain.RiskLow
	}

	sum := w.Semantic*b.Semantic +
		w.Structural*b.Structural +
		w.Lexical*b.Lexical +
		w.TokenSequence*b.TokenSequence

	score := math.Max(0.0, math.Min(1.0, sum/total))
	return score, f.thresholds.Classify(score)
}

// Classify maps a score onto a risk tier
func (f *ScoreFuser) Classify(score float64) domain.RiskLevel {
	return f.thresholds.Classify(score)
}
