package analyzer

import (
	"math"

	"github.com/ludo-technologies/plagscan/domain"
)

// StructuralWeights are the relative influences of the structural sub-comparisons
type StructuralWeights struct {
	Functions   float64
	ControlFlow float64
	Variables   float64
}

// DefaultStructuralWeights returns the default sub-comparison weights
func DefaultStructuralWeights() StructuralWeights {
	return StructuralWeights{
		Functions:   domain.DefaultFunctionWeight,
		ControlFlow: domain.DefaultControlFlowWeight,
		Variables:   domain.DefaultVariableWeight,
	}
}

// StructuralSimilarityAnalyzer compares two structural feature sets
type StructuralSimilarityAnalyzer struct {
	weights StructuralWeights
}

// NewStructuralSimilarityAnalyzer creates a structural analyzer with default weights
func NewStructuralSimilarityAnalyzer() *StructuralSimilarityAnalyzer {
	return &StructuralSimilarityAnalyzer{weights: DefaultStructuralWeights()}
}

// NewStructuralSimilarityAnalyzerWithWeights creates a structural analyzer with custom weights
func NewStructuralSimilarityAnalyzerWithWeights(weights StructuralWeights) *StructuralSimilarityAnalyzer {
	return &StructuralSimilarityAnalyzer{weights: weights}
}

// ComputeSimilarity returns the weighted mean of the function-name, control-flow
// and variable-name sub-comparisons. Identical feature sets score exactly 1.0.
func (s *StructuralSimilarityAnalyzer) ComputeSimilarity(f1, f2 *domain.StructuralFeatureSet) float64 {
	if f1 == nil || f2 == nil {
		return 0.0
	}

	functionSim := NameSetSimilarity(f1.Functions, f2.Functions)
	controlSim := ControlFlowSimilarity(f1.ControlFlow, f2.ControlFlow)
	variableSim := NameSetSimilarity(f1.Variables, f2.Variables)

	totalWeight := s.weights.Functions + s.weights.ControlFlow + s.weights.Variables
	if totalWeight <= 0 {
		return 0.0
	}

	weighted := s.weights.Functions*functionSim +
		s.weights.ControlFlow*controlSim +
		s.weights.Variables*variableSim

	return math.Max(0.0, math.Min(1.0, weighted/totalWeight))
}

// GetName returns the name of this analyzer
func (s *StructuralSimilarityAnalyzer) GetName() string {
	return "structural"
}

// NameSetSimilarity is the Jaccard similarity of two name lists treated as sets
func NameSetSimilarity(names1, names2 []string) float64 {
	set1 := make(map[string]struct{}, len(names1))
	for _, n := range names1 {
		set1[n] = struct{}{}
	}
	set2 := make(map[string]struct{}, len(names2))
	for _, n := range names2 {
		set2[n] = struct{}{}
	}
	return jaccard(set1, set2)
}

// ControlFlowSimilarity averages the per-counter similarity over all counters
func ControlFlowSimilarity(c1, c2 domain.ControlFlowCounts) float64 {
	m1, m2 := c1.Map(), c2.Map()

	union := make(domain.NameSet, len(m1))
	for k := range m1 {
		union.Add(k)
	}
	for k := range m2 {
		union.Add(k)
	}
	if len(union) == 0 {
		return 1.0
	}

	// Fixed key order keeps the float sum identical for (a,b) and (b,a)
	keys := union.Sorted()
	total := 0.0
	for _, k := range keys {
		total += computeCountSimilarity(m1[k], m2[k])
	}
	return total / float64(len(keys))
}

// computeCountSimilarity is 1 - |a-b|/max(a,b); both zero gives 1, one zero gives 0
func computeCountSimilarity(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1.0
	}
	if a == 0 || b == 0 {
		return 0.0
	}
	maxVal := math.Max(float64(a), float64(b))
	return 1.0 - math.Abs(float64(a-b))/maxVal
}
