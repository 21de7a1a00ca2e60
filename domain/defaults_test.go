package domain

import (
	"math"
	"testing"
)

// TestDefaultValueConsistency ensures all default values are properly defined
// and maintain expected relationships
func TestDefaultValueConsistency(t *testing.T) {
	t.Run("Fusion weights sum to one", func(t *testing.T) {
		sum := DefaultSemanticWeight + DefaultStructuralWeight + DefaultLexicalWeight + DefaultTokenSequenceWeight
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("fusion weights sum to %.4f, want 1.0", sum)
		}
		if err := DefaultFusionWeights().Validate(); err != nil {
			t.Errorf("default fusion weights are invalid: %v", err)
		}
	})

	t.Run("Risk thresholds are properly ordered", func(t *testing.T) {
		if DefaultMediumRiskThreshold >= DefaultHighRiskThreshold {
			t.Errorf("Medium threshold (%.2f) should be < High threshold (%.2f)",
				DefaultMediumRiskThreshold, DefaultHighRiskThreshold)
		}
		if DefaultHighRiskThreshold >= DefaultVeryHighRiskThreshold {
			t.Errorf("High threshold (%.2f) should be < VeryHigh threshold (%.2f)",
				DefaultHighRiskThreshold, DefaultVeryHighRiskThreshold)
		}
		if err := DefaultRiskThresholds().Validate(); err != nil {
			t.Errorf("default risk thresholds are invalid: %v", err)
		}
	})

	t.Run("Report floor is below the medium tier", func(t *testing.T) {
		if DefaultReportFloor <= 0 || DefaultReportFloor >= DefaultMediumRiskThreshold {
			t.Errorf("report floor %.2f should be in (0, %.2f)", DefaultReportFloor, DefaultMediumRiskThreshold)
		}
	})

	t.Run("LSH bands cover the signature", func(t *testing.T) {
		if DefaultLSHBands*DefaultLSHRows != DefaultMinHashFunctions {
			t.Errorf("bands (%d) * rows (%d) should equal hash functions (%d)",
				DefaultLSHBands, DefaultLSHRows, DefaultMinHashFunctions)
		}
	})

	t.Run("Limits are positive", func(t *testing.T) {
		values := []struct {
			name  string
			value int
		}{
			{"TopK", DefaultTopK},
			{"ExcerptLength", DefaultExcerptLength},
			{"EvidenceMinLineLength", DefaultEvidenceMinLineLength},
			{"EmbeddingDimension", DefaultEmbeddingDimension},
			{"MaxContentBytes", DefaultMaxContentBytes},
			{"DiffLines", DefaultDiffLines},
		}
		for _, v := range values {
			if v.value <= 0 {
				t.Errorf("%s default should be positive, got %d", v.name, v.value)
			}
		}
		if DefaultEmbeddingTimeout <= 0 {
			t.Errorf("embedding timeout should be positive, got %v", DefaultEmbeddingTimeout)
		}
	})
}

// TestExpectedDefaultValues pins the documented defaults
func TestExpectedDefaultValues(t *testing.T) {
	floats := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"DefaultSemanticWeight", DefaultSemanticWeight, 0.4},
		{"DefaultStructuralWeight", DefaultStructuralWeight, 0.3},
		{"DefaultLexicalWeight", DefaultLexicalWeight, 0.2},
		{"DefaultTokenSequenceWeight", DefaultTokenSequenceWeight, 0.1},
		{"DefaultMediumRiskThreshold", DefaultMediumRiskThreshold, 0.5},
		{"DefaultHighRiskThreshold", DefaultHighRiskThreshold, 0.7},
		{"DefaultVeryHighRiskThreshold", DefaultVeryHighRiskThreshold, 0.85},
		{"DefaultReportFloor", DefaultReportFloor, 0.3},
	}
	for _, tt := range floats {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s = %v, expected %v", tt.name, tt.actual, tt.expected)
			}
		})
	}

	if DefaultEvidenceMinLineLength != 10 {
		t.Errorf("DefaultEvidenceMinLineLength = %d, expected 10", DefaultEvidenceMinLineLength)
	}
}
