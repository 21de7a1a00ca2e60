package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/plagscan/domain"
)

func TestControlFlowSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		c1, c2   domain.ControlFlowCounts
		expected float64
	}{
		{
			name:     "all zero",
			expected: 1.0,
		},
		{
			name:     "identical",
			c1:       domain.ControlFlowCounts{If: 2, Loop: 1, Try: 1},
			c2:       domain.ControlFlowCounts{If: 2, Loop: 1, Try: 1},
			expected: 1.0,
		},
		{
			name: "one side zero for a counter",
			c1:   domain.ControlFlowCounts{If: 1},
			c2:   domain.ControlFlowCounts{If: 1, Loop: 2},
			// if 1, loop 0, try 1
			expected: 2.0 / 3.0,
		},
		{
			name: "partial counts",
			c1:   domain.ControlFlowCounts{If: 2, Loop: 4},
			c2:   domain.ControlFlowCounts{If: 4, Loop: 4},
			// if 0.5, loop 1, try 1
			expected: 2.5 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ControlFlowSimilarity(tt.c1, tt.c2), 1e-12)
			assert.Equal(t, ControlFlowSimilarity(tt.c1, tt.c2), ControlFlowSimilarity(tt.c2, tt.c1))
		})
	}
}

func TestNameSetSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, NameSetSimilarity(nil, nil))
	assert.Equal(t, 0.0, NameSetSimilarity([]string{"f"}, nil))
	assert.InDelta(t, 1.0/3.0, NameSetSimilarity([]string{"f", "g"}, []string{"g", "h"}), 1e-12)
}

func TestStructuralSimilarity_ComputeSimilarity(t *testing.T) {
	s := NewStructuralSimilarityAnalyzer()

	base := &domain.StructuralFeatureSet{
		Functions:   []string{"add", "sub"},
		Variables:   []string{"total"},
		ControlFlow: domain.ControlFlowCounts{If: 1, Loop: 1},
	}

	t.Run("identical sets score one", func(t *testing.T) {
		assert.Equal(t, 1.0, s.ComputeSimilarity(base, base))
	})

	t.Run("empty sets score one", func(t *testing.T) {
		empty := &domain.StructuralFeatureSet{}
		assert.Equal(t, 1.0, s.ComputeSimilarity(empty, empty))
	})

	t.Run("variables carry half weight", func(t *testing.T) {
		renamed := &domain.StructuralFeatureSet{
			Functions:   []string{"add", "sub"},
			Variables:   []string{"sum"},
			ControlFlow: domain.ControlFlowCounts{If: 1, Loop: 1},
		}
		// (1*1 + 1*1 + 0.5*0) / 2.5
		assert.InDelta(t, 0.8, s.ComputeSimilarity(base, renamed), 1e-12)

		noFunctions := &domain.StructuralFeatureSet{
			Variables:   []string{"total"},
			ControlFlow: domain.ControlFlowCounts{If: 1, Loop: 1},
		}
		// (1*0 + 1*1 + 0.5*1) / 2.5
		assert.InDelta(t, 0.6, s.ComputeSimilarity(base, noFunctions), 1e-12)
	})

	t.Run("symmetric", func(t *testing.T) {
		other := &domain.StructuralFeatureSet{
			Functions:   []string{"add"},
			Variables:   []string{"total", "i"},
			ControlFlow: domain.ControlFlowCounts{If: 3, Try: 1},
		}
		assert.Equal(t, s.ComputeSimilarity(base, other), s.ComputeSimilarity(other, base))
	})

	t.Run("nil feature set", func(t *testing.T) {
		assert.Equal(t, 0.0, s.ComputeSimilarity(base, nil))
	})
}

func TestStructuralSimilarity_CustomWeights(t *testing.T) {
	s := NewStructuralSimilarityAnalyzerWithWeights(StructuralWeights{Functions: 1})

	f1 := &domain.StructuralFeatureSet{Functions: []string{"a"}, Variables: []string{"x"}}
	f2 := &domain.StructuralFeatureSet{Functions: []string{"a"}, Variables: []string{"y"}}

	assert.Equal(t, 1.0, s.ComputeSimilarity(f1, f2))
}
