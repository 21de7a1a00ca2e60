package analyzer

import (
	"context"
	"errors"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/plagscan/domain"
)

// bagEmbedder hashes tokens into a count vector
type bagEmbedder struct {
	dim int
}

func (b *bagEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, b.dim)
		for _, tok := range Tokenize(text) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(tok))
			v[h.Sum32()%uint32(b.dim)]++
		}
		out[i] = v
	}
	return out, nil
}

func (b *bagEmbedder) Dimension() int { return b.dim }

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("service unavailable")
}

func (failingEmbedder) Dimension() int { return 8 }

func newTestEngine(t *testing.T, embedder domain.Embedder) *Engine {
	t.Helper()
	e, err := NewEngine(embedder, DefaultEngineConfig())
	require.NoError(t, err)
	return e
}

func submission(code string, lang domain.Language) *domain.CodeSubmission {
	return &domain.CodeSubmission{Content: code, Language: lang}
}

const bubbleSort = `def bubble_sort(arr):
    n = len(arr)
    for i in range(n):
        for j in range(0, n - i - 1):
            if arr[j] > arr[j + 1]:
                arr[j], arr[j + 1] = arr[j + 1], arr[j]
    return arr
`

const selectionSort = `def selection_sort(values):
    # pick the minimum each round
    for i in range(len(values)):
        smallest = i
        for k in range(i + 1, len(values)):
            if values[k] < values[smallest]:
                smallest = k
        values[i], values[smallest] = values[smallest], values[i]
    return values
`

func TestEngine_IdenticalSubmissions(t *testing.T) {
	e := newTestEngine(t, &bagEmbedder{dim: 64})

	inputs := []struct {
		code string
		lang domain.Language
	}{
		{bubbleSort, domain.LanguagePython},
		{"function f(x) { return x * 2; }", domain.LanguageJavaScript},
		{"func greet() { print(\"hi\") }", domain.LanguageSwift},
		{"x", domain.LanguageUnknown},
	}

	for _, in := range inputs {
		result := e.Compare(context.Background(), submission(in.code, in.lang), submission(in.code, in.lang), CompareOptions{})

		assert.Equal(t, 1.0, result.Breakdown.Lexical)
		assert.Equal(t, 1.0, result.Breakdown.Structural)
		assert.Equal(t, 1.0, result.Breakdown.Semantic)
		assert.Equal(t, 1.0, result.Breakdown.TokenSequence)
		assert.Equal(t, 1.0, result.OverallScore)
		assert.Equal(t, domain.RiskVeryHigh, result.RiskLevel)
		assert.False(t, result.Degraded)
	}
}

func TestEngine_Symmetric(t *testing.T) {
	e := newTestEngine(t, &bagEmbedder{dim: 64})
	ctx := context.Background()

	a := submission(bubbleSort, domain.LanguagePython)
	b := submission(selectionSort, domain.LanguagePython)

	ab := e.Compare(ctx, a, b, CompareOptions{})
	ba := e.Compare(ctx, b, a, CompareOptions{})

	assert.Equal(t, ab.Breakdown, ba.Breakdown)
	assert.Equal(t, ab.OverallScore, ba.OverallScore)
	assert.Equal(t, ab.RiskLevel, ba.RiskLevel)
}

func TestEngine_RenamedParameters(t *testing.T) {
	e := newTestEngine(t, &bagEmbedder{dim: 64})

	result := e.Compare(context.Background(),
		submission("def add(a, b): return a + b", domain.LanguagePython),
		submission("def add(x, y): return x + y", domain.LanguagePython),
		CompareOptions{})

	assert.InDelta(t, 1.0, result.Breakdown.Structural, 1e-9)
	assert.Less(t, result.Breakdown.Lexical, 1.0)
	assert.GreaterOrEqual(t, result.RiskLevel, domain.RiskMedium)
}

func TestEngine_SemanticUnavailable(t *testing.T) {
	ctx := context.Background()
	a := submission(bubbleSort, domain.LanguagePython)
	b := submission(selectionSort, domain.LanguagePython)

	healthy := newTestEngine(t, &bagEmbedder{dim: 64}).Compare(ctx, a, b, CompareOptions{})

	for name, embedder := range map[string]domain.Embedder{
		"failing": failingEmbedder{},
		"missing": nil,
	} {
		t.Run(name, func(t *testing.T) {
			result := newTestEngine(t, embedder).Compare(ctx, a, b, CompareOptions{})

			assert.True(t, result.Degraded)
			assert.True(t, result.Breakdown.Degraded)
			assert.NotEmpty(t, result.Breakdown.DegradedReason)
			assert.Equal(t, 0.0, result.Breakdown.Semantic)
			assert.Equal(t, healthy.Breakdown.Lexical, result.Breakdown.Lexical)
			assert.Equal(t, healthy.Breakdown.Structural, result.Breakdown.Structural)
			assert.Equal(t, healthy.Breakdown.TokenSequence, result.Breakdown.TokenSequence)
		})
	}
}

func TestEngine_CosmeticEditsReduceButKeepSimilarity(t *testing.T) {
	e := newTestEngine(t, &bagEmbedder{dim: 64})

	renamed := `def bubble_sort(items):
    n = len(items)
    for i in range(n):
        for j in range(0, n - i - 1):
            if items[j] > items[j + 1]:
                items[j], items[j + 1] = items[j + 1], items[j]
    return items
`
	result := e.Compare(context.Background(),
		submission(bubbleSort, domain.LanguagePython),
		submission(renamed, domain.LanguagePython),
		CompareOptions{})

	assert.Less(t, result.OverallScore, 1.0)
	assert.GreaterOrEqual(t, result.RiskLevel, domain.RiskHigh)
}

func TestEngine_Options(t *testing.T) {
	e := newTestEngine(t, &bagEmbedder{dim: 64})
	ctx := context.Background()
	a := submission(bubbleSort, domain.LanguagePython)
	b := submission(`def sort_desc(arr):
    n = len(arr)
    for i in range(n):
        pass
    return arr
`, domain.LanguagePython)

	plain := e.Compare(ctx, a, b, CompareOptions{})
	assert.Nil(t, plain.EvidenceBlocks)
	assert.Nil(t, plain.Details)

	full := e.Compare(ctx, a, b, CompareOptions{IncludeEvidence: true, Detailed: true})
	require.NotNil(t, full.Details)

	assert.Equal(t, []domain.EvidenceBlock{
		{Line1: 2, Line2: 2, Text: "n = len(arr)", Confidence: 1.0},
		{Line1: 3, Line2: 3, Text: "for i in range(n):", Confidence: 1.0},
	}, full.EvidenceBlocks)
	assert.Empty(t, full.Details.CommonFunctions)
	assert.Equal(t, []string{"bubble_sort"}, full.Details.OnlyInFirst)
	assert.Equal(t, []string{"sort_desc"}, full.Details.OnlyInSecond)
	assert.NotEmpty(t, full.Details.Diff)
	assert.LessOrEqual(t, len(full.Details.Diff), domain.DefaultDiffLines)
	assert.Equal(t, 1, full.Details.Statistics.Functions1)
	assert.Equal(t, 1, full.Details.Statistics.Functions2)
}

func TestEngine_ContentHash(t *testing.T) {
	e := newTestEngine(t, nil)

	h1 := e.ContentHash("x = 1\ny = 2", domain.LanguagePython)
	h2 := e.ContentHash("x = 1   # one\n\n\ny = 2\n", domain.LanguagePython)
	h3 := e.ContentHash("x = 1\ny = 3", domain.LanguagePython)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := DefaultEngineConfig()
	config.Weights.Semantic = 0.9

	_, err := NewEngine(nil, config)
	assert.Error(t, err)
}

func TestPartitionNames(t *testing.T) {
	common, only1, only2 := partitionNames([]string{"a", "b", "d"}, []string{"b", "c", "d", "e"})

	assert.Equal(t, []string{"b", "d"}, common)
	assert.Equal(t, []string{"a"}, only1)
	assert.Equal(t, []string{"c", "e"}, only2)
}
