package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/plagscan/domain"
)

func sampleComparison() *domain.ComparisonResult {
	return &domain.ComparisonResult{
		ID:          "cmp-1",
		Submission1: &domain.CodeSubmission{Language: domain.LanguagePython},
		Submission2: &domain.CodeSubmission{Language: domain.LanguageAuto, DetectedLanguage: domain.LanguagePython},
		Breakdown: domain.SimilarityBreakdown{
			Lexical:        0.5,
			Structural:     1,
			Semantic:       0,
			TokenSequence:  0.75,
			Weights:        domain.DefaultFusionWeights(),
			Degraded:       true,
			DegradedReason: "timeout",
		},
		OverallScore: 0.48,
		RiskLevel:    domain.RiskLow,
		Degraded:     true,
		EvidenceBlocks: []domain.EvidenceBlock{
			{Line1: 2, Line2: 3, Text: "return a + b", Confidence: 1},
		},
		Details: &domain.DetailedComparison{
			CommonFunctions: []string{"add"},
			Diff:            []string{"-a", "+b"},
		},
		GeneratedAt: "2026-01-01T00:00:00Z",
	}
}

func sampleSearch() *domain.SearchResponse {
	return &domain.SearchResponse{
		ID:           "search-1",
		Language:     domain.LanguagePython,
		TotalChecked: 3,
		HighestScore: 0.91,
		RiskLevel:    domain.RiskVeryHigh,
		Matches: []domain.CorpusMatch{
			{EntryID: 7, OverallScore: 0.91, RiskLevel: domain.RiskVeryHigh, Language: domain.LanguagePython, Description: "bubble sort", Source: "lab"},
			{EntryID: 2, OverallScore: 0.55, RiskLevel: domain.RiskMedium, Language: domain.LanguagePython, Description: "sort, copy", Source: "lab"},
		},
	}
}

func TestOutputFormatter_Comparison(t *testing.T) {
	f := NewOutputFormatter()
	result := sampleComparison()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, f.WriteComparison(result, domain.OutputFormatText, &buf))
		out := buf.String()
		assert.Contains(t, out, "Code Similarity Report")
		assert.Contains(t, out, "48.0%")
		assert.Contains(t, out, "LOW")
		assert.Contains(t, out, "python / python")
		assert.Contains(t, out, "semantic signal unavailable (timeout)")
		assert.Contains(t, out, "return a + b")
		assert.Contains(t, out, "Common functions: add")
		assert.NotContains(t, out, ColorReset)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, f.WriteComparison(result, domain.OutputFormatJSON, &buf))
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "low", decoded["risk_level"])
		assert.Equal(t, true, decoded["degraded"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, f.WriteComparison(result, domain.OutputFormatYAML, &buf))
		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "cmp-1", decoded["id"])
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, f.WriteComparison(result, domain.OutputFormatCSV, &buf))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"id", "language1", "language2", "lexical", "structural", "semantic", "token_sequence", "overall_score", "risk_level", "degraded"}, records[0])
		assert.Equal(t, "0.4800", records[1][7])
		assert.Equal(t, "low", records[1][8])
	})

	t.Run("unsupported", func(t *testing.T) {
		err := f.WriteComparison(result, "html", &bytes.Buffer{})
		assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(err))
	})
}

func TestOutputFormatter_Search(t *testing.T) {
	f := NewOutputFormatter()

	var text bytes.Buffer
	require.NoError(t, f.WriteSearch(sampleSearch(), domain.OutputFormatText, &text))
	assert.Contains(t, text.String(), "Corpus Search Report")
	assert.Contains(t, text.String(), "bubble sort")
	assert.Contains(t, text.String(), "91.0%")

	var empty bytes.Buffer
	require.NoError(t, f.WriteSearch(&domain.SearchResponse{Language: domain.LanguageGo}, domain.OutputFormatText, &empty))
	assert.Contains(t, empty.String(), "No matches above the report floor.")

	var out bytes.Buffer
	require.NoError(t, f.WriteSearch(sampleSearch(), domain.OutputFormatCSV, &out))
	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1", "7"}, records[1][:2])
	assert.Equal(t, "sort, copy", records[2][4])
}

func TestOutputFormatter_Batch(t *testing.T) {
	f := NewOutputFormatter()
	resp := &domain.BatchCompareResponse{
		TotalPairs: 1,
		Pairs: []domain.BatchPair{
			{Index1: 0, Index2: 1, Name1: "a.py", Name2: "b.py", OverallScore: 0.8, RiskLevel: domain.RiskHigh},
		},
	}

	var text bytes.Buffer
	require.NoError(t, f.WriteBatch(resp, domain.OutputFormatText, &text))
	assert.Contains(t, text.String(), "a.py")
	assert.Contains(t, text.String(), "80.0%")

	var out bytes.Buffer
	require.NoError(t, f.WriteBatch(resp, domain.OutputFormatJSON, &out))
	assert.Contains(t, out.String(), `"risk_level": "high"`)
}

func TestOutputFormatter_Entries(t *testing.T) {
	f := NewOutputFormatter()
	entries := []domain.CorpusEntry{{
		ID:          1,
		Language:    domain.LanguageRust,
		Source:      "lab",
		Description: "fib",
		ContentHash: strings.Repeat("ab", 32),
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	var text bytes.Buffer
	require.NoError(t, f.WriteEntries(entries, domain.OutputFormatText, &text))
	assert.Contains(t, text.String(), "abababababab")
	assert.NotContains(t, text.String(), strings.Repeat("ab", 7))

	var out bytes.Buffer
	require.NoError(t, f.WriteEntries(entries, domain.OutputFormatCSV, &out))
	assert.Contains(t, out.String(), "2026-01-02T03:04:05Z")
}

func TestFormatUtils_FormatRisk(t *testing.T) {
	assert.Equal(t, "VERY HIGH", NewFormatUtils(false).FormatRisk(domain.RiskVeryHigh))
	assert.Equal(t, ColorYellow+"MEDIUM"+ColorReset, NewFormatUtils(true).FormatRisk(domain.RiskMedium))
}
