package domain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// RiskLevel is the ordered risk tier derived from an overall score
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskVeryHigh
)

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskVeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseRiskLevel parses a risk tier name
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	case "very_high", "very-high", "veryhigh":
		return RiskVeryHigh, nil
	}
	return RiskLow, NewValidationError(fmt.Sprintf("unknown risk level: %q", s))
}

// FusionWeights are the per-signal weights used to fuse a breakdown
type FusionWeights struct {
	Semantic      float64 `json:"semantic" yaml:"semantic"`
	Structural    float64 `json:"structural" yaml:"structural"`
	Lexical       float64 `json:"lexical" yaml:"lexical"`
	TokenSequence float64 `json:"token_sequence" yaml:"token_sequence"`
}

// DefaultFusionWeights returns the default fusion weights
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{
		Semantic:      DefaultSemanticWeight,
		Structural:    DefaultStructuralWeight,
		Lexical:       DefaultLexicalWeight,
		TokenSequence: DefaultTokenSequenceWeight,
	}
}

// Sum returns the total weight
func (w FusionWeights) Sum() float64 {
	return w.Semantic + w.Structural + w.Lexical + w.TokenSequence
}

// Validate checks that weights are non-negative and sum to 1
func (w FusionWeights) Validate() error {
	for name, v := range map[string]float64{
		"semantic":       w.Semantic,
		"structural":     w.Structural,
		"lexical":        w.Lexical,
		"token_sequence": w.TokenSequence,
	} {
		if v < 0 || math.IsNaN(v) {
			return NewValidationError(fmt.Sprintf("%s weight must be >= 0, got %f", name, v))
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return NewValidationError(fmt.Sprintf("fusion weights must sum to 1.0, got %f", w.Sum()))
	}
	return nil
}

// RiskThresholds are the lower bounds of the medium, high and very_high tiers
type RiskThresholds struct {
	Medium   float64 `json:"medium" yaml:"medium"`
	High     float64 `json:"high" yaml:"high"`
	VeryHigh float64 `json:"very_high" yaml:"very_high"`
}

// DefaultRiskThresholds returns the default tier boundaries
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		Medium:   DefaultMediumRiskThreshold,
		High:     DefaultHighRiskThreshold,
		VeryHigh: DefaultVeryHighRiskThreshold,
	}
}

// Validate checks that thresholds are ordered and within [0,1]
func (t RiskThresholds) Validate() error {
	if t.Medium < 0 || t.VeryHigh > 1 {
		return NewValidationError(fmt.Sprintf("risk thresholds must be within [0,1], got %f..%f", t.Medium, t.VeryHigh))
	}
	if t.Medium > t.High || t.High > t.VeryHigh {
		return NewValidationError(fmt.Sprintf(
			"risk thresholds must satisfy medium <= high <= very_high, got %f, %f, %f",
			t.Medium, t.High, t.VeryHigh))
	}
	return nil
}

// Classify maps a score onto a risk tier using closed-open intervals
func (t RiskThresholds) Classify(score float64) RiskLevel {
	switch {
	case score >= t.VeryHigh:
		return RiskVeryHigh
	case score >= t.High:
		return RiskHigh
	case score >= t.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// CodeSubmission is one piece of code handed to the engine
type CodeSubmission struct {
	Content  string   `json:"-" yaml:"-"`
	Language Language `json:"language" yaml:"language"`
	Filename string   `json:"filename,omitempty" yaml:"filename,omitempty"`
	// DetectedLanguage is set when Language was auto and detection ran
	DetectedLanguage Language `json:"detected_language,omitempty" yaml:"detected_language,omitempty"`
}

// EffectiveLanguage returns the detected language when present
func (s *CodeSubmission) EffectiveLanguage() Language {
	if s.DetectedLanguage != "" {
		return s.DetectedLanguage
	}
	return s.Language
}

// SimilarityBreakdown holds the per-signal scores and the weights used to fuse them
type SimilarityBreakdown struct {
	Lexical        float64       `json:"lexical" yaml:"lexical"`
	Structural     float64       `json:"structural" yaml:"structural"`
	Semantic       float64       `json:"semantic" yaml:"semantic"`
	TokenSequence  float64       `json:"token_sequence" yaml:"token_sequence"`
	Weights        FusionWeights `json:"weights" yaml:"weights"`
	Degraded       bool          `json:"degraded" yaml:"degraded"`
	DegradedReason string        `json:"degraded_reason,omitempty" yaml:"degraded_reason,omitempty"`
}

// EvidenceBlock is a pair of matching lines between two submissions
type EvidenceBlock struct {
	Line1      int     `json:"line1" yaml:"line1"`
	Line2      int     `json:"line2" yaml:"line2"`
	Text       string  `json:"text" yaml:"text"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// ComparisonStatistics summarizes the size of both submissions
type ComparisonStatistics struct {
	Lines1     int `json:"lines1" yaml:"lines1"`
	Lines2     int `json:"lines2" yaml:"lines2"`
	Functions1 int `json:"functions1" yaml:"functions1"`
	Functions2 int `json:"functions2" yaml:"functions2"`
	Variables1 int `json:"variables1" yaml:"variables1"`
	Variables2 int `json:"variables2" yaml:"variables2"`
	Classes1   int `json:"classes1" yaml:"classes1"`
	Classes2   int `json:"classes2" yaml:"classes2"`
	Imports1   int `json:"imports1" yaml:"imports1"`
	Imports2   int `json:"imports2" yaml:"imports2"`
}

// DetailedComparison is the optional human-review section of a comparison
type DetailedComparison struct {
	CommonFunctions []string             `json:"common_functions" yaml:"common_functions"`
	OnlyInFirst     []string             `json:"only_in_first" yaml:"only_in_first"`
	OnlyInSecond    []string             `json:"only_in_second" yaml:"only_in_second"`
	Diff            []string             `json:"diff" yaml:"diff"`
	Statistics      ComparisonStatistics `json:"statistics" yaml:"statistics"`
}

// ComparisonResult is the outcome of comparing two submissions
type ComparisonResult struct {
	ID             string              `json:"id" yaml:"id"`
	Submission1    *CodeSubmission     `json:"submission1" yaml:"submission1"`
	Submission2    *CodeSubmission     `json:"submission2" yaml:"submission2"`
	Breakdown      SimilarityBreakdown `json:"breakdown" yaml:"breakdown"`
	OverallScore   float64             `json:"overall_score" yaml:"overall_score"`
	RiskLevel      RiskLevel           `json:"risk_level" yaml:"risk_level"`
	Degraded       bool                `json:"degraded" yaml:"degraded"`
	Features1      *FeatureExtraction  `json:"features1,omitempty" yaml:"features1,omitempty"`
	Features2      *FeatureExtraction  `json:"features2,omitempty" yaml:"features2,omitempty"`
	EvidenceBlocks []EvidenceBlock     `json:"evidence_blocks,omitempty" yaml:"evidence_blocks,omitempty"`
	Details        *DetailedComparison `json:"details,omitempty" yaml:"details,omitempty"`
	GeneratedAt    string              `json:"generated_at" yaml:"generated_at"`
}

// CompareRequest asks for a comparison of two code texts
type CompareRequest struct {
	Code1           string
	Code2           string
	Language1       Language
	Language2       Language
	Filename1       string
	Filename2       string
	IncludeEvidence bool
	Detailed        bool
}

// Validate performs the size-independent input checks
func (r *CompareRequest) Validate() error {
	if err := ValidateContent("code1", r.Code1, 0); err != nil {
		return err
	}
	if err := ValidateContent("code2", r.Code2, 0); err != nil {
		return err
	}
	if err := ValidateLanguage(r.Language1); err != nil {
		return err
	}
	return ValidateLanguage(r.Language2)
}

// BatchCompareRequest asks for all pairwise comparisons over a set of submissions
type BatchCompareRequest struct {
	Submissions []CodeSubmission
	// MinScore drops pairs below this overall score from the response
	MinScore float64
}

// Validate checks the batch request
func (r *BatchCompareRequest) Validate() error {
	if len(r.Submissions) < 2 {
		return NewValidationError("batch comparison needs at least two submissions")
	}
	for i, s := range r.Submissions {
		if err := ValidateContent(fmt.Sprintf("submission %d", i+1), s.Content, 0); err != nil {
			return err
		}
		if err := ValidateLanguage(s.Language); err != nil {
			return err
		}
	}
	if r.MinScore < 0 || r.MinScore > 1 {
		return NewValidationError(fmt.Sprintf("min score must be between 0.0 and 1.0, got %f", r.MinScore))
	}
	return nil
}

// BatchPair is one pairwise result of a batch comparison
type BatchPair struct {
	Index1       int                 `json:"index1" yaml:"index1"`
	Index2       int                 `json:"index2" yaml:"index2"`
	Name1        string              `json:"name1" yaml:"name1"`
	Name2        string              `json:"name2" yaml:"name2"`
	OverallScore float64             `json:"overall_score" yaml:"overall_score"`
	RiskLevel    RiskLevel           `json:"risk_level" yaml:"risk_level"`
	Breakdown    SimilarityBreakdown `json:"breakdown" yaml:"breakdown"`
}

// BatchCompareResponse lists pairwise results sorted by score descending
type BatchCompareResponse struct {
	ID          string      `json:"id" yaml:"id"`
	Pairs       []BatchPair `json:"pairs" yaml:"pairs"`
	TotalPairs  int         `json:"total_pairs" yaml:"total_pairs"`
	Degraded    bool        `json:"degraded" yaml:"degraded"`
	GeneratedAt string      `json:"generated_at" yaml:"generated_at"`
}

// ComparisonService compares code submissions
type ComparisonService interface {
	Compare(ctx context.Context, req *CompareRequest) (*ComparisonResult, error)
	BatchCompare(ctx context.Context, req *BatchCompareRequest) (*BatchCompareResponse, error)
}

// ValidateContent rejects empty, binary and oversized code.
// A maxBytes of zero or less disables the size check.
func ValidateContent(field, content string, maxBytes int) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError(fmt.Sprintf("%s must not be empty", field))
	}
	if maxBytes > 0 && len(content) > maxBytes {
		return NewContentTooLargeError(field, len(content), maxBytes)
	}
	if !utf8.ValidString(content) || strings.ContainsRune(content, 0) {
		return NewValidationError(fmt.Sprintf("%s is not valid text", field))
	}
	return nil
}

// ValidateLanguage rejects language tags outside the supported set
func ValidateLanguage(lang Language) error {
	if lang == "" || lang == LanguageAuto || lang == LanguageUnknown {
		return nil
	}
	for _, l := range SupportedLanguages {
		if l == lang {
			return nil
		}
	}
	return NewUnsupportedLanguageError(string(lang))
}
