package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ludo-technologies/plagscan/domain"
)

// EngineConfig holds the tunable parameters of the similarity engine
type EngineConfig struct {
	Weights    domain.FusionWeights
	Thresholds domain.RiskThresholds
	Structural StructuralWeights
	Semantic   SemanticSimilarityConfig

	EvidenceMinLineLength int
	EvidenceMaxBlocks     int

	// DiffLines caps the unified diff of detailed comparisons
	DiffLines int
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights:    domain.DefaultFusionWeights(),
		Thresholds: domain.DefaultRiskThresholds(),
		Structural: DefaultStructuralWeights(),
		Semantic: SemanticSimilarityConfig{
			Timeout:   domain.DefaultEmbeddingTimeout,
			CacheSize: domain.DefaultEmbeddingCacheSize,
		},
		EvidenceMinLineLength: domain.DefaultEvidenceMinLineLength,
		EvidenceMaxBlocks:     domain.DefaultEvidenceMaxBlocks,
		DiffLines:             domain.DefaultDiffLines,
	}
}

// CompareOptions selects the optional parts of a comparison
type CompareOptions struct {
	IncludeEvidence bool
	Detailed        bool
}

// Profile is a submission after normalization and feature extraction.
// Profiles are read-only once prepared and may be scored against many others.
type Profile struct {
	Language   domain.Language
	Code       NormalizedCode
	Tokens     []string
	Extraction *domain.FeatureExtraction
}

// Engine runs the full similarity pipeline: normalization, feature extraction,
// the lexical, structural and semantic signals, and fusion.
// It is safe for concurrent use.
type Engine struct {
	normalizer *CodeNormalizer
	extractor  *FeatureExtractor
	lexical    *LexicalSimilarityAnalyzer
	structural *StructuralSimilarityAnalyzer
	semantic   *SemanticSimilarityAnalyzer
	fuser      *ScoreFuser
	evidence   *EvidenceLocator
	diffLines  int
}

// NewEngine creates an engine. A nil embedder leaves every result degraded.
func NewEngine(embedder domain.Embedder, config EngineConfig) (*Engine, error) {
	fuser, err := NewScoreFuserWithConfig(config.Weights, config.Thresholds)
	if err != nil {
		return nil, err
	}

	return &Engine{
		normalizer: NewCodeNormalizer(),
		extractor:  NewFeatureExtractor(),
		lexical:    NewLexicalSimilarityAnalyzer(),
		structural: NewStructuralSimilarityAnalyzerWithWeights(config.Structural),
		semantic:   NewSemanticSimilarityAnalyzerWithConfig(embedder, &config.Semantic),
		fuser:      fuser,
		evidence:   NewEvidenceLocator(config.EvidenceMinLineLength, config.EvidenceMaxBlocks),
		diffLines:  config.DiffLines,
	}, nil
}

// Fuser returns the engine's score fuser
func (e *Engine) Fuser() *ScoreFuser {
	return e.fuser
}

// Prepare normalizes a submission and extracts its features
func (e *Engine) Prepare(ctx context.Context, content string, lang domain.Language) *Profile {
	code := e.normalizer.Normalize(content, lang)
	return &Profile{
		Language:   lang,
		Code:       code,
		Tokens:     Tokenize(code.Normalized),
		Extraction: e.extractor.Extract(ctx, code.Stripped, lang),
	}
}

// Score computes the four signals between two prepared submissions.
// A semantic failure is reported through Degraded, never as an error.
func (e *Engine) Score(ctx context.Context, p1, p2 *Profile) domain.SimilarityBreakdown {
	semantic := e.semantic.ComputeSimilarity(ctx, p1.Code.Normalized, p2.Code.Normalized)

	return domain.SimilarityBreakdown{
		Lexical:        e.lexical.TokenSetSimilarity(p1.Tokens, p2.Tokens),
		Structural:     e.structural.ComputeSimilarity(&p1.Extraction.Features, &p2.Extraction.Features),
		Semantic:       semantic.Value,
		TokenSequence:  e.lexical.TokenSequenceSimilarity(p1.Tokens, p2.Tokens),
		Weights:        e.fuser.Weights(),
		Degraded:       !semantic.Available,
		DegradedReason: semantic.Reason,
	}
}

// Fuse combines a breakdown into an overall score and risk tier
func (e *Engine) Fuse(b domain.SimilarityBreakdown) (float64, domain.RiskLevel) {
	return e.fuser.Fuse(b)
}

// Compare runs the full pipeline over two submissions whose languages are already resolved
func (e *Engine) Compare(ctx context.Context, sub1, sub2 *domain.CodeSubmission, opts CompareOptions) *domain.ComparisonResult {
	p1 := e.Prepare(ctx, sub1.Content, sub1.EffectiveLanguage())
	p2 := e.Prepare(ctx, sub2.Content, sub2.EffectiveLanguage())

	breakdown := e.Score(ctx, p1, p2)
	score, risk := e.Fuse(breakdown)

	result := &domain.ComparisonResult{
		Submission1:  sub1,
		Submission2:  sub2,
		Breakdown:    breakdown,
		OverallScore: score,
		RiskLevel:    risk,
		Degraded:     breakdown.Degraded,
		Features1:    p1.Extraction,
		Features2:    p2.Extraction,
	}
	if opts.IncludeEvidence {
		result.EvidenceBlocks = e.Evidence(sub1.Content, sub2.Content)
	}
	if opts.Detailed {
		result.Details = e.Detail(p1, p2)
	}
	return result
}

// Evidence finds exact matching lines between the raw texts
func (e *Engine) Evidence(code1, code2 string) []domain.EvidenceBlock {
	return e.evidence.Locate(code1, code2)
}

// Detail builds the human-review section of a comparison
func (e *Engine) Detail(p1, p2 *Profile) *domain.DetailedComparison {
	f1, f2 := p1.Extraction.Features, p2.Extraction.Features
	common, only1, only2 := partitionNames(f1.Functions, f2.Functions)

	return &domain.DetailedComparison{
		CommonFunctions: common,
		OnlyInFirst:     only1,
		OnlyInSecond:    only2,
		Diff:            unifiedDiff(p1.Code.Stripped, p2.Code.Stripped, e.diffLines),
		Statistics: domain.ComparisonStatistics{
			Lines1:     countLines(p1.Code.Stripped),
			Lines2:     countLines(p2.Code.Stripped),
			Functions1: len(f1.Functions),
			Functions2: len(f2.Functions),
			Variables1: len(f1.Variables),
			Variables2: len(f2.Variables),
			Classes1:   len(f1.Classes),
			Classes2:   len(f2.Classes),
			Imports1:   len(f1.Imports),
			Imports2:   len(f2.Imports),
		},
	}
}

// ContentHash is the deduplication digest of a snippet: sha256 over its normalized text
func (e *Engine) ContentHash(content string, lang domain.Language) string {
	return HashNormalized(e.normalizer.Normalize(content, lang).Normalized)
}

// HashNormalized hashes already-normalized code
func HashNormalized(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// partitionNames splits two sorted name lists into shared and one-sided names
func partitionNames(a, b []string) (common, onlyA, onlyB []string) {
	common, onlyA, onlyB = []string{}, []string{}, []string{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			common = append(common, a[i])
			i++
			j++
		case a[i] < b[j]:
			onlyA = append(onlyA, a[i])
			i++
		default:
			onlyB = append(onlyB, b[j])
			j++
		}
	}
	onlyA = append(onlyA, a[i:]...)
	onlyB = append(onlyB, b[j:]...)
	return common, onlyA, onlyB
}

// unifiedDiff renders a line diff, truncated to maxLines lines
func unifiedDiff(text1, text2 string, maxLines int) []string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(text1),
		B:        difflib.SplitLines(text2),
		FromFile: "submission1",
		ToFile:   "submission2",
		Context:  1,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || out == "" {
		return []string{}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
