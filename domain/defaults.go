package domain

import "time"

// Fusion weights. These are starting points to be validated against labelled
// submissions for a given course or deployment, not derived constants.
const (
	DefaultSemanticWeight      = 0.4
	DefaultStructuralWeight    = 0.3
	DefaultLexicalWeight       = 0.2
	DefaultTokenSequenceWeight = 0.1
)

// Risk tier lower bounds. Scores below DefaultMediumRiskThreshold are low risk.
const (
	DefaultMediumRiskThreshold   = 0.5
	DefaultHighRiskThreshold     = 0.7
	DefaultVeryHighRiskThreshold = 0.85
)

// Structural sub-comparison weights. Variable names carry half the influence
// of function names because they are the first thing renamed.
const (
	DefaultFunctionWeight    = 1.0
	DefaultControlFlowWeight = 1.0
	DefaultVariableWeight    = 0.5
)

// Corpus matcher defaults
const (
	// DefaultReportFloor is the score below which corpus candidates are not reported at all.
	DefaultReportFloor = 0.3

	DefaultTopK          = 10
	DefaultExcerptLength = 200

	// DefaultLSHAutoThreshold is the corpus size above which LSH pruning turns on in "auto" mode.
	DefaultLSHAutoThreshold = 5000
	DefaultLSHBands         = 32
	DefaultLSHRows          = 4
	DefaultMinHashFunctions = 128
)

// Evidence locator defaults
const (
	DefaultEvidenceMinLineLength = 10
	DefaultEvidenceMaxBlocks     = 0
)

// Semantic signal defaults
const (
	DefaultEmbeddingProvider  = "local"
	DefaultEmbeddingDimension = 256
	DefaultEmbeddingTimeout   = 10 * time.Second
	DefaultEmbeddingCacheSize = 1024
)

// DefaultMaxContentBytes is the per-submission size limit.
const DefaultMaxContentBytes = 1 << 20

// DefaultDiffLines caps the unified diff included in detailed comparisons.
const DefaultDiffLines = 50
