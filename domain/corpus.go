package domain

import (
	"context"
	"fmt"
	"time"
)

// CorpusEntry is one reference snippet in the corpus. Entries are append-only.
type CorpusEntry struct {
	ID          int64     `json:"id" yaml:"id"`
	Content     string    `json:"content" yaml:"content"`
	Language    Language  `json:"language" yaml:"language"`
	Description string    `json:"description" yaml:"description"`
	Source      string    `json:"source" yaml:"source"`
	ContentHash string    `json:"content_hash" yaml:"content_hash"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// CorpusMatch is one ranked corpus hit
type CorpusMatch struct {
	EntryID      int64               `json:"entry_id" yaml:"entry_id"`
	OverallScore float64             `json:"overall_score" yaml:"overall_score"`
	RiskLevel    RiskLevel           `json:"risk_level" yaml:"risk_level"`
	Breakdown    SimilarityBreakdown `json:"breakdown" yaml:"breakdown"`
	Excerpt      string              `json:"excerpt" yaml:"excerpt"`
	Language     Language            `json:"language" yaml:"language"`
	Description  string              `json:"description" yaml:"description"`
	Source       string              `json:"source" yaml:"source"`
}

// SearchRequest asks for the closest corpus entries to a piece of code
type SearchRequest struct {
	Code     string
	Language Language
	Filename string
	TopK     int
}

// Validate performs the size-independent input checks
func (r *SearchRequest) Validate() error {
	if err := ValidateContent("code", r.Code, 0); err != nil {
		return err
	}
	if r.TopK < 0 {
		return NewValidationError(fmt.Sprintf("top_k must be >= 0, got %d", r.TopK))
	}
	return ValidateLanguage(r.Language)
}

// SearchResponse is the ranked result of a corpus search
type SearchResponse struct {
	ID           string        `json:"id" yaml:"id"`
	Language     Language      `json:"language" yaml:"language"`
	Matches      []CorpusMatch `json:"matches" yaml:"matches"`
	TotalChecked int           `json:"total_checked" yaml:"total_checked"`
	HighestScore float64       `json:"highest_score" yaml:"highest_score"`
	RiskLevel    RiskLevel     `json:"risk_level" yaml:"risk_level"`
	Degraded     bool          `json:"degraded" yaml:"degraded"`
	GeneratedAt  string        `json:"generated_at" yaml:"generated_at"`
}

// AddRequest asks to append a snippet to the corpus
type AddRequest struct {
	Code        string
	Language    Language
	Description string
	Source      string
	Filename    string
}

// Validate performs the size-independent input checks
func (r *AddRequest) Validate() error {
	if err := ValidateContent("code", r.Code, 0); err != nil {
		return err
	}
	return ValidateLanguage(r.Language)
}

// AddResult reports whether a snippet was accepted into the corpus.
// Accepted is false when an entry with the same content hash already exists.
type AddResult struct {
	Accepted    bool     `json:"accepted" yaml:"accepted"`
	EntryID     int64    `json:"entry_id,omitempty" yaml:"entry_id,omitempty"`
	ContentHash string   `json:"content_hash" yaml:"content_hash"`
	Language    Language `json:"language" yaml:"language"`
}

// ImportResult summarizes a bulk corpus import
type ImportResult struct {
	Accepted   int      `json:"accepted" yaml:"accepted"`
	Duplicates int      `json:"duplicates" yaml:"duplicates"`
	Failed     int      `json:"failed" yaml:"failed"`
	Errors     []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// CorpusStore is the backing collection of corpus entries.
// Implementations must be safe for concurrent use.
type CorpusStore interface {
	// List returns all entries in ascending ID order
	List(ctx context.Context) ([]CorpusEntry, error)

	// FilterByLanguage returns entries of one language in ascending ID order
	FilterByLanguage(ctx context.Context, lang Language) ([]CorpusEntry, error)

	// Append stores a new entry and returns it with its assigned ID
	Append(ctx context.Context, entry CorpusEntry) (CorpusEntry, error)

	// Close releases resources held by the store
	Close() error
}

// CorpusService searches and grows the reference corpus
type CorpusService interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	Add(ctx context.Context, req *AddRequest) (*AddResult, error)
	List(ctx context.Context, lang Language) ([]CorpusEntry, error)
}
