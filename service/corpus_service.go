package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/analyzer"
	"github.com/ludo-technologies/plagscan/internal/corpus"
)

// LSH modes
const (
	LSHModeOff  = "false"
	LSHModeOn   = "true"
	LSHModeAuto = "auto"
)

// CorpusServiceOptions configures the corpus matcher
type CorpusServiceOptions struct {
	ReportFloor     float64
	DefaultTopK     int
	ExcerptLength   int
	Workers         int
	MaxContentBytes int

	// LSHMode is "auto", "true" or "false"
	LSHMode          string
	LSHAutoThreshold int
	LSH              analyzer.LSHConfig
}

// DefaultCorpusServiceOptions returns the default matcher options
func DefaultCorpusServiceOptions() CorpusServiceOptions {
	return CorpusServiceOptions{
		ReportFloor:      domain.DefaultReportFloor,
		DefaultTopK:      domain.DefaultTopK,
		ExcerptLength:    domain.DefaultExcerptLength,
		MaxContentBytes:  domain.DefaultMaxContentBytes,
		LSHMode:          LSHModeOff,
		LSHAutoThreshold: domain.DefaultLSHAutoThreshold,
		LSH: analyzer.LSHConfig{
			Bands:  domain.DefaultLSHBands,
			Rows:   domain.DefaultLSHRows,
			Hashes: domain.DefaultMinHashFunctions,
		},
	}
}

func (o CorpusServiceOptions) useLSH(corpusSize int) bool {
	switch strings.ToLower(o.LSHMode) {
	case LSHModeOn:
		return true
	case LSHModeAuto:
		return corpusSize > o.LSHAutoThreshold
	default:
		return false
	}
}

// CorpusService implements domain.CorpusService: it ranks corpus entries
// against a submission and guards the corpus against exact duplicates.
//
// Searches hold a shared lock and may run concurrently. Add holds the
// exclusive lock across the duplicate check and the append.
type CorpusService struct {
	engine *analyzer.Engine
	store  domain.CorpusStore
	opts   CorpusServiceOptions

	mu     sync.RWMutex
	hashes map[string]int64

	profiles *ProfileCache

	lshMu sync.Mutex
	lsh   *analyzer.LSHIndex
}

// NewCorpusService creates a corpus service over the store, loading the
// content hashes of the existing entries
func NewCorpusService(ctx context.Context, engine *analyzer.Engine, store domain.CorpusStore, opts CorpusServiceOptions) (*CorpusService, error) {
	defaults := DefaultCorpusServiceOptions()
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = defaults.DefaultTopK
	}
	if opts.ExcerptLength <= 0 {
		opts.ExcerptLength = defaults.ExcerptLength
	}
	if opts.MaxContentBytes <= 0 {
		opts.MaxContentBytes = defaults.MaxContentBytes
	}
	if opts.LSHMode == "" {
		opts.LSHMode = defaults.LSHMode
	}

	entries, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	hashes := make(map[string]int64, len(entries))
	for _, e := range entries {
		hashes[e.ContentHash] = e.ID
	}

	return &CorpusService{
		engine:   engine,
		store:    store,
		opts:     opts,
		hashes:   hashes,
		profiles: NewProfileCache(),
	}, nil
}

// Search returns the corpus entries most similar to the submitted code.
// Matches below the report floor are dropped; the rest are ordered by score
// descending with ascending entry ID breaking ties.
func (s *CorpusService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("search request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateContent("code", req.Code, s.opts.MaxContentBytes); err != nil {
		return nil, err
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.opts.DefaultTopK
	}
	lang := analyzer.ResolveLanguage(req.Language, req.Code, req.Filename)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.candidates(ctx, req.Language)
	if err != nil {
		return nil, err
	}

	query := s.engine.Prepare(ctx, req.Code, lang)
	if s.opts.useLSH(len(entries)) {
		entries, err = s.pruneWithLSH(ctx, query, entries)
		if err != nil {
			return nil, err
		}
	}

	results := make([]*scoredEntry, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(s.opts.Workers))
	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profile := s.profile(gctx, entry)
			b := s.engine.Score(gctx, query, profile)
			score, risk := s.engine.Fuse(b)
			results[i] = &scoredEntry{entry: entry, breakdown: b, score: score, risk: risk}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("corpus search cancelled: %w", err)
	}

	resp := &domain.SearchResponse{
		ID:           uuid.NewString(),
		Language:     lang,
		Matches:      make([]domain.CorpusMatch, 0),
		TotalChecked: len(results),
		RiskLevel:    domain.RiskLow,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	ranked := make([]*scoredEntry, 0, len(results))
	for _, r := range results {
		if r.breakdown.Degraded {
			resp.Degraded = true
		}
		if r.score < s.opts.ReportFloor {
			continue
		}
		ranked = append(ranked, r)
	}
	sortScored(ranked)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	for _, r := range ranked {
		resp.Matches = append(resp.Matches, domain.CorpusMatch{
			EntryID:      r.entry.ID,
			OverallScore: r.score,
			RiskLevel:    r.risk,
			Breakdown:    r.breakdown,
			Excerpt:      Excerpt(r.entry.Content, s.opts.ExcerptLength),
			Language:     r.entry.Language,
			Description:  r.entry.Description,
			Source:       r.entry.Source,
		})
	}
	if len(resp.Matches) > 0 {
		resp.HighestScore = resp.Matches[0].OverallScore
		resp.RiskLevel = resp.Matches[0].RiskLevel
	}

	slog.Debug("corpus search finished",
		"language", lang,
		"checked", resp.TotalChecked,
		"matches", len(resp.Matches),
		"degraded", resp.Degraded)
	return resp, nil
}

// Add appends a snippet to the corpus. Content whose normalized hash is
// already present is not stored and reported with Accepted=false.
func (s *CorpusService) Add(ctx context.Context, req *domain.AddRequest) (*domain.AddResult, error) {
	if req == nil {
		return nil, domain.NewValidationError("add request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateContent("code", req.Code, s.opts.MaxContentBytes); err != nil {
		return nil, err
	}

	lang := analyzer.ResolveLanguage(req.Language, req.Code, req.Filename)
	hash := s.engine.ContentHash(req.Code, lang)
	result := &domain.AddResult{ContentHash: hash, Language: lang}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, exists := s.hashes[hash]; exists {
		slog.Debug("duplicate corpus entry rejected", "hash", hash, "existing_id", id)
		return result, nil
	}

	entry, err := s.store.Append(ctx, domain.CorpusEntry{
		Content:     req.Code,
		Language:    lang,
		Description: req.Description,
		Source:      req.Source,
		ContentHash: hash,
	})
	if err != nil {
		if errors.Is(err, corpus.ErrDuplicateContent) {
			// another writer shares the backing store
			return result, nil
		}
		return nil, err
	}

	s.hashes[hash] = entry.ID
	if s.lsh != nil {
		if err := s.lsh.Add(entry.ID, s.profile(ctx, entry).Code.Normalized); err != nil {
			slog.Warn("failed to index corpus entry", "id", entry.ID, "error", err)
		}
	}

	result.Accepted = true
	result.EntryID = entry.ID
	return result, nil
}

// List returns corpus entries, filtered by language when one is given
func (s *CorpusService) List(ctx context.Context, lang domain.Language) ([]domain.CorpusEntry, error) {
	if err := domain.ValidateLanguage(lang); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates(ctx, lang)
}

// Size returns the number of entries known to the service
func (s *CorpusService) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hashes)
}

// SeedSamples loads the bundled reference samples into an empty corpus
// and returns how many were added
func (s *CorpusService) SeedSamples(ctx context.Context) (int, error) {
	if s.Size() > 0 {
		return 0, nil
	}
	added := 0
	for _, sample := range corpus.Samples() {
		res, err := s.Add(ctx, &sample)
		if err != nil {
			return added, err
		}
		if res.Accepted {
			added++
		}
	}
	return added, nil
}

func (s *CorpusService) candidates(ctx context.Context, lang domain.Language) ([]domain.CorpusEntry, error) {
	if lang.IsConcrete() {
		return s.store.FilterByLanguage(ctx, lang)
	}
	return s.store.List(ctx)
}

// profile prepares a corpus entry, reusing earlier work
func (s *CorpusService) profile(ctx context.Context, entry domain.CorpusEntry) *analyzer.Profile {
	if p, ok := s.profiles.Get(entry.ID); ok {
		return p
	}
	return s.profiles.Put(entry.ID, s.engine.Prepare(ctx, entry.Content, entry.Language))
}

// pruneWithLSH keeps only the entries sharing an LSH band with the query
func (s *CorpusService) pruneWithLSH(ctx context.Context, query *analyzer.Profile, entries []domain.CorpusEntry) ([]domain.CorpusEntry, error) {
	index, err := s.lshIndex(ctx)
	if err != nil {
		return nil, err
	}

	ids := index.Candidates(query.Code.Normalized)
	keep := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	pruned := make([]domain.CorpusEntry, 0, len(ids))
	for _, e := range entries {
		if _, ok := keep[e.ID]; ok {
			pruned = append(pruned, e)
		}
	}
	slog.Info("lsh pruning active, corpus search is approximate", "entries", len(entries), "candidates", len(pruned))
	return pruned, nil
}

// lshIndex builds the LSH index over the whole corpus on first use
func (s *CorpusService) lshIndex(ctx context.Context) (*analyzer.LSHIndex, error) {
	s.lshMu.Lock()
	defer s.lshMu.Unlock()
	if s.lsh != nil {
		return s.lsh, nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	index := analyzer.NewLSHIndex(s.opts.LSH)
	for _, e := range all {
		if err := index.Add(e.ID, s.profile(ctx, e).Code.Normalized); err != nil {
			return nil, fmt.Errorf("failed to build lsh index: %w", err)
		}
	}
	s.lsh = index
	return index, nil
}

type scoredEntry struct {
	entry     domain.CorpusEntry
	breakdown domain.SimilarityBreakdown
	score     float64
	risk      domain.RiskLevel
}

// sortScored orders by score descending, then entry ID ascending
func sortScored(entries []*scoredEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].entry.ID < entries[j].entry.ID
	})
}

// Excerpt trims content to at most maxRunes runes, marking truncation with "..."
func Excerpt(content string, maxRunes int) string {
	content = strings.TrimSpace(content)
	if maxRunes <= 0 || utf8.RuneCountInString(content) <= maxRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxRunes]) + "..."
}
