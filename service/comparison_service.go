package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/analyzer"
)

// ComparisonServiceOptions configures the comparison service
type ComparisonServiceOptions struct {
	// MaxContentBytes is the per-submission size limit
	MaxContentBytes int
	// Workers bounds parallel scoring in batch comparisons; 0 uses GOMAXPROCS
	Workers int
}

// ComparisonService implements the domain.ComparisonService interface
type ComparisonService struct {
	engine   *analyzer.Engine
	opts     ComparisonServiceOptions
	progress domain.ProgressManager
}

// NewComparisonService creates a new comparison service.
// progress can be nil - batch comparisons then run without a progress bar.
func NewComparisonService(engine *analyzer.Engine, opts ComparisonServiceOptions, progress domain.ProgressManager) *ComparisonService {
	if opts.MaxContentBytes <= 0 {
		opts.MaxContentBytes = domain.DefaultMaxContentBytes
	}
	return &ComparisonService{
		engine:   engine,
		opts:     opts,
		progress: progress,
	}
}

// Compare runs the full similarity pipeline over two code texts.
// Only malformed input produces an error; parse and embedding failures are
// absorbed into the result.
func (s *ComparisonService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.ComparisonResult, error) {
	if req == nil {
		return nil, domain.NewValidationError("compare request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateContent("code1", req.Code1, s.opts.MaxContentBytes); err != nil {
		return nil, err
	}
	if err := domain.ValidateContent("code2", req.Code2, s.opts.MaxContentBytes); err != nil {
		return nil, err
	}

	sub1 := newSubmission(req.Code1, req.Language1, req.Filename1)
	sub2 := newSubmission(req.Code2, req.Language2, req.Filename2)

	result := s.engine.Compare(ctx, sub1, sub2, analyzer.CompareOptions{
		IncludeEvidence: req.IncludeEvidence,
		Detailed:        req.Detailed,
	})
	result.ID = uuid.NewString()
	result.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	if result.Degraded {
		slog.Debug("comparison degraded", "id", result.ID, "reason", result.Breakdown.DegradedReason)
	}
	return result, nil
}

// BatchCompare compares every pair of submissions and returns the pairs sorted by score
func (s *ComparisonService) BatchCompare(ctx context.Context, req *domain.BatchCompareRequest) (*domain.BatchCompareResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("batch request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for i, sub := range req.Submissions {
		if err := domain.ValidateContent(submissionName(sub, i), sub.Content, s.opts.MaxContentBytes); err != nil {
			return nil, err
		}
	}

	n := len(req.Submissions)
	subs := make([]*domain.CodeSubmission, n)
	profiles := make([]*analyzer.Profile, n)
	for i, sub := range req.Submissions {
		subs[i] = newSubmission(sub.Content, sub.Language, sub.Filename)
		profiles[i] = s.engine.Prepare(ctx, sub.Content, subs[i].EffectiveLanguage())
	}

	type pairIndex struct{ i, j int }
	indexes := make([]pairIndex, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			indexes = append(indexes, pairIndex{i, j})
		}
	}

	if s.progress != nil {
		s.progress.Initialize(len(indexes))
		s.progress.Start()
		defer s.progress.Close()
	}

	pairs := make([]domain.BatchPair, len(indexes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(s.opts.Workers))
	done := newCounter()
	for k, idx := range indexes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b := s.engine.Score(gctx, profiles[idx.i], profiles[idx.j])
			score, risk := s.engine.Fuse(b)
			pairs[k] = domain.BatchPair{
				Index1:       idx.i,
				Index2:       idx.j,
				Name1:        submissionName(*subs[idx.i], idx.i),
				Name2:        submissionName(*subs[idx.j], idx.j),
				OverallScore: score,
				RiskLevel:    risk,
				Breakdown:    b,
			}
			if s.progress != nil {
				s.progress.Update(done.inc(), len(indexes))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch comparison cancelled: %w", err)
	}
	if s.progress != nil {
		s.progress.Complete(true)
	}

	resp := &domain.BatchCompareResponse{
		ID:          uuid.NewString(),
		Pairs:       make([]domain.BatchPair, 0, len(pairs)),
		TotalPairs:  len(pairs),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, p := range pairs {
		if p.Breakdown.Degraded {
			resp.Degraded = true
		}
		if p.OverallScore >= req.MinScore {
			resp.Pairs = append(resp.Pairs, p)
		}
	}
	sort.SliceStable(resp.Pairs, func(a, b int) bool {
		pa, pb := resp.Pairs[a], resp.Pairs[b]
		if pa.OverallScore != pb.OverallScore {
			return pa.OverallScore > pb.OverallScore
		}
		if pa.Index1 != pb.Index1 {
			return pa.Index1 < pb.Index1
		}
		return pa.Index2 < pb.Index2
	})
	return resp, nil
}

// newSubmission builds a submission, recording the detected language when
// the declared one was auto
func newSubmission(content string, declared domain.Language, filename string) *domain.CodeSubmission {
	if declared == "" {
		declared = domain.LanguageAuto
	}
	sub := &domain.CodeSubmission{
		Content:  content,
		Language: declared,
		Filename: filename,
	}
	if declared == domain.LanguageAuto {
		sub.DetectedLanguage = analyzer.ResolveLanguage(declared, content, filename)
	}
	return sub
}

func submissionName(sub domain.CodeSubmission, index int) string {
	if sub.Filename != "" {
		return sub.Filename
	}
	return fmt.Sprintf("submission %d", index+1)
}

func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.GOMAXPROCS(0)
}
