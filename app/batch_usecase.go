package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/plagscan/domain"
)

// BatchInput describes an all-pairs comparison over a set of files
type BatchInput struct {
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Language applies to every file; auto detects per file
	Language domain.Language
	MinScore float64

	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
}

// BatchUseCase orchestrates pairwise comparison of many files
type BatchUseCase struct {
	service    domain.ComparisonService
	fileReader domain.FileReader
	formatter  domain.OutputFormatter
}

// NewBatchUseCase creates a new batch use case
func NewBatchUseCase(
	service domain.ComparisonService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
) *BatchUseCase {
	return &BatchUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
	}
}

// Execute collects the files, compares every pair and writes the results
func (uc *BatchUseCase) Execute(ctx context.Context, in BatchInput) (*domain.BatchCompareResponse, error) {
	if in.OutputWriter == nil {
		return nil, domain.NewInvalidInputError("output writer is required", nil)
	}

	files, err := resolveSourceFiles(uc.fileReader, in.Paths, in.Recursive, in.IncludePatterns, in.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	submissions := make([]domain.CodeSubmission, 0, len(files))
	for _, file := range files {
		content, err := uc.fileReader.ReadFile(file)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, domain.CodeSubmission{
			Content:  string(content),
			Language: in.Language,
			Filename: file,
		})
	}

	resp, err := uc.service.BatchCompare(ctx, &domain.BatchCompareRequest{
		Submissions: submissions,
		MinScore:    in.MinScore,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.formatter.WriteBatch(resp, in.OutputFormat, in.OutputWriter); err != nil {
		return nil, domain.NewOutputError("failed to write output", err)
	}
	return resp, nil
}
