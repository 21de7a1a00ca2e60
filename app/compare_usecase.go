package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/plagscan/domain"
)

// CompareInput describes a pairwise comparison of two files
type CompareInput struct {
	Path1     string
	Path2     string
	Language1 domain.Language
	Language2 domain.Language

	IncludeEvidence bool
	Detailed        bool

	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
	// Stdin is read for a path of "-"; defaults to os.Stdin
	Stdin io.Reader
}

// CompareUseCase orchestrates a comparison of two source files
type CompareUseCase struct {
	service    domain.ComparisonService
	fileReader domain.FileReader
	formatter  domain.OutputFormatter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.ComparisonService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
) *CompareUseCase {
	return &CompareUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
	}
}

// Execute reads both inputs, compares them and writes the result
func (uc *CompareUseCase) Execute(ctx context.Context, in CompareInput) (*domain.ComparisonResult, error) {
	if in.OutputWriter == nil {
		return nil, domain.NewInvalidInputError("output writer is required", nil)
	}
	if in.Path1 == StdinPath && in.Path2 == StdinPath {
		return nil, domain.NewInvalidInputError("only one input can be read from standard input", nil)
	}

	code1, err := loadSource(uc.fileReader, in.Stdin, in.Path1)
	if err != nil {
		return nil, err
	}
	code2, err := loadSource(uc.fileReader, in.Stdin, in.Path2)
	if err != nil {
		return nil, err
	}

	result, err := uc.service.Compare(ctx, &domain.CompareRequest{
		Code1:           code1,
		Code2:           code2,
		Language1:       in.Language1,
		Language2:       in.Language2,
		Filename1:       sourceFilename(in.Path1),
		Filename2:       sourceFilename(in.Path2),
		IncludeEvidence: in.IncludeEvidence,
		Detailed:        in.Detailed,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.formatter.WriteComparison(result, in.OutputFormat, in.OutputWriter); err != nil {
		return nil, domain.NewOutputError("failed to write output", err)
	}
	return result, nil
}
