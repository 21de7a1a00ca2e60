package app

import (
	"context"
	"io"

	"github.com/ludo-technologies/plagscan/domain"
)

// SearchInput describes a corpus search for one file
type SearchInput struct {
	Path     string
	Language domain.Language
	TopK     int

	OutputFormat domain.OutputFormat
	OutputWriter io.Writer
	Stdin        io.Reader
}

// SearchUseCase orchestrates searching the corpus for a submission
type SearchUseCase struct {
	service    domain.CorpusService
	fileReader domain.FileReader
	formatter  domain.OutputFormatter
}

// NewSearchUseCase creates a new search use case
func NewSearchUseCase(
	service domain.CorpusService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
) *SearchUseCase {
	return &SearchUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
	}
}

// Execute reads the input, searches the corpus and writes the ranked matches
func (uc *SearchUseCase) Execute(ctx context.Context, in SearchInput) (*domain.SearchResponse, error) {
	if in.OutputWriter == nil {
		return nil, domain.NewInvalidInputError("output writer is required", nil)
	}

	code, err := loadSource(uc.fileReader, in.Stdin, in.Path)
	if err != nil {
		return nil, err
	}

	resp, err := uc.service.Search(ctx, &domain.SearchRequest{
		Code:     code,
		Language: in.Language,
		Filename: sourceFilename(in.Path),
		TopK:     in.TopK,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.formatter.WriteSearch(resp, in.OutputFormat, in.OutputWriter); err != nil {
		return nil, domain.NewOutputError("failed to write output", err)
	}
	return resp, nil
}
