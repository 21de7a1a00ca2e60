package app

import (
	"context"
	"io"
	"path/filepath"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/service"
)

// CorpusImporter bulk-loads files into the corpus
type CorpusImporter interface {
	Import(ctx context.Context, reader domain.FileReader, paths []string, opts service.ImportOptions, progress domain.ProgressManager) (*domain.ImportResult, error)
}

// CorpusAddInput describes adding one file to the corpus
type CorpusAddInput struct {
	Path        string
	Language    domain.Language
	Description string
	Source      string
	Stdin       io.Reader
}

// CorpusUseCase orchestrates corpus maintenance: add, import and list
type CorpusUseCase struct {
	service    domain.CorpusService
	importer   CorpusImporter
	fileReader domain.FileReader
	formatter  domain.OutputFormatter
	progress   domain.ProgressManager
}

// NewCorpusUseCase creates a new corpus use case. importer and progress may be nil.
func NewCorpusUseCase(
	svc domain.CorpusService,
	importer CorpusImporter,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
	progress domain.ProgressManager,
) *CorpusUseCase {
	return &CorpusUseCase{
		service:    svc,
		importer:   importer,
		fileReader: fileReader,
		formatter:  formatter,
		progress:   progress,
	}
}

// Add appends one file to the corpus. The base file name is the default description.
func (uc *CorpusUseCase) Add(ctx context.Context, in CorpusAddInput) (*domain.AddResult, error) {
	code, err := loadSource(uc.fileReader, in.Stdin, in.Path)
	if err != nil {
		return nil, err
	}

	description := in.Description
	if description == "" {
		if name := sourceFilename(in.Path); name != "" {
			description = filepath.Base(name)
		}
	}

	return uc.service.Add(ctx, &domain.AddRequest{
		Code:        code,
		Language:    in.Language,
		Description: description,
		Source:      in.Source,
		Filename:    sourceFilename(in.Path),
	})
}

// Import adds every source file under paths to the corpus
func (uc *CorpusUseCase) Import(ctx context.Context, paths []string, opts service.ImportOptions) (*domain.ImportResult, error) {
	if uc.importer == nil {
		return nil, domain.NewInvalidInputError("corpus import is not available", nil)
	}
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}
	return uc.importer.Import(ctx, uc.fileReader, paths, opts, uc.progress)
}

// List writes the corpus entries, filtered by language when one is given
func (uc *CorpusUseCase) List(ctx context.Context, lang domain.Language, format domain.OutputFormat, writer io.Writer) ([]domain.CorpusEntry, error) {
	if writer == nil {
		return nil, domain.NewInvalidInputError("output writer is required", nil)
	}

	entries, err := uc.service.List(ctx, lang)
	if err != nil {
		return nil, err
	}
	if err := uc.formatter.WriteEntries(entries, format, writer); err != nil {
		return nil, domain.NewOutputError("failed to write output", err)
	}
	return entries, nil
}
