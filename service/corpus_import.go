package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ludo-technologies/plagscan/domain"
)

// ImportOptions controls a bulk corpus import
type ImportOptions struct {
	// Language overrides per-file detection when concrete
	Language domain.Language
	// Source labels every imported entry; the file path is used when empty
	Source string

	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// Import adds every source file under paths to the corpus.
// Unreadable or invalid files are counted as failures and do not stop the import.
func (s *CorpusService) Import(ctx context.Context, reader domain.FileReader, paths []string, opts ImportOptions, progress domain.ProgressManager) (*domain.ImportResult, error) {
	if reader == nil {
		return nil, domain.NewInvalidInputError("file reader is required", nil)
	}
	if err := domain.ValidateLanguage(opts.Language); err != nil {
		return nil, err
	}

	files, err := reader.CollectSourceFiles(paths, opts.Recursive, opts.IncludePatterns, opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no source files found in the specified paths", nil)
	}

	if progress != nil {
		progress.Initialize(len(files))
		progress.Start()
		defer progress.Close()
	}

	result := &domain.ImportResult{}
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		added, err := s.importFile(ctx, reader, file, opts)
		switch {
		case err != nil:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file, err))
			slog.Warn("corpus import failed", "file", file, "error", err)
		case added:
			result.Accepted++
		default:
			result.Duplicates++
		}

		if progress != nil {
			progress.Update(i+1, len(files))
		}
	}

	if progress != nil {
		progress.Complete(result.Failed == 0)
	}
	return result, nil
}

func (s *CorpusService) importFile(ctx context.Context, reader domain.FileReader, file string, opts ImportOptions) (bool, error) {
	content, err := reader.ReadFile(file)
	if err != nil {
		return false, err
	}

	source := opts.Source
	if source == "" {
		source = file
	}
	lang := opts.Language
	if !lang.IsConcrete() {
		lang = domain.LanguageAuto
	}

	res, err := s.Add(ctx, &domain.AddRequest{
		Code:        string(content),
		Language:    lang,
		Description: filepath.Base(file),
		Source:      source,
		Filename:    file,
	})
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}
