package service

import (
	"context"
	"errors"

	"github.com/ludo-technologies/plagscan/domain"
)

// ErrorCategory groups errors for user facing reporting
type ErrorCategory string

const (
	ErrorCategoryInput     ErrorCategory = "Input Error"
	ErrorCategoryConfig    ErrorCategory = "Configuration Error"
	ErrorCategoryStorage   ErrorCategory = "Corpus Error"
	ErrorCategoryTimeout   ErrorCategory = "Timeout Error"
	ErrorCategoryOutput    ErrorCategory = "Output Error"
	ErrorCategoryEmbedding ErrorCategory = "Embedding Error"
	ErrorCategoryUnknown   ErrorCategory = "Unknown Error"
)

// CategorizedError is an error with its category and a short explanation
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

func (e *CategorizedError) Error() string {
	return string(e.Category) + ": " + e.Original.Error()
}

func (e *CategorizedError) Unwrap() error {
	return e.Original
}

// ErrorCategorizer maps errors onto categories by their domain error code
type ErrorCategorizer struct{}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() *ErrorCategorizer {
	return &ErrorCategorizer{}
}

var categoryByCode = map[string]ErrorCategory{
	domain.ErrCodeInvalidInput:        ErrorCategoryInput,
	domain.ErrCodeUnsupportedLanguage: ErrorCategoryInput,
	domain.ErrCodeContentTooLarge:     ErrorCategoryInput,
	domain.ErrCodeFileNotFound:        ErrorCategoryInput,
	domain.ErrCodeConfigError:         ErrorCategoryConfig,
	domain.ErrCodeUnsupportedFormat:   ErrorCategoryConfig,
	domain.ErrCodeStorageError:        ErrorCategoryStorage,
	domain.ErrCodeOutputError:         ErrorCategoryOutput,
	domain.ErrCodeEmbeddingError:      ErrorCategoryEmbedding,
}

// Categorize determines the category of an error
func (ec *ErrorCategorizer) Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	category := ErrorCategoryUnknown
	if c, ok := categoryByCode[domain.ErrorCode(err)]; ok {
		category = c
	} else if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		category = ErrorCategoryTimeout
	}

	return &CategorizedError{
		Category: category,
		Message:  categoryMessages[category],
		Original: err,
	}
}

var categoryMessages = map[ErrorCategory]string{
	ErrorCategoryInput:     "The submitted code or paths could not be used",
	ErrorCategoryConfig:    "Configuration file or settings error",
	ErrorCategoryStorage:   "The corpus store could not be read or written",
	ErrorCategoryTimeout:   "The operation was cancelled or timed out",
	ErrorCategoryOutput:    "Failed to generate or write output",
	ErrorCategoryEmbedding: "The embedding provider could not be created",
	ErrorCategoryUnknown:   "An unexpected error occurred",
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizer) GetRecoverySuggestions(category ErrorCategory) []string {
	switch category {
	case ErrorCategoryInput:
		return []string{
			"Check that the files exist and contain text source code",
			"Pass --language explicitly if detection picks the wrong language",
			"Run: plagscan languages to list supported language tags",
		}
	case ErrorCategoryConfig:
		return []string{
			"Try: plagscan init to generate a valid .plagscan.toml",
			"Check fusion weights sum to 1.0 and risk thresholds are ordered",
		}
	case ErrorCategoryStorage:
		return []string{
			"Check the corpus path is writable",
			"Try --store memory to run without a persistent corpus",
		}
	case ErrorCategoryTimeout:
		return []string{"Raise semantic.timeout_seconds or compare smaller inputs"}
	case ErrorCategoryOutput:
		return []string{"Use --format text, json, yaml or csv", "Check write permissions for the output path"}
	case ErrorCategoryEmbedding:
		return []string{
			"Check the API key for the configured provider",
			"Use --embedding-provider local to work offline",
		}
	default:
		return []string{"Run with --verbose for detailed error information"}
	}
}
