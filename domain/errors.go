package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	ErrCodeContentTooLarge     = "CONTENT_TOO_LARGE"
	ErrCodeFileNotFound        = "FILE_NOT_FOUND"
	ErrCodeConfigError         = "CONFIG_ERROR"
	ErrCodeOutputError         = "OUTPUT_ERROR"
	ErrCodeStorageError        = "STORAGE_ERROR"
	ErrCodeUnsupportedFormat   = "UNSUPPORTED_FORMAT"
	ErrCodeEmbeddingError      = "EMBEDDING_ERROR"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// NewUnsupportedLanguageError creates an error for an unknown language tag
func NewUnsupportedLanguageError(tag string) error {
	return NewDomainError(ErrCodeUnsupportedLanguage, fmt.Sprintf("unsupported language: %q", tag), nil)
}

// NewContentTooLargeError creates an error for content over the size limit
func NewContentTooLargeError(field string, size, limit int) error {
	return NewDomainError(ErrCodeContentTooLarge,
		fmt.Sprintf("%s is %d bytes, limit is %d bytes", field, size, limit), nil)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewStorageError creates a corpus storage error
func NewStorageError(message string, cause error) error {
	return NewDomainError(ErrCodeStorageError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewEmbeddingError creates an embedding provider error.
// These never leave the semantic signal; they are logged and turned into a degraded result.
func NewEmbeddingError(message string, cause error) error {
	return NewDomainError(ErrCodeEmbeddingError, message, cause)
}

// ErrorCode returns the domain error code carried by err, or "" if there is none.
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsInputError reports whether err is a rejected-input error.
func IsInputError(err error) bool {
	switch ErrorCode(err) {
	case ErrCodeInvalidInput, ErrCodeUnsupportedLanguage, ErrCodeContentTooLarge:
		return true
	}
	return false
}
