package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// CodedError is the structured error type for amanlaunch.
type CodedError struct {
	// Code is the unique error code (e.g., "ERR_205_CORRUPT_INDEX").
	Code string

	// Message is the human-readable error message.
	Message string

	Category Category
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *CodedError) Unwrap() error {
	return e.Cause
}

// LogValue renders the error as a group so logs keep the cause that
// Error leaves out.
func (e *CodedError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", e.Code),
		slog.String("message", e.Message),
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	return slog.GroupValue(attrs...)
}

// Is matches another CodedError by code, so errors.Is works against the
// sentinel values below.
func (e *CodedError) Is(target error) bool {
	if t, ok := target.(*CodedError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *CodedError) WithDetail(key, value string) *CodedError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *CodedError) WithSuggestion(suggestion string) *CodedError {
	e.Suggestion = suggestion
	return e
}

// New creates a new CodedError. Category and severity are derived from the code.
func New(code string, message string, cause error) *CodedError {
	return &CodedError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a CodedError from an existing error, reusing its message.
func Wrap(code string, err error) *CodedError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinels for errors.Is checks.
var (
	ErrCorruptIndex = &CodedError{Code: ErrCodeCorruptIndex}
	ErrIndexSave    = &CodedError{Code: ErrCodeIndexSave}
	ErrHistoryLoad  = &CodedError{Code: ErrCodeHistoryLoad}
	ErrHistorySave  = &CodedError{Code: ErrCodeHistorySave}
	ErrQueryEmpty   = &CodedError{Code: ErrCodeQueryEmpty}
	ErrInvalidKind  = &CodedError{Code: ErrCodeInvalidKind}
	ErrIndexBusy    = &CodedError{Code: ErrCodeIndexBusy}
)

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *CodedError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// CorruptIndexError reports an index file that exists but cannot be decoded.
func CorruptIndexError(path string, cause error) *CodedError {
	return New(ErrCodeCorruptIndex, fmt.Sprintf("index file %s is unreadable", path), cause).
		WithDetail("path", path).
		WithSuggestion("run 'amanlaunch index' to rebuild it")
}

// IndexSaveError reports a failed index write. The previous file is left in place.
func IndexSaveError(path string, cause error) *CodedError {
	return New(ErrCodeIndexSave, fmt.Sprintf("failed to save index %s", path), cause).
		WithDetail("path", path)
}

// HistoryLoadError reports a history file that cannot be read or decoded.
func HistoryLoadError(path string, cause error) *CodedError {
	return New(ErrCodeHistoryLoad, fmt.Sprintf("history file %s is unreadable", path), cause).
		WithDetail("path", path)
}

// HistorySaveError reports a failed history write.
func HistorySaveError(path string, cause error) *CodedError {
	return New(ErrCodeHistorySave, fmt.Sprintf("failed to save history %s", path), cause).
		WithDetail("path", path)
}

// CrawlSubtreeError reports a directory the crawler could not walk.
func CrawlSubtreeError(path string, cause error) *CodedError {
	return New(ErrCodeCrawlSubtree, fmt.Sprintf("cannot walk %s", path), cause).
		WithDetail("path", path)
}

// FileAccessError reports a file whose metadata could not be read.
func FileAccessError(path string, cause error) *CodedError {
	return New(ErrCodeFileAccess, fmt.Sprintf("cannot stat %s", path), cause).
		WithDetail("path", path)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *CodedError {
	return New(ErrCodeInvalidInput, message, cause)
}

// IsWarning reports whether err is a CodedError that only degrades operation.
func IsWarning(err error) bool {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Severity == SeverityWarning
	}
	return false
}

// GetCode extracts the error code from a CodedError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// GetCategory extracts the category from a CodedError anywhere in the chain.
func GetCategory(err error) Category {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}
