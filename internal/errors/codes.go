// Package errors provides coded errors for amanlaunch.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (crawl, index and history persistence)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
//
// Nothing in the indexing or search core is fatal: every code here maps to
// degraded operation (empty or stale index, empty history) at worst.
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates filesystem and persistence errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityError indicates the operation failed but the process continues.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeFileNotFound   = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeCorruptIndex   = "ERR_205_CORRUPT_INDEX"
	ErrCodeIndexSave      = "ERR_207_INDEX_SAVE"
	ErrCodeHistoryLoad    = "ERR_208_HISTORY_LOAD"
	ErrCodeHistorySave    = "ERR_209_HISTORY_SAVE"
	ErrCodeCrawlSubtree   = "ERR_210_CRAWL_SUBTREE"
	ErrCodeFileAccess     = "ERR_211_FILE_ACCESS"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeQueryEmpty   = "ERR_404_QUERY_EMPTY"
	ErrCodeInvalidKind  = "ERR_407_INVALID_KIND"

	// Internal errors (500-599)
	ErrCodeInternal    = "ERR_501_INTERNAL"
	ErrCodeIndexFailed = "ERR_505_INDEX_FAILED"
	ErrCodeIndexBusy   = "ERR_506_INDEX_BUSY"
)

// categoryFromCode extracts the category from the hundreds digit of a code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Persistence load failures and per-file/per-subtree crawl failures fall
// back to empty data, so they are warnings.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeCorruptIndex, ErrCodeHistoryLoad, ErrCodeCrawlSubtree, ErrCodeFileAccess:
		return SeverityWarning
	}
	return SeverityError
}
