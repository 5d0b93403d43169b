package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FormatForUser returns a user-facing message. With debug set, details and
// the underlying cause are included.
func FormatForUser(err error, debug bool) string {
	if err == nil {
		return ""
	}

	var ce *CodedError
	if !errors.As(err, &ce) {
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(ce.Message)
	sb.WriteString("\n")

	if ce.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(ce.Suggestion)
		sb.WriteString("\n")
	}

	if debug {
		if len(ce.Details) > 0 {
			keys := make([]string, 0, len(ce.Details))
			for k := range ce.Details {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			sb.WriteString("\nDetails:\n")
			for _, k := range keys {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", k, ce.Details[k]))
			}
		}
		if ce.Cause != nil {
			sb.WriteString(fmt.Sprintf("\nCause: %v\n", ce.Cause))
		}
	}

	sb.WriteString(fmt.Sprintf("\n[%s]", ce.Code))
	return sb.String()
}

// jsonError is the wire shape used by FormatJSON.
type jsonError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Category   Category          `json:"category,omitempty"`
	Severity   Severity          `json:"severity,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
}

// FormatJSON renders err for --format json output.
func FormatJSON(err error) string {
	if err == nil {
		return ""
	}

	out := jsonError{Code: ErrCodeInternal, Message: err.Error()}
	var ce *CodedError
	if errors.As(err, &ce) {
		out = jsonError{
			Code:       ce.Code,
			Message:    ce.Message,
			Category:   ce.Category,
			Severity:   ce.Severity,
			Details:    ce.Details,
			Suggestion: ce.Suggestion,
		}
	}

	data, mErr := json.Marshal(out)
	if mErr != nil {
		return fmt.Sprintf(`{"code":%q,"message":%q}`, ErrCodeInternal, err.Error())
	}
	return string(data)
}
