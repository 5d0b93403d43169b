package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{
			name:     "index busy",
			err:      amerrors.New(amerrors.ErrCodeIndexBusy, "crawl already running", nil),
			wantCode: ErrCodeIndexBusy,
			contains: "crawl already running",
		},
		{
			name:     "corrupt index maps to unavailable",
			err:      amerrors.CorruptIndexError("/data/files.idx", errors.New("bad magic")),
			wantCode: ErrCodeIndexUnavailable,
			contains: "files.idx",
		},
		{
			name:     "file not found",
			err:      amerrors.New(amerrors.ErrCodeFileNotFound, "gone", nil),
			wantCode: ErrCodeFileNotFound,
		},
		{
			name: "invalid kind is a validation error",
			err: amerrors.New(amerrors.ErrCodeInvalidKind, `unknown kind "x"`, nil).
				WithSuggestion("use all, file, app, workspace or command"),
			wantCode: ErrCodeInvalidParams,
			contains: "use all, file, app",
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("query: %w", amerrors.New(amerrors.ErrCodeIndexBusy, "busy", nil)),
			wantCode: ErrCodeIndexBusy,
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			wantCode: ErrCodeTimeout,
		},
		{
			name:     "canceled",
			err:      fmt.Errorf("search: %w", context.Canceled),
			wantCode: ErrCodeTimeout,
		},
		{
			name:     "plain error hides details",
			err:      errors.New("disk exploded at /secret"),
			wantCode: ErrCodeInternalError,
			contains: "Internal server error.",
		},
		{
			name:     "mcp error passes through",
			err:      NewInvalidParamsError("bad"),
			wantCode: ErrCodeInvalidParams,
			contains: "bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)

			assert.Equal(t, tt.wantCode, got.Code)
			assert.Contains(t, got.Message, tt.contains)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestMCPError_Error(t *testing.T) {
	err := NewMethodNotFoundError("launch")

	assert.Equal(t, "MCP error -32601: Tool 'launch' not found.", err.Error())
}
