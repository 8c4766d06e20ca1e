// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_UserMessage(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantMessage string
		wantClient  bool
	}{
		{
			name:        "not found keeps its message",
			err:         NewResourceNotFoundError("Startup", "startupId: 7"),
			wantMessage: "Startup not found",
			wantClient:  true,
		},
		{
			name:        "precondition keeps its message",
			err:         NewPreconditionFailedError("No capsule proposal found.", "startupId: 7"),
			wantMessage: "No capsule proposal found.",
			wantClient:  true,
		},
		{
			name:        "generation failure is generic",
			err:         NewGenerationFailedError("no JSON array in response", nil),
			wantMessage: genericRetryMessage,
			wantClient:  false,
		},
		{
			name:        "database errors are internal",
			err:         NewQueryExecutionFailedError("insert rns", fmt.Errorf("boom")),
			wantMessage: "Internal error",
			wantClient:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.err.UserMessage())
			assert.Equal(t, tt.wantClient, tt.err.IsClientError())
		})
	}
}

func TestAs_FindsWrappedStandardError(t *testing.T) {
	base := NewResourceNotFoundError("Template", "templateId: 3")
	wrapped := fmt.Errorf("reconcile: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.True(t, HasCode(wrapped, ErrCodeResourceNotFound))
	assert.False(t, HasCode(wrapped, ErrCodeGenerationFailed))
}

func TestStandardError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewTransactionFailedError("renumber", cause)
	assert.ErrorIs(t, err, cause)
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable error keeps retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewLockNotAcquiredError("lock:startup:1:task"))
		assert.Equal(t, "LOCK_NOT_ACQUIRED", bpmn.Code)
		assert.Equal(t, 5, bpmn.Retries)
		assert.True(t, bpmn.Retryable)
	})

	t.Run("business error has no retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewResourceNotFoundError("Startup", "startupId: 1"))
		assert.Equal(t, "NOT_FOUND", bpmn.Code)
		assert.Equal(t, 0, bpmn.Retries)

		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "RESOURCE_NOT_FOUND", vars["originalErrorCode"])
		assert.Equal(t, "Startup not found", vars["errorMessage"])
	})

	t.Run("generation failure hides details from message", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewGenerationFailedError("raw text", nil))
		assert.Equal(t, genericRetryMessage, bpmn.Message)
	})
}

func TestNormalize_UnknownError(t *testing.T) {
	stdErr := Normalize(stderrors.New("unexpected"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, "unexpected", stdErr.Details)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", GetErrorCategory(ErrCodeResourceNotFound))
	assert.Equal(t, "CLIENT", GetErrorCategory(ErrCodePreconditionFailed))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeGenerationFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeLockNotAcquired))
	assert.Equal(t, "MESSAGING", GetErrorCategory(ErrCodeEventPublishFailed))
}
