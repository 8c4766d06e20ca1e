// Package errors provides the error taxonomy shared by the domain services and
// its mapping onto BPMN errors and job failures.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeResourceNotFound   ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"
	ErrCodeGenerationFailed   ErrorCode = "GENERATION_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeTransactionFailed        ErrorCode = "TRANSACTION_FAILED"
	ErrCodeLockNotAcquired          ErrorCode = "LOCK_NOT_ACQUIRED"
	ErrCodeEventPublishFailed       ErrorCode = "EVENT_PUBLISH_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

const genericRetryMessage = "Something went wrong while generating content. Please try again."

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// IsClientError reports whether the caller can fix the request.
func (e *StandardError) IsClientError() bool {
	switch e.Code {
	case ErrCodeResourceNotFound, ErrCodePreconditionFailed, ErrCodeValidationFailed:
		return true
	}
	return false
}

// UserMessage is the text safe to show an end user. Generation failures
// never leak details.
func (e *StandardError) UserMessage() string {
	if e.Code == ErrCodeGenerationFailed {
		return genericRetryMessage
	}
	if e.IsClientError() {
		return e.Message
	}
	return "Internal error"
}

// WithMetadata returns e after merging the given key.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewResourceNotFoundError reports a missing startup, work item, template or catalog entry.
func NewResourceNotFoundError(resource, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("%s not found", resource), details, false, nil)
}

// NewPreconditionFailedError reports missing prerequisite data, e.g. no capsule proposal.
func NewPreconditionFailedError(message, details string) *StandardError {
	return newError(ErrCodePreconditionFailed, message, details, false, nil)
}

// NewGenerationFailedError wraps an unusable AI response. The raw text belongs in logs, not here.
func NewGenerationFailedError(details string, cause error) *StandardError {
	return newError(ErrCodeGenerationFailed, "AI generation failed", details, false, cause)
}

func NewValidationFailedError(message, details string) *StandardError {
	return newError(ErrCodeValidationFailed, message, details, false, nil)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true, err)
}

func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err)
}

func NewTransactionFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeTransactionFailed, "Transaction rolled back",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true, err)
}

// NewLockNotAcquiredError is returned while another generation for the same startup holds the lock.
func NewLockNotAcquiredError(key string) *StandardError {
	return newError(ErrCodeLockNotAcquired, "Another generation is in progress for this startup",
		fmt.Sprintf("lock: %s", key), true, nil)
}

func NewEventPublishFailedError(eventType string, err error) *StandardError {
	return newError(ErrCodeEventPublishFailed, "Event publish failed",
		fmt.Sprintf("event: %s, error: %s", eventType, err.Error()), true, err)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes modelled in the BPMN diagrams.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeResourceNotFound:         "NOT_FOUND",
	ErrCodePreconditionFailed:       "PRECONDITION_FAILED",
	ErrCodeGenerationFailed:         "GENERATION_FAILED",
	ErrCodeValidationFailed:         "VALIDATION_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeTransactionFailed:        "TRANSACTION_FAILED",
	ErrCodeLockNotAcquired:          "LOCK_NOT_ACQUIRED",
	ErrCodeEventPublishFailed:       "EVENT_PUBLISH_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeTransactionFailed,
		ErrCodeEventPublishFailed,
		ErrCodeNotificationSendFailed:
		return 3
	case ErrCodeLockNotAcquired:
		return 5
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.UserMessage(),
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "PRECONDITION"), strings.Contains(codeStr, "VALIDATION"):
		return "CLIENT"
	case strings.Contains(codeStr, "GENERATION"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE"), strings.Contains(codeStr, "QUERY"),
		strings.Contains(codeStr, "TRANSACTION"), strings.Contains(codeStr, "LOCK"):
		return "DATABASE"
	case strings.Contains(codeStr, "EVENT"), strings.Contains(codeStr, "NOTIFICATION"):
		return "MESSAGING"
	default:
		return "OTHER"
	}
}
