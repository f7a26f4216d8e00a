// Package errors provides the error taxonomy shared by the menu engine and its job workers.
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
	ErrCodeFormat          ErrorCode = "FORMAT_ERROR"
	ErrCodeConfiguration   ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodePermission      ErrorCode = "PERMISSION_DENIED"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeStoreFailed     ErrorCode = "STORE_UNAVAILABLE"
	ErrCodePartialDeletion ErrorCode = "PARTIAL_DELETION"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"

	// ErrCodeRaceCondition names the last-write-wins anomaly on concurrent stock
	// toggles. It is part of the taxonomy for documentation and is never returned.
	ErrCodeRaceCondition ErrorCode = "RACE_CONDITION_ANOMALY"
)

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
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches any StandardError carrying the same code, so callers can write
// errors.Is(err, errors.ErrFormat).
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns e after setting a metadata key.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Sentinels for errors.Is.
var (
	ErrFormat          = &StandardError{Code: ErrCodeFormat}
	ErrConfiguration   = &StandardError{Code: ErrCodeConfiguration}
	ErrNotFound        = &StandardError{Code: ErrCodeNotFound}
	ErrPermission      = &StandardError{Code: ErrCodePermission}
	ErrInvalidInput    = &StandardError{Code: ErrCodeInvalidInput}
	ErrStoreFailed     = &StandardError{Code: ErrCodeStoreFailed}
	ErrPartialDeletion = &StandardError{Code: ErrCodePartialDeletion}
)

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Zeebe workflow engine.
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

// ToErrorVariables returns a map suitable for setting job fail variables.
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

// NewFormatError reports a malformed date or time string.
func NewFormatError(field, value, expected string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFormat,
		Message:   fmt.Sprintf("malformed %s", field),
		Details:   fmt.Sprintf("value %q, expected %s", value, expected),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field, "value": value},
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError reports an unknown role or missing branch context.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "invalid caller context",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError reports a missing item or seasonal menu.
func NewNotFoundError(kind, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", kind),
		Details:   fmt.Sprintf("%sId: %s", kind, id),
		Retryable: false,
		Metadata:  map[string]interface{}{"kind": kind, "id": id},
		Timestamp: time.Now().UTC(),
	}
}

// NewPermissionDeniedError reports a role lacking a mutation capability.
func NewPermissionDeniedError(role, capability string) *StandardError {
	return &StandardError{
		Code:      ErrCodePermission,
		Message:   "operation not permitted for role",
		Details:   fmt.Sprintf("role: %s, capability: %s", role, capability),
		Retryable: false,
		Metadata:  map[string]interface{}{"role": role, "capability": capability},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError reports job variables that fail schema or semantic checks.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreError wraps a driver failure. Store errors are the only retryable kind.
func NewStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFailed,
		Message:   fmt.Sprintf("store operation %s failed", op),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPartialDeletionError reports a seasonal menu whose items were detached but
// whose record could not be removed. Retrying the deletion converges.
func NewPartialDeletionError(menuID string, detached int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePartialDeletion,
		Message:   "seasonal menu items detached but menu record remains",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"seasonalMenuId": menuID, "detachedItems": detached},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps anything that does not fit the taxonomy.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreFailed:
		return 3
	case ErrCodePartialDeletion:
		return 2
	default:
		return 0
	}
}

// AsStandard unwraps err into a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Zeebe.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for log aggregation.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "FORMAT"), strings.Contains(codeStr, "INPUT"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CONFIGURATION"), strings.Contains(codeStr, "PERMISSION"):
		return "CALLER"
	case strings.Contains(codeStr, "STORE"), strings.Contains(codeStr, "DELETION"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	default:
		return "OTHER"
	}
}
