package cloudformation

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

var (
	// ErrStackNotFound is returned when the stack does not exist.
	ErrStackNotFound = errors.New("stack not found")

	// ErrStackFailed is returned when a stack operation ends in a failure
	// or rollback status.
	ErrStackFailed = errors.New("stack operation failed")

	// ErrStackBusy is returned when the stack is mid-operation and cannot
	// accept another change.
	ErrStackBusy = errors.New("stack operation in progress")
)

const validationErrorCode = "ValidationError"

// IsNoUpdates reports whether err is CloudFormation's "No updates are to be
// performed." response to UpdateStack.
func IsNoUpdates(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == validationErrorCode &&
		strings.Contains(apiErr.ErrorMessage(), "No updates are to be performed")
}

// IsStackNotFound reports whether err means the stack does not exist.
func IsStackNotFound(err error) bool {
	if errors.Is(err, ErrStackNotFound) {
		return true
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.ErrorCode() == validationErrorCode &&
		strings.Contains(apiErr.ErrorMessage(), "does not exist")
}

// isThrottled reports whether err is worth retrying.
func isThrottled(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "Throttling", "ThrottlingException", "RequestLimitExceeded":
		return true
	}
	return false
}
