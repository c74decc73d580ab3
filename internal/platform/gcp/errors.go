package gcp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

// OperationError indicates a long-running compute operation finished with an
// error payload.
type OperationError struct {
	Name   string
	Errors []*compute.OperationErrorErrors
}

func (e *OperationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("operation %s failed", e.Name)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, opErr := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", opErr.Code, opErr.Message))
	}
	return fmt.Sprintf("operation %s failed: %s", e.Name, strings.Join(msgs, "; "))
}

// OperationTimeoutError indicates a long-running compute operation did not
// reach DONE within the configured deadline.
type OperationTimeoutError struct {
	Name string
}

func (e *OperationTimeoutError) Error() string {
	return fmt.Sprintf("operation %s timed out", e.Name)
}

// ReconciliationExhaustedError indicates a conflicting resource survived
// every removal attempt, so the study network cannot be brought to the
// desired state.
type ReconciliationExhaustedError struct {
	Project  string
	Resource string
}

func (e *ReconciliationExhaustedError) Error() string {
	return fmt.Sprintf("conflicting resource %s in project %s could not be removed", e.Resource, e.Project)
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isHTTPStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error indicates a conflicting concurrent change.
func IsConflict(err error) bool {
	return isHTTPStatus(err, http.StatusConflict)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return isHTTPStatus(err, http.StatusTooManyRequests)
}

// isTransient reports whether the error is worth retrying: rate limits,
// conflicts from in-flight operations, and server-side failures.
func isTransient(err error) bool {
	return isHTTPStatus(err,
		http.StatusTooManyRequests,
		http.StatusConflict,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	)
}

// isHTTPStatus checks if the error is a Google API error with one of the
// given HTTP status codes.
func isHTTPStatus(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}
