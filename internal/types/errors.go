package types

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a non-success response from an upstream HTTP API
type APIError struct {
	Service    string
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.Service, e.StatusCode, e.Reason)
}

// NewAPIError builds an APIError from a response, taking the reason phrase
// from the status line and falling back to the standard text for the code.
func NewAPIError(service string, resp *http.Response) *APIError {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		Service:    service,
		StatusCode: resp.StatusCode,
		Reason:     reason,
	}
}

// IsSuccess reports whether code is a 2xx status
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
