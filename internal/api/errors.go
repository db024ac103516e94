package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code != "" {
		return fmt.Sprintf("api error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// IsAuth reports whether the error is an authentication failure.
func (e *APIError) IsAuth() bool {
	return e != nil && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// parseAPIError builds an APIError from an HTTP error response. The body is
// expected to be JSON with code/message/error fields, but anything else is
// tolerated and kept as the message.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))),
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var parsed struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Err     string          `json:"error"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Code = parsed.Code
	switch {
	case parsed.Message != "":
		apiErr.Message = parsed.Message
	case parsed.Err != "":
		apiErr.Message = parsed.Err
	}

	if len(parsed.Details) != 0 && string(parsed.Details) != "null" {
		var s string
		if err := json.Unmarshal(parsed.Details, &s); err == nil {
			apiErr.Details = s
		} else {
			var compact bytes.Buffer
			if err := json.Compact(&compact, parsed.Details); err == nil {
				apiErr.Details = compact.String()
			} else {
				apiErr.Details = string(parsed.Details)
			}
		}
	}

	return apiErr
}
