// ABOUTME: Error types returned by the API client
// ABOUTME: Separates backend rejections from network failures for callers

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any APIError with a 401 status
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string // server-provided message, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Rejected reports whether the backend definitively refused the request
// (4xx) as opposed to failing on its side (5xx)
func (e *APIError) Rejected() bool {
	return e.Status >= 400 && e.Status < 500
}

// NetworkError means no response was received
type NetworkError struct {
	URL      string
	Err      error
	Canceled bool
	Timeout  bool
}

func (e *NetworkError) Error() string {
	switch {
	case e.Canceled:
		return "request canceled"
	case e.Timeout:
		return "request timed out"
	default:
		return fmt.Sprintf("cannot connect to backend at %s: %v", e.URL, e.Err)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// UserMessage returns the backend's message for err when there is one,
// otherwise the action-specific fallback
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// extractMessage pulls a human message from an error body: a JSON object's
// "message" or "error" field, a JSON string, or short plain text
func extractMessage(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '{':
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			if obj.Message != "" {
				return obj.Message
			}
			return obj.Error
		}
		return ""
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
		return ""
	case '<':
		// HTML error pages from proxies are not useful to show
		return ""
	}

	msg := string(trimmed)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return strings.TrimSpace(msg)
}
