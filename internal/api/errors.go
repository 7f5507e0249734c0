package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error taxonomy for backend responses. Commands detect these with errors.As
// and decide what the user sees: an AuthError forces re-login, a
// ValidationError is shown inline, a NetworkError becomes a generic
// connectivity message, and a NotFoundError a full error state.

// AuthError is any 401 from the backend. The stored token is expected to be
// cleared at the call site, not inside the client.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

// ValidationError is a 4xx response carrying a message body.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected (HTTP %d)", e.Status)
	}
	return e.Message
}

// NotFoundError is a 404 for a specific resource, typically a trip id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

// NetworkError wraps a transport failure where no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "could not reach the server: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// apiMessage extracts a human-readable message from an error response body.
// The backend emits {"detail": ...} (sometimes a list of field errors);
// older versions used "error" or "message".
func apiMessage(body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return strings.TrimSpace(string(body))
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	var fields []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &fields); err == nil && len(fields) > 0 {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Msg != "" {
				msgs = append(msgs, f.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(envelope.Detail))
}
