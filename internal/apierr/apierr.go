// Package apierr normalizes the backend's error payloads into a single
// shape. The backend emits several variants: a top-level message, a string
// detail, or a detail object carrying message and hint.
package apierr

import (
	"encoding/json"
	"strings"
)

// APIError is the normalized view of a backend error body. Every field is
// always present; optional parts are empty strings, never absent.
type APIError struct {
	Message   string `json:"message"`
	Hint      string `json:"hint"`
	RequestID string `json:"request_id"`
}

// Error implements the error interface so backend calls can surface an
// APIError directly.
func (e *APIError) Error() string {
	return Format(*e)
}

// Parse produces an APIError from an arbitrary decoded JSON error body.
// Resolution order for the message: top-level "message", else "detail"
// when it is a string, else "detail.message" when detail is an object,
// else a JSON dump of detail, else the fallback. Never fails.
func Parse(data any, fallbackMessage string) APIError {
	body, ok := data.(map[string]any)
	if !ok || body == nil {
		return APIError{Message: fallbackMessage}
	}

	detailMessage := ""
	detailHint := ""
	switch detail := body["detail"].(type) {
	case string:
		detailMessage = detail
	case map[string]any:
		detailMessage = stringField(detail, "message")
		if detailMessage == "" {
			if dump, err := json.Marshal(detail); err == nil {
				detailMessage = string(dump)
			}
		}
		detailHint = stringField(detail, "hint")
	}

	message := stringField(body, "message")
	if message == "" {
		message = detailMessage
	}
	if message == "" {
		message = fallbackMessage
	}

	hint := stringField(body, "hint")
	if hint == "" {
		hint = detailHint
	}

	return APIError{
		Message:   message,
		Hint:      hint,
		RequestID: stringField(body, "request_id"),
	}
}

// Format joins the message with "hint:" and "request_id:" segments,
// omitting empty segments entirely.
func Format(e APIError) string {
	parts := []string{e.Message}
	if e.Hint != "" {
		parts = append(parts, "hint: "+e.Hint)
	}
	if e.RequestID != "" {
		parts = append(parts, "request_id: "+e.RequestID)
	}
	return strings.Join(parts, " | ")
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
