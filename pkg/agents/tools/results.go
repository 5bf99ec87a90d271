package tools

import (
	"encoding/json"
	"fmt"
)

// JSONResult creates a structured JSON result from any payload.
func JSONResult(payload any) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload)}},
		Details: toMap(payload),
	}
}

// ErrorResult creates an error result.
// Errors are reported in the envelope rather than returned.
func ErrorResult(toolName, message string) *Result {
	return &Result{
		Status:  ResultError,
		Content: []ContentBlock{{Type: "text", Text: message}},
		Details: map[string]any{"tool": toolName, "error": message},
		Error:   message,
	}
}

// CodedErrorResult creates an error result carrying a machine-readable code.
// The text block holds {"error": code, "message": message} as JSON.
func CodedErrorResult(toolName, code, message string, extra map[string]any) *Result {
	payload := map[string]any{"error": code, "message": message}
	details := map[string]any{"tool": toolName, "error": code, "message": message}
	for k, v := range extra {
		details[k] = v
	}
	return &Result{
		Status:  ResultError,
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload)}},
		Details: details,
		Error:   message,
	}
}

// mustJSON marshals payload to JSON, returning error message on failure.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal: %s"}`, err.Error())
	}
	return string(data)
}

// toMap converts a struct to map[string]any for Details field.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// IsError returns true if the result indicates an error.
func (r *Result) IsError() bool {
	return r.Status == ResultError
}
