package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/insights/internal/errors"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeLayoutInvalid    = "LAYOUT_INVALID"
	ErrCodeFilterInvalid    = "FILTER_INVALID"
	ErrCodeRefreshFailed    = "REFRESH_FAILED"
	ErrCodeShortcutInvalid  = "SHORTCUT_INVALID"
	ErrCodeStoreFailed      = "STORE_FAILED"
	ErrCodeRevisionNotFound = "REVISION_NOT_FOUND"
	ErrCodeUnknown          = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var insightsErr *errors.Error
	if stderrors.As(err, &insightsErr) {
		return &JSONError{
			Code:       mapErrorCode(insightsErr.Code, insightsErr.Message),
			Message:    insightsErr.Message,
			Suggestion: insightsErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	msgLower := strings.ToLower(message)
	notFound := strings.Contains(msgLower, "not found")

	switch internalCode {
	case errors.ErrConfig:
		if notFound {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrLayout:
		return ErrCodeLayoutInvalid
	case errors.ErrFilter:
		return ErrCodeFilterInvalid
	case errors.ErrRefresh:
		return ErrCodeRefreshFailed
	case errors.ErrShortcut:
		return ErrCodeShortcutInvalid
	case errors.ErrStore:
		if notFound && strings.Contains(msgLower, "revision") {
			return ErrCodeRevisionNotFound
		}
		return ErrCodeStoreFailed
	}

	return ErrCodeUnknown
}
