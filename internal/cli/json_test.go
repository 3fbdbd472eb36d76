package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]string{"key": "value"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_NilDataOmitted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, nil))
	assert.NotContains(t, buf.String(), `"data"`)
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestWriteJSONFromError_Structured(t *testing.T) {
	var buf bytes.Buffer

	err := errors.New(errors.ErrLayout, "Unknown section 'charts'", "Run 'insights sections list'.")
	require.NoError(t, WriteJSONFromError(&buf, err))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeLayoutInvalid, env.Error.Code)
	assert.Equal(t, "Unknown section 'charts'", env.Error.Message)
	assert.Equal(t, "Run 'insights sections list'.", env.Error.Suggestion)
}

func TestErrorToJSON(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))

	plain := ErrorToJSON(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeUnknown, plain.Code)
	assert.Equal(t, "boom", plain.Message)

	// Wrapped structured errors are still found.
	inner := errors.New(errors.ErrFilter, "bad range", "")
	wrapped := ErrorToJSON(fmt.Errorf("campaigns: %w", inner))
	assert.Equal(t, ErrCodeFilterInvalid, wrapped.Code)
	assert.Equal(t, "bad range", wrapped.Message)
}

func TestMapErrorCode(t *testing.T) {
	tests := []struct {
		code    string
		message string
		want    string
	}{
		{errors.ErrConfig, "Config file not found: x.yaml", ErrCodeConfigNotFound},
		{errors.ErrConfig, "Invalid refresh interval", ErrCodeConfigInvalid},
		{errors.ErrLayout, "Unknown section", ErrCodeLayoutInvalid},
		{errors.ErrFilter, "Invalid revenue range", ErrCodeFilterInvalid},
		{errors.ErrRefresh, "Dataset reload failed", ErrCodeRefreshFailed},
		{errors.ErrShortcut, "Shortcut already bound", ErrCodeShortcutInvalid},
		{errors.ErrStore, "Revision abc not found", ErrCodeRevisionNotFound},
		{errors.ErrStore, "Couldn't open layout database", ErrCodeStoreFailed},
		{"SOMETHING", "whatever", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorCode(tt.code, tt.message))
		})
	}
}
