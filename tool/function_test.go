package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revoshq/holygrail/core"
)

func newToolContext() *core.ToolContext {
	scope := core.NewRequestScope("pod", "user", core.AuthContext{}, nil, nil)
	return core.NewToolContext(context.Background(), scope, "fc-1")
}

var echoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text": map[string]any{"type": "string"},
	},
	"required": []string{"text"},
}

func TestFunctionTool_Success(t *testing.T) {
	tl := NewFunctionTool("echo", "Echo the input", echoSchema,
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args["text"], nil
		})

	assert.Equal(t, "echo", tl.Name())
	assert.Equal(t, SideEffectRead, tl.SideEffect())

	result, err := tl.Call(newToolContext(), map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestFunctionTool_ValidationError(t *testing.T) {
	tl := NewFunctionTool("echo", "Echo the input", echoSchema,
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args["text"], nil
		})

	_, err := tl.Call(newToolContext(), map[string]any{})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)

	_, err = tl.Call(newToolContext(), map[string]any{"text": 42})
	require.Error(t, err)
	toolErr = err.(*ToolError)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestFunctionTool_RejectsMalformedContext(t *testing.T) {
	tl := NewFunctionTool("echo", "Echo the input", echoSchema,
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args["text"], nil
		})

	// A context detached from any request scope must never reach the
	// wrapped function.
	_, err := tl.Call(core.NewToolContext(context.Background(), nil, "fc-1"), map[string]any{"text": "hi"})
	require.Error(t, err)
	toolErr := err.(*ToolError)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)

	// Same for a missing function call id.
	scope := core.NewRequestScope("pod", "user", core.AuthContext{}, nil, nil)
	_, err = tl.Call(core.NewToolContext(context.Background(), scope, ""), map[string]any{"text": "hi"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*ToolError).Code)
}

func TestFunctionTool_ErrorWrapping(t *testing.T) {
	t.Run("plain error becomes EXECUTION_ERROR", func(t *testing.T) {
		tl := NewFunctionTool("boom", "Always fails", map[string]any{"type": "object", "properties": map[string]any{}},
			func(_ *core.ToolContext, _ map[string]any) (any, error) {
				return nil, errors.New("backend unavailable")
			})

		_, err := tl.Call(newToolContext(), map[string]any{})
		require.Error(t, err)
		toolErr := err.(*ToolError)
		assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
		assert.Equal(t, "backend unavailable", toolErr.Message)
	})

	t.Run("ToolError passes through unchanged", func(t *testing.T) {
		custom := NewToolError("boom", "rate limited", "RATE_LIMITED")
		tl := NewFunctionTool("boom", "Always fails", map[string]any{"type": "object", "properties": map[string]any{}},
			func(_ *core.ToolContext, _ map[string]any) (any, error) {
				return nil, custom
			})

		_, err := tl.Call(newToolContext(), map[string]any{})
		assert.Same(t, custom, err)
	})
}

func TestWriteSafeTool_Classification(t *testing.T) {
	tl := NewWriteSafeTool("create_thing", "Create a draft thing", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ *core.ToolContext, _ map[string]any) (any, error) { return nil, nil })
	assert.Equal(t, SideEffectWriteSafe, tl.SideEffect())
}
