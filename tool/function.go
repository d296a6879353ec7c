package tool

import (
	"fmt"
	"time"

	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/internal/util"
)

// FunctionTool adapts a plain Go function into a Tool. It validates
// model-supplied arguments against the declared schema before execution and
// normalizes failures into *ToolError with consistent codes:
//
//	VALIDATION_ERROR -> schema / argument mismatch
//	EXECUTION_ERROR  -> underlying function returned a plain error
//	(custom codes are preserved when the function returns *ToolError itself)
//
// A FunctionTool has no internal mutable state after construction. The
// closures wrapped by the registry capture per-request state instead, so a
// FunctionTool instance lives exactly as long as the request that built it.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	sideEffect  SideEffectClass
	fn          func(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// NewFunctionTool constructs a read-class FunctionTool from an explicit
// schema and function.
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(toolCtx *core.ToolContext, args map[string]any) (any, error),
) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		sideEffect:  SideEffectRead,
		fn:          fn,
	}
}

// NewWriteSafeTool constructs a FunctionTool classified write-safe. The
// wrapped function must leave any created state in a non-terminal status.
func NewWriteSafeTool(
	name, description string,
	parameters map[string]any,
	fn func(toolCtx *core.ToolContext, args map[string]any) (any, error),
) *FunctionTool {
	t := NewFunctionTool(name, description, parameters, fn)
	t.sideEffect = SideEffectWriteSafe
	return t
}

// Name returns the unique tool name used in function call declarations.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the description exposed to the model.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// SideEffect classifies the tool's effect on external state.
func (t *FunctionTool) SideEffect() SideEffectClass { return t.sideEffect }

// Call checks the invocation context, validates args against the declared
// schema, then invokes the wrapped function, normalizing failures to
// *ToolError.
func (t *FunctionTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	logger := toolCtx.Logger()
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name, "fc_id", toolCtx.FunctionCallID())

	if err := toolCtx.Validate(); err != nil {
		logger.Warn("tool.call.bad_context", "tool", t.name, "error", err.Error())
		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		}
	}

	if err := util.ValidateParameters(args, t.parameters); err != nil {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())
		return nil, &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    "VALIDATION_ERROR",
			Details: err,
		}
	}

	result, err := t.fn(toolCtx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)
			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())
		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    "EXECUTION_ERROR",
		}
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())
	return result, nil
}
