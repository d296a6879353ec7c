// Package tool implements the function-calling subsystem exposed to the
// agent: schema-validated callables with consistent error handling, a closed
// side-effect taxonomy, and a registry that builds the per-request tool set.
package tool

import (
	"fmt"

	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/internal/util"
)

// SideEffectClass categorizes what a tool may do to external state.
type SideEffectClass string

const (
	// SideEffectRead marks a tool that only reads data.
	SideEffectRead SideEffectClass = "read"
	// SideEffectWriteSafe marks a mutating tool whose created state is always
	// left in a non-terminal status pending separate confirmation. There is
	// no write-unsafe class in this registry: a confused or adversarial
	// agent must never be able to activate or publish content directly.
	SideEffectWriteSafe SideEffectClass = "write-safe"
)

// Tool defines a callable capability exposed to the model with a declared
// input contract.
//
// Implementations should provide clear names and descriptions (the model
// reads them to decide when to call), define a proper JSON schema for
// parameters, and handle errors gracefully.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case).
	Name() string

	// Description returns the description provided to the model.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// SideEffect classifies the tool's effect on external state.
	SideEffect() SideEffectClass

	// Call executes the tool with validated arguments and the owning
	// request's ToolContext.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// ValidationError re-exports the argument validation error type.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
