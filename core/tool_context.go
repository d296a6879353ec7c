package core

import (
	"context"
	"fmt"

	"github.com/revoshq/holygrail/logging"
)

// ToolContext provides a constrained surface for tool implementations invoked
// by the agent. It binds a tool invocation to the owning request's scope so a
// tool never needs (and never receives) a caller-supplied scope key: the
// model decides when tools run, not the orchestrator's call site, so the
// scope must travel ambiently with the request.
type ToolContext struct {
	ctx            context.Context
	scope          *RequestScope
	functionCallID string
}

// NewToolContext constructs a tool context bound to a request scope and the
// model-assigned function call id.
func NewToolContext(ctx context.Context, scope *RequestScope, functionCallID string) *ToolContext {
	return &ToolContext{ctx: ctx, scope: scope, functionCallID: functionCallID}
}

// Context returns the cancellation context for the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// Scope returns the owning request's execution scope.
func (tc *ToolContext) Scope() *RequestScope { return tc.scope }

// ScopeKey returns the memory scope key of the owning request ("" when the
// scope was never set, which memory tools treat as an empty recall, never as
// access to another scope).
func (tc *ToolContext) ScopeKey() string {
	if tc.scope == nil {
		return ""
	}
	return tc.scope.ScopeKey
}

// Auth returns the caller's authentication context.
func (tc *ToolContext) Auth() AuthContext {
	if tc.scope == nil {
		return AuthContext{}
	}
	return tc.scope.Auth
}

// FunctionCallID returns the id correlating the model's call request with
// this execution.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }

// Logger returns the request-scoped logger.
func (tc *ToolContext) Logger() logging.Logger {
	if tc.scope == nil {
		return logging.NoOpLogger{}
	}
	return tc.scope.Logger()
}

// Validate performs a structural sanity check of the context.
func (tc *ToolContext) Validate() error {
	if tc.scope == nil || tc.scope.ScopeKey == "" || tc.functionCallID == "" {
		return fmt.Errorf("invalid ToolContext")
	}
	return nil
}
