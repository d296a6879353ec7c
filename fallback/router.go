package fallback

import (
	"context"
	"strings"

	"github.com/revoshq/holygrail/core"
)

// Handler answers one routed message directly, without the agent. Handlers
// return user-facing text; only infrastructure-level failures (not auth or
// data gaps, which map to user-facing guidance) surface as errors.
type Handler func(ctx context.Context, scope *core.RequestScope, message string) (string, error)

// Rule binds an intent to its trigger keywords and handler. Matching is a
// case-insensitive substring check over the raw user message.
type Rule struct {
	Name     string
	Keywords []string
	Handler  Handler
}

// Matches reports whether the message contains any of the rule's keywords.
func (r Rule) Matches(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Router evaluates rules in declaration order and dispatches the first match.
type Router struct {
	rules []Rule
}

// NewRouter builds a router over the given rule table.
func NewRouter(rules ...Rule) *Router {
	return &Router{rules: rules}
}

// Match returns the first rule triggered by the message, if any.
func (rt *Router) Match(message string) (Rule, bool) {
	for _, r := range rt.rules {
		if r.Matches(message) {
			return r, true
		}
	}
	return Rule{}, false
}

// Route dispatches the message to the first matching rule. The second return
// reports whether any rule matched; a false means the caller should fall
// through to the agent.
func (rt *Router) Route(ctx context.Context, scope *core.RequestScope, message string) (string, bool, error) {
	rule, ok := rt.Match(message)
	if !ok {
		return "", false, nil
	}
	scope.Logger().Info("fallback.route", "rule", rule.Name)
	text, err := rule.Handler(ctx, scope, message)
	return text, true, err
}
