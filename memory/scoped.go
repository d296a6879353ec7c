package memory

import (
	"context"

	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/logging"
)

// Scoped exposes the two memory operations available to tools, bound to one
// request's scope key. A Scoped instance is constructed fresh per request
// alongside the tool closures that use it.
type Scoped struct {
	svc   Service
	scope *core.RequestScope
}

// NewScoped binds a memory service to a request scope.
func NewScoped(svc Service, scope *core.RequestScope) *Scoped {
	return &Scoped{svc: svc, scope: scope}
}

// Remember appends a record scoped to the current key and returns a
// confirmation containing the literal content saved. It never returns an
// error: transport failures come back as a failure result object so the
// agent loop can continue gracefully.
func (s *Scoped) Remember(ctx context.Context, content string) map[string]any {
	key := s.scopeKey()
	if key == "" {
		s.logger().Error("memory.remember.no_scope")
		return map[string]any{"success": false, "error": "no memory scope set"}
	}

	if err := s.svc.Add(ctx, key, content, nil); err != nil {
		s.logger().Error("memory.remember.failed", "error", err.Error())
		return map[string]any{"success": false, "error": err.Error()}
	}

	s.logger().Debug("memory.remember.saved", "scope_key", key)
	return map[string]any{"success": true, "saved": content}
}

// Recall issues a similarity search constrained to the current scope key and
// returns record contents ordered by relevance. It returns an empty slice
// (never an error) when nothing matches, when the scope key is unset, or
// when the backend fails.
func (s *Scoped) Recall(ctx context.Context, query string, limit int) []string {
	key := s.scopeKey()
	if key == "" {
		s.logger().Error("memory.recall.no_scope")
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultRecallLimit
	}

	results, err := s.svc.Search(ctx, key, query, limit)
	if err != nil {
		s.logger().Error("memory.recall.failed", "error", err.Error())
		return []string{}
	}

	contents := make([]string, 0, len(results))
	for _, r := range results {
		contents = append(contents, r.Content)
	}
	return contents
}

func (s *Scoped) scopeKey() string {
	if s.scope == nil {
		return ""
	}
	return s.scope.ScopeKey
}

func (s *Scoped) logger() logging.Logger {
	if s.scope == nil {
		return logging.NoOpLogger{}
	}
	return s.scope.Logger()
}
