package memory

import (
	"context"

	"github.com/revoshq/holygrail/core"
)

// DefaultRecallLimit bounds a similarity search when the caller does not
// supply a limit.
const DefaultRecallLimit = 5

// Service persists and retrieves memory records partitioned by scope key.
// Records are created by explicit saves only, are immutable thereafter, and
// are retained until the backing service's own retention policy acts; no
// update or delete operation is exposed here.
type Service interface {
	// Add appends a record under scopeKey.
	Add(ctx context.Context, scopeKey, content string, metadata map[string]any) error

	// Search issues a similarity search constrained to scopeKey, returning
	// results ordered most relevant first. An empty result is not an error.
	Search(ctx context.Context, scopeKey, query string, limit int) ([]core.SearchResult, error)
}
