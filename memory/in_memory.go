package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/revoshq/holygrail/core"
)

// storedRecord is the internal representation persisted by InMemoryService.
type storedRecord struct {
	id       string
	content  string
	metadata map[string]any
}

// InMemoryService is a process-local Service keyed by scope key. Search is a
// case-insensitive substring scan scoring hits by matched-term count, which
// is enough for tests and local demos; production wiring uses the Mem0
// backend instead.
//
// Concurrency: protected by RWMutex.
type InMemoryService struct {
	mu      sync.RWMutex
	records map[string][]storedRecord // scopeKey -> append-only records
}

// NewInMemoryService creates an empty in-memory memory service.
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{records: make(map[string][]storedRecord)}
}

// Add appends a record under scopeKey.
func (s *InMemoryService) Add(_ context.Context, scopeKey, content string, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("mem_%d", len(s.records[scopeKey]))
	s.records[scopeKey] = append(s.records[scopeKey], storedRecord{id: id, content: content, metadata: metadata})
	return nil
}

// Search scans records under scopeKey only. Records under any other key are
// never visible, whatever the query.
func (s *InMemoryService) Search(_ context.Context, scopeKey, query string, limit int) ([]core.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultRecallLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	results := make([]core.SearchResult, 0, limit)
	for _, rec := range s.records[scopeKey] {
		score := matchScore(strings.ToLower(rec.content), terms)
		if score == 0 {
			continue
		}
		md := make(map[string]any, len(rec.metadata))
		for k, v := range rec.metadata {
			md[k] = v
		}
		results = append(results, core.SearchResult{ID: rec.id, Content: rec.content, Score: score, Metadata: md})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// matchScore counts matched query terms; an empty query matches everything
// with a constant score.
func matchScore(content string, terms []string) float64 {
	if len(terms) == 0 {
		return 1.0
	}
	var hits int
	for _, t := range terms {
		if strings.Contains(content, t) {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	return float64(hits) / float64(len(terms))
}
