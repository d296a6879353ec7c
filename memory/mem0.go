package memory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/revoshq/holygrail/core"
)

const defaultMem0BaseURL = "https://api.mem0.ai"

// Mem0Options configure the Mem0 client.
type Mem0Options struct {
	// BaseURL overrides the hosted Mem0 endpoint (used in tests).
	BaseURL string
	// Timeout bounds every request to the memory backend.
	Timeout time.Duration
}

// Mem0Client implements Service against the hosted Mem0 API. The client is
// stateless with respect to scope and safe to share across requests; the
// scope key travels with every call.
type Mem0Client struct {
	rest *resty.Client
}

// NewMem0Client constructs a client authenticated with the given API key.
func NewMem0Client(apiKey string, optFns ...func(o *Mem0Options)) *Mem0Client {
	opts := Mem0Options{
		BaseURL: defaultMem0BaseURL,
		Timeout: 10 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	rest := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Authorization", "Token "+apiKey).
		SetHeader("Content-Type", "application/json")

	return &Mem0Client{rest: rest}
}

type mem0AddRequest struct {
	Messages []mem0Message  `json:"messages"`
	UserID   string         `json:"user_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type mem0Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// mem0SearchRequest targets the v2 search API, which requires a filters
// object rather than a bare user_id parameter.
type mem0SearchRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters"`
	Limit   int            `json:"limit"`
}

type mem0Record struct {
	ID       string         `json:"id"`
	Memory   string         `json:"memory"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// Add appends a record under scopeKey.
func (c *Mem0Client) Add(ctx context.Context, scopeKey, content string, metadata map[string]any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(mem0AddRequest{
			Messages: []mem0Message{{Role: core.RoleUser, Content: content}},
			UserID:   scopeKey,
			Metadata: metadata,
		}).
		Post("/v1/memories/")
	if err != nil {
		return errors.Wrap(err, "mem0 add")
	}
	if resp.IsError() {
		return errors.Errorf("mem0 add: unexpected status %s", resp.Status())
	}
	return nil
}

// Search issues a filtered similarity search constrained to scopeKey.
func (c *Mem0Client) Search(ctx context.Context, scopeKey, query string, limit int) ([]core.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultRecallLimit
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(mem0SearchRequest{
			Query:   query,
			Filters: map[string]any{"user_id": scopeKey},
			Limit:   limit,
		}).
		Post("/v2/memories/search/")
	if err != nil {
		return nil, errors.Wrap(err, "mem0 search")
	}
	if resp.IsError() {
		return nil, errors.Errorf("mem0 search: unexpected status %s", resp.Status())
	}

	records, err := decodeSearchResponse(resp.Body())
	if err != nil {
		return nil, err
	}

	results := make([]core.SearchResult, 0, len(records))
	for _, r := range records {
		results = append(results, core.SearchResult{
			ID:       r.ID,
			Content:  r.Memory,
			Score:    r.Score,
			Metadata: r.Metadata,
		})
	}
	return results, nil
}

// decodeSearchResponse accepts both shapes the search endpoint has answered
// with across API versions: a bare record array and a {"results": [...]}
// envelope.
func decodeSearchResponse(body []byte) ([]mem0Record, error) {
	var records []mem0Record
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Results []mem0Record `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "mem0 search: decode response")
	}
	return envelope.Results, nil
}
