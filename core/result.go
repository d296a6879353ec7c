package core

// Result is the terminal output of one orchestration request, owned by the
// process runner / front door boundary.
type Result struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SearchResult represents a retrieved memory record with a relevance score
// and arbitrary metadata. Results are ordered most relevant first.
type SearchResult struct {
	ID       string
	Content  string
	Score    float64
	Metadata map[string]any
}
