package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMem0Client_Add(t *testing.T) {
	var captured mem0AddRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/memories/", r.URL.Path)
		assert.Equal(t, "Token test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewMem0Client("test-key", func(o *Mem0Options) { o.BaseURL = srv.URL })
	err := client.Add(context.Background(), "podA::user1", "prefers morning posts", nil)
	require.NoError(t, err)

	assert.Equal(t, "podA::user1", captured.UserID)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "prefers morning posts", captured.Messages[0].Content)
}

func TestMem0Client_SearchFiltersByScopeKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/memories/search/", r.URL.Path)
		var req mem0SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"user_id": "podA::user1"}, req.Filters)
		assert.Equal(t, 5, req.Limit)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]mem0Record{
			{ID: "m1", Memory: "User's lucky number is 73", Score: 0.91},
		})
	}))
	defer srv.Close()

	client := NewMem0Client("test-key", func(o *Mem0Options) { o.BaseURL = srv.URL })
	results, err := client.Search(context.Background(), "podA::user1", "lucky number", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "User's lucky number is 73", results[0].Content)
	assert.InDelta(t, 0.91, results[0].Score, 1e-9)
}

func TestMem0Client_SearchEnvelopeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []mem0Record{
				{ID: "m1", Memory: "User's lucky number is 73", Score: 0.91},
				{ID: "m2", Memory: "prefers morning posts", Score: 0.52},
			},
		})
	}))
	defer srv.Close()

	client := NewMem0Client("test-key", func(o *Mem0Options) { o.BaseURL = srv.URL })
	results, err := client.Search(context.Background(), "podA::user1", "lucky number", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "User's lucky number is 73", results[0].Content)
}

func TestDecodeSearchResponse(t *testing.T) {
	records, err := decodeSearchResponse([]byte(`[{"id":"m1","memory":"a"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = decodeSearchResponse([]byte(`{"results":[{"id":"m1","memory":"a"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = decodeSearchResponse([]byte(`{"results":[]}`))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = decodeSearchResponse([]byte(`"nonsense"`))
	assert.Error(t, err)
}

func TestMem0Client_TransportErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewMem0Client("test-key", func(o *Mem0Options) { o.BaseURL = srv.URL })
		err := client.Add(context.Background(), "pod::u", "content", nil)
		assert.Error(t, err)
		_, err = client.Search(context.Background(), "pod::u", "q", 5)
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewMem0Client("test-key", func(o *Mem0Options) {
			o.BaseURL = srv.URL
			o.Timeout = 20 * time.Millisecond
		})
		err := client.Add(context.Background(), "pod::u", "content", nil)
		assert.Error(t, err)
	})
}
