package revos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revoshq/holygrail/core"
)

var testAuth = core.AuthContext{UserID: "user-1", BearerToken: "session-token"}

func TestClient_Campaigns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaigns", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.Query().Get("campaign_id"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CampaignList{
			Campaigns: []Campaign{{ID: "c1", Name: "AI Leadership", Status: "active", Leads: 10, Posts: 5}},
			Count:     1,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.Campaigns(context.Background(), testAuth)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "AI Leadership", list.Campaigns[0].Name)
}

func TestClient_CampaignByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c-42", r.URL.Query().Get("campaign_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CampaignList{Campaigns: []Campaign{{ID: "c-42"}}, Count: 1})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.CampaignByID(context.Background(), testAuth, "c-42")
	require.NoError(t, err)
	assert.Equal(t, "c-42", list.Campaigns[0].ID)
}

func TestClient_WriteEndpointsForceSafeStatus(t *testing.T) {
	t.Run("create campaign is always draft", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/campaigns/create", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "c-new"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.CreateCampaign(context.Background(), testAuth, CreateCampaignRequest{Name: "Launch"})
		require.NoError(t, err)
		assert.Equal(t, "draft", body["status"])
	})

	t.Run("queue post is always queued", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/posts/queue", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "p-new"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.QueuePost(context.Background(), testAuth, QueuePostRequest{Content: "post body", ScheduleTime: "2026-09-01T09:00:00Z"})
		require.NoError(t, err)
		assert.Equal(t, "queued", body["status"])
	})
}

func TestSafeStatus_ClosedSet(t *testing.T) {
	// Zero value marshals as draft, never as an empty string.
	data, err := json.Marshal(CreateCampaignRequest{Name: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"draft"`)

	// A terminal status on the wire collapses to draft on decode.
	var s SafeStatus
	require.NoError(t, json.Unmarshal([]byte(`"active"`), &s))
	assert.Equal(t, "draft", s.String())

	require.NoError(t, json.Unmarshal([]byte(`"queued"`), &s))
	assert.Equal(t, "queued", s.String())
}

func TestClient_ErrorHandling(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.Campaigns(context.Background(), testAuth)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch campaigns")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, func(o *Options) { o.Timeout = 20 * time.Millisecond })
		_, err := client.LinkedInPerformance(context.Background(), testAuth, "7d")
		assert.Error(t, err)
	})
}
