// Package revos is the authenticated client for the internal RevOS data API.
// Every call carries the caller's bearer token and a bounded timeout; the
// client itself holds no per-request state and is safe to share across
// requests.
package revos

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/revoshq/holygrail/core"
)

// DefaultTimeout bounds every request to the data API.
const DefaultTimeout = 10 * time.Second

// Options configure the RevOS API client.
type Options struct {
	Timeout time.Duration
}

// Client talks to the RevOS data API.
type Client struct {
	rest *resty.Client
}

// NewClient constructs a client for the given API base URL.
func NewClient(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{Timeout: DefaultTimeout}
	for _, fn := range optFns {
		fn(&opts)
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{rest: rest}
}

// request returns a request pre-authenticated with the caller's token.
func (c *Client) request(ctx context.Context, auth core.AuthContext) *resty.Request {
	return c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+auth.BearerToken)
}

// Campaigns fetches all campaigns visible to the caller.
func (c *Client) Campaigns(ctx context.Context, auth core.AuthContext) (*CampaignList, error) {
	var result CampaignList
	resp, err := c.request(ctx, auth).SetResult(&result).Get("/campaigns")
	if err := checkResponse(resp, err, "fetch campaigns"); err != nil {
		return nil, err
	}
	return &result, nil
}

// CampaignByID fetches one campaign. The id is required; listing everything
// is a separate operation on purpose.
func (c *Client) CampaignByID(ctx context.Context, auth core.AuthContext, campaignID string) (*CampaignList, error) {
	var result CampaignList
	resp, err := c.request(ctx, auth).
		SetQueryParam("campaign_id", campaignID).
		SetResult(&result).
		Get("/campaigns")
	if err := checkResponse(resp, err, "fetch campaign"); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeCampaign fetches deep analytics for one campaign.
func (c *Client) AnalyzeCampaign(ctx context.Context, auth core.AuthContext, campaignID string) (map[string]any, error) {
	var result map[string]any
	resp, err := c.request(ctx, auth).
		SetQueryParam("campaign_id", campaignID).
		SetResult(&result).
		Get("/campaigns/analyze")
	if err := checkResponse(resp, err, "analyze campaign"); err != nil {
		return nil, err
	}
	return result, nil
}

// PodEngagement fetches engagement metrics for one pod.
func (c *Client) PodEngagement(ctx context.Context, auth core.AuthContext, podID string) (*PodEngagement, error) {
	var result PodEngagement
	resp, err := c.request(ctx, auth).
		SetQueryParam("pod_id", podID).
		SetResult(&result).
		Get("/pods")
	if err := checkResponse(resp, err, "analyze pod engagement"); err != nil {
		return nil, err
	}
	return &result, nil
}

// LinkedInPerformance fetches time-series metrics over a date range
// ("1d", "7d", "30d", "90d").
func (c *Client) LinkedInPerformance(ctx context.Context, auth core.AuthContext, dateRange string) (*LinkedInPerformance, error) {
	if dateRange == "" {
		dateRange = "7d"
	}
	var result LinkedInPerformance
	resp, err := c.request(ctx, auth).
		SetQueryParam("date_range", dateRange).
		SetResult(&result).
		Get("/linkedin")
	if err := checkResponse(resp, err, "fetch linkedin performance"); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCampaign creates a campaign. The status on the wire is always
// draft: the request struct carries a SafeStatus, so an active campaign
// cannot be expressed here regardless of what the caller asked for.
func (c *Client) CreateCampaign(ctx context.Context, auth core.AuthContext, req CreateCampaignRequest) (map[string]any, error) {
	req.Status = StatusDraft
	var result map[string]any
	resp, err := c.request(ctx, auth).SetBody(req).SetResult(&result).Post("/campaigns/create")
	if err := checkResponse(resp, err, "create campaign"); err != nil {
		return nil, err
	}
	return result, nil
}

// QueuePost queues a post for review. Like CreateCampaign, the status is
// forced to queued at the type level; posts never leave this client in a
// publishable state.
func (c *Client) QueuePost(ctx context.Context, auth core.AuthContext, req QueuePostRequest) (map[string]any, error) {
	req.Status = StatusQueued
	var result map[string]any
	resp, err := c.request(ctx, auth).SetBody(req).SetResult(&result).Post("/posts/queue")
	if err := checkResponse(resp, err, "queue post"); err != nil {
		return nil, err
	}
	return result, nil
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return errors.Wrapf(err, "failed to %s", op)
	}
	if resp.IsError() {
		return errors.Errorf("failed to %s: unexpected status %s", op, resp.Status())
	}
	return nil
}
