package fallback

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// DefaultStoreTimeout bounds every data-store request.
const DefaultStoreTimeout = 10 * time.Second

// ErrNoClientID is returned when the caller authenticates fine but their
// user row carries no client association. Callers must surface this as an
// account-data problem, not an authentication failure.
var ErrNoClientID = errors.New("user has no client association")

// StoreOptions configure the Supabase data-store client.
type StoreOptions struct {
	Timeout time.Duration
}

// Store is a minimal Supabase REST client covering what the direct-access
// path needs: token verification, client-id resolution, campaign rows and
// per-campaign child counts. The anon key identifies the project; the
// caller's bearer token scopes every query through row-level security.
type Store struct {
	rest    *resty.Client
	anonKey string
}

// NewStore constructs a data-store client for the given project URL and
// anon key.
func NewStore(baseURL, anonKey string, optFns ...func(o *StoreOptions)) *Store {
	opts := StoreOptions{Timeout: DefaultStoreTimeout}
	for _, fn := range optFns {
		fn(&opts)
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Store{rest: rest, anonKey: anonKey}
}

func (s *Store) request(ctx context.Context, bearerToken string) *resty.Request {
	return s.rest.R().
		SetContext(ctx).
		SetHeader("apikey", s.anonKey).
		SetHeader("Authorization", "Bearer "+bearerToken)
}

type authedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken resolves the bearer token to a user id via the auth endpoint.
func (s *Store) VerifyToken(ctx context.Context, bearerToken string) (string, error) {
	var user authedUser
	resp, err := s.request(ctx, bearerToken).
		SetResult(&user).
		Get("/auth/v1/user")
	if err != nil {
		return "", errors.Wrap(err, "verify token")
	}
	if resp.IsError() || user.ID == "" {
		return "", errors.Errorf("verify token: status %d", resp.StatusCode())
	}
	return user.ID, nil
}

// ClientID resolves the tenant (client) id for a user. A user row without a
// client id yields ErrNoClientID.
func (s *Store) ClientID(ctx context.Context, bearerToken, userID string) (string, error) {
	var rows []struct {
		ClientID string `json:"client_id"`
	}
	resp, err := s.request(ctx, bearerToken).
		SetQueryParam("id", "eq."+userID).
		SetQueryParam("select", "client_id").
		SetResult(&rows).
		Get("/rest/v1/users")
	if err != nil {
		return "", errors.Wrap(err, "resolve client id")
	}
	if resp.IsError() {
		return "", errors.Errorf("resolve client id: status %d", resp.StatusCode())
	}
	if len(rows) == 0 || rows[0].ClientID == "" {
		return "", ErrNoClientID
	}
	return rows[0].ClientID, nil
}

// CampaignRow is one campaign as stored, before counts are attached.
type CampaignRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Campaigns fetches all campaign rows belonging to a client.
func (s *Store) Campaigns(ctx context.Context, bearerToken, clientID string) ([]CampaignRow, error) {
	var rows []CampaignRow
	resp, err := s.request(ctx, bearerToken).
		SetQueryParam("client_id", "eq."+clientID).
		SetQueryParam("select", "id,name,status").
		SetResult(&rows).
		Get("/rest/v1/campaigns")
	if err != nil {
		return nil, errors.Wrap(err, "fetch campaigns")
	}
	if resp.IsError() {
		return nil, errors.Errorf("fetch campaigns: status %d", resp.StatusCode())
	}
	return rows, nil
}

// CountLeads returns the number of leads attached to a campaign.
func (s *Store) CountLeads(ctx context.Context, bearerToken, campaignID string) (int, error) {
	return s.countChildren(ctx, bearerToken, "/rest/v1/leads", campaignID)
}

// CountPosts returns the number of posts attached to a campaign.
func (s *Store) CountPosts(ctx context.Context, bearerToken, campaignID string) (int, error) {
	return s.countChildren(ctx, bearerToken, "/rest/v1/posts", campaignID)
}

// countChildren asks PostgREST for an exact count without pulling rows: a
// zero-length range with Prefer: count=exact puts the total after the slash
// in Content-Range ("0-0/42" or "*/0").
func (s *Store) countChildren(ctx context.Context, bearerToken, path, campaignID string) (int, error) {
	resp, err := s.request(ctx, bearerToken).
		SetQueryParam("campaign_id", "eq."+campaignID).
		SetQueryParam("select", "id").
		SetHeader("Prefer", "count=exact").
		SetHeader("Range", "0-0").
		Get(path)
	if err != nil {
		return 0, errors.Wrapf(err, "count %s", path)
	}
	if resp.IsError() {
		return 0, errors.Errorf("count %s: status %d", path, resp.StatusCode())
	}
	return parseContentRangeTotal(resp.Header().Get("Content-Range"))
}

func parseContentRangeTotal(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("unbounded Content-Range %q", header)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	return n, nil
}
