package fallback

import (
	"context"

	"github.com/pkg/errors"

	"github.com/revoshq/holygrail/core"
)

// User-facing guidance for the two auth-adjacent outcomes. Neither is an
// error to the caller; the turn completes with these as its text.
const (
	reauthenticateMessage = "I couldn't verify your session. Please refresh the page and log in again."
	accountMissingMessage = "I couldn't find your account information. Please contact support so we can fix your account setup."
)

// CampaignHandler answers campaign-listing intents straight from the data
// store, skipping the agent entirely.
type CampaignHandler struct {
	store *Store
}

// NewCampaignHandler builds the handler over a data-store client.
func NewCampaignHandler(store *Store) *CampaignHandler {
	return &CampaignHandler{store: store}
}

// CampaignRule is the routing rule for this handler. Singular and plural
// forms both trigger, in any letter case.
func (h *CampaignHandler) CampaignRule() Rule {
	return Rule{
		Name:     "campaign-list",
		Keywords: []string{"campaign", "campaigns"},
		Handler:  h.Handle,
	}
}

// Handle verifies the caller, resolves their tenant, fetches campaigns with
// derived counts and renders the list. Authentication failure and a missing
// client association each map to their own user-facing message.
func (h *CampaignHandler) Handle(ctx context.Context, scope *core.RequestScope, _ string) (string, error) {
	logger := scope.Logger()
	token := scope.Auth.BearerToken

	userID, err := h.store.VerifyToken(ctx, token)
	if err != nil {
		logger.Warn("fallback.campaign.auth_failed", "error", err.Error())
		return reauthenticateMessage, nil
	}

	clientID, err := h.store.ClientID(ctx, token, userID)
	if errors.Is(err, ErrNoClientID) {
		logger.Warn("fallback.campaign.no_client_id", "user_id", userID)
		return accountMissingMessage, nil
	}
	if err != nil {
		return "", errors.Wrap(err, "campaign fallback")
	}

	rows, err := h.store.Campaigns(ctx, token, clientID)
	if err != nil {
		return "", errors.Wrap(err, "campaign fallback")
	}

	summaries := make([]CampaignSummary, 0, len(rows))
	for _, row := range rows {
		leads, err := h.store.CountLeads(ctx, token, row.ID)
		if err != nil {
			return "", errors.Wrap(err, "campaign fallback")
		}
		posts, err := h.store.CountPosts(ctx, token, row.ID)
		if err != nil {
			return "", errors.Wrap(err, "campaign fallback")
		}
		summaries = append(summaries, CampaignSummary{
			Name:   row.Name,
			Status: row.Status,
			Leads:  leads,
			Posts:  posts,
		})
	}

	logger.Info("fallback.campaign.answered", "count", len(summaries))
	return FormatCampaignList(summaries), nil
}
