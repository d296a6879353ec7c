package fallback

import (
	"fmt"
	"strings"
)

// CampaignSummary is one campaign with its derived counts, ready to render.
type CampaignSummary struct {
	Name   string
	Status string
	Leads  int
	Posts  int
}

// emptyCampaignsMessage is the fixed answer when the tenant has no campaigns.
const emptyCampaignsMessage = "You don't have any campaigns yet. Would you like to create one?"

// FormatCampaignList renders the deterministic markdown campaign list. The
// same input always produces byte-identical output.
func FormatCampaignList(campaigns []CampaignSummary) string {
	if len(campaigns) == 0 {
		return emptyCampaignsMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d campaign(s):\n\n", len(campaigns))
	for i, c := range campaigns {
		fmt.Fprintf(&b, "%d. **%s** (%s)\n", i+1, c.Name, c.Status)
		fmt.Fprintf(&b, "   - Leads: %d, Posts: %d\n", c.Leads, c.Posts)
	}
	return b.String()
}
