package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revoshq/holygrail/core"
)

func campaignRuleWith(handler Handler) Rule {
	return Rule{Name: "campaign-list", Keywords: []string{"campaign", "campaigns"}, Handler: handler}
}

func TestRouter_CampaignTrigger(t *testing.T) {
	router := NewRouter(campaignRuleWith(nil))

	triggering := []string{
		"Show me my campaign",
		"List all campaigns",
		"How is my LinkedIn campaign performing?",
		"SHOW ME MY CAMPAIGNS",
		"cAmPaIgN status please",
	}
	for _, msg := range triggering {
		_, ok := router.Match(msg)
		assert.True(t, ok, "expected match for %q", msg)
	}

	nonTriggering := []string{
		"What's the weather today?",
		"Remember my lucky number is 73",
		"Show me my LinkedIn performance",
		"",
	}
	for _, msg := range nonTriggering {
		_, ok := router.Match(msg)
		assert.False(t, ok, "unexpected match for %q", msg)
	}
}

func TestRouter_FirstMatchWins(t *testing.T) {
	first := Rule{Name: "first", Keywords: []string{"data"}, Handler: func(context.Context, *core.RequestScope, string) (string, error) {
		return "from first", nil
	}}
	second := Rule{Name: "second", Keywords: []string{"data"}, Handler: func(context.Context, *core.RequestScope, string) (string, error) {
		return "from second", nil
	}}

	router := NewRouter(first, second)
	scope := core.NewRequestScope("podA", "user1", core.AuthContext{}, nil, nil)

	text, handled, err := router.Route(context.Background(), scope, "show me the data")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "from first", text)
}

func TestRouter_NoMatchFallsThrough(t *testing.T) {
	router := NewRouter(campaignRuleWith(nil))
	scope := core.NewRequestScope("podA", "user1", core.AuthContext{}, nil, nil)

	text, handled, err := router.Route(context.Background(), scope, "hello there")
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, text)
}
