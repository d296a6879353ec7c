package tool

import (
	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/memory"
	"github.com/revoshq/holygrail/revos"
)

// Registry builds the fixed tool set for one request. The registry itself
// holds only shared, scope-free services (HTTP clients); the tools it
// produces are closures over that request's scope and are never reused
// across requests.
type Registry struct {
	memorySvc memory.Service
	data      *revos.Client
}

// NewRegistry wires the shared backends. Safe to construct once and reuse
// for the lifetime of the process.
func NewRegistry(memorySvc memory.Service, data *revos.Client) *Registry {
	return &Registry{memorySvc: memorySvc, data: data}
}

// ForRequest produces the tool set bound to one request scope: the two
// memory tools plus the tenant data tools. Tenant tool failures come back as
// `{success: false, error}` data, never as errors, so the agent can react in
// natural language instead of crashing the turn.
func (r *Registry) ForRequest(scope *core.RequestScope) []Tool {
	scoped := memory.NewScoped(r.memorySvc, scope)

	return []Tool{
		r.searchMemoryTool(scoped),
		r.saveMemoryTool(scoped),
		r.allCampaignsTool(),
		r.campaignByIDTool(),
		r.analyzeCampaignTool(),
		r.podEngagementTool(),
		r.linkedInPerformanceTool(),
		r.createCampaignTool(),
		r.schedulePostTool(),
	}
}

func (r *Registry) searchMemoryTool(scoped *memory.Scoped) Tool {
	return NewFunctionTool(
		"search_memory",
		"Search past conversations and stored user preferences. Use for personal facts only, never for business data.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string", "description": "What to search for (e.g. \"posting time\", \"preferences\")"},
			},
			"required": []string{"query"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			return scoped.Recall(toolCtx.Context(), stringArg(args, "query"), memory.DefaultRecallLimit), nil
		},
	)
}

func (r *Registry) saveMemoryTool(scoped *memory.Scoped) Tool {
	return NewFunctionTool(
		"save_memory",
		"Save important user information (preferences, goals) for future conversations.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{"type": "string", "description": "What to remember"},
			},
			"required": []string{"content"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			return scoped.Remember(toolCtx.Context(), stringArg(args, "content")), nil
		},
	)
}

func (r *Registry) allCampaignsTool() Tool {
	return NewFunctionTool(
		"get_all_campaigns",
		"Get ALL of the user's campaigns with status and metrics. Takes NO parameters.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *core.ToolContext, _ map[string]any) (any, error) {
			list, err := r.data.Campaigns(toolCtx.Context(), toolCtx.Auth())
			if err != nil {
				return failure(err), nil
			}
			return map[string]any{"success": true, "campaigns": list.Campaigns, "count": list.Count}, nil
		},
	)
}

// campaignByIDTool exists as a separate tool from get_all_campaigns on
// purpose: a single optional-parameter tool caused the model to omit the id
// even when it had one, returning the wrong record. Keep them split.
func (r *Registry) campaignByIDTool() Tool {
	return NewFunctionTool(
		"get_campaign_by_id",
		"Get ONE specific campaign. The campaign_id is required.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"campaign_id": map[string]any{"type": "string", "description": "UUID of the campaign"},
			},
			"required": []string{"campaign_id"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			list, err := r.data.CampaignByID(toolCtx.Context(), toolCtx.Auth(), stringArg(args, "campaign_id"))
			if err != nil {
				return failure(err), nil
			}
			return map[string]any{"success": true, "campaigns": list.Campaigns, "count": list.Count}, nil
		},
	)
}

func (r *Registry) analyzeCampaignTool() Tool {
	return NewFunctionTool(
		"analyze_campaign_performance",
		"Deep analytics for one campaign. The campaign_id is required.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"campaign_id": map[string]any{"type": "string", "description": "UUID of the campaign"},
			},
			"required": []string{"campaign_id"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			analysis, err := r.data.AnalyzeCampaign(toolCtx.Context(), toolCtx.Auth(), stringArg(args, "campaign_id"))
			if err != nil {
				return failure(err), nil
			}
			return map[string]any{"success": true, "analysis": analysis}, nil
		},
	)
}

func (r *Registry) podEngagementTool() Tool {
	return NewFunctionTool(
		"analyze_pod_engagement",
		"Engagement pod performance and member participation. The pod_id is required.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pod_id": map[string]any{"type": "string", "description": "UUID of the engagement pod"},
			},
			"required": []string{"pod_id"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			engagement, err := r.data.PodEngagement(toolCtx.Context(), toolCtx.Auth(), stringArg(args, "pod_id"))
			if err != nil {
				return failure(err), nil
			}
			return map[string]any{"success": true, "engagement": engagement.Engagement}, nil
		},
	)
}

func (r *Registry) linkedInPerformanceTool() Tool {
	return NewFunctionTool(
		"get_linkedin_performance",
		"LinkedIn performance metrics over a date range ('1d', '7d', '30d', '90d'; default '7d').",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date_range": map[string]any{"type": "string", "description": "Time period to analyze"},
			},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			perf, err := r.data.LinkedInPerformance(toolCtx.Context(), toolCtx.Auth(), stringArg(args, "date_range"))
			if err != nil {
				return failure(err), nil
			}
			return map[string]any{"success": true, "performance": perf.Performance}, nil
		},
	)
}

func (r *Registry) createCampaignTool() Tool {
	return NewWriteSafeTool(
		"create_campaign",
		"Create a new campaign as a DRAFT requiring confirmation in the app before going live.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":        map[string]any{"type": "string", "description": "Campaign name"},
				"voice_id":    map[string]any{"type": "string", "description": "Optional voice profile id"},
				"description": map[string]any{"type": "string", "description": "Optional campaign description"},
			},
			"required": []string{"name"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			req := revos.CreateCampaignRequest{
				Name:        stringArg(args, "name"),
				VoiceID:     stringArg(args, "voice_id"),
				Description: stringArg(args, "description"),
			}
			created, err := r.data.CreateCampaign(toolCtx.Context(), toolCtx.Auth(), req)
			if err != nil {
				return failure(err), nil
			}
			result := map[string]any{"success": true, "campaign": created, "status": revos.StatusDraft.String()}
			if req.VoiceID == "" {
				result["warning"] = "No voice profile selected. The campaign was created without a voice; set one before generating content."
			}
			return result, nil
		},
	)
}

func (r *Registry) schedulePostTool() Tool {
	return NewWriteSafeTool(
		"schedule_post",
		"Queue a post for review at a scheduled time. The post stays QUEUED until a human approves it.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content":       map[string]any{"type": "string", "description": "Post body"},
				"schedule_time": map[string]any{"type": "string", "description": "RFC 3339 time to publish after approval"},
				"campaign_id":   map[string]any{"type": "string", "description": "Optional campaign to attach the post to"},
			},
			"required": []string{"content", "schedule_time"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			req := revos.QueuePostRequest{
				Content:      stringArg(args, "content"),
				ScheduleTime: stringArg(args, "schedule_time"),
				CampaignID:   stringArg(args, "campaign_id"),
			}
			queued, err := r.data.QueuePost(toolCtx.Context(), toolCtx.Auth(), req)
			if err != nil {
				return failure(err), nil
			}
			return map[string]any{"success": true, "post": queued, "status": revos.StatusQueued.String()}, nil
		},
	)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// failure shapes a tenant data failure as ordinary tool output.
func failure(err error) map[string]any {
	return map[string]any{"success": false, "error": err.Error()}
}
