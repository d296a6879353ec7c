package revos

// Campaign is one outreach campaign as returned by the data API.
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Leads  int    `json:"leads"`
	Posts  int    `json:"posts"`
}

// CampaignList is the envelope of the campaign read endpoints.
type CampaignList struct {
	Campaigns []Campaign `json:"campaigns"`
	Count     int        `json:"count"`
}

// PodEngagement is the envelope of the pod analytics endpoint.
type PodEngagement struct {
	Engagement map[string]any `json:"engagement"`
}

// LinkedInPerformance is the envelope of the time-series metrics endpoint.
type LinkedInPerformance struct {
	Performance map[string]any `json:"performance"`
}

// CreateCampaignRequest creates a campaign. Status is always StatusDraft.
type CreateCampaignRequest struct {
	Name        string     `json:"name"`
	VoiceID     string     `json:"voice_id,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      SafeStatus `json:"status"`
}

// QueuePostRequest queues a post for human review. Status is always
// StatusQueued.
type QueuePostRequest struct {
	Content      string     `json:"content"`
	ScheduleTime string     `json:"schedule_time"`
	CampaignID   string     `json:"campaign_id,omitempty"`
	Status       SafeStatus `json:"status"`
}
