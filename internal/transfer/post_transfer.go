package transfer

type PostUpdate struct {
	Caption       string   `json:"caption"`
	Hashtags      []string `json:"hashtags"`
	ApprovalNotes string   `json:"approval_notes"`
}

type ApprovePost struct {
	// RFC 3339; empty means publish immediately.
	ScheduledTime string `json:"scheduled_time"`
}

// PublishPayload is what actually goes out to a platform: the effective
// caption with hashtags already appended, plus the public image URL if any.
type PublishPayload struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url,omitempty"`
}

type PublishResult struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	PostID   string `json:"post_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type SchedulerAction struct {
	Time string `json:"time"` // "HH:MM", empty falls back to the stored preference
}

type SchedulerStatus struct {
	UserID          int64 `json:"user_id"`
	IsRunning       bool  `json:"is_running"`
	TotalSchedulers int   `json:"total_schedulers"`
}
