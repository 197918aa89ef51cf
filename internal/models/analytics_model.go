package models

import "time"

type AnalyticsEvent struct {
	ID        int64         `db:"id" json:"id"`
	UserID    int64         `db:"user_id" json:"user_id"`
	PostID    int64         `db:"post_id" json:"post_id,omitempty"`
	EventType string        `db:"event_type" json:"event_type"`
	Data      AnalyticsData `db:"data" json:"data"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

type AnalyticsData struct {
	Caption        string      `json:"caption,omitempty"`
	Hashtags       []string    `json:"hashtags,omitempty"`
	TrendingTopics []string    `json:"trending_topics,omitempty"`
	Platform       string      `json:"platform,omitempty"`
	Engagement     *Engagement `json:"engagement,omitempty"`
}

const (
	EventPostGenerated     = "post_generated"
	EventPostApproved      = "post_approved"
	EventPostPosted        = "post_posted"
	EventPostFailed        = "post_failed"
	EventEngagementTracked = "engagement_tracked"
)
