package models

import "time"

type Post struct {
	ID             int64       `db:"id" json:"id"`
	UserID         int64       `db:"user_id" json:"user_id"`
	Caption        string      `db:"caption" json:"caption"`
	EditedCaption  string      `db:"edited_caption" json:"edited_caption,omitempty"`
	Hashtags       []string    `db:"hashtags" json:"hashtags"`
	EditedHashtags []string    `db:"edited_hashtags" json:"edited_hashtags,omitempty"`
	TrendingTopics []string    `db:"trending_topics" json:"trending_topics"`
	ImagePath      string      `db:"image_path" json:"image_path,omitempty"`
	ImageURL       string      `db:"image_url" json:"image_url,omitempty"`
	Status         string      `db:"status" json:"status"` // draft, approved, posted, failed, scheduled
	GeneratedAt    time.Time   `db:"generated_at" json:"generated_at"`
	ApprovedAt     *time.Time  `db:"approved_at" json:"approved_at,omitempty"`
	PostedAt       *time.Time  `db:"posted_at" json:"posted_at,omitempty"`
	SocialMediaIDs SocialIDs   `db:"social_media_ids" json:"social_media_ids"`
	FailureReason  string      `db:"failure_reason" json:"failure_reason,omitempty"`
	Engagement     Engagement  `db:"engagement" json:"engagement"`
	AIMetadata     AIMetadata  `db:"ai_metadata" json:"ai_metadata"`
	ApprovalNotes  string      `db:"approval_notes" json:"approval_notes,omitempty"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

type SocialIDs struct {
	Facebook string `json:"facebook,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
}

type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Views    int `json:"views"`
}

type AIMetadata struct {
	GenerationModel       string   `json:"generation_model"`
	TrendingTopicsSources []string `json:"trending_topics_sources"`
	ConfidenceScore       float64  `json:"confidence_score"`
	UserNiche             string   `json:"user_niche"`
}

// EffectiveCaption returns the user-edited caption once one exists.
func (p *Post) EffectiveCaption() string {
	if p.EditedCaption != "" {
		return p.EditedCaption
	}
	return p.Caption
}

func (p *Post) EffectiveHashtags() []string {
	if len(p.EditedHashtags) > 0 {
		return p.EditedHashtags
	}
	return p.Hashtags
}

const (
	PostStatusDraft     = "draft"
	PostStatusApproved  = "approved"
	PostStatusPosted    = "posted"
	PostStatusFailed    = "failed"
	PostStatusScheduled = "scheduled"
)
