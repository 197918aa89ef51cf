package models

import "time"

type User struct {
	ID                  int64          `db:"id" json:"id"`
	Email               string         `db:"email" json:"email"`
	PasswordHash        string         `db:"password_hash" json:"-"`
	Name                string         `db:"name" json:"name"`
	Niche               string         `db:"niche" json:"niche,omitempty"`
	Niches              []Niche        `db:"niches" json:"niches"`
	TargetAudience      string         `db:"target_audience" json:"target_audience,omitempty"`
	PostingStyle        string         `db:"posting_style" json:"posting_style"`
	SocialAccounts      SocialAccounts `db:"social_accounts" json:"social_accounts"`
	Preferences         Preferences    `db:"preferences" json:"preferences"`
	PastPosts           []PastPost     `db:"past_posts" json:"past_posts"`
	ProfileCompleteness int            `db:"profile_completeness" json:"profile_completeness"`
	IsOnboarded         bool           `db:"is_onboarded" json:"is_onboarded"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

type Niche struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords"`
}

// Access tokens are stored AES-GCM encrypted and decrypted only at publish
// time.
type SocialAccounts struct {
	Facebook FacebookAccount `json:"facebook"`
	Linkedin LinkedinAccount `json:"linkedin"`
}

type FacebookAccount struct {
	PageID      string `json:"page_id,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Connected   bool   `json:"connected"`
}

type LinkedinAccount struct {
	ProfileID   string `json:"profile_id,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Connected   bool   `json:"connected"`
}

type Preferences struct {
	AutoPostingEnabled    bool   `json:"auto_posting_enabled"`
	PostingFrequency      string `json:"posting_frequency"` // daily, weekly, custom
	BestTimeToPost        string `json:"best_time_to_post"` // "HH:MM"
	IncludeHashtags       bool   `json:"include_hashtags"`
	IncludeTrendingTopics bool   `json:"include_trending_topics"`
	MaxHashtags           int    `json:"max_hashtags"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		PostingFrequency:      "daily",
		BestTimeToPost:        "09:00",
		IncludeHashtags:       true,
		IncludeTrendingTopics: true,
		MaxHashtags:           10,
	}
}

type PastPost struct {
	Caption  string     `json:"caption,omitempty"`
	Likes    int        `json:"likes"`
	Comments int        `json:"comments"`
	Shares   int        `json:"shares"`
	PostedAt *time.Time `json:"posted_at,omitempty"`
}

// AllKeywords aggregates the keywords of every configured niche, feeding the
// trending-topic lookup.
func (u *User) AllKeywords() []string {
	var keywords []string
	for _, n := range u.Niches {
		keywords = append(keywords, n.Keywords...)
	}
	return keywords
}

const (
	StyleProfessional  = "professional"
	StyleCasual        = "casual"
	StyleHumorous      = "humorous"
	StyleInspirational = "inspirational"
	StyleEducational   = "educational"
)
