package transfer

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/maheshrc27/postpilot/internal/models"
)

type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Register struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

type UserSummary struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Niche       string `json:"niche,omitempty"`
	IsOnboarded bool   `json:"is_onboarded"`
}

type ProfileUpdate struct {
	Name           string             `json:"name"`
	Niche          string             `json:"niche"`
	TargetAudience string             `json:"target_audience"`
	PostingStyle   string             `json:"posting_style" validate:"omitempty,oneof=professional casual humorous inspirational educational"`
	Preferences    *PreferencesUpdate `json:"preferences"`
}

// PreferencesUpdate carries only the preference fields present in the
// request; absent fields keep their stored values.
type PreferencesUpdate struct {
	AutoPostingEnabled    *bool   `json:"auto_posting_enabled"`
	PostingFrequency      *string `json:"posting_frequency" validate:"omitempty,oneof=daily weekly custom"`
	BestTimeToPost        *string `json:"best_time_to_post"`
	IncludeHashtags       *bool   `json:"include_hashtags"`
	IncludeTrendingTopics *bool   `json:"include_trending_topics"`
	MaxHashtags           *int    `json:"max_hashtags"`
}

type Onboarding struct {
	Niche          string         `json:"niche" validate:"required"`
	TargetAudience string         `json:"target_audience" validate:"required"`
	PostingStyle   string         `json:"posting_style" validate:"required,oneof=professional casual humorous inspirational educational"`
	Niches         []models.Niche `json:"niches"`
}

type ConnectSocial struct {
	Platform    string `json:"platform" validate:"required,oneof=facebook linkedin"`
	PageID      string `json:"page_id"`
	ProfileID   string `json:"profile_id"`
	AccessToken string `json:"access_token" validate:"required"`
}

type ProfilingAnswers struct {
	Answers []string       `json:"answers"`
	Niches  []models.Niche `json:"niches"`
}
