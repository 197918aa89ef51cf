package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type LinkedinService interface {
	PublishPost(ctx context.Context, profileID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error)
	FetchEngagement(ctx context.Context, postID, accessToken string) (models.Engagement, error)
}

type linkedinService struct {
	cfg    config.Config
	client *http.Client
}

func NewLinkedinService(cfg config.Config) LinkedinService {
	return &linkedinService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type ugcText struct {
	Text string `json:"text"`
}

type ugcMedia struct {
	Status      string  `json:"status"`
	Description ugcText `json:"description"`
	Media       string  `json:"media"`
	Title       ugcText `json:"title"`
}

type ugcShareContent struct {
	Commentary ugcText    `json:"commentaryV2"`
	Media      []ugcMedia `json:"media"`
}

// PublishPost creates a UGC post for the member profile.
func (s *linkedinService) PublishPost(ctx context.Context, profileID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error) {
	if profileID == "" || accessToken == "" {
		return nil, errors.New("linkedin credentials not configured")
	}

	share := ugcShareContent{
		Commentary: ugcText{Text: payload.Caption},
		Media:      []ugcMedia{},
	}
	if payload.ImageURL != "" {
		share.Media = append(share.Media, ugcMedia{
			Status:      "READY",
			Description: ugcText{Text: "Image"},
			Media:       payload.ImageURL,
			Title:       ugcText{Text: "Post Image"},
		})
	}

	body := map[string]any{
		"author":         "urn:li:person:" + profileID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": share,
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.LinkedinBaseURL+"/ugcPosts", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from LinkedIn: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode LinkedIn response: %w", err)
	}
	if result.ID == "" {
		return nil, errors.New("linkedin response is missing post id")
	}

	return &transfer.PublishResult{
		Platform: "linkedin",
		Success:  true,
		PostID:   result.ID,
		URL:      "https://linkedin.com/feed/update/" + result.ID,
	}, nil
}

func (s *linkedinService) FetchEngagement(ctx context.Context, postID, accessToken string) (models.Engagement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.cfg.LinkedinBaseURL+"/socialMetadata/"+postID, nil)
	if err != nil {
		return models.Engagement{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return models.Engagement{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return models.Engagement{}, fmt.Errorf("error response from LinkedIn: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result struct {
		LikeCount    int `json:"likeCount"`
		CommentCount int `json:"commentCount"`
		ShareCount   int `json:"shareCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return models.Engagement{}, err
	}

	return models.Engagement{
		Likes:    result.LikeCount,
		Comments: result.CommentCount,
		Shares:   result.ShareCount,
	}, nil
}
