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
	"net/url"
	"time"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type FacebookService interface {
	PublishPost(ctx context.Context, pageID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error)
	FetchEngagement(ctx context.Context, postID, accessToken string) (models.Engagement, error)
}

type facebookService struct {
	cfg    config.Config
	client *http.Client
}

func NewFacebookService(cfg config.Config) FacebookService {
	return &facebookService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// PublishPost creates a feed post on the page and returns the external post
// id and permalink.
func (s *facebookService) PublishPost(ctx context.Context, pageID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error) {
	if pageID == "" || accessToken == "" {
		return nil, errors.New("facebook credentials not configured")
	}

	body := map[string]string{
		"message":      payload.Caption,
		"access_token": accessToken,
	}
	if payload.ImageURL != "" {
		body["picture"] = payload.ImageURL
		body["link"] = payload.ImageURL
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/feed", s.cfg.GraphBaseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from Facebook: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode Facebook response: %w", err)
	}
	if result.ID == "" {
		return nil, errors.New("facebook response is missing post id")
	}

	return &transfer.PublishResult{
		Platform: "facebook",
		Success:  true,
		PostID:   result.ID,
		URL:      "https://facebook.com/" + result.ID,
	}, nil
}

func (s *facebookService) FetchEngagement(ctx context.Context, postID, accessToken string) (models.Engagement, error) {
	params := url.Values{}
	params.Set("fields", "likes.summary(true).limit(0),comments.summary(true).limit(0),shares")
	params.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/%s?%s", s.cfg.GraphBaseURL, postID, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Engagement{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return models.Engagement{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return models.Engagement{}, fmt.Errorf("error response from Facebook: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result struct {
		Likes struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"likes"`
		Comments struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"comments"`
		Shares struct {
			Count int `json:"count"`
		} `json:"shares"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return models.Engagement{}, err
	}

	return models.Engagement{
		Likes:    result.Likes.Summary.TotalCount,
		Comments: result.Comments.Summary.TotalCount,
		Shares:   result.Shares.Count,
	}, nil
}
