package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/errs"
	"github.com/maheshrc27/postpilot/internal/models"
)

type AIService interface {
	GenerateCaption(ctx context.Context, opts *CaptionOptions) (*CaptionData, error)
	GenerateProfilingQuestions(ctx context.Context, userContext map[string]string) ([]string, error)
}

type CaptionOptions struct {
	Niche            string
	Style            string
	TargetAudience   string
	TrendingTopics   []string
	ImageDescription string
	PastEngagement   []models.PastPost
}

type CaptionData struct {
	Caption         string   `json:"caption"`
	Hashtags        []string `json:"hashtags"`
	TrendingTopics  []string `json:"trendingTopics"`
	ConfidenceScore float64  `json:"confidenceScore"`
}

type averageEngagement struct {
	AvgLikes    int `json:"avgLikes"`
	AvgComments int `json:"avgComments"`
	AvgShares   int `json:"avgShares"`
}

const systemInstruction = "You are an expert social media content creator. " +
	"Generate engaging captions with relevant hashtags and trending topics. " +
	"Always respond in valid JSON format."

type aiService struct {
	cfg    config.OpenAI
	client *http.Client
}

func NewAIService(cfg config.OpenAI) AIService {
	return &aiService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateCaption calls the completion endpoint and parses its strict JSON
// contract. Any transport failure, non-200 response or schema mismatch
// surfaces as a GenerationError; there is no retry and no partial result.
func (s *aiService) GenerateCaption(ctx context.Context, opts *CaptionOptions) (*CaptionData, error) {
	if opts == nil {
		return nil, errs.Generation(errors.New("caption options are nil"))
	}

	content, err := s.complete(ctx, systemInstruction, buildCaptionPrompt(opts), 500)
	if err != nil {
		slog.Error("caption generation failed", "error", err)
		return nil, errs.Generation(err)
	}

	var parsed struct {
		Caption         *string  `json:"caption"`
		Hashtags        []string `json:"hashtags"`
		TrendingTopics  []string `json:"trendingTopics"`
		ConfidenceScore *float64 `json:"confidenceScore"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		slog.Error("caption response is not valid JSON", "error", err)
		return nil, errs.Generation(fmt.Errorf("invalid completion response: %w", err))
	}
	if parsed.Caption == nil || *parsed.Caption == "" {
		return nil, errs.Generation(errors.New("completion response is missing caption"))
	}

	data := &CaptionData{
		Caption:         *parsed.Caption,
		Hashtags:        parsed.Hashtags,
		TrendingTopics:  parsed.TrendingTopics,
		ConfidenceScore: 0.8,
	}
	if data.Hashtags == nil {
		data.Hashtags = []string{}
	}
	if data.TrendingTopics == nil {
		data.TrendingTopics = []string{}
	}
	if parsed.ConfidenceScore != nil {
		data.ConfidenceScore = *parsed.ConfidenceScore
	}

	return data, nil
}

// GenerateProfilingQuestions degrades to an empty list on any failure; the
// onboarding flow treats the questions as optional.
func (s *aiService) GenerateProfilingQuestions(ctx context.Context, userContext map[string]string) ([]string, error) {
	contextJSON, _ := json.Marshal(userContext)
	prompt := fmt.Sprintf(`Generate 5 specific questions to better understand a social media user's preferences and niche.
Current context: %s

Respond with a JSON object:
{
  "questions": ["question1", "question2", ...]
}`, contextJSON)

	content, err := s.complete(ctx, "You are an expert at understanding user preferences and niches.", prompt, 300)
	if err != nil {
		slog.Info("profiling question generation failed", "error", err)
		return []string{}, nil
	}

	var parsed struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		slog.Info("profiling question response is not valid JSON", "error", err)
		return []string{}, nil
	}
	if parsed.Questions == nil {
		return []string{}, nil
	}
	return parsed.Questions, nil
}

func (s *aiService) complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("error response from completion service: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return result.Choices[0].Message.Content, nil
}

func buildCaptionPrompt(opts *CaptionOptions) string {
	var b strings.Builder

	b.WriteString("Generate a social media caption for the following context:\n\n")
	fmt.Fprintf(&b, "Niche: %s\n", opts.Niche)
	fmt.Fprintf(&b, "Posting Style: %s\n", opts.Style)
	fmt.Fprintf(&b, "Target Audience: %s\n", opts.TargetAudience)

	if opts.ImageDescription != "" {
		fmt.Fprintf(&b, "Image Description: %s\n", opts.ImageDescription)
	}

	if len(opts.TrendingTopics) > 0 {
		fmt.Fprintf(&b, "Trending Topics to Consider: %s\n", strings.Join(opts.TrendingTopics, ", "))
	}

	if len(opts.PastEngagement) > 0 {
		avg, _ := json.Marshal(calculateAverageEngagement(opts.PastEngagement))
		fmt.Fprintf(&b, "Past High-Engagement Patterns: %s\n", avg)
	}

	b.WriteString(`
Respond with a JSON object containing:
{
  "caption": "engaging caption text",
  "hashtags": ["hashtag1", "hashtag2", ...],
  "trendingTopics": ["topic1", "topic2", ...],
  "confidenceScore": 0.0-1.0
}`)

	return b.String()
}

func calculateAverageEngagement(posts []models.PastPost) averageEngagement {
	var likes, comments, shares int
	for _, post := range posts {
		likes += post.Likes
		comments += post.Comments
		shares += post.Shares
	}

	n := float64(len(posts))
	return averageEngagement{
		AvgLikes:    int(math.Round(float64(likes) / n)),
		AvgComments: int(math.Round(float64(comments) / n)),
		AvgShares:   int(math.Round(float64(shares) / n)),
	}
}
