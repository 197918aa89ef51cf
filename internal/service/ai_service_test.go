package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/errs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func testAIService(baseURL string) AIService {
	return NewAIService(config.OpenAI{
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
		BaseURL: baseURL,
	})
}

func TestGenerateCaption_ParsesResponse(t *testing.T) {
	srv := completionServer(t, `{"caption":"Ship it","hashtags":["#go"],"trendingTopics":["DevOps"],"confidenceScore":0.93}`, nil)
	defer srv.Close()

	data, err := testAIService(srv.URL).GenerateCaption(context.Background(), &CaptionOptions{
		Niche: "tech",
		Style: "professional",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ship it", data.Caption)
	assert.Equal(t, []string{"#go"}, data.Hashtags)
	assert.Equal(t, []string{"DevOps"}, data.TrendingTopics)
	assert.Equal(t, 0.93, data.ConfidenceScore)
}

func TestGenerateCaption_AppliesDefaults(t *testing.T) {
	srv := completionServer(t, `{"caption":"Just a caption"}`, nil)
	defer srv.Close()

	data, err := testAIService(srv.URL).GenerateCaption(context.Background(), &CaptionOptions{Niche: "tech"})

	require.NoError(t, err)
	assert.Equal(t, []string{}, data.Hashtags)
	assert.Equal(t, []string{}, data.TrendingTopics)
	assert.Equal(t, 0.8, data.ConfidenceScore)
}

func TestGenerateCaption_PromptEmbedsAverageEngagement(t *testing.T) {
	var captured chatRequest
	srv := completionServer(t, `{"caption":"ok"}`, &captured)
	defer srv.Close()

	_, err := testAIService(srv.URL).GenerateCaption(context.Background(), &CaptionOptions{
		Niche:          "tech",
		TrendingTopics: []string{"AI and Machine Learning"},
		PastEngagement: []models.PastPost{
			{Likes: 12, Comments: 3, Shares: 1},
			{Likes: 8, Comments: 1, Shares: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	prompt := captured.Messages[1].Content
	assert.Contains(t, prompt, `{"avgLikes":10,"avgComments":2,"avgShares":1}`)
	assert.Contains(t, prompt, "Trending Topics to Consider: AI and Machine Learning")
	assert.Equal(t, 0.7, captured.Temperature)
	assert.Equal(t, 500, captured.MaxTokens)
}

func TestGenerateCaption_MissingCaptionIsGenerationError(t *testing.T) {
	srv := completionServer(t, `{"hashtags":["#go"]}`, nil)
	defer srv.Close()

	_, err := testAIService(srv.URL).GenerateCaption(context.Background(), &CaptionOptions{Niche: "tech"})

	var genErr *errs.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestGenerateCaption_NonJSONContentIsGenerationError(t *testing.T) {
	srv := completionServer(t, `Sure! Here is your caption: Ship it`, nil)
	defer srv.Close()

	_, err := testAIService(srv.URL).GenerateCaption(context.Background(), &CaptionOptions{Niche: "tech"})

	var genErr *errs.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestGenerateCaption_UpstreamErrorIsGenerationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testAIService(srv.URL).GenerateCaption(context.Background(), &CaptionOptions{Niche: "tech"})

	var genErr *errs.GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestGenerateProfilingQuestions_DegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	questions, err := testAIService(srv.URL).GenerateProfilingQuestions(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestCalculateAverageEngagement_Rounds(t *testing.T) {
	avg := calculateAverageEngagement([]models.PastPost{
		{Likes: 1, Comments: 1, Shares: 0},
		{Likes: 2, Comments: 2, Shares: 1},
	})

	assert.Equal(t, 2, avg.AvgLikes) // 1.5 rounds up
	assert.Equal(t, 2, avg.AvgComments)
	assert.Equal(t, 1, avg.AvgShares) // 0.5 rounds up
}
