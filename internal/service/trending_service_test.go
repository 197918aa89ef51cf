package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTrendingTopics_UnknownNicheFallsBackToGeneral(t *testing.T) {
	s := NewTrendingService()

	topics := s.GetTrendingTopics("underwater basket weaving", nil)

	assert.Equal(t, []string{
		"Trending Now",
		"Viral Content",
		"Current Events",
		"Popular Culture",
		"Entertainment",
		"News",
		"Social Trends",
	}, topics)
}

func TestGetTrendingTopics_MergesKeywordsAndCaps(t *testing.T) {
	s := NewTrendingService()

	topics := s.GetTrendingTopics("tech", []string{"golang", "rust", "zig", "elixir", "haskell", "ocaml"})

	// 7 niche topics + 5 keyword pseudo-topics, capped at 10
	assert.Len(t, topics, 10)
	assert.Contains(t, topics, "AI and Machine Learning")
	assert.Contains(t, topics, "golang trends")
	assert.NotContains(t, topics, "haskell trends")
	assert.NotContains(t, topics, "ocaml trends")
}

func TestGetTrendingTopics_NicheIsCaseInsensitive(t *testing.T) {
	s := NewTrendingService()

	assert.Equal(t, s.GetTrendingTopics("tech", nil), s.GetTrendingTopics("Tech", nil))
}

func TestGetTrendingTopics_DeduplicatesFirstSeen(t *testing.T) {
	s := NewTrendingService()

	topics := s.GetTrendingTopics("marketing", []string{"seo", "seo", "email"})

	seen := make(map[string]int)
	for _, topic := range topics {
		seen[topic]++
	}
	for topic, count := range seen {
		assert.Equal(t, 1, count, "topic %q appears more than once", topic)
	}
}

func TestAnalyzeRelevance_SortsBestFirst(t *testing.T) {
	s := NewTrendingService()

	scored := s.AnalyzeRelevance([]string{"Gardening Tips", "AI Programming Data"}, "tech")

	assert.Len(t, scored, 2)
	assert.Equal(t, "AI Programming Data", scored[0].Topic)
	assert.Greater(t, scored[0].RelevanceScore, scored[1].RelevanceScore)
	assert.InDelta(t, 0.3, scored[1].RelevanceScore, 0.001)
	assert.LessOrEqual(t, scored[0].RelevanceScore, 1.0)
}

func TestGetTrendingHashtags(t *testing.T) {
	s := NewTrendingService()

	hashtags := s.GetTrendingHashtags("Digital Marketing")

	assert.Contains(t, hashtags, "#DigitalMarketing")
	assert.Contains(t, hashtags, "#Digital")
	assert.Contains(t, hashtags, "#trending")
	assert.Contains(t, hashtags, "#viral")
}
