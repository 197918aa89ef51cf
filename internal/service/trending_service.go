package service

import (
	"fmt"
	"strings"
)

// TrendingService maps a niche plus user keywords to an ordered topic list.
// Pure lookup over a static table; a real feed integration would slot in
// behind the same interface.
type TrendingService interface {
	GetTrendingTopics(niche string, keywords []string) []string
	AnalyzeRelevance(topics []string, niche string) []ScoredTopic
	GetTrendingHashtags(topic string) []string
}

type ScoredTopic struct {
	Topic          string  `json:"topic"`
	RelevanceScore float64 `json:"relevance_score"`
}

type trendingService struct{}

func NewTrendingService() TrendingService {
	return &trendingService{}
}

var nicheTopics = map[string][]string{
	"tech": {
		"AI and Machine Learning",
		"Web3 and Blockchain",
		"Cloud Computing",
		"Cybersecurity",
		"DevOps",
		"Artificial Intelligence",
		"Software Development",
	},
	"business": {
		"Entrepreneurship",
		"Business Growth",
		"Leadership",
		"Marketing Strategy",
		"Sales Techniques",
		"Business Analytics",
		"Corporate Culture",
	},
	"lifestyle": {
		"Wellness",
		"Fitness Trends",
		"Mental Health",
		"Self-improvement",
		"Work-life Balance",
		"Productivity",
		"Personal Development",
	},
	"marketing": {
		"Digital Marketing",
		"Social Media Marketing",
		"Content Marketing",
		"SEO",
		"Email Marketing",
		"Influencer Marketing",
		"Marketing Automation",
	},
	"general": {
		"Trending Now",
		"Viral Content",
		"Current Events",
		"Popular Culture",
		"Entertainment",
		"News",
		"Social Trends",
	},
}

var nicheKeywords = map[string][]string{
	"tech":      {"ai", "code", "software", "development", "tech", "programming", "data"},
	"business":  {"business", "growth", "sales", "marketing", "leadership", "strategy"},
	"lifestyle": {"health", "wellness", "fitness", "life", "personal", "mindfulness"},
	"marketing": {"marketing", "social", "content", "brand", "audience", "engagement"},
}

const maxTopics = 10

// GetTrendingTopics merges the niche's static topics with up to five
// keyword-derived pseudo-topics, deduplicated in first-seen order and capped
// at ten entries. Unknown niches fall back to the general list.
func (s *trendingService) GetTrendingTopics(niche string, keywords []string) []string {
	topics, ok := nicheTopics[strings.ToLower(niche)]
	if !ok {
		topics = nicheTopics["general"]
	}

	merged := make([]string, 0, len(topics)+5)
	merged = append(merged, topics...)

	for i, keyword := range keywords {
		if i == 5 {
			break
		}
		merged = append(merged, fmt.Sprintf("%s trends", keyword))
	}

	seen := make(map[string]struct{}, len(merged))
	unique := merged[:0]
	for _, topic := range merged {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		unique = append(unique, topic)
	}

	if len(unique) > maxTopics {
		unique = unique[:maxTopics]
	}
	return unique
}

// AnalyzeRelevance scores topics against the niche's keyword set and returns
// them sorted best-first.
func (s *trendingService) AnalyzeRelevance(topics []string, niche string) []ScoredTopic {
	keywords := nicheKeywords[strings.ToLower(niche)]

	scored := make([]ScoredTopic, 0, len(topics))
	for _, topic := range topics {
		topicLower := strings.ToLower(topic)

		score := 0.3
		for _, keyword := range keywords {
			if strings.Contains(topicLower, keyword) {
				score += 0.5
			}
		}
		if score > 1.0 {
			score = 1.0
		}
		scored = append(scored, ScoredTopic{Topic: topic, RelevanceScore: score})
	}

	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].RelevanceScore > scored[j-1].RelevanceScore; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
	return scored
}

func (s *trendingService) GetTrendingHashtags(topic string) []string {
	candidates := []string{
		"#" + strings.ReplaceAll(topic, " ", ""),
		"#" + strings.SplitN(topic, " ", 2)[0],
		"#trending",
		"#viral",
	}

	hashtags := candidates[:0]
	for _, tag := range candidates {
		if len(tag) > 2 {
			hashtags = append(hashtags, tag)
		}
	}
	return hashtags
}
