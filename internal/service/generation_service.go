package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/errs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
)

// GenerationService is the draft assembler: trending topics, AI caption,
// image selection, then one persisted draft with generation provenance.
type GenerationService interface {
	GeneratePost(ctx context.Context, userID int64) (*models.Post, error)
}

type generationService struct {
	ur       repository.UserRepository
	pr       repository.PostRepository
	ar       repository.AnalyticsRepository
	trending TrendingService
	ai       AIService
	images   ImageService
	model    string
}

func NewGenerationService(
	ur repository.UserRepository,
	pr repository.PostRepository,
	ar repository.AnalyticsRepository,
	trending TrendingService,
	ai AIService,
	images ImageService,
	model string) GenerationService {
	return &generationService{
		ur:       ur,
		pr:       pr,
		ar:       ar,
		trending: trending,
		ai:       ai,
		images:   images,
		model:    model,
	}
}

// GeneratePost builds and persists a draft for the user. Trend, caption and
// persistence failures abort the whole operation with nothing persisted; a
// missing image is tolerated and leaves the image fields empty.
func (s *generationService) GeneratePost(ctx context.Context, userID int64) (*models.Post, error) {
	user, exists, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	if !exists {
		return nil, errs.NotFound("user")
	}

	trendingTopics := s.trending.GetTrendingTopics(user.Niche, user.AllKeywords())

	captionData, err := s.ai.GenerateCaption(ctx, &CaptionOptions{
		Niche:          user.Niche,
		Style:          user.PostingStyle,
		TargetAudience: user.TargetAudience,
		TrendingTopics: trendingTopics,
		PastEngagement: user.PastPosts,
	})
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:         userID,
		Caption:        captionData.Caption,
		Hashtags:       captionData.Hashtags,
		TrendingTopics: captionData.TrendingTopics,
		Status:         models.PostStatusDraft,
		GeneratedAt:    time.Now(),
		AIMetadata: models.AIMetadata{
			GenerationModel:       s.model,
			TrendingTopicsSources: trendingTopics,
			ConfidenceScore:       captionData.ConfidenceScore,
			UserNiche:             user.Niche,
		},
	}

	image, err := s.images.SelectForCaption(captionData.Caption, captionData.Hashtags)
	if err != nil {
		if !errors.Is(err, ErrNoImage) {
			slog.Info("image selection failed", "user_id", userID, "error", err)
		}
	} else {
		post.ImagePath = image.Path
		post.ImageURL = image.URL
	}

	postID, err := s.pr.Create(ctx, post)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	post.ID = postID

	event := &models.AnalyticsEvent{
		UserID:    userID,
		PostID:    postID,
		EventType: models.EventPostGenerated,
		Data: models.AnalyticsData{
			Caption:        post.Caption,
			Hashtags:       post.Hashtags,
			TrendingTopics: post.TrendingTopics,
		},
	}
	if _, err := s.ar.Create(ctx, event); err != nil {
		slog.Info("failed to record analytics event", "post_id", postID, "error", err)
	}

	return post, nil
}
