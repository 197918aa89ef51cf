package job

import (
	"context"
	"log/slog"
	"sync"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

// EngagementSyncJob periodically pulls like/comment/share counts for posted
// content back into the post records. Engagement is the only thing a post
// may change after publishing.
type EngagementSyncJob struct {
	cfg config.Config
	pr  repository.PostRepository
	ur  repository.UserRepository
	ar  repository.AnalyticsRepository
	fb  service.FacebookService
	li  service.LinkedinService
}

func NewEngagementSyncJob(
	cfg config.Config,
	pr repository.PostRepository,
	ur repository.UserRepository,
	ar repository.AnalyticsRepository,
	fb service.FacebookService,
	li service.LinkedinService) *EngagementSyncJob {
	return &EngagementSyncJob{
		cfg: cfg,
		pr:  pr,
		ur:  ur,
		ar:  ar,
		fb:  fb,
		li:  li,
	}
}

// SyncEngagement runs as a cron func; every error is logged and swallowed.
func (j *EngagementSyncJob) SyncEngagement() {
	ctx := context.Background()

	posts, err := j.pr.GetPostedWithSocialIDs(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, post := range posts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(post *models.Post) {
			defer wg.Done()
			defer func() { <-semaphore }()

			j.syncPost(ctx, post)
		}(post)
	}

	wg.Wait()
}

func (j *EngagementSyncJob) syncPost(ctx context.Context, post *models.Post) {
	user, exists, err := j.ur.GetByID(ctx, post.UserID)
	if err != nil || !exists {
		return
	}

	var total models.Engagement

	if post.SocialMediaIDs.Facebook != "" && user.SocialAccounts.Facebook.Connected {
		token, err := j.decryptToken(user.SocialAccounts.Facebook.AccessToken)
		if err == nil {
			engagement, err := j.fb.FetchEngagement(ctx, post.SocialMediaIDs.Facebook, token)
			if err != nil {
				slog.Info("unable to fetch Facebook engagement", "post_id", post.ID, "error", err)
			} else {
				total.Likes += engagement.Likes
				total.Comments += engagement.Comments
				total.Shares += engagement.Shares
			}
		}
	}

	if post.SocialMediaIDs.Linkedin != "" && user.SocialAccounts.Linkedin.Connected {
		token, err := j.decryptToken(user.SocialAccounts.Linkedin.AccessToken)
		if err == nil {
			engagement, err := j.li.FetchEngagement(ctx, post.SocialMediaIDs.Linkedin, token)
			if err != nil {
				slog.Info("unable to fetch LinkedIn engagement", "post_id", post.ID, "error", err)
			} else {
				total.Likes += engagement.Likes
				total.Comments += engagement.Comments
				total.Shares += engagement.Shares
			}
		}
	}

	total.Views = post.Engagement.Views
	if total == post.Engagement {
		return
	}

	if err := j.pr.UpdateEngagement(ctx, post.ID, total); err != nil {
		slog.Info("unable to update engagement", "post_id", post.ID, "error", err)
		return
	}

	event := &models.AnalyticsEvent{
		UserID:    post.UserID,
		PostID:    post.ID,
		EventType: models.EventEngagementTracked,
		Data: models.AnalyticsData{
			Engagement: &total,
		},
	}
	if _, err := j.ar.Create(ctx, event); err != nil {
		slog.Info("unable to record engagement event", "post_id", post.ID, "error", err)
	}
}

func (j *EngagementSyncJob) decryptToken(token string) (string, error) {
	if j.cfg.SecretKey == "" {
		return token, nil
	}
	return utils.Decrypt(token, []byte(j.cfg.SecretKey))
}
