package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/errs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

// PostService owns the post lifecycle: drafts may be edited, approved or
// deleted; once a publish attempt runs the post is frozen as posted or
// failed, mutable only through engagement sync.
type PostService interface {
	List(ctx context.Context, userID int64, status string, limit, skip int) ([]*models.Post, int, error)
	Get(ctx context.Context, postID, userID int64) (*models.Post, error)
	Update(ctx context.Context, postID, userID int64, update *transfer.PostUpdate) (*models.Post, error)
	Remove(ctx context.Context, postID, userID int64) error
	ApproveAndPost(ctx context.Context, postID, userID int64) (*models.Post, []transfer.PublishResult, error)
	Schedule(ctx context.Context, postID, userID int64, at time.Time) (time.Duration, error)
	CancelSchedule(ctx context.Context, postID, userID int64) error
	PublishScheduled(ctx context.Context, postID int64) error
	ListAnalytics(ctx context.Context, userID int64) ([]*models.AnalyticsEvent, error)
}

type postService struct {
	pr        repository.PostRepository
	ur        repository.UserRepository
	ar        repository.AnalyticsRepository
	publisher PublisherService
}

func NewPostService(
	pr repository.PostRepository,
	ur repository.UserRepository,
	ar repository.AnalyticsRepository,
	publisher PublisherService) PostService {
	return &postService{
		pr:        pr,
		ur:        ur,
		ar:        ar,
		publisher: publisher,
	}
}

func (s *postService) List(ctx context.Context, userID int64, status string, limit, skip int) ([]*models.Post, int, error) {
	if limit <= 0 {
		limit = 20
	}

	posts, err := s.pr.GetByUserID(ctx, userID, status, limit, skip)
	if err != nil {
		return nil, 0, errs.Persistence(err)
	}

	total, err := s.pr.CountByUserID(ctx, userID, status)
	if err != nil {
		return nil, 0, errs.Persistence(err)
	}

	return posts, total, nil
}

// ownedPost loads a post and enforces ownership.
func (s *postService) ownedPost(ctx context.Context, postID, userID int64) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	if post == nil {
		return nil, errs.NotFound("post")
	}
	if post.UserID != userID {
		return nil, errs.Unauthorized("post belongs to another user")
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, postID, userID int64) (*models.Post, error) {
	return s.ownedPost(ctx, postID, userID)
}

func (s *postService) Update(ctx context.Context, postID, userID int64, update *transfer.PostUpdate) (*models.Post, error) {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusDraft {
		return nil, errs.StateConflict("can only edit draft posts")
	}

	if update.Caption != "" {
		post.EditedCaption = update.Caption
	}
	if update.Hashtags != nil {
		post.EditedHashtags = update.Hashtags
	}
	if update.ApprovalNotes != "" {
		post.ApprovalNotes = update.ApprovalNotes
	}

	if err := s.pr.UpdateDraft(ctx, post); err != nil {
		return nil, errs.Persistence(err)
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, postID, userID int64) error {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.Status != models.PostStatusDraft {
		return errs.StateConflict("can only delete draft posts")
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return errs.Persistence(err)
	}
	return nil
}

func (s *postService) ApproveAndPost(ctx context.Context, postID, userID int64) (*models.Post, []transfer.PublishResult, error) {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, nil, err
	}
	if post.Status != models.PostStatusDraft {
		return nil, nil, errs.StateConflict("only draft posts can be approved")
	}

	user, exists, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, errs.Persistence(err)
	}
	if !exists {
		return nil, nil, errs.NotFound("user")
	}

	results, err := s.publish(ctx, post, user)
	if err != nil {
		return nil, nil, err
	}
	return post, results, nil
}

// publish runs the platform fan-out and persists the aggregated outcome.
// The post ends up posted only when every attempted platform succeeded;
// the first failing platform's error becomes the failure reason.
func (s *postService) publish(ctx context.Context, post *models.Post, user *models.User) ([]transfer.PublishResult, error) {
	payload := &transfer.PublishPayload{
		Caption:  FormatCaption(post.EffectiveCaption(), post.EffectiveHashtags()),
		ImageURL: post.ImageURL,
	}

	results := s.publisher.PublishAll(ctx, user.SocialAccounts, payload)

	now := time.Now()
	if post.ApprovedAt == nil {
		post.ApprovedAt = &now
	}
	post.PostedAt = &now
	post.Status = models.PostStatusPosted

	for _, result := range results {
		if result.Success {
			switch result.Platform {
			case "facebook":
				post.SocialMediaIDs.Facebook = result.PostID
			case "linkedin":
				post.SocialMediaIDs.Linkedin = result.PostID
			}
		} else if post.Status != models.PostStatusFailed {
			post.Status = models.PostStatusFailed
			post.FailureReason = result.Error
		}
	}

	if err := s.pr.UpdatePublishOutcome(ctx, post); err != nil {
		return results, errs.Persistence(err)
	}

	event := &models.AnalyticsEvent{
		UserID:    post.UserID,
		PostID:    post.ID,
		EventType: models.EventPostPosted,
		Data: models.AnalyticsData{
			Caption:  post.Caption,
			Hashtags: post.Hashtags,
			Platform: "both",
		},
	}
	if _, err := s.ar.Create(ctx, event); err != nil {
		slog.Info("failed to record analytics event", "post_id", post.ID, "error", err)
	}

	return results, nil
}

// Schedule approves a draft for deferred publishing and returns the delay
// until fire time; the caller enqueues the publish task.
func (s *postService) Schedule(ctx context.Context, postID, userID int64, at time.Time) (time.Duration, error) {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return 0, err
	}
	if post.Status != models.PostStatusDraft {
		return 0, errs.StateConflict("only draft posts can be scheduled")
	}

	now := time.Now()
	post.ApprovedAt = &now
	post.Status = models.PostStatusScheduled
	if err := s.pr.UpdatePublishOutcome(ctx, post); err != nil {
		return 0, errs.Persistence(err)
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	return delay, nil
}

// CancelSchedule returns a scheduled post to draft. Used when no publish
// task could be enqueued for it; the approval timestamp is kept.
func (s *postService) CancelSchedule(ctx context.Context, postID, userID int64) error {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.Status != models.PostStatusScheduled {
		return errs.StateConflict("only scheduled posts can be cancelled")
	}

	if err := s.pr.UpdateStatus(ctx, models.PostStatusDraft, postID); err != nil {
		return errs.Persistence(err)
	}
	post.Status = models.PostStatusDraft
	return nil
}

// PublishScheduled is invoked by the queue worker when a scheduled post's
// task fires.
func (s *postService) PublishScheduled(ctx context.Context, postID int64) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return errs.Persistence(err)
	}
	if post == nil {
		return errs.NotFound("post")
	}
	if post.Status != models.PostStatusScheduled {
		return errs.StateConflict("post %d is %s, not scheduled", postID, post.Status)
	}

	user, exists, err := s.ur.GetByID(ctx, post.UserID)
	if err != nil {
		return errs.Persistence(err)
	}
	if !exists {
		return errs.NotFound("user")
	}

	_, err = s.publish(ctx, post, user)
	return err
}

func (s *postService) ListAnalytics(ctx context.Context, userID int64) ([]*models.AnalyticsEvent, error) {
	events, err := s.ar.ListByUserID(ctx, userID, 100)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	return events, nil
}
