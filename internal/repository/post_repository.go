package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetByUserID(ctx context.Context, userID int64, status string, limit, skip int) ([]*models.Post, error)
	CountByUserID(ctx context.Context, userID int64, status string) (int, error)
	GetPostedWithSocialIDs(ctx context.Context) ([]*models.Post, error)
	UpdateDraft(ctx context.Context, post *models.Post) error
	UpdatePublishOutcome(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, status string, postID int64) error
	UpdateEngagement(ctx context.Context, postID int64, e models.Engagement) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, caption, edited_caption, hashtags, edited_hashtags,
	trending_topics, image_path, image_url, status, generated_at, approved_at,
	posted_at, social_media_ids, failure_reason, engagement, ai_metadata,
	approval_notes, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, caption, hashtags, trending_topics, image_path,
			image_url, status, generated_at, social_media_ids, engagement, ai_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		post.UserID, post.Caption, jsonb(post.Hashtags), jsonb(post.TrendingTopics),
		post.ImagePath, post.ImageURL, post.Status, post.GeneratedAt,
		jsonb(post.SocialMediaIDs), jsonb(post.Engagement), jsonb(post.AIMetadata),
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	var editedCaption, imagePath, imageURL, failureReason, approvalNotes sql.NullString
	var approvedAt, postedAt sql.NullTime
	var hashtags, editedHashtags, trendingTopics, socialIDs, engagement, aiMeta []byte

	err := row.Scan(&post.ID, &post.UserID, &post.Caption, &editedCaption,
		&hashtags, &editedHashtags, &trendingTopics, &imagePath, &imageURL,
		&post.Status, &post.GeneratedAt, &approvedAt, &postedAt, &socialIDs,
		&failureReason, &engagement, &aiMeta, &approvalNotes,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.EditedCaption = editedCaption.String
	post.ImagePath = imagePath.String
	post.ImageURL = imageURL.String
	post.FailureReason = failureReason.String
	post.ApprovalNotes = approvalNotes.String
	if approvedAt.Valid {
		post.ApprovedAt = &approvedAt.Time
	}
	if postedAt.Valid {
		post.PostedAt = &postedAt.Time
	}

	for _, pair := range []struct {
		raw  []byte
		dest any
	}{
		{hashtags, &post.Hashtags},
		{editedHashtags, &post.EditedHashtags},
		{trendingTopics, &post.TrendingTopics},
		{socialIDs, &post.SocialMediaIDs},
		{engagement, &post.Engagement},
		{aiMeta, &post.AIMetadata},
	} {
		if err := scanJSON(pair.raw, pair.dest); err != nil {
			return nil, err
		}
	}

	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64, status string, limit, skip int) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1
		AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, userID, status, limit, skip)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) CountByUserID(ctx context.Context, userID int64, status string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE user_id = $1 AND ($2 = '' OR status = $2)`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, status).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// GetPostedWithSocialIDs feeds the engagement-sync job.
func (r *postRepository) GetPostedWithSocialIDs(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = $1 AND social_media_ids <> '{}'::jsonb`

	rows, err := r.db.QueryContext(ctx, query, models.PostStatusPosted)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) UpdateDraft(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET edited_caption = $1,
			edited_hashtags = $2,
			approval_notes = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, post.EditedCaption,
		jsonb(post.EditedHashtags), post.ApprovalNotes, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdatePublishOutcome(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET status = $1,
			approved_at = $2,
			posted_at = $3,
			social_media_ids = $4,
			failure_reason = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, post.Status, post.ApprovedAt,
		post.PostedAt, jsonb(post.SocialMediaIDs), post.FailureReason,
		time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateEngagement(ctx context.Context, postID int64, e models.Engagement) error {
	query := `
		UPDATE posts
		SET engagement = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, jsonb(e), time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
