package repository

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postTestColumns = []string{
	"id", "user_id", "caption", "edited_caption", "hashtags", "edited_hashtags",
	"trending_topics", "image_path", "image_url", "status", "generated_at",
	"approved_at", "posted_at", "social_media_ids", "failure_reason",
	"engagement", "ai_metadata", "approval_notes", "created_at", "updated_at",
}

func postTestRow(now time.Time) []driver.Value {
	return []driver.Value{
		int64(1), int64(7), "generated caption", nil,
		[]byte(`["#go"]`), []byte(`[]`),
		[]byte(`["DevOps"]`), nil, nil, "draft", now,
		nil, nil, []byte(`{}`), nil,
		[]byte(`{"likes":5,"comments":2,"shares":1,"views":0}`),
		[]byte(`{"generation_model":"gpt-3.5-turbo","user_niche":"tech"}`),
		nil, now, now,
	}
}

func TestPostRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(int64(7), "generated caption", sqlmock.AnyArg(), sqlmock.AnyArg(),
			"", "", "draft", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.Create(context.Background(), &models.Post{
		UserID:      7,
		Caption:     "generated caption",
		Hashtags:    []string{"#go"},
		Status:      models.PostStatusDraft,
		GeneratedAt: time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(postTestColumns).AddRow(postTestRow(now)...))

	post, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, int64(7), post.UserID)
	assert.Equal(t, []string{"#go"}, post.Hashtags)
	assert.Equal(t, "draft", post.Status)
	assert.Equal(t, 5, post.Engagement.Likes)
	assert.Equal(t, "gpt-3.5-turbo", post.AIMetadata.GenerationModel)
	assert.Nil(t, post.ApprovedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(postTestColumns))

	post, err := repo.GetByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByUserIDFiltersStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE user_id").
		WithArgs(int64(7), "draft", 20, 0).
		WillReturnRows(sqlmock.NewRows(postTestColumns).AddRow(postTestRow(now)...))

	posts, err := repo.GetByUserID(context.Background(), 7, "draft", 20, 0)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "draft", posts[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CountByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(7), "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByUserID(context.Background(), 7, "")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateEngagement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectExec("UPDATE posts").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateEngagement(context.Background(), 1, models.Engagement{Likes: 10})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectExec("UPDATE posts").
		WithArgs("draft", sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(context.Background(), models.PostStatusDraft, 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectExec("DELETE FROM posts").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Remove(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
