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

var userTestColumns = []string{
	"id", "email", "password_hash", "name", "niche", "niches", "target_audience",
	"posting_style", "social_accounts", "preferences", "past_posts",
	"profile_completeness", "is_onboarded", "created_at", "updated_at",
}

func userTestRow(now time.Time) []driver.Value {
	return []driver.Value{
		int64(7), "creator@example.com", "hash", "Creator", "tech",
		[]byte(`[{"name":"golang","keywords":["golang"]}]`), "developers",
		"professional",
		[]byte(`{"facebook":{"connected":false},"linkedin":{"connected":false}}`),
		[]byte(`{"auto_posting_enabled":true,"best_time_to_post":"09:00"}`),
		[]byte(`[]`), 50, true, now, now,
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userTestColumns).AddRow(userTestRow(now)...))

	user, exists, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "creator@example.com", user.Email)
	assert.Equal(t, "tech", user.Niche)
	require.Len(t, user.Niches, 1)
	assert.Equal(t, []string{"golang"}, user.Niches[0].Keywords)
	assert.True(t, user.Preferences.AutoPostingEnabled)
	assert.Equal(t, "09:00", user.Preferences.BestTimeToPost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userTestColumns))

	user, exists, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("new@example.com", "hash", "New User", "", sqlmock.AnyArg(),
			"", "professional", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			0, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.Create(context.Background(), &models.User{
		Email:        "new@example.com",
		PasswordHash: "hash",
		Name:         "New User",
		PostingStyle: "professional",
		Preferences:  models.DefaultPreferences(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListAutoPosting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows(userTestColumns).AddRow(userTestRow(now)...))

	users, err := repo.ListAutoPosting(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(7), users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
