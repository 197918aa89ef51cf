package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/maheshrc27/postpilot/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	Update(ctx context.Context, user *models.User) error
	ListAutoPosting(ctx context.Context) ([]*models.User, error)
	Remove(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, niche, niches, target_audience,
	posting_style, social_accounts, preferences, past_posts,
	profile_completeness, is_onboarded, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var niche, targetAudience sql.NullString
	var niches, socialAccounts, preferences, pastPosts []byte

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&niche, &niches, &targetAudience, &user.PostingStyle, &socialAccounts,
		&preferences, &pastPosts, &user.ProfileCompleteness, &user.IsOnboarded,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	user.Niche = niche.String
	user.TargetAudience = targetAudience.String

	for _, pair := range []struct {
		raw  []byte
		dest any
	}{
		{niches, &user.Niches},
		{socialAccounts, &user.SocialAccounts},
		{preferences, &user.Preferences},
		{pastPosts, &user.PastPosts},
	} {
		if err := scanJSON(pair.raw, pair.dest); err != nil {
			return nil, err
		}
	}

	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, password_hash, name, niche, niches, target_audience,
			posting_style, social_accounts, preferences, past_posts,
			profile_completeness, is_onboarded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Niche, jsonb(user.Niches),
		user.TargetAudience, user.PostingStyle, jsonb(user.SocialAccounts),
		jsonb(user.Preferences), jsonb(user.PastPosts),
		user.ProfileCompleteness, user.IsOnboarded,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1,
			niche = $2,
			niches = $3,
			target_audience = $4,
			posting_style = $5,
			social_accounts = $6,
			preferences = $7,
			past_posts = $8,
			profile_completeness = $9,
			is_onboarded = $10,
			updated_at = $11
		WHERE id = $12
	`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Niche,
		jsonb(user.Niches), user.TargetAudience, user.PostingStyle,
		jsonb(user.SocialAccounts), jsonb(user.Preferences), jsonb(user.PastPosts),
		user.ProfileCompleteness, user.IsOnboarded, time.Now(), user.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ListAutoPosting returns every user whose scheduler entry should exist,
// used to rebuild the registry on process start.
func (r *userRepository) ListAutoPosting(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE (preferences->>'auto_posting_enabled')::boolean = true`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
