package service

import (
	"context"
	"log/slog"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/errs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/transfer"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

// SchedulerControl is the slice of the recurring scheduler the user service
// needs when the auto-posting preference flips.
type SchedulerControl interface {
	Start(userID int64, timeOfDay string)
	Stop(userID int64)
}

type UserService interface {
	Register(ctx context.Context, reg *transfer.Register) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update *transfer.ProfileUpdate) (*models.User, error)
	CompleteOnboarding(ctx context.Context, userID int64, onboarding *transfer.Onboarding) (*models.User, error)
	ConnectSocial(ctx context.Context, userID int64, req *transfer.ConnectSocial) (*models.User, error)
	ProfilingQuestions(ctx context.Context, userID int64) ([]string, error)
	SaveProfilingAnswers(ctx context.Context, userID int64, answers *transfer.ProfilingAnswers) (*models.User, error)
}

type userService struct {
	cfg       config.Config
	ur        repository.UserRepository
	ai        AIService
	scheduler SchedulerControl
}

func NewUserService(cfg config.Config, ur repository.UserRepository, ai AIService, scheduler SchedulerControl) UserService {
	return &userService{
		cfg:       cfg,
		ur:        ur,
		ai:        ai,
		scheduler: scheduler,
	}
}

func (s *userService) Register(ctx context.Context, reg *transfer.Register) (*models.User, error) {
	_, exists, err := s.ur.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	if exists {
		return nil, errs.Validation("user already exists")
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	user := &models.User{
		Email:        reg.Email,
		PasswordHash: hash,
		Name:         reg.Name,
		PostingStyle: models.StyleProfessional,
		Preferences:  models.DefaultPreferences(),
	}

	id, err := s.ur.Create(ctx, user)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	user.ID = id

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, exists, err := s.ur.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	if !exists || !utils.ComparePassword(user.PasswordHash, password) {
		return nil, errs.Unauthorized("invalid credentials")
	}

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, exists, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	if !exists {
		return nil, errs.NotFound("user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, update *transfer.ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Niche != "" {
		user.Niche = update.Niche
	}
	if update.TargetAudience != "" {
		user.TargetAudience = update.TargetAudience
	}
	if update.PostingStyle != "" {
		user.PostingStyle = update.PostingStyle
	}

	autoPostingChanged := false
	if update.Preferences != nil {
		autoPostingChanged = mergePreferences(&user.Preferences, update.Preferences)
	}

	user.ProfileCompleteness = profileCompleteness(user)

	if err := s.ur.Update(ctx, user); err != nil {
		return nil, errs.Persistence(err)
	}

	if autoPostingChanged && s.scheduler != nil {
		if user.Preferences.AutoPostingEnabled {
			s.scheduler.Start(user.ID, user.Preferences.BestTimeToPost)
		} else {
			s.scheduler.Stop(user.ID)
		}
	}

	return user, nil
}

func (s *userService) CompleteOnboarding(ctx context.Context, userID int64, onboarding *transfer.Onboarding) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Niche = onboarding.Niche
	user.TargetAudience = onboarding.TargetAudience
	user.PostingStyle = onboarding.PostingStyle
	if onboarding.Niches != nil {
		user.Niches = onboarding.Niches
	}
	user.IsOnboarded = true
	user.ProfileCompleteness = 100

	if err := s.ur.Update(ctx, user); err != nil {
		return nil, errs.Persistence(err)
	}
	return user, nil
}

func (s *userService) ConnectSocial(ctx context.Context, userID int64, req *transfer.ConnectSocial) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	token := req.AccessToken
	if s.cfg.SecretKey != "" {
		token, err = utils.Encrypt([]byte(req.AccessToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return nil, err
		}
	}

	switch req.Platform {
	case "facebook":
		user.SocialAccounts.Facebook = models.FacebookAccount{
			PageID:      req.PageID,
			AccessToken: token,
			Connected:   true,
		}
	case "linkedin":
		user.SocialAccounts.Linkedin = models.LinkedinAccount{
			ProfileID:   req.ProfileID,
			AccessToken: token,
			Connected:   true,
		}
	default:
		return nil, errs.Validation("invalid platform %q", req.Platform)
	}

	user.ProfileCompleteness = profileCompleteness(user)

	if err := s.ur.Update(ctx, user); err != nil {
		return nil, errs.Persistence(err)
	}
	return user, nil
}

func (s *userService) ProfilingQuestions(ctx context.Context, userID int64) ([]string, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.ai.GenerateProfilingQuestions(ctx, map[string]string{
		"niche":          user.Niche,
		"targetAudience": user.TargetAudience,
	})
}

func (s *userService) SaveProfilingAnswers(ctx context.Context, userID int64, answers *transfer.ProfilingAnswers) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if answers.Niches != nil {
		user.Niches = answers.Niches
	}
	user.ProfileCompleteness = profileCompleteness(user)

	if err := s.ur.Update(ctx, user); err != nil {
		return nil, errs.Persistence(err)
	}
	return user, nil
}

// mergePreferences applies only the fields present in the update, leaving
// the rest of the stored preferences intact. Reports whether the
// auto-posting flag flipped.
func mergePreferences(prefs *models.Preferences, update *transfer.PreferencesUpdate) bool {
	autoPostingChanged := false

	if update.AutoPostingEnabled != nil {
		autoPostingChanged = *update.AutoPostingEnabled != prefs.AutoPostingEnabled
		prefs.AutoPostingEnabled = *update.AutoPostingEnabled
	}
	if update.PostingFrequency != nil {
		prefs.PostingFrequency = *update.PostingFrequency
	}
	if update.BestTimeToPost != nil {
		prefs.BestTimeToPost = *update.BestTimeToPost
	}
	if update.IncludeHashtags != nil {
		prefs.IncludeHashtags = *update.IncludeHashtags
	}
	if update.IncludeTrendingTopics != nil {
		prefs.IncludeTrendingTopics = *update.IncludeTrendingTopics
	}
	if update.MaxHashtags != nil {
		prefs.MaxHashtags = *update.MaxHashtags
	}

	return autoPostingChanged
}

// profileCompleteness scores six profile facets equally.
func profileCompleteness(user *models.User) int {
	points := 0
	if user.Name != "" {
		points++
	}
	if user.Niche != "" {
		points++
	}
	if user.TargetAudience != "" {
		points++
	}
	if user.PostingStyle != "" {
		points++
	}
	if user.SocialAccounts.Facebook.Connected {
		points++
	}
	if user.SocialAccounts.Linkedin.Connected {
		points++
	}

	return int(float64(points)/6*100 + 0.5)
}
