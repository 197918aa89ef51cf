package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/transfer"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

// PublisherService fans an approved post out to every platform with complete
// credentials. Platforms with missing credentials are skipped, not failed;
// one platform's failure never aborts another's attempt. The result slice
// covers exactly the attempted platforms.
type PublisherService interface {
	PublishAll(ctx context.Context, accounts models.SocialAccounts, payload *transfer.PublishPayload) []transfer.PublishResult
}

type publisherService struct {
	cfg config.Config
	fb  FacebookService
	li  LinkedinService
}

func NewPublisherService(cfg config.Config, fb FacebookService, li LinkedinService) PublisherService {
	return &publisherService{
		cfg: cfg,
		fb:  fb,
		li:  li,
	}
}

type publishAttempt struct {
	platform string
	run      func(ctx context.Context) (*transfer.PublishResult, error)
}

func (s *publisherService) PublishAll(ctx context.Context, accounts models.SocialAccounts, payload *transfer.PublishPayload) []transfer.PublishResult {
	var attempts []publishAttempt

	if accounts.Facebook.PageID != "" && accounts.Facebook.AccessToken != "" {
		pageID := accounts.Facebook.PageID
		token := accounts.Facebook.AccessToken
		attempts = append(attempts, publishAttempt{
			platform: "facebook",
			run: func(ctx context.Context) (*transfer.PublishResult, error) {
				accessToken, err := s.decryptToken(token)
				if err != nil {
					return nil, err
				}
				return s.fb.PublishPost(ctx, pageID, accessToken, payload)
			},
		})
	}

	if accounts.Linkedin.ProfileID != "" && accounts.Linkedin.AccessToken != "" {
		profileID := accounts.Linkedin.ProfileID
		token := accounts.Linkedin.AccessToken
		attempts = append(attempts, publishAttempt{
			platform: "linkedin",
			run: func(ctx context.Context) (*transfer.PublishResult, error) {
				accessToken, err := s.decryptToken(token)
				if err != nil {
					return nil, err
				}
				return s.li.PublishPost(ctx, profileID, accessToken, payload)
			},
		})
	}

	results := make([]transfer.PublishResult, len(attempts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 4)

	for i, attempt := range attempts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, attempt publishAttempt) {
			defer wg.Done()
			defer func() { <-semaphore }()

			result, err := attempt.run(ctx)
			if err != nil {
				slog.Info("publish attempt failed", "platform", attempt.platform, "error", err)
				results[i] = transfer.PublishResult{
					Platform: attempt.platform,
					Success:  false,
					Error:    err.Error(),
				}
				return
			}
			results[i] = *result
		}(i, attempt)
	}

	wg.Wait()
	return results
}

// decryptToken unwraps a stored access token; with no secret configured
// tokens are stored in the clear and pass through unchanged.
func (s *publisherService) decryptToken(token string) (string, error) {
	if s.cfg.SecretKey == "" {
		return token, nil
	}
	decrypted, err := utils.Decrypt(token, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}
	return decrypted, nil
}

// FormatCaption appends the hashtag line the platforms expect below the
// caption body.
func FormatCaption(caption string, hashtags []string) string {
	if len(hashtags) == 0 {
		return caption
	}
	return caption + "\n\n" + strings.Join(hashtags, " ")
}
