package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/errs"
	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// PlatformService runs the OAuth connect flow for Facebook pages; LinkedIn
// and direct-token submission go through UserService.ConnectSocial.
type PlatformService interface {
	FacebookAuthURL(state string) string
	FacebookCallback(ctx context.Context, code string, userID int64) error
}

type platformService struct {
	cfg    config.Config
	ur     repository.UserRepository
	client *http.Client
}

func NewPlatformService(cfg config.Config, ur repository.UserRepository) PlatformService {
	return &platformService{
		cfg:    cfg,
		ur:     ur,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *platformService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.FacebookAppID,
		ClientSecret: s.cfg.FacebookAppSecret,
		RedirectURL:  s.cfg.FacebookRedirect,
		Scopes:       []string{"pages_manage_posts", "pages_read_engagement"},
		Endpoint:     facebook.Endpoint,
	}
}

func (s *platformService) FacebookAuthURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *platformService) FacebookCallback(ctx context.Context, code string, userID int64) error {
	if code == "" {
		return errs.Validation("code is empty")
	}

	cfg := s.oauthConfig()
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		err := errors.New("facebook OAuth configuration is incomplete")
		slog.Info(err.Error())
		return err
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	page, err := s.firstManagedPage(ctx, token.AccessToken)
	if err != nil {
		return err
	}

	user, exists, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NotFound("user")
	}

	pageToken := page.AccessToken
	if s.cfg.SecretKey != "" {
		pageToken, err = utils.Encrypt([]byte(page.AccessToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	user.SocialAccounts.Facebook = models.FacebookAccount{
		PageID:      page.ID,
		AccessToken: pageToken,
		Connected:   true,
	}

	return s.ur.Update(ctx, user)
}

type facebookPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// firstManagedPage returns the first page the user token can manage.
func (s *platformService) firstManagedPage(ctx context.Context, userToken string) (*facebookPage, error) {
	endpoint := fmt.Sprintf("%s/me/accounts?access_token=%s", s.cfg.GraphBaseURL, userToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		Data []facebookPage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, errors.New("no managed pages for this account")
	}

	return &result.Data[0], nil
}
