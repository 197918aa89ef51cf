package service

import (
	"context"
	"errors"

	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type fakeUserRepo struct {
	users     map[int64]*models.User
	updated   []*models.User
	createErr error
	nextID    int64
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int64]*models.User), nextID: 100}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	r.updated = append(r.updated, user)
	return nil
}

func (r *fakeUserRepo) ListAutoPosting(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range r.users {
		if user.Preferences.AutoPostingEnabled {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

type fakePostRepo struct {
	posts       map[int64]*models.Post
	createErr   error
	lastOutcome *models.Post
	removed     []int64
	nextID      int64
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[int64]*models.Post), nextID: 500}
	for _, post := range posts {
		repo.posts[post.ID] = post
	}
	return repo
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.nextID++
	post.ID = r.nextID
	r.posts[post.ID] = post
	return post.ID, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return r.posts[id], nil
}

func (r *fakePostRepo) GetByUserID(ctx context.Context, userID int64, status string, limit, skip int) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range r.posts {
		if post.UserID == userID && (status == "" || post.Status == status) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) CountByUserID(ctx context.Context, userID int64, status string) (int, error) {
	posts, _ := r.GetByUserID(ctx, userID, status, 0, 0)
	return len(posts), nil
}

func (r *fakePostRepo) GetPostedWithSocialIDs(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range r.posts {
		if post.Status == models.PostStatusPosted && post.SocialMediaIDs != (models.SocialIDs{}) {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) UpdateDraft(ctx context.Context, post *models.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) UpdatePublishOutcome(ctx context.Context, post *models.Post) error {
	r.posts[post.ID] = post
	r.lastOutcome = post
	return nil
}

func (r *fakePostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	if post, ok := r.posts[postID]; ok {
		post.Status = status
	}
	return nil
}

func (r *fakePostRepo) UpdateEngagement(ctx context.Context, postID int64, e models.Engagement) error {
	if post, ok := r.posts[postID]; ok {
		post.Engagement = e
	}
	return nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(r.posts, id)
	r.removed = append(r.removed, id)
	return nil
}

type fakeAnalyticsRepo struct {
	events    []*models.AnalyticsEvent
	createErr error
}

func (r *fakeAnalyticsRepo) Create(ctx context.Context, event *models.AnalyticsEvent) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.events = append(r.events, event)
	return int64(len(r.events)), nil
}

func (r *fakeAnalyticsRepo) ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.AnalyticsEvent, error) {
	var events []*models.AnalyticsEvent
	for _, event := range r.events {
		if event.UserID == userID {
			events = append(events, event)
		}
	}
	return events, nil
}

type stubFacebook struct {
	publish func(ctx context.Context, pageID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error)
	fetch   func(ctx context.Context, postID, accessToken string) (models.Engagement, error)
}

func (s *stubFacebook) PublishPost(ctx context.Context, pageID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error) {
	return s.publish(ctx, pageID, accessToken, payload)
}

func (s *stubFacebook) FetchEngagement(ctx context.Context, postID, accessToken string) (models.Engagement, error) {
	if s.fetch == nil {
		return models.Engagement{}, errors.New("not implemented")
	}
	return s.fetch(ctx, postID, accessToken)
}

type stubLinkedin struct {
	publish func(ctx context.Context, profileID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error)
	fetch   func(ctx context.Context, postID, accessToken string) (models.Engagement, error)
}

func (s *stubLinkedin) PublishPost(ctx context.Context, profileID, accessToken string, payload *transfer.PublishPayload) (*transfer.PublishResult, error) {
	return s.publish(ctx, profileID, accessToken, payload)
}

func (s *stubLinkedin) FetchEngagement(ctx context.Context, postID, accessToken string) (models.Engagement, error) {
	if s.fetch == nil {
		return models.Engagement{}, errors.New("not implemented")
	}
	return s.fetch(ctx, postID, accessToken)
}

type stubPublisher struct {
	results  []transfer.PublishResult
	payloads []*transfer.PublishPayload
}

func (s *stubPublisher) PublishAll(ctx context.Context, accounts models.SocialAccounts, payload *transfer.PublishPayload) []transfer.PublishResult {
	s.payloads = append(s.payloads, payload)
	return s.results
}

type stubTrending struct {
	topics []string
}

func (s *stubTrending) GetTrendingTopics(niche string, keywords []string) []string {
	return s.topics
}

func (s *stubTrending) AnalyzeRelevance(topics []string, niche string) []ScoredTopic {
	return nil
}

func (s *stubTrending) GetTrendingHashtags(topic string) []string {
	return nil
}

type stubAI struct {
	caption    *CaptionData
	captionErr error
	questions  []string
	lastOpts   *CaptionOptions
}

func (s *stubAI) GenerateCaption(ctx context.Context, opts *CaptionOptions) (*CaptionData, error) {
	s.lastOpts = opts
	if s.captionErr != nil {
		return nil, s.captionErr
	}
	return s.caption, nil
}

func (s *stubAI) GenerateProfilingQuestions(ctx context.Context, userContext map[string]string) ([]string, error) {
	return s.questions, nil
}

type stubImages struct {
	asset *ImageAsset
	err   error
}

func (s *stubImages) SelectForCaption(caption string, hashtags []string) (*ImageAsset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.asset, nil
}

func (s *stubImages) ListImages() ([]ImageAsset, error) { return nil, nil }

func (s *stubImages) Upload(ctx context.Context, originalName string, data []byte) (*ImageAsset, error) {
	return nil, errors.New("not implemented")
}

func (s *stubImages) Delete(ctx context.Context, filename string) error { return nil }

func (s *stubImages) Metadata(filename string) (*ImageMetadata, error) {
	return nil, errors.New("not implemented")
}

type stubSchedulerControl struct {
	started map[int64]string
	stopped []int64
}

func newStubSchedulerControl() *stubSchedulerControl {
	return &stubSchedulerControl{started: make(map[int64]string)}
}

func (s *stubSchedulerControl) Start(userID int64, timeOfDay string) {
	s.started[userID] = timeOfDay
}

func (s *stubSchedulerControl) Stop(userID int64) {
	s.stopped = append(s.stopped, userID)
}
