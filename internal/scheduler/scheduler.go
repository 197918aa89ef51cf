// Package scheduler owns the per-user auto-posting timers: one cron runner
// multiplexing a registry of daily entries, mutated only through Start, Stop
// and StartAll.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/maheshrc27/postpilot/internal/models"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/robfig/cron/v3"
)

const defaultSpec = "0 9 * * *"

// Generator is the draft assembler slice the fired job needs.
type Generator interface {
	GeneratePost(ctx context.Context, userID int64) (*models.Post, error)
}

type Scheduler struct {
	cron      *cron.Cron
	ur        repository.UserRepository
	generator Generator

	mu      sync.Mutex
	entries map[int64]cron.EntryID
}

func New(ur repository.UserRepository, generator Generator) *Scheduler {
	c := cron.New()
	c.Start()

	return &Scheduler{
		cron:      c,
		ur:        ur,
		generator: generator,
		entries:   make(map[int64]cron.EntryID),
	}
}

// Start registers a daily timer for the user. A second Start for the same
// user is a logged no-op; the existing timer keeps its original time.
func (s *Scheduler) Start(userID int64, timeOfDay string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[userID]; ok {
		slog.Info("scheduler already running", "user_id", userID)
		return
	}

	spec := toCronSpec(timeOfDay)
	entryID, err := s.cron.AddFunc(spec, func() {
		s.runJob(userID)
	})
	if err != nil {
		slog.Error("failed to register scheduler", "user_id", userID, "error", err)
		return
	}

	s.entries[userID] = entryID
	slog.Info("scheduler started", "user_id", userID, "spec", spec)
}

// Stop cancels the user's timer; calling it without one is a no-op.
func (s *Scheduler) Stop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.entries[userID]
	if !ok {
		return
	}

	s.cron.Remove(entryID)
	delete(s.entries, userID)
	slog.Info("scheduler stopped", "user_id", userID)
}

// StartAll rebuilds the registry from persisted auto-posting users; called
// once on process start.
func (s *Scheduler) StartAll(ctx context.Context) error {
	users, err := s.ur.ListAutoPosting(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		s.Start(user.ID, user.Preferences.BestTimeToPost)
	}

	slog.Info("schedulers started", "count", len(users))
	return nil
}

func (s *Scheduler) IsRunning(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[userID]
	return ok
}

func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Shutdown cancels every timer and waits for running jobs to finish.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	for userID, entryID := range s.entries {
		s.cron.Remove(entryID)
		delete(s.entries, userID)
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// runJob generates the user's daily draft. The user is re-fetched at fire
// time: a user who disabled auto-posting or no longer exists is skipped
// silently. Errors are logged and swallowed; the timer stays registered and
// the next fire still happens.
func (s *Scheduler) runJob(userID int64) {
	ctx := context.Background()

	user, exists, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		slog.Error("scheduled generation aborted", "user_id", userID, "error", err)
		return
	}
	if !exists || !user.Preferences.AutoPostingEnabled {
		return
	}

	post, err := s.generator.GeneratePost(ctx, userID)
	if err != nil {
		slog.Error("scheduled generation failed", "user_id", userID, "error", err)
		return
	}

	slog.Info("daily post generated", "user_id", userID, "post_id", post.ID)
}

// toCronSpec converts "HH:MM" into a daily cron spec, falling back to 09:00
// for anything malformed.
func toCronSpec(timeOfDay string) string {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) != 2 {
		return defaultSpec
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return defaultSpec
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return defaultSpec
	}

	return fmt.Sprintf("%d %d * * *", minutes, hours)
}
