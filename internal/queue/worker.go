package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postpilot/internal/errs"
)

// HandlePublishPostTask publishes a scheduled post when its task fires.
// State conflicts (the post was deleted or already published) are swallowed
// so asynq does not retry them.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	err := q.ps.PublishScheduled(ctx, payload.PostID)
	if err != nil {
		if errs.IsNotFound(err) || errs.IsStateConflict(err) {
			slog.Info("skipping publish task", "post_id", payload.PostID, "reason", err)
			return nil
		}
		slog.Error("publish task failed", "post_id", payload.PostID, "error", err)
		return err
	}

	return nil
}
