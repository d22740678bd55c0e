package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskProjectRollup refreshes a project's quoted amount from its quotes.
	TaskProjectRollup = "project:rollup_quoted"
	// TaskCatalogWarmup preloads the catalog snapshot cache.
	TaskCatalogWarmup = "catalog:warmup"
)

// ProjectRollupPayload identifies the project whose rollup must be refreshed.
type ProjectRollupPayload struct {
	ProjectID int64 `json:"project_id"`
}

// NewProjectRollupTask constructs an Asynq task for a project rollup.
func NewProjectRollupTask(projectID int64) (*asynq.Task, error) {
	data, err := json.Marshal(ProjectRollupPayload{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProjectRollup, data), nil
}

// NewCatalogWarmupTask constructs the cron task that keeps the snapshot warm.
func NewCatalogWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskCatalogWarmup, nil)
}

// ProjectRefresher recomputes a project's quoted amount. Implemented by the
// projects service.
type ProjectRefresher interface {
	RefreshQuotedAmount(ctx context.Context, projectID int64) error
}

// SnapshotLoader loads the catalog snapshot, priming the cache as a side
// effect. Implemented by the catalog service.
type SnapshotLoader interface {
	Warm(ctx context.Context) error
}

// NewProjectRollupHandler returns the handler for TaskProjectRollup tasks.
func NewProjectRollupHandler(logger *slog.Logger, refresher ProjectRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ProjectRollupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.ProjectID <= 0 {
			return asynq.SkipRetry
		}
		start := time.Now()
		if err := refresher.RefreshQuotedAmount(ctx, payload.ProjectID); err != nil {
			logger.Error("project rollup failed", slog.Int64("project_id", payload.ProjectID), slog.Any("error", err))
			return err
		}
		logger.Info("project rollup done", slog.Int64("project_id", payload.ProjectID), slog.Duration("took", time.Since(start)))
		return nil
	}
}

// NewCatalogWarmupHandler returns the handler for TaskCatalogWarmup tasks.
func NewCatalogWarmupHandler(logger *slog.Logger, loader SnapshotLoader) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if err := loader.Warm(ctx); err != nil {
			logger.Warn("catalog warmup failed", slog.Any("error", err))
			return err
		}
		return nil
	}
}
