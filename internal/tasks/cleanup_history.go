package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
)

// HistoryPruner removes operation log entries beyond a retention window.
type HistoryPruner interface {
	PruneOlderThan(days int) (int64, error)
}

// CleanupHistoryTask removes log entries older than the retention period.
type CleanupHistoryTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for history cleanup tasks.
func (t CleanupHistoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_history",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupHistoryProcessor creates a processor function for CleanupHistoryTask.
func CleanupHistoryProcessor(pruner HistoryPruner) backlite.QueueProcessor[CleanupHistoryTask] {
	return func(ctx context.Context, task CleanupHistoryTask) error {
		if pruner == nil {
			return fmt.Errorf("history pruner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}

		deleted, err := pruner.PruneOlderThan(retentionDays)
		if err != nil {
			return fmt.Errorf("cleanup history: %w", err)
		}

		log.Info().Int64("deleted", deleted).Int("retention_days", retentionDays).
			Msg("cleaned up operation history")
		return nil
	}
}

// NewCleanupHistoryQueue creates a backlite queue for history cleanup tasks.
func NewCleanupHistoryQueue(pruner HistoryPruner) backlite.Queue {
	return backlite.NewQueue(CleanupHistoryProcessor(pruner))
}
