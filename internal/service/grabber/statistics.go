package grabber

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// DownloadStatistics tracks metrics for a session of tasks.
type DownloadStatistics struct {
	// StartTime is when the first task was registered.
	StartTime time.Time
	// EndTime is when the last task finished.
	EndTime time.Time
	// TasksProcessed is the number of tasks that reached a terminal event.
	TasksProcessed int64
	// TasksCompleted is the number of tasks that produced a new file.
	TasksCompleted int64
	// TasksDegraded is the number of completed tasks that kept the original format.
	TasksDegraded int64
	// TasksSkipped is the number of tasks completed without fetching because the content was known.
	TasksSkipped int64
	// TasksCancelled is the number of cancelled tasks.
	TasksCancelled int64
	// TasksFailed is the number of failed tasks.
	TasksFailed int64
	// TotalBytes is the size of all produced files.
	TotalBytes int64
	// Errors lists every failed task.
	Errors []TaskError
}

// TaskError is one failed task.
type TaskError struct {
	// TaskID is the failed task.
	TaskID string
	// URL is the submitted link.
	URL string
	// ErrorMessage is the terminal event message.
	ErrorMessage string
}

// taskOutcome is what a finished task contributes to the statistics.
type taskOutcome uint8

const (
	taskOutcomeCompleted taskOutcome = iota
	taskOutcomeDegraded
	taskOutcomeSkipped
	taskOutcomeCancelled
	taskOutcomeFailed
)

// statisticsCollector accumulates DownloadStatistics.
type statisticsCollector struct {
	mu    sync.Mutex
	stats DownloadStatistics
}

func (c *statisticsCollector) started() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stats.StartTime.IsZero() {
		c.stats.StartTime = time.Now()
	}
}

func (c *statisticsCollector) record(outcome taskOutcome, bytes int64, taskErr *TaskError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.TasksProcessed++
	c.stats.EndTime = time.Now()

	switch outcome {
	case taskOutcomeCompleted:
		c.stats.TasksCompleted++
		c.stats.TotalBytes += bytes
	case taskOutcomeDegraded:
		c.stats.TasksCompleted++
		c.stats.TasksDegraded++
		c.stats.TotalBytes += bytes
	case taskOutcomeSkipped:
		c.stats.TasksSkipped++
	case taskOutcomeCancelled:
		c.stats.TasksCancelled++
	case taskOutcomeFailed:
		c.stats.TasksFailed++

		if taskErr != nil {
			c.stats.Errors = append(c.stats.Errors, *taskErr)
		}
	}
}

// snapshot returns a copy safe to read without the lock.
func (c *statisticsCollector) snapshot() DownloadStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Errors = append([]TaskError(nil), c.stats.Errors...)

	return stats
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// PrintDownloadSummary prints a formatted summary of download statistics.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context) {
	stats := s.stats.snapshot()

	// If nothing was processed, don't print summary.
	if stats.TasksProcessed == 0 {
		return
	}

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	logger.Info(ctx, "")
	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	if wasInterrupted {
		logger.Info(ctx, "           DOWNLOAD SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                     DOWNLOAD SUMMARY")
	}

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	printTaskStatistics(ctx, &stats)
	printDataTransferStatistics(ctx, &stats)

	logger.Info(ctx, "═══════════════════════════════════════════════════════════════")

	printErrorDetails(ctx, &stats)
	printFinalMessage(ctx, wasInterrupted, &stats)
}

func printTaskStatistics(ctx context.Context, stats *DownloadStatistics) {
	logger.Infof(ctx, "Tasks:            %d total processed", stats.TasksProcessed)

	if stats.TasksCompleted > 0 {
		logger.Infof(ctx, "  Downloaded:      %d", stats.TasksCompleted)

		if stats.TasksDegraded > 0 {
			logger.Infof(ctx, "    Original Format: %d", stats.TasksDegraded)
		}
	}

	if stats.TasksSkipped > 0 {
		logger.Infof(ctx, "  Already Have:    %d", stats.TasksSkipped)
	}

	if stats.TasksCancelled > 0 {
		logger.Infof(ctx, "  Cancelled:       %d", stats.TasksCancelled)
	}

	if stats.TasksFailed > 0 {
		logger.Infof(ctx, "  Failed:          %d", stats.TasksFailed)
	}

	successCount := stats.TasksCompleted + stats.TasksSkipped
	successRate := float64(successCount) / float64(stats.TasksProcessed) * 100
	logger.Infof(ctx, "  Success Rate:    %.1f%%", successRate)
}

func printDataTransferStatistics(ctx context.Context, stats *DownloadStatistics) {
	if stats.TotalBytes > 0 {
		logger.Info(ctx, "")
		logger.Infof(ctx, "Data Saved:       %s", humanize.Bytes(utils.SafeInt64ToUint64(stats.TotalBytes)))
	}

	if stats.StartTime.IsZero() || stats.EndTime.IsZero() {
		return
	}

	// Only show if duration is meaningful (> 100ms).
	if duration := stats.EndTime.Sub(stats.StartTime); duration > 100*time.Millisecond {
		logger.Infof(ctx, "Duration:         %s", formatDuration(duration))
	}
}

func printErrorDetails(ctx context.Context, stats *DownloadStatistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(stats.Errors))

	for i := range stats.Errors {
		logger.Info(ctx, "")
		logger.Errorf(ctx, "  [%d] %s", i+1, stats.Errors[i].URL)
		logger.Errorf(ctx, "      Task ID: %s", stats.Errors[i].TaskID)
		logger.Errorf(ctx, "      Error: %s", stats.Errors[i].ErrorMessage)
	}

	logger.Info(ctx, "")
	logger.Info(ctx, "To retry only failed downloads, run:")
	logger.Info(ctx, "")

	failedURLs := utils.Map(stats.Errors, func(e TaskError) string { return e.URL })

	logger.Infof(ctx, "  spot-grabber %s", strings.Join(failedURLs, " "))
}

func printFinalMessage(ctx context.Context, wasInterrupted bool, stats *DownloadStatistics) {
	switch {
	case wasInterrupted:
		logger.Info(ctx, "")
		logger.Warn(ctx, "Download interrupted by user (CTRL+C).")

		if stats.TasksCompleted > 0 {
			logger.Infof(ctx, "Successfully downloaded %d track(s) before interruption.", stats.TasksCompleted)
		}
	case len(stats.Errors) > 0:
		logger.Info(ctx, "")
		logger.Warnf(ctx, "%d error(s) occurred during download. See detailed error log above.", len(stats.Errors))
	case stats.TasksCompleted > 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All downloads completed successfully!")
	case stats.TasksSkipped > 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All tracks already exist in the output directory.")
	}
}
