package grabber

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatDuration tests the formatDuration function.
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{duration: 250 * time.Millisecond, expected: "250ms"},
		{duration: 5 * time.Second, expected: "5s"},
		{duration: 2*time.Minute + 3*time.Second, expected: "2m 3s"},
		{duration: time.Hour + 2*time.Minute + 3*time.Second, expected: "1h 2m 3s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}

// TestStatisticsCollector tests outcome accounting.
func TestStatisticsCollector(t *testing.T) {
	t.Parallel()

	collector := new(statisticsCollector)
	collector.started()

	collector.record(taskOutcomeCompleted, 100, nil)
	collector.record(taskOutcomeDegraded, 50, nil)
	collector.record(taskOutcomeSkipped, 0, nil)
	collector.record(taskOutcomeCancelled, 0, nil)
	collector.record(taskOutcomeFailed, 0, &TaskError{TaskID: "t", URL: "u", ErrorMessage: "Download failed: x"})

	stats := collector.snapshot()
	assert.Equal(t, int64(5), stats.TasksProcessed)
	assert.Equal(t, int64(2), stats.TasksCompleted)
	assert.Equal(t, int64(1), stats.TasksDegraded)
	assert.Equal(t, int64(1), stats.TasksSkipped)
	assert.Equal(t, int64(1), stats.TasksCancelled)
	assert.Equal(t, int64(1), stats.TasksFailed)
	assert.Equal(t, int64(150), stats.TotalBytes)
	assert.Len(t, stats.Errors, 1)
	assert.False(t, stats.StartTime.IsZero())
	assert.False(t, stats.EndTime.Before(stats.StartTime))

	// Snapshots do not share the error slice.
	stats.Errors[0].URL = "changed"
	assert.Equal(t, "u", collector.snapshot().Errors[0].URL)
}

// TestStatisticsCollector_Concurrent tests concurrent recording.
func TestStatisticsCollector_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		collector = new(statisticsCollector)
		wg        sync.WaitGroup
	)

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 10 {
				collector.started()
				collector.record(taskOutcomeCompleted, 1, nil)
			}
		}()
	}

	wg.Wait()

	stats := collector.snapshot()
	assert.Equal(t, int64(100), stats.TasksProcessed)
	assert.Equal(t, int64(100), stats.TotalBytes)
}

// TestPrintDownloadSummary tests that summaries print for every state without panicking.
func TestPrintDownloadSummary(t *testing.T) {
	t.Parallel()

	setup := newTestServiceSetup(t)
	impl, ok := setup.service.(*ServiceImpl)
	assert.True(t, ok)

	// Nothing processed prints nothing.
	impl.PrintDownloadSummary(t.Context())

	impl.stats.started()
	impl.stats.record(taskOutcomeCompleted, 1024, nil)
	impl.stats.record(taskOutcomeFailed, 0, &TaskError{TaskID: "t", URL: testTrackURL, ErrorMessage: "boom"})

	impl.PrintDownloadSummary(t.Context())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	impl.PrintDownloadSummary(ctx)
}
