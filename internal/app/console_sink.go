package app

import (
	"context"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

// ConsoleSink reports task events through the logger, optionally drawing a progress bar.
type ConsoleSink struct {
	// ctx carries the logger.
	ctx context.Context //nolint:containedctx // Events arrive without a context.
	// showProgressBar enables the bar instead of per-tick log lines.
	showProgressBar bool
	// mu protects bars and lastStatus.
	mu sync.Mutex
	// bars holds the progress bar of each running task.
	bars map[string]*progressbar.ProgressBar
	// lastStatus is the last logged status of each running task.
	lastStatus map[string]grabber.TaskStatus
}

// NewConsoleSink creates a ConsoleSink.
func NewConsoleSink(ctx context.Context, showProgressBar bool) *ConsoleSink {
	return &ConsoleSink{
		ctx:             ctx,
		showProgressBar: showProgressBar,
		bars:            make(map[string]*progressbar.ProgressBar),
		lastStatus:      make(map[string]grabber.TaskStatus),
	}
}

// Emit reports event.
func (cs *ConsoleSink) Emit(event *grabber.Event) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	ctx := logger.WithKV(cs.ctx, "task_id", event.TaskID)

	if event.Status.IsTerminal() {
		cs.finishBar(event.TaskID)
		delete(cs.lastStatus, event.TaskID)

		switch event.Type {
		case grabber.EventTypeError:
			logger.Error(ctx, event.Message)
		case grabber.EventTypeWarning:
			logger.Warn(ctx, event.Message)
		default:
			if event.FilePath != "" {
				logger.Infof(ctx, "%s: %s", event.Message, event.FilePath)
			} else {
				logger.Info(ctx, event.Message)
			}
		}

		return
	}

	if cs.showProgressBar && event.Status == grabber.TaskStatusDownloading {
		bar := cs.bars[event.TaskID]
		if bar == nil {
			bar = progressbar.Default(100, "Downloading") //nolint:mnd // Percent scale.
			cs.bars[event.TaskID] = bar
		}

		_ = bar.Set(event.Progress)

		return
	}

	cs.finishBar(event.TaskID)

	// Download ticks repeat the same status; only phase changes are logged at info level.
	if cs.lastStatus[event.TaskID] == event.Status && event.Status == grabber.TaskStatusDownloading {
		logger.Debug(ctx, event.Message)

		return
	}

	cs.lastStatus[event.TaskID] = event.Status

	logger.Info(ctx, event.Message)
}

func (cs *ConsoleSink) finishBar(taskID string) {
	bar, ok := cs.bars[taskID]
	if !ok {
		return
	}

	_ = bar.Finish()

	delete(cs.bars, taskID)
}
