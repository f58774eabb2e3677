package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

// RootOptions are the root command switches that are not part of the configuration.
type RootOptions struct {
	// IsJSONOutput writes events as JSON lines to stdout instead of logging them.
	IsJSONOutput bool
}

// ExecuteRootCommand is the entry point for the application.
// It sets up the download service and runs one task per link.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, inputs []string, opts *RootOptions) {
	urls, err := grabber.NewURLProcessor().ExpandURLs(inputs)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read links: %v", err)
	}

	if len(urls) == 0 {
		logger.Warn(ctx, "No links to download")

		return
	}

	var sink grabber.EventSink

	if opts != nil && opts.IsJSONOutput {
		sink = grabber.NewJSONLinesSink(os.Stdout)
	} else {
		// The bar is only readable for a single sequential task.
		showProgressBar := logger.Level() <= zap.InfoLevel && len(urls) == 1
		sink = NewConsoleSink(ctx, showProgressBar)
	}

	s, err := NewGrabberService(cfg, sink)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize download service: %v", err)
	}

	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	s.DownloadURLs(ctx, urls)
}
