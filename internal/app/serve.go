package app

import (
	"context"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/server"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

// ExecuteServeCommand serves the HTTP bridge until ctx is done.
func ExecuteServeCommand(ctx context.Context, cfg *config.Config) {
	broadcaster := server.NewBroadcaster(server.DefaultSubscriberBuffer)

	// Events reach stream subscribers and the debug log.
	sink := grabber.MultiSink{
		broadcaster,
		grabber.EventSinkFunc(func(event *grabber.Event) {
			logger.Debugf(ctx, "Event: %s", event)
		}),
	}

	s, err := NewGrabberService(cfg, sink)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize download service: %v", err)
	}

	if err = server.NewServer(cfg, s, broadcaster).ListenAndServe(ctx); err != nil {
		logger.Fatalf(ctx, "Server failed: %v", err)
	}

	s.PrintDownloadSummary(ctx)
}
