package app

import (
	"fmt"

	"github.com/oshokin/spot-grabber/internal/client/web"
	"github.com/oshokin/spot-grabber/internal/client/ytdlp"
	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

// NewGrabberService builds the download service with its production components.
func NewGrabberService(cfg *config.Config, sink grabber.EventSink) (grabber.Service, error) {
	webClient, err := web.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web client: %w", err)
	}

	backend := ytdlp.NewClient(cfg.YtDlpPath)

	return grabber.NewService(
		cfg,
		sink,
		grabber.NewURLProcessor(),
		grabber.NewTitleResolver(webClient, cfg.ParsedTitleLookupTimeout),
		grabber.NewFetcher(backend),
		grabber.NewTranscoder(nil, cfg.FFmpegPath),
		grabber.NewArtworkFetcher(webClient, cfg.ParsedArtworkTimeout),
		grabber.NewTagProcessor(),
	), nil
}
