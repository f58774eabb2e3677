package app

import (
	"context"
	"os/exec"
	"strings"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
)

// ExecuteSetFFmpegCommand persists the transcoder path into the configuration file.
// An empty path restores the default lookup: $FFMPEG_PATH, then "ffmpeg" on PATH.
func ExecuteSetFFmpegCommand(ctx context.Context, cfg *config.Config, ffmpegPath string) {
	ffmpegPath = strings.TrimSpace(ffmpegPath)

	if ffmpegPath != "" {
		if _, err := exec.LookPath(ffmpegPath); err != nil {
			logger.Warnf(ctx, "Transcoder is not executable yet, saving anyway: %v", err)
		}
	}

	if err := config.SaveFFmpegPath(ffmpegPath); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
	}

	cfg.FFmpegPath = ffmpegPath

	if ffmpegPath == "" {
		logger.Info(ctx, "Transcoder path cleared, the default lookup will be used.")

		return
	}

	logger.Infof(ctx, "Transcoder path saved: %s", ffmpegPath)
	logger.Info(ctx, "")
	logger.Info(ctx, "Try downloading a track:")
	logger.Info(ctx, "spot-grabber https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC")
}
