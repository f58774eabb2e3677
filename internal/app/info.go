package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oshokin/spot-grabber/internal/client/ytdlp"
	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

// ExecuteValidateCommand prints the validation record of rawURL as JSON.
// It performs no network access.
func ExecuteValidateCommand(ctx context.Context, rawURL string, w io.Writer) {
	result := grabber.NewURLProcessor().Validate(rawURL)

	if err := writeJSON(w, result); err != nil {
		logger.Fatalf(ctx, "Failed to print validation result: %v", err)
	}
}

// ExecuteVersionCommand prints the fetch backend version record as JSON.
func ExecuteVersionCommand(ctx context.Context, cfg *config.Config, w io.Writer) {
	s := grabber.NewService(
		cfg,
		nil,
		grabber.NewURLProcessor(),
		nil,
		grabber.NewFetcher(ytdlp.NewClient(cfg.YtDlpPath)),
		grabber.NewTranscoder(nil, cfg.FFmpegPath),
		nil,
		nil,
	)

	if err := writeJSON(w, s.BackendVersion(ctx)); err != nil {
		logger.Fatalf(ctx, "Failed to print version: %v", err)
	}
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
