package grabber

//go:generate $MOCKGEN -source=artwork.go -destination=mocks/artwork_mock.go

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/spot-grabber/internal/client/web"
	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// ArtworkFetcher downloads cover images referenced by backend metadata.
type ArtworkFetcher interface {
	// FetchArtwork saves the image at thumbnailURL as <dir>/<baseName><ext>.
	// It returns "" when the image is unavailable; failures never escalate.
	FetchArtwork(ctx context.Context, thumbnailURL, dir, baseName string) string
}

// ArtworkFetcherImpl downloads artwork with the web client.
type ArtworkFetcherImpl struct {
	// webClient performs the download.
	webClient web.Client
	// timeout bounds a single download.
	timeout time.Duration
}

// NewArtworkFetcher creates and returns a new instance of ArtworkFetcherImpl.
func NewArtworkFetcher(webClient web.Client, timeout time.Duration) ArtworkFetcher {
	return &ArtworkFetcherImpl{
		webClient: webClient,
		timeout:   timeout,
	}
}

// FetchArtwork saves the image at thumbnailURL as <dir>/<baseName><ext>.
func (af *ArtworkFetcherImpl) FetchArtwork(ctx context.Context, thumbnailURL, dir, baseName string) string {
	coverPath, err := af.fetch(ctx, thumbnailURL, dir, baseName)
	if err != nil {
		logger.Warnf(ctx, "Cover art is not embedded: %v", err)

		return ""
	}

	return coverPath
}

func (af *ArtworkFetcherImpl) fetch(ctx context.Context, thumbnailURL, dir, baseName string) (string, error) {
	if thumbnailURL == "" {
		return "", ErrEmptyThumbnailURL
	}

	if af.webClient == nil {
		return "", fmt.Errorf("%w: no web client", ErrEmptyThumbnailURL)
	}

	if af.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, af.timeout)
		defer cancel()
	}

	result, err := af.webClient.DownloadFromURL(ctx, thumbnailURL)
	if err != nil {
		return "", fmt.Errorf("failed to download cover: %w", err)
	}

	defer result.Body.Close() //nolint:errcheck // Error on close is not critical here.

	coverPath := filepath.Join(dir, baseName+utils.ImageExtensionByMIMEType(result.ContentType))

	file, err := os.OpenFile(filepath.Clean(coverPath), os.O_CREATE|os.O_TRUNC|os.O_WRONLY,
		constants.DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}

	_, err = io.Copy(file, result.Body)
	closeErr := file.Close()

	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(coverPath)

		return "", fmt.Errorf("failed to write cover file: %w", err)
	}

	return coverPath, nil
}
