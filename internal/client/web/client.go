package web

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
	http_transport "github.com/oshokin/spot-grabber/internal/transport/http"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// Client defines the interface for the outbound web requests of the grabber.
type Client interface {
	// GetOEmbedTitle returns the title of the page at pageURL as reported by the oEmbed endpoint.
	GetOEmbedTitle(ctx context.Context, pageURL string) (string, error)
	// DownloadFromURL opens a GET download of the specified URL.
	DownloadFromURL(ctx context.Context, url string) (*DownloadResult, error)
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// oEmbedEndpoint is the oEmbed endpoint URL without query.
	oEmbedEndpoint string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// titlesCache caches resolved titles by page URL.
	titlesCache *lru.Cache[string, string]
}

const (
	// titlesCacheSize defines the maximum number of page titles to cache.
	// Sized to hold a large playlist worth of tracks.
	titlesCacheSize = 2000
	// maxOEmbedResponseSize bounds the oEmbed document read into memory.
	maxOEmbedResponseSize = 1 << 20
)

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(cfg *config.Config) (Client, error) {
	endpoint := cfg.OEmbedEndpoint
	if endpoint == "" {
		endpoint = config.OEmbedEndpoint
	}

	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid oEmbed endpoint: %w", err)
	}

	// Rotate browser identities and ask for JSON by default.
	userAgents := utils.NewRotatingUserAgentProvider(
		http_transport.DefaultUserAgent,
		http_transport.BrowserUserAgents()...)

	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			userAgents,
			map[string]string{"Accept-Language": "en-US,en;q=0.9"}),
		Timeout: http_transport.DefaultTimeout,
	}

	titlesCache, err := lru.New[string, string](titlesCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create titles cache: %w", err)
	}

	return &ClientImpl{
		oEmbedEndpoint: endpoint,
		httpClient:     httpClient,
		titlesCache:    titlesCache,
	}, nil
}

// GetOEmbedTitle returns the title of the page at pageURL.
// Only non-empty titles are cached.
func (c *ClientImpl) GetOEmbedTitle(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", ErrEmptyURL
	}

	if title, ok := c.titlesCache.Get(pageURL); ok {
		logger.Debugf(ctx, "Title cache hit for %s", pageURL)

		return title, nil
	}

	endpoint, err := url.Parse(c.oEmbedEndpoint)
	if err != nil {
		return "", fmt.Errorf("invalid oEmbed endpoint: %w", err)
	}

	query := endpoint.Query()
	query.Set("url", pageURL)
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return "", err
	}

	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var document OEmbedResponse
	if err = json.NewDecoder(io.LimitReader(response.Body, maxOEmbedResponseSize)).Decode(&document); err != nil {
		return "", fmt.Errorf("failed to decode oEmbed response: %w", err)
	}

	title := strings.TrimSpace(document.Title)
	if title == "" {
		return "", ErrEmptyTitle
	}

	c.titlesCache.Add(pageURL, title)

	return title, nil
}

// DownloadFromURL opens a GET download of the specified URL.
func (c *ClientImpl) DownloadFromURL(ctx context.Context, url string) (*DownloadResult, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return &DownloadResult{
		Body:        response.Body,
		ContentType: response.Header.Get("Content-Type"),
		TotalBytes:  response.ContentLength,
	}, nil
}
