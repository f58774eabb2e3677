package grabber

//go:generate $MOCKGEN -source=title_resolver.go -destination=mocks/title_resolver_mock.go

import (
	"context"
	"strings"
	"time"

	"github.com/oshokin/spot-grabber/internal/client/web"
	"github.com/oshokin/spot-grabber/internal/logger"
)

// TitleResolver looks up a human title for a normalized link.
type TitleResolver interface {
	// ResolveTitle returns the page title, or "" when the lookup fails for any reason.
	ResolveTitle(ctx context.Context, pageURL string) string
}

// TitleResolverImpl resolves titles through the oEmbed endpoint.
type TitleResolverImpl struct {
	// webClient performs the oEmbed request.
	webClient web.Client
	// timeout bounds a single lookup.
	timeout time.Duration
}

// NewTitleResolver creates and returns a new instance of TitleResolverImpl.
func NewTitleResolver(webClient web.Client, timeout time.Duration) TitleResolver {
	return &TitleResolverImpl{
		webClient: webClient,
		timeout:   timeout,
	}
}

// ResolveTitle returns the page title, or "" when the lookup fails for any reason.
func (tr *TitleResolverImpl) ResolveTitle(ctx context.Context, pageURL string) string {
	if tr.webClient == nil {
		return ""
	}

	lookupCtx := ctx

	if tr.timeout > 0 {
		var cancel context.CancelFunc

		lookupCtx, cancel = context.WithTimeout(ctx, tr.timeout)
		defer cancel()
	}

	title, err := tr.webClient.GetOEmbedTitle(lookupCtx, pageURL)
	if err != nil {
		logger.Warnf(ctx, "Title lookup failed, searching by URL: %v", err)

		return ""
	}

	return strings.TrimSpace(title)
}

// BuildSearchQuery builds the backend query: the title when known, the link otherwise.
func BuildSearchQuery(searchPrefix, title, pageURL string) string {
	text := strings.TrimSpace(title)
	if text == "" {
		text = pageURL
	}

	if searchPrefix == "" {
		return text
	}

	return searchPrefix + ":" + text
}
