package http

import (
	"net/http"

	"github.com/oshokin/spot-grabber/internal/utils"
)

// UserAgentInjector is a custom http.RoundTripper that fills in missing default headers.
// The User-Agent comes from a provider, other headers are static.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
	// headers are set on requests that don't carry them yet.
	headers map[string]string
}

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// NewUserAgentInjector wraps next so that every request carries a User-Agent and the given default headers.
func NewUserAgentInjector(
	next http.RoundTripper,
	userAgentProvider utils.UserAgentProvider,
	headers map[string]string,
) http.RoundTripper {
	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
		headers:           headers,
	}
}

// RoundTrip injects missing headers and forwards the request.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(userAgentHeader) == "" {
		req.Header.Set(userAgentHeader, t.userAgentProvider.GetUserAgent())
	}

	for name, value := range t.headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, value)
		}
	}

	return t.next.RoundTrip(req)
}
