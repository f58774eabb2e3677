package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import "sync/atomic"

// UserAgentProvider supplies the User-Agent header for outgoing requests.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// SimpleUserAgentProvider always returns the same User-Agent.
type SimpleUserAgentProvider struct {
	// userAgent is the User-Agent string to return.
	userAgent string
}

// RotatingUserAgentProvider cycles through a fixed list of User-Agents, one per call.
type RotatingUserAgentProvider struct {
	// userAgents is the rotation pool.
	userAgents []string
	// next is the index of the next User-Agent to hand out.
	next atomic.Uint64
}

// NewSimpleUserAgentProvider creates and returns a new instance of SimpleUserAgentProvider.
func NewSimpleUserAgentProvider(userAgent string) UserAgentProvider {
	return &SimpleUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns a User-Agent string.
func (p *SimpleUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}

// NewRotatingUserAgentProvider creates a provider rotating over userAgents.
// An empty pool degrades to the fallback value.
func NewRotatingUserAgentProvider(fallback string, userAgents ...string) UserAgentProvider {
	if len(userAgents) == 0 {
		return NewSimpleUserAgentProvider(fallback)
	}

	return &RotatingUserAgentProvider{userAgents: userAgents}
}

// GetUserAgent returns the next User-Agent in the rotation.
func (p *RotatingUserAgentProvider) GetUserAgent() string {
	idx := (p.next.Add(1) - 1) % uint64(len(p.userAgents))

	return p.userAgents[idx]
}
