package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewSimpleUserAgentProvider tests the NewSimpleUserAgentProvider function.
func TestNewSimpleUserAgentProvider(t *testing.T) {
	t.Parallel()

	provider := NewSimpleUserAgentProvider("TestAgent/1.0")

	assert.NotNil(t, provider)
	assert.Implements(t, (*UserAgentProvider)(nil), provider)
	assert.Equal(t, "TestAgent/1.0", provider.GetUserAgent())
}

// TestRotatingUserAgentProvider_GetUserAgent tests that the rotation wraps around.
func TestRotatingUserAgentProvider_GetUserAgent(t *testing.T) {
	t.Parallel()

	provider := NewRotatingUserAgentProvider("fallback", "A", "B", "C")

	got := make([]string, 0, 4)
	for range 4 {
		got = append(got, provider.GetUserAgent())
	}

	assert.Equal(t, []string{"A", "B", "C", "A"}, got)
}

// TestRotatingUserAgentProvider_EmptyPool tests the fallback for an empty rotation pool.
func TestRotatingUserAgentProvider_EmptyPool(t *testing.T) {
	t.Parallel()

	provider := NewRotatingUserAgentProvider("fallback")
	assert.Equal(t, "fallback", provider.GetUserAgent())
	assert.IsType(t, &SimpleUserAgentProvider{}, provider)
}

// TestRotatingUserAgentProvider_Concurrent tests that concurrent callers only see pool members.
func TestRotatingUserAgentProvider_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		provider = NewRotatingUserAgentProvider("fallback", "A", "B")
		wg       sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.Contains(t, []string{"A", "B"}, provider.GetUserAgent())
		}()
	}

	wg.Wait()
}
