package web

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrEmptyTitle indicates that the oEmbed response had no usable title.
	ErrEmptyTitle = errors.New("oEmbed response has no title")
	// ErrEmptyURL indicates that no URL was passed to a request method.
	ErrEmptyURL = errors.New("URL cannot be empty")
)
