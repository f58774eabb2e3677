package web

import "io"

// OEmbedResponse is the subset of the oEmbed document used by the client.
type OEmbedResponse struct {
	// Title is the display title of the embedded page, e.g. "Song Name".
	Title string `json:"title"`
	// Type is the oEmbed resource type ("rich", "video", ...).
	Type string `json:"type"`
	// ProviderName is the name of the page provider.
	ProviderName string `json:"provider_name"`
	// ThumbnailURL is the page thumbnail, when provided.
	ThumbnailURL string `json:"thumbnail_url"`
}

// DownloadResult is an open response body together with its metadata.
type DownloadResult struct {
	// Body is the response body. The caller must close it.
	Body io.ReadCloser
	// ContentType is the value of the Content-Type header.
	ContentType string
	// TotalBytes is the announced body length, or -1 when unknown.
	TotalBytes int64
}
