// Package grabber implements the download task engine: it validates a music
// service link, resolves a search query, drives the fetch backend, transcodes,
// embeds artwork and tags the result, while streaming ordered progress events
// and honoring cooperative cancellation.
package grabber
