// Package web is the outbound HTTP client of the grabber.
// It resolves track page titles through the oEmbed endpoint (with an LRU cache)
// and downloads auxiliary payloads such as thumbnails.
// Requests go through the shared transport decorators: rotating browser
// User-Agents, default headers and debug-level traffic dumps.
package web
