// Package ytdlp drives the external yt-dlp binary as the media search and fetch backend.
// A fetch runs one search query into an isolated work directory, reports byte progress
// through a callback that may request an abort, and returns the backend's metadata
// together with the paths it reported. Aborts and download-archive hits are returned
// as typed outcomes rather than errors.
package ytdlp
