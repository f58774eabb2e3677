// Package ledger reads and appends the per-output-directory list of already fetched source ids.
// The file format is shared with the fetch backend's download archive: one entry per line,
// either a bare id or "<extractor> <id>".
package ledger
