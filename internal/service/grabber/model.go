package grabber

import (
	"encoding/json"
	"fmt"
)

// TaskStatus is the lifecycle phase reported in an Event.
type TaskStatus string

const (
	// TaskStatusQueued - the task is registered and waiting for a worker slot.
	TaskStatusQueued TaskStatus = "queued"
	// TaskStatusResolving - the title lookup is running.
	TaskStatusResolving TaskStatus = "resolving"
	// TaskStatusSearching - the backend query is being prepared.
	TaskStatusSearching TaskStatus = "searching"
	// TaskStatusDownloading - the backend is fetching media.
	TaskStatusDownloading TaskStatus = "downloading"
	// TaskStatusProcessing - transcoding, artwork and tagging.
	TaskStatusProcessing TaskStatus = "processing"
	// TaskStatusCompleted - terminal success.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusCancelled - terminal cancellation.
	TaskStatusCancelled TaskStatus = "cancelled"
	// TaskStatusError - terminal failure.
	TaskStatusError TaskStatus = "error"
)

// IsTerminal reports whether the status ends a task.
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusError
}

// EventType is the severity tag of an Event.
type EventType string

const (
	// EventTypeInfo marks progress notifications.
	EventTypeInfo EventType = "info"
	// EventTypeSuccess marks a completed task.
	EventTypeSuccess EventType = "success"
	// EventTypeWarning marks a cancelled task.
	EventTypeWarning EventType = "warning"
	// EventTypeError marks a failed task.
	EventTypeError EventType = "error"
)

// Event is one immutable progress record of a task.
type Event struct {
	// TaskID identifies the task.
	TaskID string `json:"id"`
	// Status is the lifecycle phase.
	Status TaskStatus `json:"status"`
	// Progress is the overall percentage in [0, 100].
	Progress int `json:"progress"`
	// Message is a human readable description.
	Message string `json:"message"`
	// FilePath is the produced file, set on completion only.
	FilePath string `json:"filePath,omitempty"`
	// Type is the severity tag.
	Type EventType `json:"type,omitempty"`
}

// String returns a compact representation used in logs.
func (e *Event) String() string {
	return fmt.Sprintf("%s [%s %d%%] %s", e.TaskID, e.Status, e.Progress, e.Message)
}

// ContentType is the kind of content a link points to.
type ContentType string

const (
	// ContentTypeNone - the link was not recognized.
	ContentTypeNone ContentType = ""
	// ContentTypeTrack - single track.
	ContentTypeTrack ContentType = "track"
	// ContentTypePlaylist - playlist.
	ContentTypePlaylist ContentType = "playlist"
	// ContentTypeAlbum - album.
	ContentTypeAlbum ContentType = "album"
)

// MarshalJSON encodes ContentTypeNone as null.
func (ct ContentType) MarshalJSON() ([]byte, error) {
	if ct == ContentTypeNone {
		return []byte("null"), nil
	}

	return json.Marshal(string(ct))
}

// ValidationResult is the outcome of validating a link.
type ValidationResult struct {
	// Valid reports whether the link was recognized.
	Valid bool `json:"valid"`
	// Type is the content type, or ContentTypeNone.
	Type ContentType `json:"type"`
	// ID is the content id extracted from the link.
	ID string `json:"-"`
	// URL is the normalized web link, or the input when invalid.
	URL string `json:"url"`
	// Message explains an invalid result.
	Message string `json:"message,omitempty"`
}

// VersionResult reports the fetch backend version.
type VersionResult struct {
	// Status is "success" or "error".
	Status string `json:"status"`
	// Version is the backend version, e.g. "yt-dlp 2025.09.26".
	Version string `json:"version,omitempty"`
	// Message describes a failure.
	Message string `json:"message,omitempty"`
	// Type is the severity tag.
	Type EventType `json:"type"`
}

// StartRequest describes one task submission.
type StartRequest struct {
	// TaskID is the caller-supplied identity, unique among running tasks.
	TaskID string
	// URL is the service link or URI.
	URL string
	// OutputDir is the destination directory. Empty means the configured output path.
	OutputDir string
	// Bitrate is the target bitrate in kbps, e.g. "320". Empty means the configured bitrate.
	Bitrate string
	// SkipExisting enables the download ledger.
	SkipExisting bool
	// EmbedArt enables cover art embedding.
	EmbedArt bool
}

// Metadata is the media information reported by the fetch backend.
type Metadata struct {
	// ID is the backend content id.
	ID string
	// Extractor is the backend extractor key.
	Extractor string
	// Title is the media title.
	Title string
	// Artist is the performing artist.
	Artist string
	// Uploader is the channel or uploader name.
	Uploader string
	// Album is the album name.
	Album string
	// Thumbnail is the thumbnail URL.
	Thumbnail string
}

// FetchOutcome distinguishes how a fetch ended without an error.
type FetchOutcome uint8

const (
	// FetchOutcomeFetched - a media file was produced.
	FetchOutcomeFetched FetchOutcome = iota
	// FetchOutcomeSkipped - the backend found the entry in the ledger.
	FetchOutcomeSkipped
	// FetchOutcomeAborted - the fetch stopped because the task was cancelled.
	FetchOutcomeAborted
)

// String returns a human-readable representation of the FetchOutcome.
func (fo FetchOutcome) String() string {
	switch fo {
	case FetchOutcomeFetched:
		return "fetched"
	case FetchOutcomeSkipped:
		return "skipped"
	case FetchOutcomeAborted:
		return "aborted"
	default:
		return fmt.Sprintf("unknown outcome: %d", fo)
	}
}

// FetchResult is the output of one fetch.
type FetchResult struct {
	// Outcome tells how the fetch ended.
	Outcome FetchOutcome
	// FilePath is the fetched media file. Set only for FetchOutcomeFetched.
	FilePath string
	// Metadata is the backend metadata.
	Metadata *Metadata
	// WorkDir is the isolated directory the fetch wrote into.
	WorkDir string
}
