package ytdlp

// ProgressDecision is returned by a progress callback to continue or stop a fetch.
type ProgressDecision int

const (
	// ProgressContinue lets the fetch proceed.
	ProgressContinue ProgressDecision = iota
	// ProgressAbort stops the fetch. The response is then marked Aborted.
	ProgressAbort
)

// ProgressFunc receives byte-level progress of a running fetch.
type ProgressFunc func(progress *Progress) ProgressDecision

// Progress is one byte-level progress report.
type Progress struct {
	// DownloadedBytes is the number of bytes fetched so far.
	DownloadedBytes int64
	// TotalBytes is the expected size, or 0 when the backend does not know it.
	TotalBytes int64
	// Filename is the file the backend is currently writing.
	Filename string
}

// FetchRequest describes one fetch.
type FetchRequest struct {
	// Query is the backend input, e.g. "ytsearch1:Artist - Song" or a page URL.
	Query string
	// WorkDir is the directory the backend writes into.
	WorkDir string
	// ArchivePath is the download archive. Empty disables archive checks.
	ArchivePath string
	// Format is the backend format selector. Empty means DefaultFormat.
	Format string
	// OnProgress is called on every progress update. It may be nil.
	OnProgress ProgressFunc
}

// FetchResponse is the outcome of a fetch.
type FetchResponse struct {
	// Aborted is set when a progress callback returned ProgressAbort.
	Aborted bool
	// Skipped is set when the backend skipped the entry because it is in the archive.
	Skipped bool
	// ID is the content id reported by the backend.
	ID string
	// Extractor is the backend extractor key, e.g. "Youtube".
	Extractor string
	// Title is the media title.
	Title string
	// Artist is the performing artist, when known.
	Artist string
	// Uploader is the channel or uploader name.
	Uploader string
	// Album is the album name, when known.
	Album string
	// Thumbnail is the thumbnail URL.
	Thumbnail string
	// Ext is the container extension without the dot.
	Ext string
	// RequestedPath is the path written by the last progress update.
	RequestedPath string
	// Filename is the prepared output filename from the backend metadata.
	Filename string
}

// infoDocument is the subset of the backend's info JSON used by the client.
type infoDocument struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Track          string `json:"track"`
	Artist         string `json:"artist"`
	Creator        string `json:"creator"`
	Uploader       string `json:"uploader"`
	Channel        string `json:"channel"`
	Album          string `json:"album"`
	Thumbnail      string `json:"thumbnail"`
	ExtractorKey   string `json:"extractor_key"`
	Extractor      string `json:"extractor"`
	Ext            string `json:"ext"`
	Filename       string `json:"filename"`
	LegacyFilename string `json:"_filename"`
}
