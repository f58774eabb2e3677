package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	// Owner: read, write, and execute;
	// Group: read and execute;
	// Others: read and execute.
	DefaultFolderPermissions os.FileMode = 0o755
)

// File extension constants.
const (
	ExtensionMP3  = ".mp3"
	ExtensionFLAC = ".flac"
	ExtensionM4A  = ".m4a"
	ExtensionJPEG = ".jpg"
	ExtensionPart = ".part"
	ExtensionText = ".txt"
)

const (
	// LedgerFilename is the name of the per-output-directory list of fetched source ids.
	LedgerFilename = ".downloaded"

	// TempDirPattern is the os.MkdirTemp pattern for per-task work directories.
	TempDirPattern = "spotify_*"

	// DefaultFilename replaces titles that sanitize to nothing.
	DefaultFilename = "download"
)
