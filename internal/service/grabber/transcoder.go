package grabber

//go:generate $MOCKGEN -source=transcoder.go -destination=mocks/transcoder_mock.go

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// CommandRunner runs external binaries.
type CommandRunner interface {
	// LookPath resolves a binary name or path to an executable.
	LookPath(file string) (string, error)
	// Run executes name with args and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Transcoder converts fetched media into the target container.
type Transcoder interface {
	// Transcode prepares the output file for req in req.WorkDir.
	Transcode(ctx context.Context, req *TranscodeRequest) (*TranscodeResult, error)
	// SetBinaryPath overrides the transcoder binary. An empty path restores the default lookup.
	SetBinaryPath(path string)
	// BinaryPath returns the binary that will be looked up for the next task.
	BinaryPath() string
}

// TranscodeRequest describes one transcode.
type TranscodeRequest struct {
	// SourcePath is the fetched media file.
	SourcePath string
	// OutputDir is the final destination directory.
	OutputDir string
	// BaseName is the sanitized output name without extension.
	BaseName string
	// WorkDir receives the staged output.
	WorkDir string
	// Bitrate is the target bitrate in kbps.
	Bitrate int
	// AudioFormat is config.AudioFormatMP3 or config.AudioFormatFLAC.
	AudioFormat string
}

// TranscodeResult describes the prepared output.
type TranscodeResult struct {
	// DestinationPath is where the output belongs in OutputDir.
	DestinationPath string
	// StagedPath is the prepared file in WorkDir. Empty when the destination already exists.
	StagedPath string
	// IsExisting is set when DestinationPath was already present and nothing was produced.
	IsExisting bool
	// IsDegraded is set when the transcoder binary was unavailable and the original format is kept.
	IsDegraded bool
}

// TranscoderImpl implements Transcoder with an external ffmpeg-compatible binary.
type TranscoderImpl struct {
	// runner executes the binary.
	runner CommandRunner
	// binaryPath is the explicit override, guarded by mu.
	binaryPath string
	// mu protects binaryPath.
	mu sync.RWMutex
}

const (
	// FFmpegPathEnv is the environment variable consulted when no explicit path is set.
	FFmpegPathEnv = "FFMPEG_PATH"
	// defaultFFmpegBinary is resolved through PATH.
	defaultFFmpegBinary = "ffmpeg"
	// stagedDirName holds staged outputs inside a work directory.
	stagedDirName = "out"
	// maxTranscoderOutputLength bounds the transcoder output quoted in errors.
	maxTranscoderOutputLength = 512
)

// NewTranscoder creates and returns a new instance of TranscoderImpl.
// A nil runner executes real processes.
func NewTranscoder(runner CommandRunner, binaryPath string) Transcoder {
	if runner == nil {
		runner = new(ExecCommandRunner)
	}

	return &TranscoderImpl{
		runner:     runner,
		binaryPath: strings.TrimSpace(binaryPath),
	}
}

// SetBinaryPath overrides the transcoder binary. An empty path restores the default lookup.
func (t *TranscoderImpl) SetBinaryPath(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.binaryPath = strings.TrimSpace(path)
}

// BinaryPath returns the explicit override, else $FFMPEG_PATH, else "ffmpeg".
func (t *TranscoderImpl) BinaryPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.binaryPath != "" {
		return t.binaryPath
	}

	if fromEnv := strings.TrimSpace(os.Getenv(FFmpegPathEnv)); fromEnv != "" {
		return fromEnv
	}

	return defaultFFmpegBinary
}

// Transcode prepares the output file for req in req.WorkDir.
// The binary is looked up on every call.
func (t *TranscoderImpl) Transcode(ctx context.Context, req *TranscodeRequest) (*TranscodeResult, error) {
	if req.SourcePath == "" {
		return nil, ErrEmptyTrackPath
	}

	binary, lookErr := t.runner.LookPath(t.BinaryPath())
	if lookErr != nil {
		logger.Warnf(ctx, "Transcoder is unavailable, keeping original format: %v", lookErr)

		return t.copyOriginal(req)
	}

	extension := constants.ExtensionMP3
	if req.AudioFormat == config.AudioFormatFLAC {
		extension = constants.ExtensionFLAC
	}

	result := &TranscodeResult{
		DestinationPath: filepath.Join(req.OutputDir, utils.SetFileExtension(req.BaseName, extension, false)),
	}

	if exists, err := utils.IsFileExist(result.DestinationPath); err != nil {
		return nil, err
	} else if exists {
		result.IsExisting = true

		return result, nil
	}

	stagedPath, err := stagePath(req, extension)
	if err != nil {
		return nil, err
	}

	args := []string{"-y", "-i", req.SourcePath, "-vn"}
	if req.AudioFormat == config.AudioFormatFLAC {
		args = append(args, "-c:a", "flac")
	} else {
		args = append(args, "-b:a", strconv.Itoa(req.Bitrate)+"k")
	}

	args = append(args, stagedPath)

	logger.Debugf(ctx, "Running %s %s", binary, strings.Join(args, " "))

	output, err := t.runner.Run(ctx, binary, args...)
	if err != nil {
		_ = os.Remove(stagedPath)

		return nil, fmt.Errorf("%w: %v: %s", ErrTranscodeFailed, err, tail(output, maxTranscoderOutputLength))
	}

	result.StagedPath = stagedPath

	return result, nil
}

// copyOriginal stages a byte-for-byte copy of the source under its own extension.
func (t *TranscoderImpl) copyOriginal(req *TranscodeRequest) (*TranscodeResult, error) {
	extension := filepath.Ext(req.SourcePath)
	if extension == "" {
		extension = constants.ExtensionM4A
	}

	result := &TranscodeResult{
		DestinationPath: filepath.Join(req.OutputDir, utils.SetFileExtension(req.BaseName, extension, false)),
		IsDegraded:      true,
	}

	if exists, err := utils.IsFileExist(result.DestinationPath); err != nil {
		return nil, err
	} else if exists {
		result.IsExisting = true

		return result, nil
	}

	stagedPath, err := stagePath(req, extension)
	if err != nil {
		return nil, err
	}

	if err = utils.CopyFile(req.SourcePath, stagedPath); err != nil {
		return nil, fmt.Errorf("failed to copy original audio: %w", err)
	}

	result.StagedPath = stagedPath

	return result, nil
}

func stagePath(req *TranscodeRequest, extension string) (string, error) {
	dir := filepath.Join(req.WorkDir, stagedDirName)
	if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	return filepath.Join(dir, utils.SetFileExtension(req.BaseName, extension, false)), nil
}

func tail(output []byte, limit int) string {
	text := strings.TrimSpace(string(output))
	if len(text) > limit {
		text = text[len(text)-limit:]
	}

	return text
}

// ExecCommandRunner runs real processes.
type ExecCommandRunner struct{}

// LookPath resolves a binary name or path to an executable.
func (r *ExecCommandRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes name with args and returns its combined output.
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec // Binary path is user configuration.
}
