package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// OutputPath is the directory where finished audio files are placed.
	OutputPath string `mapstructure:"output_path"`
	// Bitrate is the target transcode bitrate in kbps, e.g. "320".
	Bitrate string `mapstructure:"bitrate"`
	// AudioFormat is the target container: "mp3" or "flac".
	AudioFormat string `mapstructure:"audio_format"`
	// SkipExisting enables the per-directory download ledger.
	SkipExisting bool `mapstructure:"skip_existing"`
	// EmbedArt enables fetching the thumbnail and embedding it as front cover.
	EmbedArt bool `mapstructure:"embed_art"`
	// FFmpegPath is an explicit transcoder binary path. Empty means FFMPEG_PATH or "ffmpeg".
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	// YtDlpPath is an explicit fetch backend binary path. Empty means "yt-dlp" from PATH.
	YtDlpPath string `mapstructure:"ytdlp_path"`
	// SearchPrefix is the backend search selector prepended to queries.
	SearchPrefix string `mapstructure:"search_prefix"`
	// TitleLookupTimeout bounds the oEmbed title lookup (e.g. "10s").
	TitleLookupTimeout string `mapstructure:"title_lookup_timeout"`
	// ArtworkTimeout bounds the thumbnail download (e.g. "10s").
	ArtworkTimeout string `mapstructure:"artwork_timeout"`
	// MaxConcurrentTasks caps how many tasks run at the same time.
	MaxConcurrentTasks int64 `mapstructure:"max_concurrent_tasks"`
	// KeepTempFiles leaves per-task work directories in place for debugging.
	KeepTempFiles bool `mapstructure:"keep_temp_files"`
	// TempPath is the parent directory for work directories. Empty means the OS default.
	TempPath string `mapstructure:"temp_path"`
	// ListenAddress is the address the HTTP bridge binds to.
	ListenAddress string `mapstructure:"listen_address"`
	// OEmbedEndpoint is the title lookup endpoint (set automatically).
	OEmbedEndpoint string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedBitrate is the bitrate in kbps.
	ParsedBitrate int
	// ParsedTitleLookupTimeout is the parsed title lookup timeout.
	ParsedTitleLookupTimeout time.Duration
	// ParsedArtworkTimeout is the parsed artwork download timeout.
	ParsedArtworkTimeout time.Duration
}

const (
	// OEmbedEndpoint is the public oEmbed endpoint used to resolve track titles.
	OEmbedEndpoint = "https://open.spotify.com/oembed"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".spot-grabber.yaml"

	// DefaultMaxLogLength is the default maximum size (in bytes) of dumped HTTP traffic.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultBitrate is the transcode bitrate used when none is configured.
	DefaultBitrate = "320"

	// DefaultSearchPrefix selects the first search hit of the fetch backend.
	DefaultSearchPrefix = "ytsearch1"

	// DefaultListenAddress is the default HTTP bridge address.
	DefaultListenAddress = "127.0.0.1:8383"

	// AudioFormatMP3 selects MP3 output.
	AudioFormatMP3 = "mp3"
	// AudioFormatFLAC selects FLAC output.
	AudioFormatFLAC = "flac"

	// ffmpegPathKey is the YAML key persisted by SaveFFmpegPath.
	ffmpegPathKey = "ffmpeg_path"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyOutputPath indicates that the output directory is not set.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrInvalidBitrate indicates that the bitrate is not a positive number of kbps.
	ErrInvalidBitrate = errors.New("bitrate must be a positive integer (kbps)")
	// ErrUnknownAudioFormat indicates that the audio format is not supported.
	ErrUnknownAudioFormat = errors.New("unknown audio format")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrEmptySearchPrefix indicates that the search prefix is missing.
	ErrEmptySearchPrefix = errors.New("search prefix cannot be empty")
	// ErrInvalidTitleLookupTimeout indicates that the title lookup timeout is invalid.
	ErrInvalidTitleLookupTimeout = errors.New("title_lookup_timeout must be positive")
	// ErrInvalidArtworkTimeout indicates that the artwork timeout is invalid.
	ErrInvalidArtworkTimeout = errors.New("artwork_timeout must be positive")
	// ErrInvalidConcurrentTasks indicates that the concurrent task count is invalid.
	ErrInvalidConcurrentTasks = errors.New("max concurrent tasks must be a positive integer")
)

// setDefaults registers default values so a missing config file is not fatal.
func setDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("output_path", "downloads")
	viper.SetDefault("bitrate", DefaultBitrate)
	viper.SetDefault("audio_format", AudioFormatMP3)
	viper.SetDefault("skip_existing", true)
	viper.SetDefault("embed_art", true)
	viper.SetDefault(ffmpegPathKey, "")
	viper.SetDefault("ytdlp_path", "")
	viper.SetDefault("search_prefix", DefaultSearchPrefix)
	viper.SetDefault("title_lookup_timeout", "10s")
	viper.SetDefault("artwork_timeout", "10s")
	viper.SetDefault("max_concurrent_tasks", 1)
	viper.SetDefault("keep_temp_files", false)
	viper.SetDefault("temp_path", "")
	viper.SetDefault("listen_address", DefaultListenAddress)
}

// LoadConfig loads configuration settings from a YAML file.
// A missing default file yields the built-in defaults; a missing explicit file is an error.
func LoadConfig(configFilename string) (*Config, error) {
	isDefaultFile := configFilename == ""
	if isDefaultFile {
		configFilename = DefaultConfigFilename
	}

	setDefaults()
	viper.SetConfigFile(configFilename)

	_, statErr := os.Stat(configFilename)

	switch {
	case isDefaultFile && os.IsNotExist(statErr):
		// Nothing to read; defaults apply.
	default:
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	if cfg.OEmbedEndpoint == "" {
		cfg.OEmbedEndpoint = OEmbedEndpoint
	}

	if strings.TrimSpace(cfg.OutputPath) == "" {
		return ErrEmptyOutputPath
	}

	cfg.ParsedBitrate, err = ParseBitrate(cfg.Bitrate)
	if err != nil {
		return err
	}

	cfg.AudioFormat = strings.ToLower(strings.TrimSpace(cfg.AudioFormat))
	if cfg.AudioFormat == "" {
		cfg.AudioFormat = AudioFormatMP3
	}

	if cfg.AudioFormat != AudioFormatMP3 && cfg.AudioFormat != AudioFormatFLAC {
		return fmt.Errorf("%w: '%s'", ErrUnknownAudioFormat, cfg.AudioFormat)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if strings.TrimSpace(cfg.SearchPrefix) == "" {
		return ErrEmptySearchPrefix
	}

	cfg.ParsedTitleLookupTimeout, err = time.ParseDuration(cfg.TitleLookupTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse title lookup timeout: %w", err)
	}

	if cfg.ParsedTitleLookupTimeout <= 0 {
		return ErrInvalidTitleLookupTimeout
	}

	cfg.ParsedArtworkTimeout, err = time.ParseDuration(cfg.ArtworkTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse artwork timeout: %w", err)
	}

	if cfg.ParsedArtworkTimeout <= 0 {
		return ErrInvalidArtworkTimeout
	}

	if cfg.MaxConcurrentTasks <= 0 {
		return ErrInvalidConcurrentTasks
	}

	return nil
}

// ParseBitrate parses a kbps value such as "320" or "320k".
// An empty value yields the default bitrate.
func ParseBitrate(bitrate string) (int, error) {
	bitrate = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(bitrate)), "k")
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	value, err := strconv.Atoi(bitrate)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidBitrate, bitrate)
	}

	return value, nil
}

// SaveFFmpegPath persists the transcoder path to the config file while preserving the original format and order.
func SaveFFmpegPath(ffmpegPath string) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, ffmpegPath, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update or append the ffmpeg_path value in the node tree.
	setStringInNode(&node, ffmpegPathKey, ffmpegPath)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set(ffmpegPathKey, ffmpegPath)

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, ffmpegPath string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set(ffmpegPathKey, ffmpegPath)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// setStringInNode sets key to value in the top-level mapping of a YAML document,
// appending the key when it is absent.
func setStringInNode(node *yaml.Node, key, value string) {
	// An empty document gets a fresh mapping.
	if len(node.Content) == 0 {
		node.Kind = yaml.DocumentNode
		node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	mapNode := node.Content[0]
	if mapNode.Kind != yaml.MappingNode {
		return
	}

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value != key {
			continue
		}

		valueNode := mapNode.Content[i+1]
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!str"
		valueNode.Value = value

		// Ensure it's quoted since paths often contain special characters.
		if valueNode.Style == 0 {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		return
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle},
	)
}
