package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/constants"
)

const testBaseConfigContent = `
log_level: "info"
output_path: "/config/output"
bitrate: "192"
audio_format: "mp3"
skip_existing: true
embed_art: true
ffmpeg_path: ""
search_prefix: "ytsearch1"
title_lookup_timeout: "5s"
artwork_timeout: "5s"
max_concurrent_tasks: 2
`

// newTestCommand creates a command with the same flags as the root command.
func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().StringP("output", "o", "", "output directory")
	testCmd.Flags().StringP("bitrate", "b", "", "transcode bitrate")
	testCmd.Flags().StringP("format", "f", "", "audio format")
	testCmd.Flags().Bool("no-skip", false, "disable the ledger")
	testCmd.Flags().Bool("no-art", false, "disable cover art")
	testCmd.Flags().String("ffmpeg", "", "ffmpeg path")

	return testCmd
}

// loadTestConfig writes content to a temporary file and loads it.
func loadTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(content),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:funlen,nolintlint,tparallel // It's a comprehensive integration test. Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.Equal(t, 192, cfg.ParsedBitrate)
				assert.Equal(t, config.AudioFormatMP3, cfg.AudioFormat)
				assert.True(t, cfg.SkipExisting)
				assert.True(t, cfg.EmbedArt)
				assert.Empty(t, cfg.FFmpegPath)
			},
		},
		{
			name:  "output flag only - override output path",
			flags: map[string]string{"output": "/flag/output"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/output", cfg.OutputPath)
				assert.Equal(t, 192, cfg.ParsedBitrate)
			},
		},
		{
			name:  "bitrate flag with suffix",
			flags: map[string]string{"bitrate": "128k"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, 128, cfg.ParsedBitrate)
				assert.Equal(t, "/config/output", cfg.OutputPath)
			},
		},
		{
			name:  "format flag is normalized",
			flags: map[string]string{"format": "FLAC"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.AudioFormatFLAC, cfg.AudioFormat)
			},
		},
		{
			name:  "no-skip disables the ledger",
			flags: map[string]string{"no-skip": "true"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.False(t, cfg.SkipExisting)
				assert.True(t, cfg.EmbedArt)
			},
		},
		{
			name:  "no-art disables cover art",
			flags: map[string]string{"no-art": "true"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.SkipExisting)
				assert.False(t, cfg.EmbedArt)
			},
		},
		{
			name:  "explicit false keeps features enabled",
			flags: map[string]string{"no-skip": "false", "no-art": "false"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.SkipExisting)
				assert.True(t, cfg.EmbedArt)
			},
		},
		{
			name:  "ffmpeg flag",
			flags: map[string]string{"ffmpeg": "/opt/ffmpeg/bin/ffmpeg"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"output":  "/all/flags/output",
				"bitrate": "256",
				"format":  "flac",
				"no-skip": "true",
				"no-art":  "true",
				"ffmpeg":  "/usr/local/bin/ffmpeg",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/all/flags/output", cfg.OutputPath)
				assert.Equal(t, 256, cfg.ParsedBitrate)
				assert.Equal(t, config.AudioFormatFLAC, cfg.AudioFormat)
				assert.False(t, cfg.SkipExisting)
				assert.False(t, cfg.EmbedArt)
				assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpegPath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			// Set flag values.
			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			// Bind flags to config.
			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			// Verify expectations.
			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are caught during validation.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	invalidTests := []struct {
		name        string
		flagName    string
		flagValue   string
		expectedErr error
	}{
		{
			name:        "bitrate is not a number",
			flagName:    "bitrate",
			flagValue:   "loud",
			expectedErr: config.ErrInvalidBitrate,
		},
		{
			name:        "bitrate is zero",
			flagName:    "bitrate",
			flagValue:   "0",
			expectedErr: config.ErrInvalidBitrate,
		},
		{
			name:        "unknown format",
			flagName:    "format",
			flagValue:   "ogg",
			expectedErr: config.ErrUnknownAudioFormat,
		},
		{
			name:        "blank output path",
			flagName:    "output",
			flagValue:   "   ",
			expectedErr: config.ErrEmptyOutputPath,
		},
	}

	for _, tt := range invalidTests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t, testBaseConfigContent)
			testCmd := newTestCommand()

			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))

			// Bind flags to config - this should fail validation.
			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LogLevel:           "info",
		OutputPath:         "downloads",
		Bitrate:            "320",
		AudioFormat:        config.AudioFormatMP3,
		SearchPrefix:       config.DefaultSearchPrefix,
		TitleLookupTimeout: "10s",
		ArtworkTimeout:     "10s",
		MaxConcurrentTasks: 1,
	}

	// Create an empty flag set.
	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	// Calling with empty flag set should just validate the config.
	err := bindFlagsToConfig(emptyFlags, cfg)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.ParsedBitrate)
	assert.Equal(t, config.OEmbedEndpoint, cfg.OEmbedEndpoint)
}

// TestRootCommand_Registration tests that every subcommand is registered.
func TestRootCommand_Registration(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"serve", "validate", "version", "set-ffmpeg"})

	for _, flagName := range []string{"output", "bitrate", "format", "no-skip", "no-art", "ffmpeg", "json"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flagName), "flag %s must be registered", flagName)
	}
}
