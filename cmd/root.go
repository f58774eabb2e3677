package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/spot-grabber/internal/app"
	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "spot-grabber [flags] {urls}",
		Short: "Download Spotify tracks as local audio files.",
		Long: `Spot Grabber is a CLI tool for downloading audio for Spotify links.
For every link it:
- Resolves a human readable title
- Searches a matching media source with yt-dlp
- Transcodes the audio with ffmpeg
- Writes tags and embeds the cover art

Text files (*.txt) are read as lists of links, one per line.
Already downloaded links are skipped using a ".downloaded" ledger in the output directory.`,
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, urls []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			isJSONOutput, _ := cmd.Flags().GetBool("json")

			app.ExecuteRootCommand(cmd.Context(), appConfig, urls, &app.RootOptions{
				IsJSONOutput: isJSONOutput,
			})
		},
	}
)

// Execute executes the root command.
// A signal cancels the context; the command is awaited so running tasks report their cancellation.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-done
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save downloaded files (the path will be created if it doesn’t exist).")

	rootCmdFlags.StringP(
		"bitrate",
		"b",
		"",
		"transcode bitrate in kbps, for example: 128, 192, 320.")

	rootCmdFlags.StringP(
		"format",
		"f",
		"",
		"audio format: mp3 or flac.")

	rootCmdFlags.Bool(
		"no-skip",
		false,
		"download again even if the link is recorded in the ledger.")

	rootCmdFlags.Bool(
		"no-art",
		false,
		"do not embed cover art.")

	rootCmdFlags.String(
		"ffmpeg",
		"",
		"path to the ffmpeg binary for this run.")

	rootCmdFlags.Bool(
		"json",
		false,
		"print task events as JSON lines instead of log messages.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = config.ValidateConfig(appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("bitrate"); flag != nil && flag.Changed {
		cfg.Bitrate, _ = flags.GetString("bitrate")
	}

	if flag := flags.Lookup("format"); flag != nil && flag.Changed {
		cfg.AudioFormat, _ = flags.GetString("format")
	}

	if flag := flags.Lookup("no-skip"); flag != nil && flag.Changed {
		noSkip, _ := flags.GetBool("no-skip")
		cfg.SkipExisting = !noSkip
	}

	if flag := flags.Lookup("no-art"); flag != nil && flag.Changed {
		noArt, _ := flags.GetBool("no-art")
		cfg.EmbedArt = !noArt
	}

	if flag := flags.Lookup("ffmpeg"); flag != nil && flag.Changed {
		cfg.FFmpegPath, _ = flags.GetString("ffmpeg")
	}

	return config.ValidateConfig(cfg)
}
