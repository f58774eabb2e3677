package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/spot-grabber/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var setFFmpegCmd = &cobra.Command{
	Use:   "set-ffmpeg [path]",
	Short: "Save the ffmpeg binary path to the configuration file",
	Long: `Saves the path of the ffmpeg binary used for transcoding.

Without an argument the saved path is cleared and the default lookup is used:
the FFMPEG_PATH environment variable first, then "ffmpeg" from PATH.`,
	Args:             cobra.MaximumNArgs(1),
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, args []string) {
		var ffmpegPath string
		if len(args) > 0 {
			ffmpegPath = args[0]
		}

		app.ExecuteSetFFmpegCommand(cmd.Context(), appConfig, ffmpegPath)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(setFFmpegCmd)
}
