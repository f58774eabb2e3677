package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/spot-grabber/internal/app"
	"github.com/oshokin/spot-grabber/internal/version"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var versionCmd = &cobra.Command{
	Use:              "version",
	Short:            "Print the application and yt-dlp versions",
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(os.Stderr, version.Full()) //nolint:errcheck // Nothing to do on a failed write.

		app.ExecuteVersionCommand(cmd.Context(), appConfig, os.Stdout)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(versionCmd)
}
