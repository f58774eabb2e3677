package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/spot-grabber/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var validateCmd = &cobra.Command{
	Use:   "validate {url}",
	Short: "Check whether a link is a supported Spotify link",
	Long: `Prints a JSON record describing the link: whether it is valid,
its content type and id, and its normalized form. No network access is performed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app.ExecuteValidateCommand(cmd.Context(), args[0], os.Stdout)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(validateCmd)
}
