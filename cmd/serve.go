package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/spot-grabber/internal/app"
	"github.com/oshokin/spot-grabber/internal/logger"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP bridge",
	Long: `Runs an HTTP server that accepts download tasks and streams their events.

Endpoints:
  POST /api/v1/tasks               start a task
  GET  /api/v1/tasks               list running task ids
  POST /api/v1/tasks/:id/cancel    cancel a task
  POST /api/v1/tasks/cancel        cancel every task
  GET  /api/v1/validate?url=...    validate a link
  GET  /api/v1/version             fetch backend version
  GET  /api/v1/events              server-sent event stream`,
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		if flag := cmd.Flags().Lookup("listen"); flag != nil && flag.Changed {
			appConfig.ListenAddress, _ = cmd.Flags().GetString("listen")
		}

		if appConfig.ListenAddress == "" {
			logger.Fatal(cmd.Context(), "Listen address cannot be empty")
		}

		app.ExecuteServeCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	serveCmd.Flags().StringP(
		"listen",
		"l",
		"",
		"address to listen on, for example: 127.0.0.1:8383.")

	rootCmd.AddCommand(serveCmd)
}
