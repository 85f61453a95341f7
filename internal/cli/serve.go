package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the companion HTTP API",
	Long: `Run the companion HTTP API that UI shells call instead of the backend.

Examples:
  kyool serve              # Start on PORT (default 8080)
  kyool serve --port 3000  # Start on port 3000`,
	RunE: withApp(runServe),
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (defaults to PORT)")
}

func runServe(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	port := servePort
	if port == "" {
		port = a.Config.Port
	}

	a.StartWorker(ctx)
	return a.Serve(ctx, port)
}
