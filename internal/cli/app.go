package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

type appRunner func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error

// withApp builds the companion for one command and tears it down afterwards,
// running any streak updates the command queued.
func withApp(fn appRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := app.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		defer a.Close()

		return fn(ctx, a, cmd, args)
	}
}

// signedIn returns the current user or domain.ErrNoUser.
func signedIn(a *app.App) (string, error) {
	uid := a.UserID()
	if uid == "" {
		return "", fmt.Errorf("%w: set KYOOL_ID_TOKEN", domain.ErrNoUser)
	}
	return uid, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

var jsonOutput bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of tables")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
