package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

var defaultStreakTypes = []string{domain.StreakTypeWater, domain.StreakTypeWorkout, domain.StreakTypeFood}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show and update streaks",
}

var streakShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show one streak",
	Long: `Show one streak as the UI would: the effective count, whether today is
already logged and how many hours remain before it resets.

Examples:
  kyool streak show water
  kyool streak show workout --json`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runStreakShow),
}

var streakAllCmd = &cobra.Command{
	Use:   "all [type...]",
	Short: "Show every streak (water, workout and food by default)",
	RunE:  withApp(runStreakAll),
}

var streakUpdateCmd = &cobra.Command{
	Use:   "update <type>",
	Short: "Register a qualifying action for today",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runStreakMutation(false)),
}

var streakResetCmd = &cobra.Command{
	Use:   "reset <type>",
	Short: "Reset a streak to zero",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runStreakMutation(true)),
}

func init() {
	rootCmd.AddCommand(streakCmd)

	streakCmd.AddCommand(streakShowCmd)
	streakCmd.AddCommand(streakAllCmd)
	streakCmd.AddCommand(streakUpdateCmd)
	streakCmd.AddCommand(streakResetCmd)
}

func runStreakShow(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	if err := domain.ValidateStreakType(args[0]); err != nil {
		return err
	}

	view, err := a.Streaks.Refresh(ctx, a.UserID(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s streak: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, view)
	}
	printStreakView(cmd, view)
	return nil
}

func runStreakAll(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	types := args
	if len(types) == 0 {
		types = defaultStreakTypes
	}
	for _, t := range types {
		if err := domain.ValidateStreakType(t); err != nil {
			return err
		}
	}

	var views []services.StreakView
	if uid := a.UserID(); uid == "" {
		for _, t := range types {
			views = append(views, a.Streaks.View(ctx, "", t))
		}
	} else {
		var err error
		views, err = a.Streaks.All(ctx, uid, types...)
		if err != nil {
			return fmt.Errorf("failed to load streaks: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, views)
	}

	w := newTable(out)
	fmt.Fprintln(w, "TYPE\tSTREAK\tLONGEST\tTODAY\tRESETS IN")
	for _, v := range views {
		today := "-"
		if v.LoggedToday {
			today = "done"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%dh\n", v.StreakType, v.Effective, v.Record.LongestStreak, today, v.HoursUntilReset)
	}
	return w.Flush()
}

func runStreakMutation(reset bool) appRunner {
	return func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		uid, err := signedIn(a)
		if err != nil {
			return err
		}

		mutate, action, verb := a.Streaks.Update, "update", "updated"
		if reset {
			mutate, action, verb = a.Streaks.Reset, "reset", "reset"
		}

		rec, err := mutate(ctx, uid, args[0])
		if err != nil {
			return fmt.Errorf("failed to %s %s streak: %w", action, args[0], err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, rec)
		}
		fmt.Fprintf(out, "%s streak %s: %s\n", rec.StreakType, verb, domain.FormatStreak(rec.CurrentStreak))
		return nil
	}
}

func printStreakView(cmd *cobra.Command, v services.StreakView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", v.StreakType, v.Display)
	if v.LoggedToday {
		fmt.Fprintln(out, "  Logged today")
	} else {
		fmt.Fprintf(out, "  Log within %dh to keep it\n", v.HoursUntilReset)
	}
	if v.Record.LongestStreak > 0 {
		fmt.Fprintf(out, "  Longest: %s\n", domain.FormatStreak(v.Record.LongestStreak))
	}
}
