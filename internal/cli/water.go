package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log and review water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add [servings]",
	Short: "Add servings (glasses) to today's total",
	Long: `Add servings to today's total. The total never exceeds the daily cap.

Examples:
  kyool water add       # one glass
  kyool water add 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runWaterChange(true)),
}

var waterRemoveCmd = &cobra.Command{
	Use:   "remove [servings]",
	Short: "Remove servings from today's total",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withApp(runWaterChange(false)),
}

var waterWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show today and the last seven days",
	RunE:  withApp(runWaterWeek),
}

var waterUnit string

func init() {
	rootCmd.AddCommand(waterCmd)

	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterRemoveCmd)
	waterCmd.AddCommand(waterWeekCmd)

	waterCmd.PersistentFlags().StringVar(&waterUnit, "unit", string(domain.WaterML), "Display unit: ml, cup or fl_oz")
}

func parseServings(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return n, nil
}

func runWaterChange(add bool) appRunner {
	return func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		unit, err := domain.ParseWaterUnit(waterUnit)
		if err != nil {
			return err
		}
		n, err := parseServings(args)
		if err != nil {
			return err
		}
		uid, err := signedIn(a)
		if err != nil {
			return err
		}

		change := a.Water.AddSample
		if !add {
			change = a.Water.RemoveSample
		}
		summary, err := change(ctx, uid, n)
		if err != nil {
			return fmt.Errorf("failed to save water intake: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, summary)
		}
		fmt.Fprintf(out, "Today: %d/%d glasses (%s)\n", summary.Total, summary.Goal, formatWater(summary.Total, unit))
		if summary.Total >= summary.Goal {
			fmt.Fprintln(out, "Daily goal reached")
		}
		return nil
	}
}

func runWaterWeek(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	unit, err := domain.ParseWaterUnit(waterUnit)
	if err != nil {
		return err
	}

	summary := a.Water.Empty(ctx)
	if uid := a.UserID(); uid != "" {
		summary, err = a.Water.RefreshWeek(ctx, uid)
		if err != nil {
			return fmt.Errorf("failed to load water history: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, summary)
	}

	w := newTable(out)
	fmt.Fprintln(w, "DATE\tDAY\tGLASSES\tAMOUNT")
	for _, s := range summary.Week {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n", s.Date, s.Day, s.Value, s.Goal, formatWater(s.Value, unit))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nAverage: %.1f glasses/day, goal met %s in a row\n",
		summary.Average, pluralDays(summary.GoalStreak))
	return nil
}

func formatWater(servings int, unit domain.WaterUnit) string {
	amount := domain.ServingsToWater(float64(servings), unit)
	return fmt.Sprintf("%g %s", domain.RoundTo(amount, 1), unit.Label())
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
