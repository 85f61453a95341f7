package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Manage goals kept on this device",
	Long: `Goals live in device storage (sqlite, redis or memory, see STORAGE_DRIVER)
and never reach the backend. The first load seeds four default goals.`,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE:  withApp(runGoalsList),
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Long: `Add a goal. Progress is clamped to 0..100.

Examples:
  kyool goals add "Run 10k" --category fitness --target "10 km" --deadline "Jun 30, 2025"`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runGoalsAdd),
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runGoalsRemove),
}

var (
	goalCategory string
	goalTarget   string
	goalCurrent  string
	goalDeadline string
	goalProgress int
)

func init() {
	rootCmd.AddCommand(goalsCmd)

	goalsCmd.AddCommand(goalsListCmd)
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)

	goalsAddCmd.Flags().StringVar(&goalCategory, "category", domain.GoalCategoryFitness, "weight, fitness, hydration or strength")
	goalsAddCmd.Flags().StringVar(&goalTarget, "target", "", "Target, free text")
	goalsAddCmd.Flags().StringVar(&goalCurrent, "current", "", "Current value, free text")
	goalsAddCmd.Flags().StringVar(&goalDeadline, "deadline", "", "Deadline, free text")
	goalsAddCmd.Flags().IntVar(&goalProgress, "progress", 0, "Progress percentage")
}

func runGoalsList(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	goals, err := a.Goals.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, goals)
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPROGRESS\tTARGET\tDEADLINE")
	for _, g := range goals {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%s\t%s\n", g.ID, g.Title, g.Category, g.Progress, g.Target, g.Deadline)
	}
	return w.Flush()
}

func runGoalsAdd(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	goal, err := a.Goals.Add(ctx, domain.UserGoal{
		Title:    args[0],
		Category: goalCategory,
		Target:   goalTarget,
		Current:  goalCurrent,
		Deadline: goalDeadline,
		Progress: goalProgress,
	})
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, goal)
	}
	fmt.Fprintf(out, "Goal %d added: %s\n", goal.ID, goal.Title)
	return nil
}

func runGoalsRemove(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid goal id %q", args[0])
	}
	if err := a.Goals.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove goal %d: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Goal %d removed\n", id)
	return nil
}
