package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var waitlistCmd = &cobra.Command{
	Use:   "waitlist",
	Short: "Join the waitlist and administer entries",
}

var waitlistJoinCmd = &cobra.Command{
	Use:   "join <email>",
	Short: "Submit a waitlist application",
	Long: `Submit a waitlist application. Every answer is required except the phone.

Examples:
  kyool waitlist join me@example.com --person-type professional \
    --activity-level moderate --situation "desk job" --results "lose 5kg" \
    --challenge "time" --attempts "gym" --budget "100-200"`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runWaitlistJoin),
}

var waitlistStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show waitlist statistics",
	RunE:  withApp(runWaitlistStats),
}

var waitlistEntriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List waitlist entries",
	RunE:  withApp(runWaitlistEntries),
}

var waitlistStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set an entry's status (active, contacted or converted)",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(runWaitlistStatus),
}

var (
	joinApp      domain.WaitlistApplication
	joinPhone    string
	entriesLimit int
	entriesState string
)

func init() {
	rootCmd.AddCommand(waitlistCmd)

	waitlistCmd.AddCommand(waitlistJoinCmd)
	waitlistCmd.AddCommand(waitlistStatsCmd)
	waitlistCmd.AddCommand(waitlistEntriesCmd)
	waitlistCmd.AddCommand(waitlistStatusCmd)

	f := waitlistJoinCmd.Flags()
	f.StringVar(&joinApp.PersonType, "person-type", "", "executive, professional or student")
	f.StringVar(&joinApp.ActivityLevel, "activity-level", "", "Current activity level")
	f.StringVar(&joinApp.CurrentSituation, "situation", "", "Current situation")
	f.StringVar(&joinApp.DesiredResults, "results", "", "Desired results")
	f.StringVar(&joinApp.BiggestChallenge, "challenge", "", "Biggest challenge")
	f.StringVar(&joinApp.PreviousAttempts, "attempts", "", "Previous attempts")
	f.StringVar(&joinApp.Budget, "budget", "", "Monthly budget")
	f.StringVar(&joinPhone, "phone", "", "Phone number (optional)")

	waitlistEntriesCmd.Flags().IntVar(&entriesLimit, "limit", domain.DefaultWaitlistLimit, "Maximum entries (1-100)")
	waitlistEntriesCmd.Flags().StringVar(&entriesState, "status", "", "Filter by status")
}

func runWaitlistJoin(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	application := joinApp
	application.Email = args[0]
	if joinPhone != "" {
		phone := joinPhone
		application.Phone = &phone
	}

	res, err := a.Waitlist.Join(ctx, application)
	if err != nil {
		return fmt.Errorf("failed to join waitlist: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, res)
	}
	fmt.Fprintf(out, "%s (position %d)\n", res.Message, res.Position)
	return nil
}

func runWaitlistStats(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	stats, err := a.Waitlist.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load waitlist stats: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, stats)
	}
	fmt.Fprintf(out, "Total entries:        %d\n", stats.TotalEntries)
	fmt.Fprintf(out, "  Executives:         %d\n", stats.ByType.Executives)
	fmt.Fprintf(out, "  Professionals:      %d\n", stats.ByType.Professionals)
	fmt.Fprintf(out, "  Students:           %d\n", stats.ByType.Students)
	fmt.Fprintf(out, "High value prospects: %d\n", stats.HighValueProspects)
	return nil
}

func runWaitlistEntries(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	page, err := a.Waitlist.Entries(ctx, domain.WaitlistQuery{Limit: entriesLimit, Status: entriesState})
	if err != nil {
		return fmt.Errorf("failed to load waitlist entries: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, page)
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tEMAIL\tTYPE\tSTATUS\tSCORE\tJOINED")
	for _, e := range page.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", e.ID, e.Email, e.PersonType, e.Status, e.PriorityScore, e.JoinedAt)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d entries\n", page.Count)
	return nil
}

func runWaitlistStatus(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	if err := a.Waitlist.UpdateStatus(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update entry %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Entry %s is now %s\n", args[0], args[1])
	return nil
}
