package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var bodyFatCmd = &cobra.Command{
	Use:   "bodyfat",
	Short: "Track body fat measurements",
}

var bodyFatLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent measurement",
	RunE:  withApp(runBodyFatLatest),
}

var bodyFatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List every measurement",
	RunE:  withApp(runBodyFatHistory),
}

var bodyFatLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a measurement",
	Long: `Log a measurement in centimetres together with the computed body fat.

Examples:
  kyool bodyfat log --height 180 --neck 38 --waist 84 --body-fat 16.5
  kyool bodyfat log --height 165 --neck 32 --waist 70 --hip 95 --body-fat 24`,
	RunE: withApp(runBodyFatLog),
}

var (
	bfHeight  float64
	bfNeck    float64
	bfWaist   float64
	bfHip     float64
	bfPercent float64
)

func init() {
	rootCmd.AddCommand(bodyFatCmd)

	bodyFatCmd.AddCommand(bodyFatLatestCmd)
	bodyFatCmd.AddCommand(bodyFatHistoryCmd)
	bodyFatCmd.AddCommand(bodyFatLogCmd)

	bodyFatLogCmd.Flags().Float64Var(&bfHeight, "height", 0, "Height in cm")
	bodyFatLogCmd.Flags().Float64Var(&bfNeck, "neck", 0, "Neck circumference in cm")
	bodyFatLogCmd.Flags().Float64Var(&bfWaist, "waist", 0, "Waist circumference in cm")
	bodyFatLogCmd.Flags().Float64Var(&bfHip, "hip", 0, "Hip circumference in cm (optional)")
	bodyFatLogCmd.Flags().Float64Var(&bfPercent, "body-fat", 0, "Body fat percentage")
	_ = bodyFatLogCmd.MarkFlagRequired("height")
	_ = bodyFatLogCmd.MarkFlagRequired("neck")
	_ = bodyFatLogCmd.MarkFlagRequired("waist")
	_ = bodyFatLogCmd.MarkFlagRequired("body-fat")
}

func runBodyFatLatest(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	uid, err := signedIn(a)
	if err != nil {
		return err
	}

	latest, err := a.BodyFat.Latest(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to load body fat: %w", err)
	}

	out := cmd.OutOrStdout()
	if latest == nil {
		fmt.Fprintln(out, "No measurements yet")
		return nil
	}
	if jsonOutput {
		return printJSON(out, latest)
	}
	fmt.Fprintf(out, "%.1f%% on %s\n", latest.BodyFat, latest.Timestamp.Format("Jan 2, 2006"))
	return nil
}

func runBodyFatHistory(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	uid, err := signedIn(a)
	if err != nil {
		return err
	}

	logs, err := a.BodyFat.History(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to load body fat history: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, logs)
	}
	if len(logs) == 0 {
		fmt.Fprintln(out, "No measurements yet")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "DATE\tBODY FAT\tWAIST\tNECK")
	for _, l := range logs {
		fmt.Fprintf(w, "%s\t%.1f%%\t%.1f\t%.1f\n", l.Timestamp.Format("2006-01-02"), l.BodyFat, l.Waist, l.Neck)
	}
	return w.Flush()
}

func runBodyFatLog(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
	m := domain.BodyFatMeasurements{
		Height:            bfHeight,
		Neck:              bfNeck,
		Waist:             bfWaist,
		BodyFatPercentage: bfPercent,
	}
	if cmd.Flags().Changed("hip") {
		hip := bfHip
		m.Hip = &hip
	}
	if err := m.Validate(); err != nil {
		return err
	}

	uid, err := signedIn(a)
	if err != nil {
		return err
	}

	logged, err := a.BodyFat.Log(ctx, uid, m)
	if err != nil {
		return fmt.Errorf("failed to log body fat: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, logged)
	}
	fmt.Fprintf(out, "Logged %.1f%% body fat\n", logged.BodyFat)
	return nil
}
