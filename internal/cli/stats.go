package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/churnboard/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the current window",
	Long: `Fetch the sessions of the window and print the headline numbers.

Examples:
  churnboard stats                       # Last 180 days from the API
  churnboard stats --period month        # Show the latest months
  churnboard stats -i sessions.json      # Read a saved export instead`,
	RunE: runStats,
}

var (
	statsPeriod  string
	statsPeriods int
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week", "Period table to show: week, month")
	statsCmd.Flags().IntVarP(&statsPeriods, "periods", "n", 6, "Number of most recent periods to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	period, err := domain.ParseGranularity(statsPeriod)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	r, err := a.Service.Generate(cmd.Context())
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r, period, statsPeriods)
	return nil
}

func printStats(w io.Writer, r *domain.Report, period domain.Granularity, periods int) {
	styles := theme.Default()
	t := r.Totals
	label := lipgloss.NewStyle().Width(20).Foreground(theme.Gray400)
	row := func(name, value string) {
		fmt.Fprintf(w, "  %s %s\n", label.Render(name), value)
	}
	section := func(title string) {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", styles.Bold.Render(title))
	}
	graded := func(grade, value string) string {
		return styles.Grade(grade).Render(value)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", styles.Active.Render("churnboard"))
	row("Window", util.FormatDateISO(r.Window.Start)+" to "+util.FormatDateISO(r.Window.End))
	if r.RunID != "" {
		row("Run", r.RunID)
	}

	section("Sessions")
	row("Total", util.FormatNumber(t.TotalSessions))
	row("Accepted offers", util.FormatNumber(t.TotalAccepted))
	row("Acceptance rate", graded(util.AcceptanceGrade(t.OverallAcceptanceRate), util.FormatPercent(t.OverallAcceptanceRate)))
	row("Canceled", util.FormatNumber(t.TotalCanceled))
	row("Cancellation rate", graded(util.CancellationGrade(t.OverallCancellationRate), util.FormatPercent(t.OverallCancellationRate)))
	if t.ExcludedSessions > 0 {
		row("Undated", util.FormatNumber(t.ExcludedSessions))
	}

	section("Revenue")
	row("Saved", util.FormatMoney(t.TotalRevenueSaved))
	row("Lost", util.FormatMoney(t.TotalRevenueLost))
	row("Net", graded(util.NetGrade(t.NetRevenue), util.FormatMoney(t.NetRevenue)))
	row("Avg per save", util.FormatMoney(t.AvgRevenuePerSave))
	for _, o := range r.OfferRevenue {
		row("  "+o.OfferType, fmt.Sprintf("%s (%d saves)", util.FormatMoney(o.Revenue), o.Count))
	}

	section("Flows")
	if f := r.Flows.Flow1; f != nil {
		row("Flow 1", fmt.Sprintf("%s (%d sessions)", f.BlueprintID, f.Sessions))
	}
	if f := r.Flows.Flow2; f != nil {
		row("Flow 2", fmt.Sprintf("%s (%d sessions)", f.BlueprintID, f.Sessions))
	}
	row("Other", util.FormatNumber(t.OtherFlowSessions))

	section("Customers")
	row("Unique", util.FormatNumber(t.TotalCustomers))
	row("Reactivated", util.FormatNumber(t.ReactivatedCustomers))
	row("Reactivation rate", graded(util.ReactivationGrade(t.OverallReactivationRate), util.FormatPercent(t.OverallReactivationRate)))

	buckets := r.Tables(period).Combined
	if len(buckets) == 0 {
		fmt.Fprintln(w)
		return
	}
	section("Latest " + string(period) + "s")
	fmt.Fprintf(w, "  %-10s %8s %9s %9s %12s\n", "Period", "Sessions", "Accept %", "Cancel %", "Net")
	if periods > 0 && periods < len(buckets) {
		buckets = buckets[:periods]
	}
	for _, b := range buckets {
		fmt.Fprintf(w, "  %-10s %8d %9s %9s %12s\n",
			b.Period, b.TotalCount,
			util.FormatPercent(b.AcceptanceRate),
			util.FormatPercent(b.CancellationRate),
			util.FormatMoney(b.NetRevenue),
		)
	}
	fmt.Fprintln(w)
}
