package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/app/tui"
	"github.com/emiliopalmerini/churnboard/internal/logging"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Explore the report in the terminal",
	Long: `Open the interactive terminal dashboard.

Keys: 1-5 switch screens, p toggles week/month, f cycles flows,
r refetches, q quits.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(cmd.Context())

	// Log lines would tear the alternate screen.
	logging.Init(logging.Config{Level: "disabled"})

	program := tea.NewProgram(tui.NewApp(a.Service), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
