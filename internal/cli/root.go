package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "churnboard",
	Short: "Retention analytics for Churnkey cancel flows",
	Long: `churnboard turns Churnkey cancel-flow sessions into retention reports.

It measures offer acceptance and cancellations per week and month, splits them
by cancel flow and offer type, estimates revenue saved and lost, and tracks
customers who come back to a cancel flow after their first session.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := logging.ConfigFromEnv()
		if cmd.Flags().Changed("log-level") {
			cfg.Level = globalFlags.logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Format = globalFlags.logFormat
		}
		logging.Init(cfg)
	},
}

// globalFlags override the config file and the environment when set.
var globalFlags struct {
	configPath string
	input      string
	windowDays int
	limit      int
	logLevel   string
	logFormat  string
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/churnboard/config.toml)")
	pf.StringVarP(&globalFlags.input, "input", "i", "", "Read sessions from a JSON file ('-' for stdin) instead of the API")
	pf.IntVar(&globalFlags.windowDays, "window-days", 0, "Days of history to fetch (default 180)")
	pf.IntVar(&globalFlags.limit, "limit", 0, "Maximum sessions to fetch (default 10000)")
	pf.StringVar(&globalFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&globalFlags.logFormat, "log-format", "console", "Log format: console, json")
}
