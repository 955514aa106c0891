package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging defaults, the config file,
CHURNBOARD_* environment variables and flags. The API key is masked.`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the default config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	source := "Churnkey API (" + cfg.BaseURL + ")"
	if cfg.Input != "" {
		source = "file " + cfg.Input
	}
	fmt.Fprintf(w, "Source:       %s\n", source)
	fmt.Fprintf(w, "API key:      %s\n", cfg.MaskedAPIKey())
	fmt.Fprintf(w, "App ID:       %s\n", valueOrUnset(cfg.AppID))
	fmt.Fprintf(w, "Timeout:      %s\n", cfg.Timeout)
	fmt.Fprintf(w, "Window days:  %d\n", cfg.WindowDays)
	fmt.Fprintf(w, "Limit:        %d\n", cfg.Limit)
	fmt.Fprintf(w, "Web port:     %d\n", cfg.Web.Port)
	if cfg.OTEL.Enabled {
		fmt.Fprintf(w, "OTEL:         %s (insecure=%t)\n", cfg.OTEL.Endpoint, cfg.OTEL.Insecure)
	} else {
		fmt.Fprintln(w, "OTEL:         disabled")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(w, "\nInvalid: %v\n", err)
	}
	return nil
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
