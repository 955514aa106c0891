package cli

import (
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/app"
	"github.com/emiliopalmerini/churnboard/internal/config"
)

// loadConfig resolves the configuration and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if globalFlags.configPath != "" {
		cfg, err = config.LoadFrom(globalFlags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = globalFlags.input
	}
	if flags.Changed("window-days") {
		cfg.WindowDays = globalFlags.windowDays
	}
	if flags.Changed("limit") {
		cfg.Limit = globalFlags.limit
	}
	return cfg, nil
}

// newApp builds the shared dependencies of a command. Callers must Close it.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}
