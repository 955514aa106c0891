package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the dashboard server. Reports are cached for --cache-ttl;
add ?refresh=1 to any page to rebuild immediately.

Also serves /api/report, /api/export/{table} and Prometheus /metrics.

Examples:
  churnboard serve              # Start on the configured port (default 8080)
  churnboard serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var (
	servePort     int
	serveCacheTTL time.Duration
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "cache-ttl", web.DefaultCacheTTL, "How long a generated report is reused")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	port := a.Config.Web.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(web.Config{Port: port, CacheTTL: serveCacheTTL}, a.Service)
	err = server.Start(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := a.Close(closeCtx); err == nil {
		err = cerr
	}
	return err
}
