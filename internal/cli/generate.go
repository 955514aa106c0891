package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/logging"
	"github.com/emiliopalmerini/churnboard/internal/web/templates"
)

const reportFile = "report.json"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the static dashboard",
	Long: `Fetch the window once and write the dashboard pages plus report.json.

The pages link to each other with relative paths, so the output directory can
be opened from disk or published as is.

Examples:
  churnboard generate                    # Write to ./dist
  churnboard generate --out site --period month`,
	RunE: runGenerate,
}

var (
	generateOut    string
	generatePeriod string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "dist", "Output directory")
	generateCmd.Flags().StringVarP(&generatePeriod, "period", "p", "week", "Period shown first: week, month")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	period, err := domain.ParseGranularity(generatePeriod)
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
	if err := writeSite(cmd.Context(), generateOut, r, period); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages and %s to %s\n", len(templates.Pages), reportFile, generateOut)
	return nil
}

// writeSite renders every page and the JSON report into dir concurrently.
func writeSite(ctx context.Context, dir string, r *domain.Report, period domain.Granularity) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, page := range templates.Pages {
		page := page
		g.Go(func() error {
			return writePage(gctx, filepath.Join(dir, page+".html"), page, r, period)
		})
	}
	g.Go(func() error {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return os.WriteFile(filepath.Join(dir, reportFile), data, 0o644)
	})
	return g.Wait()
}

func writePage(ctx context.Context, path, page string, r *domain.Report, period domain.Granularity) (err error) {
	c, err := templates.Page(page, templates.NewPageData(page, r, period, true))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := c.Render(ctx, f); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	logging.Debug().Str("path", path).Msg("page written")
	return nil
}
