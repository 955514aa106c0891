package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Export a report table to JSON or CSV",
	Long: `Export one table of the report for external analysis.

Tables: ` + strings.Join(export.Tables, ", ") + `

Examples:
  churnboard export periods --period month --format csv --output monthly.csv
  churnboard export periods --partition flow1
  churnboard export periods --partition offer:DISCOUNT
  churnboard export reactivation --period week`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: export.Tables,
	RunE:      runExport,
}

var (
	exportFormat    string
	exportOutput    string
	exportPeriod    string
	exportPartition string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatJSON, "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportPeriod, "period", "p", "week", "Period: week, month")
	exportCmd.Flags().StringVar(&exportPartition, "partition", string(domain.PartitionAll), "Periods subset: all, flow1, flow2, offer:<type>")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	if exportFormat != export.FormatJSON && exportFormat != export.FormatCSV {
		return fmt.Errorf("unknown format %q (want json or csv)", exportFormat)
	}
	period, err := domain.ParseGranularity(exportPeriod)
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
	table, err := export.Build(r, export.Request{
		Table:       args[0],
		Granularity: period,
		Partition:   domain.Partition(exportPartition),
	})
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return export.Write(w, table, exportFormat)
}
