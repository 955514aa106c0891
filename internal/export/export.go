// Package export flattens report tables into rows for CSV and JSON output.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

// Table names accepted by Build.
const (
	TablePeriods      = "periods"
	TableReactivation = "reactivation"
	TableOffers       = "offers"
)

// Formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Tables lists every exportable table.
var Tables = []string{TablePeriods, TableReactivation, TableOffers}

// Request selects one table of a report.
type Request struct {
	Table       string
	Granularity domain.Granularity
	Partition   domain.Partition
}

// Table is a selected report table, kept in its typed form for JSON and
// flattened for CSV.
type Table struct {
	Name    string
	Header  []string
	Rows    [][]string
	Records any
}

// Build selects the requested table from r.
func Build(r *domain.Report, req Request) (*Table, error) {
	tables := r.Tables(req.Granularity)

	switch req.Table {
	case TablePeriods, "":
		buckets, err := tables.Buckets(req.Partition)
		if err != nil {
			return nil, err
		}
		return periodTable(buckets), nil
	case TableReactivation:
		return reactivationTable(tables.Reactivation), nil
	case TableOffers:
		return offerTable(r.OfferRevenue), nil
	}
	return nil, fmt.Errorf("unknown table %q (want one of %s)", req.Table, strings.Join(Tables, ", "))
}

func periodTable(buckets []domain.PeriodBucket) *Table {
	t := &Table{
		Name: TablePeriods,
		Header: []string{
			"period", "total", "accepted", "acceptance_rate", "canceled", "cancellation_rate",
			"revenue_saved", "revenue_lost", "net_revenue", "offer_types", "top_reasons",
		},
		Records: buckets,
	}
	for _, b := range buckets {
		t.Rows = append(t.Rows, []string{
			b.Period,
			strconv.Itoa(b.TotalCount),
			strconv.Itoa(b.AcceptedCount),
			formatFloat(b.AcceptanceRate, 1),
			strconv.Itoa(b.CanceledCount),
			formatFloat(b.CancellationRate, 1),
			formatFloat(b.RevenueSaved, 2),
			formatFloat(b.RevenueLost, 2),
			formatFloat(b.NetRevenue, 2),
			joinCounts(b.OfferTypeCounts),
			joinCounts(b.TopReasons(3)),
		})
	}
	return t
}

func reactivationTable(rows []domain.ReactivationRow) *Table {
	t := &Table{
		Name:    TableReactivation,
		Header:  []string{"period", "unique_customers", "reactivated_customers", "reactivation_rate"},
		Records: rows,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Period,
			strconv.Itoa(r.UniqueCustomers),
			strconv.Itoa(r.ReactivatedCustomers),
			formatFloat(r.ReactivationRate, 1),
		})
	}
	return t
}

func offerTable(offers []domain.OfferRevenue) *Table {
	t := &Table{
		Name:    TableOffers,
		Header:  []string{"offer_type", "count", "revenue", "avg_revenue"},
		Records: offers,
	}
	for _, o := range offers {
		t.Rows = append(t.Rows, []string{
			o.OfferType,
			strconv.Itoa(o.Count),
			formatFloat(o.Revenue, 2),
			formatFloat(o.AvgRevenue, 2),
		})
	}
	return t
}

// Write encodes t to w in format.
func Write(w io.Writer, t *Table, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Records)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return err
		}
		return cw.Error()
	}
	return fmt.Errorf("unknown format %q (want json or csv)", format)
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func joinCounts(counts []domain.CategoryCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s:%d", c.Name, c.Count)
	}
	return strings.Join(parts, "; ")
}
