package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/util"
)

func periodTitle(g domain.Granularity) string {
	if g == domain.Monthly {
		return "Month"
	}
	return "Week"
}

func acceptanceTable(g domain.Granularity, buckets []domain.PeriodBucket) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: periodTitle(g), Width: 9},
		{Title: "Sessions", Width: 9},
		{Title: "Accepted", Width: 9},
		{Title: "Accept %", Width: 9},
		{Title: "Canceled", Width: 9},
		{Title: "Cancel %", Width: 9},
		{Title: "Top reasons", Width: 36},
	}
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, table.Row{
			b.Period,
			strconv.Itoa(b.TotalCount),
			strconv.Itoa(b.AcceptedCount),
			util.FormatPercent(b.AcceptanceRate),
			strconv.Itoa(b.CanceledCount),
			util.FormatPercent(b.CancellationRate),
			joinCounts(b.TopReasons(3)),
		})
	}
	return cols, rows
}

func revenueTable(g domain.Granularity, buckets []domain.PeriodBucket) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: periodTitle(g), Width: 9},
		{Title: "Saved", Width: 13},
		{Title: "Lost", Width: 13},
		{Title: "Net", Width: 13},
		{Title: "Offers", Width: 36},
	}
	rows := make([]table.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, table.Row{
			b.Period,
			util.FormatMoney(b.RevenueSaved),
			util.FormatMoney(b.RevenueLost),
			util.FormatMoney(b.NetRevenue),
			joinCounts(b.OfferTypeCounts),
		})
	}
	return cols, rows
}

func reactivationTable(g domain.Granularity, rows []domain.ReactivationRow) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: periodTitle(g), Width: 9},
		{Title: "Customers", Width: 10},
		{Title: "Reactivated", Width: 12},
		{Title: "Rate", Width: 8},
	}
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{
			r.Period,
			strconv.Itoa(r.UniqueCustomers),
			strconv.Itoa(r.ReactivatedCustomers),
			util.FormatPercent(r.ReactivationRate),
		})
	}
	return cols, out
}

func joinCounts(counts []domain.CategoryCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = c.Name + " " + strconv.Itoa(c.Count)
	}
	return strings.Join(parts, ", ")
}
