package templates

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/util"
)

var pageTitles = map[string]string{
	PageOverview: "Overview",
	PageRevenue:  "Revenue Impact",
	PageFlows:    "Flows & Reactivation",
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"money":             util.FormatMoney,
		"percent":           util.FormatPercent,
		"number":            util.FormatNumber,
		"datetime":          util.FormatDateTime,
		"date":              util.FormatDateISO,
		"acceptanceClass":   util.AcceptanceGrade,
		"cancellationClass": util.CancellationGrade,
		"reactivationClass": util.ReactivationGrade,
		"netClass":          util.NetGrade,
		"counts":            formatCounts,
		"nav":               navItems,
		"flowSections":      flowSections,
		"views":             Views,
		"periodURL":         periodURL,
		"table":             bucketTable,
	}
}

func formatCounts(counts []domain.CategoryCount) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Name + " (" + util.FormatNumber(c.Count) + ")"
	}
	return out
}

func navItems(data PageData) []NavItem {
	items := make([]NavItem, 0, len(Pages))
	for _, p := range Pages {
		items = append(items, NavItem{
			Name:   p,
			Label:  pageTitles[p],
			Href:   string(PageURL(p, data.Period, data.Static)),
			Active: p == data.Active,
		})
	}
	return items
}

// PageURL links to a page, keeping the selected period on the server.
func PageURL(page string, period domain.Granularity, static bool) templ.SafeURL {
	if static {
		return templ.SafeURL(page + ".html")
	}
	path := "/"
	if page != PageOverview {
		path += page
	}
	if period != "" {
		path += "?period=" + string(period)
	}
	return templ.SafeURL(path)
}

// Views returns the weekly and monthly views of a page, hiding the unselected one.
func Views(data PageData) []PeriodView {
	selected := data.Period
	if selected == "" {
		selected = domain.Weekly
	}
	views := make([]PeriodView, 0, 2)
	for _, g := range []domain.Granularity{domain.Weekly, domain.Monthly} {
		views = append(views, PeriodView{
			Granularity: g,
			Label:       periodLabel(g),
			Header:      periodHeader(g),
			Hidden:      g != selected,
			Tables:      data.Report.Tables(g),
		})
	}
	return views
}

func flowSections(r *domain.Report, g domain.Granularity) []FlowSection {
	t := r.Tables(g)
	sections := make([]FlowSection, 0, 3)
	if f := r.Flows.Flow1; f != nil {
		sections = append(sections, FlowSection{ID: "flow1", Title: domain.Flow1.String(), BlueprintID: f.BlueprintID, Buckets: t.Flow1})
	}
	if f := r.Flows.Flow2; f != nil {
		sections = append(sections, FlowSection{ID: "flow2", Title: domain.Flow2.String(), BlueprintID: f.BlueprintID, Buckets: t.Flow2})
	}
	sections = append(sections, FlowSection{ID: "combined", Title: "Combined Flows", Buckets: t.Combined})
	return sections
}

// PeriodURL switches the period of the current page. Static pages toggle in place.
func PeriodURL(data PageData, g domain.Granularity) templ.SafeURL {
	if data.Static {
		return templ.SafeURL("#" + string(g))
	}
	return PageURL(data.Active, g, false)
}

func periodURL(data PageData, g domain.Granularity) string {
	return string(PeriodURL(data, g))
}

func bucketTable(header string, buckets []domain.PeriodBucket) BucketTable {
	return BucketTable{Header: header, Buckets: buckets}
}

func periodLabel(g domain.Granularity) string {
	if g == domain.Monthly {
		return "Monthly"
	}
	return "Weekly"
}

func periodHeader(g domain.Granularity) string {
	if g == domain.Monthly {
		return "Month"
	}
	return "Week"
}
