package templates

import (
	"time"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

// Page names. In static output each page is written to <name>.html.
const (
	PageOverview = "index"
	PageRevenue  = "revenue"
	PageFlows    = "flows"
)

// Pages lists every dashboard page in navigation order.
var Pages = []string{PageOverview, PageRevenue, PageFlows}

// PageData is the view model shared by every dashboard page.
type PageData struct {
	Title  string
	Active string
	// Period is the granularity shown first; the other one stays in the page, hidden.
	Period domain.Granularity
	// Static switches links to relative .html files for generated output.
	Static bool

	Report      *domain.Report
	GeneratedAt time.Time
}

// NavItem is one entry of the page navigation.
type NavItem struct {
	Name   string
	Label  string
	Href   string
	Active bool
}

// PeriodView is the tables of one granularity as laid out on a page.
type PeriodView struct {
	Granularity domain.Granularity
	Label       string
	Header      string
	Hidden      bool
	Tables      domain.PeriodTables
}

// BucketTable is one period table with its column header.
type BucketTable struct {
	Header  string
	Buckets []domain.PeriodBucket
}

// FlowSection is one flow table on the flows page.
type FlowSection struct {
	ID          string
	Title       string
	BlueprintID string
	Buckets     []domain.PeriodBucket
}
