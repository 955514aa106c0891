package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPayload is returned when the upstream payload is not a session sequence.
var ErrInvalidPayload = errors.New("payload is not a sequence of sessions")

// Window is the fetch window a report was computed for. It is recorded, not applied:
// the session source is responsible for honouring it.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Limit int       `json:"limit"`
}

// Totals are computed over every supplied record, not per period.
type Totals struct {
	TotalSessions           int     `json:"totalSessions"`
	TotalAccepted           int     `json:"totalAccepted"`
	TotalCanceled           int     `json:"totalCanceled"`
	TotalRevenueSavedCents  int64   `json:"-"`
	TotalRevenueLostCents   int64   `json:"-"`
	TotalRevenueSaved       float64 `json:"totalRevenueSaved"`
	TotalRevenueLost        float64 `json:"totalRevenueLost"`
	NetRevenue              float64 `json:"netRevenue"`
	AvgRevenuePerSave       float64 `json:"avgRevenuePerSave"`
	OverallAcceptanceRate   float64 `json:"overallAcceptanceRate"`
	OverallCancellationRate float64 `json:"overallCancellationRate"`
	OverallReactivationRate float64 `json:"overallReactivationRate"`
	TotalCustomers          int     `json:"totalCustomers"`
	ReactivatedCustomers    int     `json:"reactivatedCustomers"`
	Flow1Sessions           int     `json:"flow1Sessions"`
	Flow2Sessions           int     `json:"flow2Sessions"`
	OtherFlowSessions       int     `json:"otherFlowSessions"`
	ExcludedSessions        int     `json:"excludedSessions"`
}

// OfferTypeTable is the period rollup restricted to one accepted offer type.
type OfferTypeTable struct {
	OfferType string         `json:"offerType"`
	Buckets   []PeriodBucket `json:"buckets"`
}

// PeriodTables holds every period-keyed table for one granularity.
type PeriodTables struct {
	Granularity  Granularity       `json:"granularity"`
	Combined     []PeriodBucket    `json:"combined"`
	Flow1        []PeriodBucket    `json:"flow1"`
	Flow2        []PeriodBucket    `json:"flow2"`
	OfferTypes   []OfferTypeTable  `json:"offerTypes"`
	Reactivation []ReactivationRow `json:"reactivation"`
}

// Report is the complete output of one run.
type Report struct {
	RunID        string         `json:"runId,omitempty"`
	GeneratedAt  time.Time      `json:"generatedAt,omitzero"`
	Window       Window         `json:"window"`
	Totals       Totals         `json:"totals"`
	Flows        FlowSet        `json:"flows"`
	OfferRevenue []OfferRevenue `json:"offerRevenue"`
	Weekly       PeriodTables   `json:"weekly"`
	Monthly      PeriodTables   `json:"monthly"`
}

// Tables returns the tables for g.
func (r *Report) Tables(g Granularity) PeriodTables {
	if g == Monthly {
		return r.Monthly
	}
	return r.Weekly
}

// Partition names a filtered view of the period tables.
type Partition string

const (
	PartitionAll   Partition = "all"
	PartitionFlow1 Partition = "flow1"
	PartitionFlow2 Partition = "flow2"
)

const offerPartitionPrefix = "offer:"

// OfferPartition names the table restricted to one offer type.
func OfferPartition(offerType string) Partition {
	return Partition(offerPartitionPrefix + offerType)
}

// Buckets returns the period buckets of one partition.
func (t PeriodTables) Buckets(p Partition) ([]PeriodBucket, error) {
	switch p {
	case PartitionAll, "":
		return t.Combined, nil
	case PartitionFlow1:
		return t.Flow1, nil
	case PartitionFlow2:
		return t.Flow2, nil
	}
	if offer, ok := strings.CutPrefix(string(p), offerPartitionPrefix); ok {
		for _, ot := range t.OfferTypes {
			if ot.OfferType == offer {
				return ot.Buckets, nil
			}
		}
		return []PeriodBucket{}, nil
	}
	return nil, fmt.Errorf("unknown partition %q", p)
}

// BuildReport runs the whole pipeline over raw sessions. It is a pure function of its
// inputs: the same sessions and window always produce the same report.
func BuildReport(raws []RawSession, window Window) *Report {
	sessions, undated := ClassifyAll(raws)
	flows := AssignFlows(sessions)
	timelines := BuildTimelines(sessions)
	summary := SummarizeReactivation(timelines)

	r := &Report{
		Window:       window,
		Flows:        flows,
		Totals:       computeTotals(sessions, summary),
		OfferRevenue: OfferRevenueBreakdown(sessions),
	}
	r.Totals.ExcludedSessions = undated

	offerTypes := OfferTypes(sessions)
	r.Weekly = buildTables(sessions, timelines, Weekly, flows, offerTypes)
	r.Monthly = buildTables(sessions, timelines, Monthly, flows, offerTypes)
	return r
}

func buildTables(sessions []ClassifiedSession, timelines []CustomerTimeline, g Granularity, flows FlowSet, offerTypes []string) PeriodTables {
	t := PeriodTables{
		Granularity:  g,
		Combined:     Aggregate(sessions, g, nil),
		Flow1:        []PeriodBucket{},
		Flow2:        []PeriodBucket{},
		OfferTypes:   make([]OfferTypeTable, 0, len(offerTypes)),
		Reactivation: DetectReactivation(sessions, timelines, g),
	}
	if flows.Flow1 != nil {
		t.Flow1 = Aggregate(sessions, g, FlowFilter(Flow1))
	}
	if flows.Flow2 != nil {
		t.Flow2 = Aggregate(sessions, g, FlowFilter(Flow2))
	}
	for _, ot := range offerTypes {
		t.OfferTypes = append(t.OfferTypes, OfferTypeTable{
			OfferType: ot,
			Buckets:   Aggregate(sessions, g, OfferTypeFilter(ot)),
		})
	}
	return t
}

func computeTotals(sessions []ClassifiedSession, summary ReactivationSummary) Totals {
	var t Totals
	t.TotalSessions = len(sessions)
	for _, s := range sessions {
		if s.Accepted {
			t.TotalAccepted++
			t.TotalRevenueSavedCents += s.PlanPriceCents
		}
		if s.Canceled {
			t.TotalCanceled++
			t.TotalRevenueLostCents += s.PlanPriceCents
		}
		switch s.Flow {
		case Flow1:
			t.Flow1Sessions++
		case Flow2:
			t.Flow2Sessions++
		default:
			t.OtherFlowSessions++
		}
	}
	t.TotalRevenueSaved = CentsToDollars(t.TotalRevenueSavedCents)
	t.TotalRevenueLost = CentsToDollars(t.TotalRevenueLostCents)
	t.NetRevenue = CentsToDollars(t.TotalRevenueSavedCents - t.TotalRevenueLostCents)
	if t.TotalAccepted > 0 {
		t.AvgRevenuePerSave = AverageDollars(t.TotalRevenueSavedCents, t.TotalAccepted)
	}
	t.OverallAcceptanceRate = Rate(t.TotalAccepted, t.TotalSessions)
	t.OverallCancellationRate = Rate(t.TotalCanceled, t.TotalSessions)
	t.TotalCustomers = summary.TotalCustomers
	t.ReactivatedCustomers = summary.ReactivatedCustomers
	t.OverallReactivationRate = summary.Rate
	return t
}
