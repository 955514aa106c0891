package domain

import "sort"

// Filter selects the sessions an aggregation runs over. A nil Filter keeps everything.
type Filter func(ClassifiedSession) bool

// PeriodBucket is the rollup of every session sharing one period label.
type PeriodBucket struct {
	Period                   string          `json:"period"`
	TotalCount               int             `json:"totalCount"`
	AcceptedCount            int             `json:"acceptedCount"`
	CanceledCount            int             `json:"canceledCount"`
	AcceptanceRate           float64         `json:"acceptanceRate"`
	CancellationRate         float64         `json:"cancellationRate"`
	RevenueSavedCents        int64           `json:"-"`
	RevenueLostCents         int64           `json:"-"`
	RevenueSaved             float64         `json:"revenueSaved"`
	RevenueLost              float64         `json:"revenueLost"`
	NetRevenue               float64         `json:"netRevenue"`
	OfferTypeCounts          []CategoryCount `json:"offerTypeCounts"`
	CancellationReasonCounts []CategoryCount `json:"cancellationReasonCounts"`
}

// TopReasons returns the n most frequent cancellation reasons, ties in first-seen order.
func (b PeriodBucket) TopReasons(n int) []CategoryCount {
	if len(b.CancellationReasonCounts) <= n {
		return b.CancellationReasonCounts
	}
	return b.CancellationReasonCounts[:n]
}

type bucketAcc struct {
	bucket  PeriodBucket
	offers  *Counter
	reasons *Counter
}

// Aggregate rolls sessions up by period label in a single pass. Undated sessions and
// sessions rejected by filter are skipped. Buckets are returned most recent first.
func Aggregate(sessions []ClassifiedSession, g Granularity, filter Filter) []PeriodBucket {
	accs := make(map[string]*bucketAcc)
	var labels []string

	for _, s := range sessions {
		label := s.Label(g)
		if label == "" {
			continue
		}
		if filter != nil && !filter(s) {
			continue
		}
		acc, ok := accs[label]
		if !ok {
			acc = &bucketAcc{
				bucket:  PeriodBucket{Period: label},
				offers:  NewCounter(),
				reasons: NewCounter(),
			}
			accs[label] = acc
			labels = append(labels, label)
		}
		b := &acc.bucket
		b.TotalCount++
		if s.Accepted {
			b.AcceptedCount++
			b.RevenueSavedCents += s.PlanPriceCents
			if s.OfferType != "" {
				acc.offers.Add(s.OfferType)
			}
		}
		if s.Canceled {
			b.CanceledCount++
			b.RevenueLostCents += s.PlanPriceCents
			if s.CancellationReason != "" {
				acc.reasons.Add(s.CancellationReason)
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(labels)))

	out := make([]PeriodBucket, 0, len(labels))
	for _, label := range labels {
		acc := accs[label]
		b := acc.bucket
		b.AcceptanceRate = Rate(b.AcceptedCount, b.TotalCount)
		b.CancellationRate = Rate(b.CanceledCount, b.TotalCount)
		b.RevenueSaved = CentsToDollars(b.RevenueSavedCents)
		b.RevenueLost = CentsToDollars(b.RevenueLostCents)
		b.NetRevenue = CentsToDollars(b.RevenueSavedCents - b.RevenueLostCents)
		b.OfferTypeCounts = acc.offers.Sorted()
		b.CancellationReasonCounts = acc.reasons.Sorted()
		out = append(out, b)
	}
	return out
}

// And combines filters; nil filters are ignored.
func And(filters ...Filter) Filter {
	return func(s ClassifiedSession) bool {
		for _, f := range filters {
			if f != nil && !f(s) {
				return false
			}
		}
		return true
	}
}

// OfferTypeFilter selects accepted sessions with the given offer type.
func OfferTypeFilter(offerType string) Filter {
	return func(s ClassifiedSession) bool { return s.Accepted && s.OfferType == offerType }
}
