package domain

import "sort"

// CustomerTimeline is one customer's dated sessions in chronological order.
// Index 0 is the customer's initial session; every later entry is a reactivation.
type CustomerTimeline struct {
	CustomerID string
	Sessions   []ClassifiedSession
}

// Reactivated reports whether the customer returned at least once.
func (t CustomerTimeline) Reactivated() bool {
	return len(t.Sessions) > 1
}

// BuildTimelines groups dated sessions by customer. Sessions without a customer id or
// a usable timestamp are left out. Same-instant sessions keep input order. Timelines
// are returned in order of each customer's first appearance in the input.
func BuildTimelines(sessions []ClassifiedSession) []CustomerTimeline {
	index := make(map[string]int)
	var timelines []CustomerTimeline
	for _, s := range sessions {
		if !s.Dated || s.CustomerID == "" {
			continue
		}
		i, ok := index[s.CustomerID]
		if !ok {
			i = len(timelines)
			index[s.CustomerID] = i
			timelines = append(timelines, CustomerTimeline{CustomerID: s.CustomerID})
		}
		timelines[i].Sessions = append(timelines[i].Sessions, s)
	}
	for i := range timelines {
		ss := timelines[i].Sessions
		sort.SliceStable(ss, func(a, b int) bool { return ss[a].CreatedAt.Before(ss[b].CreatedAt) })
	}
	return timelines
}

// ReactivationRow is the reactivation rollup for one period.
type ReactivationRow struct {
	Period               string  `json:"period"`
	UniqueCustomers      int     `json:"uniqueCustomers"`
	ReactivatedCustomers int     `json:"reactivatedCustomers"`
	ReactivationRate     float64 `json:"reactivationRate"`
}

// DetectReactivation computes per-period customer counts. A row is emitted for every
// period label observed among dated sessions, including periods with no identified
// customer. Rows are returned most recent first.
func DetectReactivation(sessions []ClassifiedSession, timelines []CustomerTimeline, g Granularity) []ReactivationRow {
	unique := make(map[string]map[string]struct{})
	reactivated := make(map[string]map[string]struct{})
	var labels []string

	for _, s := range sessions {
		label := s.Label(g)
		if label == "" {
			continue
		}
		if _, ok := unique[label]; !ok {
			unique[label] = make(map[string]struct{})
			reactivated[label] = make(map[string]struct{})
			labels = append(labels, label)
		}
	}

	for _, tl := range timelines {
		for i, s := range tl.Sessions {
			label := s.Label(g)
			unique[label][tl.CustomerID] = struct{}{}
			if i > 0 {
				reactivated[label][tl.CustomerID] = struct{}{}
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(labels)))

	rows := make([]ReactivationRow, 0, len(labels))
	for _, label := range labels {
		u := len(unique[label])
		r := len(reactivated[label])
		rows = append(rows, ReactivationRow{
			Period:               label,
			UniqueCustomers:      u,
			ReactivatedCustomers: r,
			ReactivationRate:     Rate(r, u),
		})
	}
	return rows
}

// ReactivationSummary holds the window-level customer counts.
type ReactivationSummary struct {
	TotalCustomers       int
	ReactivatedCustomers int
	Rate                 float64
}

// SummarizeReactivation counts customers with more than one dated session.
func SummarizeReactivation(timelines []CustomerTimeline) ReactivationSummary {
	sum := ReactivationSummary{TotalCustomers: len(timelines)}
	for _, tl := range timelines {
		if tl.Reactivated() {
			sum.ReactivatedCustomers++
		}
	}
	sum.Rate = Rate(sum.ReactivatedCustomers, sum.TotalCustomers)
	return sum
}
