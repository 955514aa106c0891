package domain

import "sort"

// OfferRevenue is the revenue retained by one accepted save type.
type OfferRevenue struct {
	OfferType    string  `json:"offerType"`
	Count        int     `json:"count"`
	RevenueCents int64   `json:"-"`
	Revenue      float64 `json:"revenue"`
	AvgRevenue   float64 `json:"avgRevenue"`
}

// OfferRevenueBreakdown groups accepted sessions by offer type, ordered by revenue
// descending with ties in first-seen order.
func OfferRevenueBreakdown(sessions []ClassifiedSession) []OfferRevenue {
	index := make(map[string]int)
	out := []OfferRevenue{}
	for _, s := range sessions {
		if !s.Accepted {
			continue
		}
		i, ok := index[s.OfferType]
		if !ok {
			i = len(out)
			index[s.OfferType] = i
			out = append(out, OfferRevenue{OfferType: s.OfferType})
		}
		out[i].Count++
		out[i].RevenueCents += s.PlanPriceCents
	}
	for i := range out {
		out[i].Revenue = CentsToDollars(out[i].RevenueCents)
		out[i].AvgRevenue = AverageDollars(out[i].RevenueCents, out[i].Count)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].RevenueCents > out[b].RevenueCents })
	return out
}

// OfferTypes lists the distinct accepted offer types in first-seen order.
func OfferTypes(sessions []ClassifiedSession) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range sessions {
		if !s.Accepted {
			continue
		}
		if _, ok := seen[s.OfferType]; ok {
			continue
		}
		seen[s.OfferType] = struct{}{}
		out = append(out, s.OfferType)
	}
	return out
}
