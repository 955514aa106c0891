package domain

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propSaveTypes  = []string{"", SaveTypeAbandon, "DISCOUNT", "PAUSE"}
	propBlueprints = []string{"", "B1", "B2", "B3"}
	propCustomers  = []string{"", "C1", "C2", "C3", "C4", "C5"}
	propReasons    = []string{"", "price", "bugs"}
)

// rawFromSeed derives a session from one generated integer so that shrinking stays cheap.
func rawFromSeed(seed int) RawSession {
	n := seed
	r := RawSession{ID: "p"}
	if n%17 != 0 {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n%120)
		r.CreatedAt = NewTimestamp(day)
	}
	n /= 120
	if st := propSaveTypes[n%4]; st != "" {
		r.SaveType = strPtr(st)
	}
	n /= 4
	r.Canceled = boolPtr(n%2 == 1)
	n /= 2
	if bp := propBlueprints[n%4]; bp != "" {
		r.BlueprintID = strPtr(bp)
	}
	n /= 4
	r.Customer = &RawCustomer{PlanPrice: NewCents(int64(n%5) * 500)}
	if c := propCustomers[n%6]; c != "" {
		r.Customer.ID = strPtr(c)
	}
	if reason := propReasons[seed%3]; reason != "" {
		r.SurveyChoiceValue = strPtr(reason)
	}
	return r
}

func rawsFromSeeds(seeds []int) []RawSession {
	out := make([]RawSession, len(seeds))
	for i, s := range seeds {
		out[i] = rawFromSeed(s)
	}
	return out
}

func seedsGen() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 1<<20))
}

func TestReportProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	window := Window{End: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Limit: 10000}

	properties.Property("period buckets partition the dated sessions", prop.ForAll(
		func(seeds []int) bool {
			r := BuildReport(rawsFromSeeds(seeds), window)
			dated := r.Totals.TotalSessions - r.Totals.ExcludedSessions
			for _, g := range []Granularity{Weekly, Monthly} {
				sum := 0
				for _, b := range r.Tables(g).Combined {
					sum += b.TotalCount
				}
				if sum != dated {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("bucket counts and rates stay in range", prop.ForAll(
		func(seeds []int) bool {
			r := BuildReport(rawsFromSeeds(seeds), window)
			for _, b := range r.Weekly.Combined {
				if b.AcceptedCount > b.TotalCount || b.CanceledCount > b.TotalCount {
					return false
				}
				if b.AcceptanceRate < 0 || b.AcceptanceRate > 100 {
					return false
				}
				if b.CancellationRate < 0 || b.CancellationRate > 100 {
					return false
				}
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("every session lands in exactly one flow", prop.ForAll(
		func(seeds []int) bool {
			r := BuildReport(rawsFromSeeds(seeds), window)
			tot := r.Totals
			if tot.Flow1Sessions+tot.Flow2Sessions+tot.OtherFlowSessions != tot.TotalSessions {
				return false
			}
			if r.Flows.Flow1 != nil && r.Flows.Flow2 != nil && r.Flows.Flow1.Sessions < r.Flows.Flow2.Sessions {
				return false
			}
			return true
		},
		seedsGen(),
	))

	properties.Property("acceptance follows the save type", prop.ForAll(
		func(seed int) bool {
			raw := rawFromSeed(seed)
			s := Classify(raw, 0)
			want := raw.SaveType != nil && *raw.SaveType != "" && *raw.SaveType != SaveTypeAbandon
			return s.Accepted == want
		},
		gen.IntRange(0, 1<<20),
	))

	properties.Property("reactivated customers are never double counted", prop.ForAll(
		func(seeds []int) bool {
			r := BuildReport(rawsFromSeeds(seeds), window)
			for _, g := range []Granularity{Weekly, Monthly} {
				for _, row := range r.Tables(g).Reactivation {
					if row.ReactivatedCustomers > row.UniqueCustomers {
						return false
					}
					if row.UniqueCustomers > r.Totals.TotalCustomers {
						return false
					}
				}
			}
			return r.Totals.ReactivatedCustomers <= r.Totals.TotalCustomers
		},
		seedsGen(),
	))

	properties.Property("offer tables cover every dated accepted session", prop.ForAll(
		func(seeds []int) bool {
			r := BuildReport(rawsFromSeeds(seeds), window)
			accepted, offered := 0, 0
			for _, b := range r.Monthly.Combined {
				accepted += b.AcceptedCount
			}
			for _, ot := range r.Monthly.OfferTypes {
				for _, b := range ot.Buckets {
					offered += b.TotalCount
				}
			}
			return accepted == offered
		},
		seedsGen(),
	))

	properties.Property("building a report is deterministic", prop.ForAll(
		func(seeds []int) bool {
			raws := rawsFromSeeds(seeds)
			a, errA := json.Marshal(BuildReport(raws, window))
			b, errB := json.Marshal(BuildReport(raws, window))
			return errA == nil && errB == nil && string(a) == string(b)
		},
		seedsGen(),
	))

	properties.TestingRun(t)
}
