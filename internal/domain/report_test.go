package domain

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

const scenarioPayload = `[
	{"id":"s1","createdAt":"2024-01-02","saveType":"DISCOUNT","canceled":false,"blueprintId":"B1","customer":{"id":"C1","planPrice":2000}},
	{"id":"s2","createdAt":"2024-01-03","saveType":null,"canceled":true,"blueprintId":"B1","customer":{"id":"C2","planPrice":1500},"surveyChoiceValue":"too_expensive"},
	{"id":"s3","createdAt":"2024-02-01","saveType":"ABANDON","canceled":true,"blueprintId":"B2","customer":{"id":"C1","planPrice":1000},"surveyChoiceValue":"no_reason_given"},
	{"id":"s4","createdAt":"2024-02-05","saveType":"PAUSE","canceled":false,"blueprintId":"B1","customer":{"id":"C3","planPrice":3000}}
]`

func scenarioSessions(t *testing.T) []RawSession {
	t.Helper()
	var raws []RawSession
	if err := json.Unmarshal([]byte(scenarioPayload), &raws); err != nil {
		t.Fatalf("decode scenario: %v", err)
	}
	return raws
}

func scenarioWindow() Window {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: end.AddDate(0, 0, -180), End: end, Limit: 10000}
}

func TestBuildReport_Classification(t *testing.T) {
	sessions, undated := ClassifyAll(scenarioSessions(t))
	if undated != 0 {
		t.Fatalf("expected every session dated, got %d undated", undated)
	}

	s1, s2, s3, s4 := sessions[0], sessions[1], sessions[2], sessions[3]
	if !s1.Accepted {
		t.Error("s1: expected accepted")
	}
	assertFloatNear(t, "s1 revenue", 20.0, s1.RevenueDollars())
	if s2.Accepted || !s2.Canceled || s2.CancellationReason != "too_expensive" {
		t.Errorf("s2: unexpected classification %+v", s2)
	}
	if s3.Accepted || !s3.Canceled || s3.CancellationReason != "no_reason_given" {
		t.Errorf("s3: unexpected classification %+v", s3)
	}
	if !s4.Accepted {
		t.Error("s4: expected accepted")
	}
	assertFloatNear(t, "s4 revenue", 30.0, s4.RevenueDollars())
}

func TestBuildReport_MonthlyBuckets(t *testing.T) {
	r := BuildReport(scenarioSessions(t), scenarioWindow())

	buckets := r.Monthly.Combined
	if len(buckets) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(buckets))
	}

	tests := []struct {
		bucket       PeriodBucket
		period       string
		revenueSaved float64
	}{
		{buckets[0], "2024-02", 30.0},
		{buckets[1], "2024-01", 20.0},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			b := tt.bucket
			if b.Period != tt.period {
				t.Fatalf("expected period %s, got %s", tt.period, b.Period)
			}
			if b.TotalCount != 2 || b.AcceptedCount != 1 || b.CanceledCount != 1 {
				t.Errorf("expected total=2 accepted=1 canceled=1, got %d %d %d", b.TotalCount, b.AcceptedCount, b.CanceledCount)
			}
			assertFloatNear(t, "AcceptanceRate", 50.0, b.AcceptanceRate)
			assertFloatNear(t, "CancellationRate", 50.0, b.CancellationRate)
			assertFloatNear(t, "RevenueSaved", tt.revenueSaved, b.RevenueSaved)
		})
	}
}

func TestBuildReport_Flows(t *testing.T) {
	r := BuildReport(scenarioSessions(t), scenarioWindow())

	if r.Flows.Flow1 == nil || r.Flows.Flow1.BlueprintID != "B1" || r.Flows.Flow1.Sessions != 3 {
		t.Errorf("expected Flow1=B1 with 3 sessions, got %+v", r.Flows.Flow1)
	}
	if r.Flows.Flow2 == nil || r.Flows.Flow2.BlueprintID != "B2" || r.Flows.Flow2.Sessions != 1 {
		t.Errorf("expected Flow2=B2 with 1 session, got %+v", r.Flows.Flow2)
	}
	if r.Totals.Flow1Sessions != 3 || r.Totals.Flow2Sessions != 1 || r.Totals.OtherFlowSessions != 0 {
		t.Errorf("unexpected flow totals: %+v", r.Totals)
	}
}

func TestBuildReport_Reactivation(t *testing.T) {
	r := BuildReport(scenarioSessions(t), scenarioWindow())

	rows := r.Monthly.Reactivation
	if len(rows) != 2 {
		t.Fatalf("expected 2 reactivation rows, got %d", len(rows))
	}
	feb, jan := rows[0], rows[1]
	if jan.Period != "2024-01" || jan.UniqueCustomers != 2 || jan.ReactivatedCustomers != 0 {
		t.Errorf("unexpected January row: %+v", jan)
	}
	assertFloatNear(t, "January rate", 0.0, jan.ReactivationRate)
	if feb.Period != "2024-02" || feb.UniqueCustomers != 2 || feb.ReactivatedCustomers != 1 {
		t.Errorf("unexpected February row: %+v", feb)
	}
	assertFloatNear(t, "February rate", 50.0, feb.ReactivationRate)

	if r.Totals.TotalCustomers != 3 || r.Totals.ReactivatedCustomers != 1 {
		t.Errorf("unexpected customer totals: %+v", r.Totals)
	}
	assertFloatNear(t, "OverallReactivationRate", 33.3, r.Totals.OverallReactivationRate)
}

func TestBuildReport_Totals(t *testing.T) {
	r := BuildReport(scenarioSessions(t), scenarioWindow())
	tot := r.Totals

	if tot.TotalSessions != 4 || tot.TotalAccepted != 2 || tot.TotalCanceled != 2 {
		t.Errorf("unexpected counts: %+v", tot)
	}
	assertFloatNear(t, "TotalRevenueSaved", 50.0, tot.TotalRevenueSaved)
	assertFloatNear(t, "TotalRevenueLost", 25.0, tot.TotalRevenueLost)
	assertFloatNear(t, "NetRevenue", 25.0, tot.NetRevenue)
	assertFloatNear(t, "AvgRevenuePerSave", 25.0, tot.AvgRevenuePerSave)
	assertFloatNear(t, "OverallAcceptanceRate", 50.0, tot.OverallAcceptanceRate)

	if len(r.OfferRevenue) != 2 || r.OfferRevenue[0].OfferType != "PAUSE" {
		t.Errorf("expected PAUSE to lead offer revenue, got %+v", r.OfferRevenue)
	}
}

func TestBuildReport_Partitions(t *testing.T) {
	r := BuildReport(scenarioSessions(t), scenarioWindow())

	flow2, err := r.Monthly.Buckets(PartitionFlow2)
	if err != nil {
		t.Fatalf("flow2: %v", err)
	}
	if len(flow2) != 1 || flow2[0].Period != "2024-02" || flow2[0].CanceledCount != 1 {
		t.Errorf("unexpected flow2 buckets: %+v", flow2)
	}

	pause, err := r.Monthly.Buckets(OfferPartition("PAUSE"))
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if len(pause) != 1 || pause[0].AcceptedCount != 1 {
		t.Errorf("unexpected PAUSE buckets: %+v", pause)
	}

	missing, err := r.Monthly.Buckets(OfferPartition("REBATE"))
	if err != nil || len(missing) != 0 {
		t.Errorf("expected empty buckets for unseen offer, got %v, %v", missing, err)
	}

	if _, err := r.Monthly.Buckets("bogus"); err == nil {
		t.Error("expected error for unknown partition")
	}
}

func TestBuildReport_EmptyInput(t *testing.T) {
	r := BuildReport(nil, scenarioWindow())

	if r.Totals.TotalSessions != 0 {
		t.Errorf("expected no sessions, got %d", r.Totals.TotalSessions)
	}
	if r.Flows.Flow1 != nil || r.Flows.Flow2 != nil {
		t.Errorf("expected no flows, got %+v", r.Flows)
	}
	for _, g := range []Granularity{Weekly, Monthly} {
		tables := r.Tables(g)
		if len(tables.Combined) != 0 || len(tables.Flow1) != 0 || len(tables.Flow2) != 0 || len(tables.Reactivation) != 0 {
			t.Errorf("%s: expected empty tables, got %+v", g, tables)
		}
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	monthly := decoded["monthly"].(map[string]any)
	if _, ok := monthly["combined"].([]any); !ok {
		t.Errorf("expected combined to encode as an empty array, got %v", monthly["combined"])
	}
}

func TestBuildReport_AllUndated(t *testing.T) {
	raws := []RawSession{
		{ID: "a", SaveType: strPtr("PAUSE"), Customer: &RawCustomer{PlanPrice: NewCents(500)}},
		{ID: "b", CreatedAt: ParseTimestamp("soon")},
	}
	r := BuildReport(raws, scenarioWindow())

	if r.Totals.ExcludedSessions != 2 {
		t.Errorf("expected 2 excluded, got %d", r.Totals.ExcludedSessions)
	}
	if r.Totals.TotalSessions != 2 || r.Totals.TotalAccepted != 1 {
		t.Errorf("expected totals to cover undated records, got %+v", r.Totals)
	}
	if len(r.Weekly.Combined) != 0 || len(r.Monthly.Combined) != 0 {
		t.Error("expected no period buckets for undated sessions")
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	raws := scenarioSessions(t)

	first, err := json.Marshal(BuildReport(raws, scenarioWindow()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(BuildReport(raws, scenarioWindow()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("expected identical output\nfirst:  %s\nsecond: %s", first, second)
	}
}
