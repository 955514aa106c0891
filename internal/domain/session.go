package domain

import "time"

// SaveTypeAbandon marks a session where the offer flow was shown but nothing was accepted.
const SaveTypeAbandon = "ABANDON"

// DefaultBillingInterval is used when a customer record carries no interval.
const DefaultBillingInterval = "MONTH"

// RawSession is one retention session as delivered by the upstream data API.
// Every field that the API may omit is a pointer; defaults are resolved by Classify.
type RawSession struct {
	ID                string       `json:"id"`
	CreatedAt         Timestamp    `json:"createdAt"`
	SaveType          *string      `json:"saveType"`
	Canceled          *bool        `json:"canceled"`
	BlueprintID       *string      `json:"blueprintId"`
	Customer          *RawCustomer `json:"customer"`
	SurveyChoiceValue *string      `json:"surveyChoiceValue"`
}

// RawCustomer is the nested customer object of a RawSession.
type RawCustomer struct {
	ID              *string `json:"id"`
	PlanPrice       Cents   `json:"planPrice"`
	BillingInterval *string `json:"billingInterval"`
}

// Flow identifies which of the two most used cancel flows a session ran through.
type Flow int

const (
	FlowOther Flow = iota
	Flow1
	Flow2
)

func (f Flow) String() string {
	switch f {
	case Flow1:
		return "Flow 1"
	case Flow2:
		return "Flow 2"
	default:
		return "Other"
	}
}

// MarshalText renders the flow name in JSON/CSV output.
func (f Flow) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ClassifiedSession is the typed, defaulted form of a RawSession.
// It is built once per run and never mutated afterwards.
type ClassifiedSession struct {
	ID                 string
	CreatedAt          time.Time // zero when the raw timestamp was missing or invalid
	Dated              bool
	SaveType           string
	Canceled           bool
	BlueprintID        string
	CustomerID         string
	PlanPriceCents     int64
	BillingInterval    string
	SurveyChoiceValue  string
	Accepted           bool
	OfferType          string // set only when Accepted
	CancellationReason string // set only when Canceled
	WeekLabel          string
	MonthLabel         string
	Flow               Flow

	// Seq is the position of the record in the input sequence.
	Seq int
}

// RevenueDollars is the plan price converted from cents.
func (s ClassifiedSession) RevenueDollars() float64 {
	return CentsToDollars(s.PlanPriceCents)
}

// Label returns the period label for the given granularity, or "" when undated.
func (s ClassifiedSession) Label(g Granularity) string {
	if g == Monthly {
		return s.MonthLabel
	}
	return s.WeekLabel
}

// CentsToDollars converts an integer amount of cents to dollars.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100
}
