package domain

// Classify resolves defaults and derived fields for one raw session.
// The flow assignment needs the whole input set and is left as FlowOther here;
// see AssignFlows.
func Classify(raw RawSession, seq int) ClassifiedSession {
	s := ClassifiedSession{
		ID:              raw.ID,
		SaveType:        optString(raw.SaveType),
		BlueprintID:     optString(raw.BlueprintID),
		BillingInterval: DefaultBillingInterval,
		Seq:             seq,
	}
	if raw.Canceled != nil {
		s.Canceled = *raw.Canceled
	}
	if c := raw.Customer; c != nil {
		s.CustomerID = optString(c.ID)
		if c.PlanPrice.Valid {
			s.PlanPriceCents = c.PlanPrice.Value
		}
		if bi := optString(c.BillingInterval); bi != "" {
			s.BillingInterval = bi
		}
	}
	s.SurveyChoiceValue = optString(raw.SurveyChoiceValue)

	s.Accepted = IsAccepted(s.SaveType)
	if s.Accepted {
		s.OfferType = s.SaveType
	}
	if s.Canceled {
		s.CancellationReason = s.SurveyChoiceValue
	}

	if raw.CreatedAt.Valid {
		s.CreatedAt = raw.CreatedAt.Time
		s.Dated = true
		s.WeekLabel = WeekLabel(s.CreatedAt)
		s.MonthLabel = MonthLabel(s.CreatedAt)
	}
	return s
}

// IsAccepted reports whether a save type denotes an accepted offer.
func IsAccepted(saveType string) bool {
	return saveType != "" && saveType != SaveTypeAbandon
}

// ClassifyAll classifies every raw session in input order and reports how many
// records could not be dated.
func ClassifyAll(raws []RawSession) ([]ClassifiedSession, int) {
	out := make([]ClassifiedSession, 0, len(raws))
	undated := 0
	for i, r := range raws {
		s := Classify(r, i)
		if !s.Dated {
			undated++
		}
		out = append(out, s)
	}
	return out, undated
}

func optString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
