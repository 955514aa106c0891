package domain

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// DecodeRawSessions decodes a JSON array of sessions. The payload itself must be an
// array of objects; anything else wraps ErrInvalidPayload. Inside a record, fields with
// an unexpected type are dropped rather than failing the whole payload.
func DecodeRawSessions(data []byte) ([]RawSession, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrInvalidPayload
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	out := make([]RawSession, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidPayload, i)
		}
		var r RawSession
		if err := json.Unmarshal(item, &r); err != nil {
			r, err = decodeLoose(item)
			if err != nil {
				return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidPayload, i, err)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// decodeLoose decodes a record field by field, keeping only fields that decode cleanly.
func decodeLoose(item []byte) (RawSession, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil {
		return RawSession{}, err
	}

	var r RawSession
	looseField(obj, "id", &r.ID)
	looseField(obj, "createdAt", &r.CreatedAt)
	looseField(obj, "saveType", &r.SaveType)
	looseField(obj, "canceled", &r.Canceled)
	looseField(obj, "blueprintId", &r.BlueprintID)
	looseField(obj, "surveyChoiceValue", &r.SurveyChoiceValue)

	if raw, ok := obj["customer"]; ok {
		var cust map[string]json.RawMessage
		if json.Unmarshal(raw, &cust) == nil && cust != nil {
			c := &RawCustomer{}
			looseField(cust, "id", &c.ID)
			looseField(cust, "planPrice", &c.PlanPrice)
			looseField(cust, "billingInterval", &c.BillingInterval)
			r.Customer = c
		}
	}
	return r, nil
}

func looseField(obj map[string]json.RawMessage, key string, dst any) {
	raw, ok := obj[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst)
}
