package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CallRecord is the canonical call entity persisted to Firestore. String
// fields are never null once constructed; DidRespond stays absent until an
// operator sets it.
type CallRecord struct {
	ID                string     `json:"id,omitempty" firestore:"-"`
	Summary           string     `json:"summary" firestore:"summary"`
	Transcript        string     `json:"transcript" firestore:"transcript"`
	RecordingURL      string     `json:"recording_url" firestore:"recording_url"`
	StartedAt         *time.Time `json:"started_at,omitempty" firestore:"started_at"`
	EndedAt           *time.Time `json:"ended_at,omitempty" firestore:"ended_at"`
	EndedReason       string     `json:"ended_reason" firestore:"ended_reason"`
	CallerName        string     `json:"caller_name" firestore:"caller_name"`
	SuccessEvaluation string     `json:"success_evaluation" firestore:"success_evaluation"`
	CreatedAt         time.Time  `json:"created_at" firestore:"created_at"`
	Cost              float64    `json:"cost" firestore:"cost"`
	PhoneNumber       string     `json:"phone_number" firestore:"phone_number"`
	DidRespond        *bool      `json:"did_respond,omitempty" firestore:"did_respond,omitempty"`
}

// CallInput carries loosely-typed values extracted from a webhook payload.
// Fields may be nil (absent), the expected Go type, or a string form that
// can be coerced (RFC 3339 timestamps, numeric cost).
type CallInput struct {
	Summary           any
	Transcript        any
	RecordingURL      any
	StartedAt         any
	EndedAt           any
	EndedReason       any
	CallerName        any
	SuccessEvaluation any
	Cost              any
	PhoneNumber       any
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates all field-level failures of one construction
// attempt. Invalid fields are reported, never silently dropped.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid call data"
	}
	msg := "invalid call data:"
	for _, f := range e.Fields {
		msg += fmt.Sprintf(" %s (%s);", f.Field, f.Reason)
	}
	return msg
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// NewCallRecord builds a validated CallRecord from loose input. Absent
// optional values default to "" / 0.0; a nil supplied for a string field is
// treated as absent rather than rejected. CreatedAt is always assigned here
// and ID only once the record has been persisted.
func NewCallRecord(in CallInput) (*CallRecord, error) {
	verr := &ValidationError{}

	rec := &CallRecord{
		Summary:           stringField(verr, "summary", in.Summary),
		Transcript:        stringField(verr, "transcript", in.Transcript),
		RecordingURL:      stringField(verr, "recording_url", in.RecordingURL),
		StartedAt:         timeField(verr, "started_at", in.StartedAt),
		EndedAt:           timeField(verr, "ended_at", in.EndedAt),
		EndedReason:       stringField(verr, "ended_reason", in.EndedReason),
		CallerName:        stringField(verr, "caller_name", in.CallerName),
		SuccessEvaluation: stringField(verr, "success_evaluation", in.SuccessEvaluation),
		CreatedAt:         time.Now().UTC(),
		Cost:              costField(verr, "cost", in.Cost),
		PhoneNumber:       stringField(verr, "phone_number", in.PhoneNumber),
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return rec, nil
}

func stringField(verr *ValidationError, field string, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		verr.add(field, fmt.Sprintf("expected string, got %T", value))
		return ""
	}
}

func timeField(verr *ValidationError, field string, value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		utc := v.UTC()
		return &utc
	case *time.Time:
		if v == nil {
			return nil
		}
		utc := v.UTC()
		return &utc
	case string:
		// RFC 3339 with "Z" read as UTC; fractional seconds accepted.
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			verr.add(field, fmt.Sprintf("malformed timestamp %q", v))
			return nil
		}
		utc := parsed.UTC()
		return &utc
	default:
		verr.add(field, fmt.Sprintf("expected timestamp, got %T", value))
		return nil
	}
}

func costField(verr *ValidationError, field string, value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0.0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			verr.add(field, fmt.Sprintf("non-numeric value %q", v.String()))
			return 0.0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			verr.add(field, fmt.Sprintf("non-numeric value %q", v))
			return 0.0
		}
		return f
	default:
		verr.add(field, fmt.Sprintf("expected number, got %T", value))
		return 0.0
	}
}
