package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallRecordDefaults(t *testing.T) {
	rec, err := NewCallRecord(CallInput{})
	require.NoError(t, err)

	assert.Equal(t, "", rec.Summary)
	assert.Equal(t, "", rec.Transcript)
	assert.Equal(t, "", rec.RecordingURL)
	assert.Equal(t, "", rec.EndedReason)
	assert.Equal(t, "", rec.CallerName)
	assert.Equal(t, "", rec.SuccessEvaluation)
	assert.Equal(t, "", rec.PhoneNumber)
	assert.Equal(t, 0.0, rec.Cost)
	assert.Nil(t, rec.StartedAt)
	assert.Nil(t, rec.EndedAt)
	assert.Nil(t, rec.DidRespond)
	assert.Empty(t, rec.ID)
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, 5*time.Second)
}

func TestNewCallRecordNilStringCoercion(t *testing.T) {
	// An explicit nil for a string field is "absent", never an error.
	rec, err := NewCallRecord(CallInput{
		Summary:     nil,
		PhoneNumber: nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "", rec.Summary)
	assert.Equal(t, "", rec.PhoneNumber)
}

func TestNewCallRecordFullInput(t *testing.T) {
	started := time.Date(2025, 7, 19, 0, 6, 31, 0, time.UTC)
	rec, err := NewCallRecord(CallInput{
		Summary:           "Customer asked about availability",
		Transcript:        "agent: hello\nuser: hi",
		RecordingURL:      "https://example.com/recording.mp3",
		StartedAt:         started,
		EndedAt:           "2025-07-19T00:08:15.432Z",
		EndedReason:       "customer-ended-call",
		CallerName:        "John Doe",
		SuccessEvaluation: "Good",
		Cost:              0.05,
		PhoneNumber:       "+12345678901",
	})
	require.NoError(t, err)

	assert.Equal(t, "Customer asked about availability", rec.Summary)
	require.NotNil(t, rec.StartedAt)
	assert.True(t, rec.StartedAt.Equal(started))
	require.NotNil(t, rec.EndedAt)
	assert.Equal(t, time.UTC, rec.EndedAt.Location())
	assert.Equal(t, 2025, rec.EndedAt.Year())
	assert.Equal(t, 0.05, rec.Cost)
}

func TestNewCallRecordTypeMismatches(t *testing.T) {
	_, err := NewCallRecord(CallInput{
		Summary:   42,
		StartedAt: "not-a-timestamp",
		Cost:      map[string]any{},
	})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, verr.Fields, 3)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Reason
	}
	assert.Contains(t, fields, "summary")
	assert.Contains(t, fields, "started_at")
	assert.Contains(t, fields, "cost")
}

func TestNewCallRecordCostCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		bad   bool
	}{
		{name: "float", value: 1.25, want: 1.25},
		{name: "int", value: 3, want: 3.0},
		{name: "numeric string", value: "0.05", want: 0.05},
		{name: "absent", value: nil, want: 0.0},
		{name: "garbage string", value: "free", bad: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewCallRecord(CallInput{Cost: tt.value})
			if tt.bad {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Cost)
		})
	}
}

func TestNewCallRecordAcceptsInvertedTimestamps(t *testing.T) {
	// ended_at < started_at is not rejected by the schema.
	rec, err := NewCallRecord(CallInput{
		StartedAt: "2025-07-19T01:00:00Z",
		EndedAt:   "2025-07-19T00:00:00Z",
	})
	require.NoError(t, err)
	assert.True(t, rec.EndedAt.Before(*rec.StartedAt))
}
