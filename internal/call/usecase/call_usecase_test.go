package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cityglow-backend/internal/call/domain"
	"cityglow-backend/internal/call/repository"
)

type fakeRepo struct {
	added   []*domain.CallRecord
	addErr  error
	records map[string]*domain.CallRecord
	updates []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*domain.CallRecord{}}
}

func (f *fakeRepo) Add(_ context.Context, record *domain.CallRecord) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.added = append(f.added, record)
	id := fmt.Sprintf("doc-%d", len(f.added))
	f.records[id] = record
	return id, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]*domain.CallRecord, error) {
	out := make([]*domain.CallRecord, 0, len(f.added))
	out = append(out, f.added...)
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.CallRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRepo) UpdateField(_ context.Context, id, field string, value any) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	f.updates = append(f.updates, fmt.Sprintf("%s.%s=%v", id, field, value))
	return nil
}

type fakeNotifier struct {
	calls []*domain.CallRecord
	err   error
}

func (f *fakeNotifier) NotifyCall(_ context.Context, call *domain.CallRecord) error {
	f.calls = append(f.calls, call)
	return f.err
}

func elevenLabsEvent(t *testing.T, number string) map[string]any {
	t.Helper()
	raw := fmt.Sprintf(`{
		"data": {
			"conversation_id": "conv_1",
			"transcript": [{"role": "user", "message": "hi"}],
			"analysis": {
				"transcript_summary": "short call",
				"call_successful": "success",
				"data_collection_results": {"name": {"value": "Ann"}}
			},
			"metadata": {
				"start_time_unix_secs": 1752883200,
				"call_duration_secs": 40,
				"termination_reason": "done",
				"cost": 12,
				"phone_call": {"external_number": "%s"}
			}
		}
	}`, number)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestIngestElevenLabsPersistsAndNotifiesOnce(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := NewCallUsecase(repo, notifier, []string{"+15550000000"})

	res, err := uc.IngestElevenLabs(context.Background(), elevenLabsEvent(t, "+12125550123"))
	require.NoError(t, err)

	assert.True(t, res.Persisted)
	assert.Equal(t, "doc-1", res.RecordID)
	require.Len(t, repo.added, 1)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "doc-1", notifier.calls[0].ID)
}

func TestIngestElevenLabsDebugNumberSkips(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := NewCallUsecase(repo, notifier, []string{"+15550000000"})

	res, err := uc.IngestElevenLabs(context.Background(), elevenLabsEvent(t, "+15550000000"))
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Contains(t, res.SkipReason, "debug number")
	assert.Empty(t, repo.added)
	assert.Empty(t, notifier.calls)
}

func TestIngestVapiIgnoredTypeSkips(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCallUsecase(repo, nil, nil)

	res, err := uc.IngestVapi(context.Background(), map[string]any{
		"message": map[string]any{"type": "speech-update"},
	})
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Empty(t, repo.added)
}

func TestIngestNotificationFailureIsSwallowed(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	uc := NewCallUsecase(repo, notifier, nil)

	res, err := uc.IngestElevenLabs(context.Background(), elevenLabsEvent(t, "+12125550123"))
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	require.Len(t, repo.added, 1)
}

func TestIngestPersistFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.addErr = errors.New("firestore unavailable")
	notifier := &fakeNotifier{}
	uc := NewCallUsecase(repo, notifier, nil)

	_, err := uc.IngestElevenLabs(context.Background(), elevenLabsEvent(t, "+12125550123"))
	require.Error(t, err)
	assert.Empty(t, notifier.calls)
}

func TestIngestWithoutStoreFails(t *testing.T) {
	uc := NewCallUsecase(nil, nil, nil)

	_, err := uc.IngestElevenLabs(context.Background(), elevenLabsEvent(t, "+12125550123"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	// Skipped events never touch the store and still succeed.
	res, err := uc.IngestVapi(context.Background(), map[string]any{
		"message": map[string]any{"type": "status-update"},
	})
	require.NoError(t, err)
	assert.False(t, res.Persisted)
}

func TestSetDidRespond(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCallUsecase(repo, nil, nil)

	_, err := uc.IngestElevenLabs(context.Background(), elevenLabsEvent(t, "+12125550123"))
	require.NoError(t, err)

	require.NoError(t, uc.SetDidRespond(context.Background(), "doc-1", true))
	assert.Equal(t, []string{"doc-1.did_respond=true"}, repo.updates)

	err = uc.SetDidRespond(context.Background(), "missing", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, repo.updates, 1)
}
