package usecase

import (
	"context"

	"cityglow-backend/internal/call/domain"
)

// IngestResult reports what one webhook event produced.
type IngestResult struct {
	Persisted  bool
	RecordID   string
	SkipReason string
}

// Notifier delivers a best-effort summary of a persisted call. Failures are
// logged by the pipeline and never affect the webhook response.
type Notifier interface {
	NotifyCall(ctx context.Context, call *domain.CallRecord) error
}

// CallUsecase defines the interface for call use cases
type CallUsecase interface {
	// IngestVapi processes one decoded Vapi webhook payload
	IngestVapi(ctx context.Context, payload map[string]any) (*IngestResult, error)

	// IngestElevenLabs processes one decoded ElevenLabs webhook payload
	IngestElevenLabs(ctx context.Context, payload map[string]any) (*IngestResult, error)

	// ListCalls returns all stored records with ids
	ListCalls(ctx context.Context) ([]*domain.CallRecord, error)

	// SetDidRespond updates the operator flag on one call
	SetDidRespond(ctx context.Context, id string, didRespond bool) error
}
