package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"cityglow-backend/internal/call/domain"
	"cityglow-backend/internal/call/normalizer"
	"cityglow-backend/internal/call/repository"
	"cityglow-backend/pkg/logger"
)

// ErrStoreUnavailable is returned when the call store failed to initialize
// at startup. Routes that do not touch the store keep working.
var ErrStoreUnavailable = errors.New("call store unavailable")

type callUsecase struct {
	callRepo   repository.CallRepository
	notifier   Notifier
	vapi       *normalizer.VapiNormalizer
	elevenlabs *normalizer.ElevenLabsNormalizer
}

// NewCallUsecase wires the ingestion pipeline. callRepo and notifier may be
// nil when their backing service failed to initialize (degraded mode).
func NewCallUsecase(callRepo repository.CallRepository, notifier Notifier, debugNumbers []string) CallUsecase {
	return &callUsecase{
		callRepo:   callRepo,
		notifier:   notifier,
		vapi:       normalizer.NewVapiNormalizer(),
		elevenlabs: normalizer.NewElevenLabsNormalizer(debugNumbers),
	}
}

func (u *callUsecase) IngestVapi(ctx context.Context, payload map[string]any) (*IngestResult, error) {
	return u.ingest(ctx, u.vapi, payload)
}

func (u *callUsecase) IngestElevenLabs(ctx context.Context, payload map[string]any) (*IngestResult, error) {
	return u.ingest(ctx, u.elevenlabs, payload)
}

// ingest runs normalize -> filter -> persist -> best-effort notify. Skipped
// events are acknowledged as success with no side effects; a notification
// failure never fails an ingestion whose persistence succeeded.
func (u *callUsecase) ingest(ctx context.Context, n normalizer.Normalizer, payload map[string]any) (*IngestResult, error) {
	res := n.Normalize(payload)
	if res.Record == nil {
		logger.Info("Webhook event skipped",
			zap.String("platform", n.Platform()),
			zap.String("reason", res.SkipReason))
		return &IngestResult{SkipReason: res.SkipReason}, nil
	}

	if u.callRepo == nil {
		return nil, ErrStoreUnavailable
	}

	id, err := u.callRepo.Add(ctx, res.Record)
	if err != nil {
		return nil, err
	}
	res.Record.ID = id
	logger.Info("Call persisted",
		zap.String("platform", n.Platform()),
		zap.String("id", id),
		zap.String("caller", res.Record.CallerName))

	if u.notifier != nil {
		if err := u.notifier.NotifyCall(ctx, res.Record); err != nil {
			logger.Error("Call notification failed",
				zap.String("id", id),
				zap.Error(err))
		}
	}

	return &IngestResult{Persisted: true, RecordID: id}, nil
}

func (u *callUsecase) ListCalls(ctx context.Context) ([]*domain.CallRecord, error) {
	if u.callRepo == nil {
		return nil, ErrStoreUnavailable
	}
	return u.callRepo.ListAll(ctx)
}

func (u *callUsecase) SetDidRespond(ctx context.Context, id string, didRespond bool) error {
	if u.callRepo == nil {
		return ErrStoreUnavailable
	}
	return u.callRepo.UpdateField(ctx, id, "did_respond", didRespond)
}
