package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cityglow-backend/internal/call/domain"
)

// firestoreCallRepository implements CallRepository on a Firestore collection
type firestoreCallRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreCallRepository creates a Firestore-backed CallRepository
func NewFirestoreCallRepository(client *firestore.Client, collection string) CallRepository {
	return &firestoreCallRepository{client: client, collection: collection}
}

func (r *firestoreCallRepository) calls() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

func (r *firestoreCallRepository) Add(ctx context.Context, record *domain.CallRecord) (string, error) {
	docRef, _, err := r.calls().Add(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to add call document: %w", err)
	}
	return docRef.ID, nil
}

func (r *firestoreCallRepository) ListAll(ctx context.Context) ([]*domain.CallRecord, error) {
	calls := []*domain.CallRecord{}

	iter := r.calls().Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stream call documents: %w", err)
		}

		var rec domain.CallRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode call document %s: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		calls = append(calls, &rec)
	}

	return calls, nil
}

func (r *firestoreCallRepository) GetByID(ctx context.Context, id string) (*domain.CallRecord, error) {
	doc, err := r.calls().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get call document: %w", err)
	}

	var rec domain.CallRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode call document %s: %w", id, err)
	}
	rec.ID = doc.Ref.ID
	return &rec, nil
}

func (r *firestoreCallRepository) UpdateField(ctx context.Context, id, field string, value any) error {
	// Firestore accepts updates against missing documents in some paths, so
	// the existence check has to happen first.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	_, err := r.calls().Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update call document: %w", err)
	}
	return nil
}
