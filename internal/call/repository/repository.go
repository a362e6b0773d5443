package repository

import (
	"context"
	"errors"

	"cityglow-backend/internal/call/domain"
)

// ErrNotFound is returned when a call id does not exist in the store.
var ErrNotFound = errors.New("call not found")

// CallRepository defines the interface for call data access
type CallRepository interface {
	// Add persists a new record and returns the store-assigned id
	Add(ctx context.Context, record *domain.CallRecord) (string, error)

	// ListAll returns every stored record in store-native order, with the
	// document id injected into each record
	ListAll(ctx context.Context) ([]*domain.CallRecord, error)

	// GetByID finds one record; ErrNotFound when the id is unknown
	GetByID(ctx context.Context, id string) (*domain.CallRecord, error)

	// UpdateField sets a single field on an existing record; ErrNotFound
	// when the id is unknown
	UpdateField(ctx context.Context, id, field string, value any) error
}
