package forms

import (
	"context"
	"errors"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftStore persists drafts between dialogue turns.
type DraftStore interface {
	Save(ctx context.Context, draft Draft) error
	Load(ctx context.Context, ownerID int64, entityType EntityType) (Draft, error)
	Delete(ctx context.Context, ownerID int64, entityType EntityType) error
}
