package forms

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory DraftStore used in tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: map[string]Draft{}}
}

func (s *MemoryStore) Save(_ context.Context, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := draft
	copied.Fields = make(map[string]string, len(draft.Fields))
	for k, v := range draft.Fields {
		copied.Fields[k] = v
	}
	s.drafts[draftKey(draft.OwnerID, draft.EntityType)] = copied
	return nil
}

func (s *MemoryStore) Load(_ context.Context, ownerID int64, entityType EntityType) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[draftKey(ownerID, entityType)]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	copied := draft
	copied.Fields = make(map[string]string, len(draft.Fields))
	for k, v := range draft.Fields {
		copied.Fields[k] = v
	}
	return copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID int64, entityType EntityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(ownerID, entityType))
	return nil
}
