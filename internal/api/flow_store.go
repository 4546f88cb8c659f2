package api

import (
	"sync"
	"time"

	"importdesk/internal/importer"
)

// flowTTL is how long an idle flow session survives. Each access
// renews the deadline, so an operator filling in a form at human speed
// never loses the draft.
const flowTTL = 2 * time.Hour

type flowEntry struct {
	flow      *importer.Flow
	expiresAt time.Time
}

// flowStore keeps the open creation flows keyed by their session id.
type flowStore struct {
	mu    sync.Mutex
	items map[string]flowEntry
}

func newFlowStore() *flowStore {
	return &flowStore{
		items: make(map[string]flowEntry),
	}
}

func (s *flowStore) put(f *importer.Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())
	s.items[f.ID] = flowEntry{flow: f, expiresAt: time.Now().Add(flowTTL)}
}

func (s *flowStore) get(id string) (*importer.Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, id)
		return nil, false
	}
	v.expiresAt = time.Now().Add(flowTTL)
	s.items[id] = v
	return v.flow, true
}

func (s *flowStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

func (s *flowStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
