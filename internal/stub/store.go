package stub

import (
	"sort"
	"strings"
	"sync"

	"verification-client/internal/requests"
)

// memoryStore keeps created requests for the lifetime of the process.
// Nothing is persisted; the double exists so the client can be
// exercised without the real service.
type memoryStore struct {
	mu    sync.RWMutex
	items map[string]requests.VerificationRequest
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string]requests.VerificationRequest)}
}

func (s *memoryStore) insert(r requests.VerificationRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.ID] = r
}

func (s *memoryStore) get(id string) (requests.VerificationRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	return r, ok
}

func (s *memoryStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *memoryStore) setStatus(id string, status requests.Status) (requests.VerificationRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return requests.VerificationRequest{}, false
	}
	r.Status = status
	s.items[id] = r
	return r, true
}

// list filters by case-insensitive name substring and exact status,
// newest first, matching the real service's behavior.
func (s *memoryStore) list(name string, status requests.Status) []requests.VerificationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]requests.VerificationRequest, 0, len(s.items))
	for _, r := range s.items {
		if name != "" && !strings.Contains(strings.ToLower(r.FullName), strings.ToLower(name)) {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
