package server

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	flashCookie = "flash"
	flashTTL    = time.Minute
)

// flash carries the outcome of a form trigger to the page shown after the
// redirect. It is read once.
type flash struct {
	Alerts            []string
	Confirm           string
	ConfirmAction     string
	ConfirmTimestamps []string
	Navigate          string

	expires time.Time
}

func (f flash) empty() bool {
	return len(f.Alerts) == 0 && f.Confirm == "" && f.Navigate == ""
}

type flashStore struct {
	mu    sync.Mutex
	items map[string]flash
}

func newFlashStore() *flashStore {
	return &flashStore{items: map[string]flash{}}
}

// put stores f until now+flashTTL and returns its id. Expired entries are
// dropped on the way.
func (s *flashStore) put(f flash, now time.Time) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	f.expires = now.Add(flashTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.items {
		if now.After(v.expires) {
			delete(s.items, k)
		}
	}
	s.items[id] = f
	return id
}

func (s *flashStore) take(id string, now time.Time) (flash, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.items[id]
	if !ok {
		return flash{}, false
	}
	delete(s.items, id)
	if now.After(f.expires) {
		return flash{}, false
	}
	return f, true
}
