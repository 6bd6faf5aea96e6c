package runner

import (
	"sync"
	"time"

	"github.com/assocweb/ingest/pkg/domain"
)

// statusTable keeps the last known run of every registered scraper.
// Entries are created idle on registration and never removed; readers get copies.
type statusTable struct {
	mu      sync.RWMutex
	entries map[string]*domain.ScraperStatus
}

func newStatusTable() *statusTable {
	return &statusTable{entries: map[string]*domain.ScraperStatus{}}
}

func (t *statusTable) add(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[name]; ok {
		return
	}
	t.entries[name] = &domain.ScraperStatus{Name: name, State: domain.StateIdle}
}

// begin moves the entry to running, fails with ErrAlreadyRunning if it is running already
func (t *statusTable) begin(name string, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.entries[name]
	if !ok {
		return ErrUnknownScraper
	}
	if st.State == domain.StateRunning {
		return ErrAlreadyRunning
	}
	st.State = domain.StateRunning
	st.LastRun = &now
	st.Count = 0
	st.Message = ""
	return nil
}

// finish records the outcome of a run started with begin
func (t *statusTable) finish(name string, res domain.ScrapeResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.entries[name]
	if !ok {
		return
	}
	if res.Success {
		st.State = domain.StateSuccess
		st.Count = res.Count
		st.Message = res.Message
		return
	}
	st.State = domain.StateError
	st.Count = 0
	st.Message = res.Error
	if st.Message == "" {
		st.Message = res.Message
	}
}

func (t *statusTable) get(name string) (domain.ScraperStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.entries[name]
	if !ok {
		return domain.ScraperStatus{}, false
	}
	return copyStatus(st), true
}

func (t *statusTable) snapshot() map[string]domain.ScraperStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	res := make(map[string]domain.ScraperStatus, len(t.entries))
	for name, st := range t.entries {
		res[name] = copyStatus(st)
	}
	return res
}

func copyStatus(st *domain.ScraperStatus) domain.ScraperStatus {
	c := *st
	if st.LastRun != nil {
		lr := *st.LastRun
		c.LastRun = &lr
	}
	return c
}
