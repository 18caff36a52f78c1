package store

import (
	"sync"
	"time"

	"sentra/phishing-api/internal/domain"
)

// Memory is a thread-safe in-memory Store.
//
// The status index gives O(1) lookups for the report and list endpoints while
// time-range filtering stays a linear scan over a typically small slice.
type Memory struct {
	mu sync.RWMutex

	analyses map[string]*domain.Analysis
	webhooks map[string]*domain.WebhookConfig

	// Secondary index: status → slice of analysis IDs.
	// Maintained on every write so reads stay fast.
	byStatus map[string][]string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty, ready-to-use in-memory store.
func NewMemory() *Memory {
	return &Memory{
		analyses: make(map[string]*domain.Analysis),
		webhooks: make(map[string]*domain.WebhookConfig),
		byStatus: make(map[string][]string),
	}
}

// ─── Analyses ─────────────────────────────────────────────────────────────────

// SaveAnalysis persists an analysis and updates the status index.
// Returns ErrDuplicateAnalysis if the ID already exists.
func (s *Memory) SaveAnalysis(a *domain.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.analyses[a.ID]; exists {
		return ErrDuplicateAnalysis
	}

	s.analyses[a.ID] = a
	s.byStatus[a.Status] = append(s.byStatus[a.Status], a.ID)
	return nil
}

// GetAnalysis retrieves a single analysis by ID.
func (s *Memory) GetAnalysis(id string) (*domain.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	return a, ok
}

// ListAnalyses returns every analysis processed at or after `since`.
func (s *Memory) ListAnalyses(since time.Time) ([]*domain.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Analysis
	for _, a := range s.analyses {
		if !a.ProcessedAt.Before(since) {
			result = append(result, a)
		}
	}
	return result, nil
}

// ListAnalysesByStatus returns analyses with the given status processed at or
// after `since`.
func (s *Memory) ListAnalysesByStatus(status string, since time.Time) ([]*domain.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Analysis
	for _, id := range s.byStatus[status] {
		a, ok := s.analyses[id]
		if ok && !a.ProcessedAt.Before(since) {
			result = append(result, a)
		}
	}
	return result, nil
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// SaveWebhook persists a webhook configuration.
func (s *Memory) SaveWebhook(wh *domain.WebhookConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks[wh.ID] = wh
	return nil
}

// DeleteWebhook removes a webhook by ID. Returns false if not found.
func (s *Memory) DeleteWebhook(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.webhooks[id]
	if exists {
		delete(s.webhooks, id)
	}
	return exists, nil
}

// ListActiveWebhooks returns all webhooks that are currently active.
func (s *Memory) ListActiveWebhooks() ([]*domain.WebhookConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.WebhookConfig
	for _, wh := range s.webhooks {
		if wh.Active {
			result = append(result, wh)
		}
	}
	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *Memory) Close() error { return nil }
