// Package store provides storage for analyzed messages and webhook
// registrations.
//
// Two implementations share the Store interface: a thread-safe in-memory
// store suited to demo loads, and a SQLite-backed store for deployments that
// need history to survive restarts. The scoring engine never touches storage;
// only the HTTP layer reads and writes here.
package store

import (
	"errors"
	"time"

	"sentra/phishing-api/internal/domain"
)

// ErrDuplicateAnalysis is returned when an analysis ID is saved twice.
var ErrDuplicateAnalysis = errors.New("analysis already exists")

// Store is the persistence contract shared by the memory and SQLite backends.
type Store interface {
	// SaveAnalysis persists an analysis record.
	// Returns ErrDuplicateAnalysis if the ID already exists.
	SaveAnalysis(a *domain.Analysis) error

	// GetAnalysis retrieves a single analysis by ID.
	GetAnalysis(id string) (*domain.Analysis, bool)

	// ListAnalyses returns every analysis processed at or after `since`,
	// in arbitrary order.
	ListAnalyses(since time.Time) ([]*domain.Analysis, error)

	// ListAnalysesByStatus returns analyses with the given status processed
	// at or after `since`.
	ListAnalysesByStatus(status string, since time.Time) ([]*domain.Analysis, error)

	// SaveWebhook persists a webhook configuration.
	SaveWebhook(wh *domain.WebhookConfig) error

	// DeleteWebhook removes a webhook by ID. Returns false if not found.
	DeleteWebhook(id string) (bool, error)

	// ListActiveWebhooks returns all webhooks that are currently active.
	ListActiveWebhooks() ([]*domain.WebhookConfig, error)

	// Close releases any resources held by the store.
	Close() error
}
