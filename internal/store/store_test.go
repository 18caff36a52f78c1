package store_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/store"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

var now = time.Now().UTC()

func newAnalysis(id, status string, score int, ts time.Time) *domain.Analysis {
	return &domain.Analysis{
		ID: id,
		AnalysisRequest: domain.AnalysisRequest{
			Text: "sample message",
			URL:  "https://example.com",
		},
		Result: domain.Result{
			Status:      status,
			RiskScore:   score,
			RawScore:    score,
			Indicators:  []string{"Sense of Urgency"},
			Signals:     []domain.Signal{{Name: "keyword_match", Description: "x", ScoreDelta: 15}},
			Explanation: "Risk Score: test.",
		},
		ProcessedAt: ts,
	}
}

// eachStore runs a subtest against a fresh instance of every backend.
func eachStore(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		s := store.NewMemory()
		defer s.Close()
		fn(t, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		s, err := store.NewSQLite(filepath.Join(t.TempDir(), "analyses.db"))
		if err != nil {
			t.Fatalf("open sqlite store: %v", err)
		}
		defer s.Close()
		fn(t, s)
	})
}

// ─── SaveAnalysis / GetAnalysis ───────────────────────────────────────────────

func TestSave_And_GetByID(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		a := newAnalysis("an-001", domain.StatusSuspicious, 40, now)
		if err := s.SaveAnalysis(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, ok := s.GetAnalysis("an-001")
		if !ok {
			t.Fatal("expected to find an-001")
		}
		if got.Status != domain.StatusSuspicious || got.RiskScore != 40 {
			t.Errorf("unexpected record: %+v", got)
		}
		if len(got.Indicators) != 1 || got.Indicators[0] != "Sense of Urgency" {
			t.Errorf("indicators not round-tripped: %v", got.Indicators)
		}
		if len(got.Signals) != 1 || got.Signals[0].ScoreDelta != 15 {
			t.Errorf("signals not round-tripped: %v", got.Signals)
		}
	})
}

func TestSave_DuplicateID_ReturnsError(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		a := newAnalysis("dup-001", domain.StatusSafe, 0, now)
		_ = s.SaveAnalysis(a)
		if err := s.SaveAnalysis(a); err != store.ErrDuplicateAnalysis {
			t.Errorf("expected ErrDuplicateAnalysis, got %v", err)
		}
	})
}

func TestGet_MissingID_ReturnsFalse(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		if _, ok := s.GetAnalysis("nonexistent"); ok {
			t.Error("expected ok=false for missing analysis")
		}
	})
}

// ─── Time-windowed lookups ────────────────────────────────────────────────────

func TestListAnalyses_FiltersByTime(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		_ = s.SaveAnalysis(newAnalysis("in-1", domain.StatusSafe, 0, now.Add(-30*time.Minute)))
		_ = s.SaveAnalysis(newAnalysis("out-1", domain.StatusSafe, 0, now.Add(-2*time.Hour)))
		_ = s.SaveAnalysis(newAnalysis("in-2", domain.StatusDangerous, 90, now.Add(-10*time.Minute)))

		result, err := s.ListAnalyses(now.Add(-1 * time.Hour))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(result) != 2 {
			t.Errorf("expected 2 analyses within window, got %d", len(result))
		}
	})
}

func TestListByStatus_ReturnsOnlyMatching(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		_ = s.SaveAnalysis(newAnalysis("d-1", domain.StatusDangerous, 95, now.Add(-5*time.Minute)))
		_ = s.SaveAnalysis(newAnalysis("s-1", domain.StatusSafe, 0, now.Add(-5*time.Minute)))
		_ = s.SaveAnalysis(newAnalysis("d-old", domain.StatusDangerous, 80, now.Add(-3*time.Hour)))

		result, err := s.ListAnalysesByStatus(domain.StatusDangerous, now.Add(-1*time.Hour))
		if err != nil {
			t.Fatalf("list by status: %v", err)
		}
		if len(result) != 1 {
			t.Fatalf("expected 1 dangerous analysis in window, got %d", len(result))
		}
		if result[0].ID != "d-1" {
			t.Errorf("expected d-1, got %s", result[0].ID)
		}
	})
}

func TestListByStatus_EmptyWhenNoHistory(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		result, err := s.ListAnalysesByStatus(domain.StatusSuspicious, now.Add(-24*time.Hour))
		if err != nil {
			t.Fatalf("list by status: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d", len(result))
		}
	})
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

func TestWebhook_SaveAndList(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		_ = s.SaveWebhook(&domain.WebhookConfig{
			ID: "wh-1", URL: "http://a.com", Trigger: domain.StatusDangerous,
			CreatedAt: now, Active: true,
		})
		_ = s.SaveWebhook(&domain.WebhookConfig{
			ID: "wh-2", URL: "http://b.com", Trigger: domain.StatusSuspicious,
			CreatedAt: now, Active: false,
		})

		hooks, err := s.ListActiveWebhooks()
		if err != nil {
			t.Fatalf("list webhooks: %v", err)
		}
		if len(hooks) != 1 {
			t.Fatalf("expected 1 active webhook, got %d", len(hooks))
		}
		if hooks[0].ID != "wh-1" {
			t.Errorf("expected wh-1, got %s", hooks[0].ID)
		}
	})
}

func TestWebhook_Delete(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		_ = s.SaveWebhook(&domain.WebhookConfig{ID: "wh-del", URL: "http://x.com", CreatedAt: now, Active: true})

		ok, err := s.DeleteWebhook("wh-del")
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if !ok {
			t.Fatal("expected delete to return true")
		}

		hooks, _ := s.ListActiveWebhooks()
		if len(hooks) != 0 {
			t.Error("expected no webhooks after delete")
		}
	})
}

func TestWebhook_DeleteMissing_ReturnsFalse(t *testing.T) {
	eachStore(t, func(t *testing.T, s store.Store) {
		ok, err := s.DeleteWebhook("ghost")
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if ok {
			t.Error("deleting missing webhook should return false")
		}
	})
}

// ─── Concurrency (race detector) ─────────────────────────────────────────────

func TestMemory_ConcurrentWrites_NoRace(t *testing.T) {
	s := store.NewMemory()
	done := make(chan struct{})

	for i := 0; i < 20; i++ {
		go func(n int) {
			a := newAnalysis(fmt.Sprintf("conc-%02d", n), domain.StatusSafe, 0, now)
			_ = s.SaveAnalysis(a)
			done <- struct{}{}
		}(i)
	}

	for i := 0; i < 20; i++ {
		<-done
	}

	result, _ := s.ListAnalyses(now.Add(-time.Minute))
	if len(result) != 20 {
		t.Errorf("expected 20 stored analyses, got %d", len(result))
	}
}
