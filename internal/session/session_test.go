package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/session"
)

func TestSession_FullFlow(t *testing.T) {
	s := session.New(0)

	if got := s.State(); got != session.StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if _, ok := s.Result(); ok {
		t.Error("idle session should have no result")
	}

	if err := s.SetInput("urgent: verify your account", ""); err != nil {
		t.Fatalf("set input: %v", err)
	}

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := s.State(); got != session.StateResult {
		t.Fatalf("expected result state, got %s", got)
	}
	if res.Status == domain.StatusSafe {
		t.Errorf("expected non-safe status, got %s", res.Status)
	}

	stored, ok := s.Result()
	if !ok {
		t.Fatal("expected a stored result")
	}
	if stored.RiskScore != res.RiskScore {
		t.Errorf("stored result diverges: %d vs %d", stored.RiskScore, res.RiskScore)
	}
}

func TestSession_SubmitWhileBusy(t *testing.T) {
	s := session.New(0)
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	if _, err := s.Submit(context.Background()); !errors.Is(err, session.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	if err := s.SetInput("x", ""); !errors.Is(err, session.ErrBusy) {
		t.Errorf("expected ErrBusy from SetInput, got %v", err)
	}
}

func TestSession_CancelDuringDelay_ReturnsToIdle(t *testing.T) {
	s := session.New(5 * time.Second)
	if err := s.SetInput("urgent", ""); err != nil {
		t.Fatalf("set input: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx)
		done <- err
	}()

	// Let Submit reach the delay before cancelling.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return after cancel")
	}

	if got := s.State(); got != session.StateIdle {
		t.Errorf("expected idle after cancel, got %s", got)
	}
	if _, ok := s.Result(); ok {
		t.Error("cancelled session should have no result")
	}
}

func TestSession_DelayElapses(t *testing.T) {
	s := session.New(30 * time.Millisecond)
	start := time.Now()
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("submit returned before delay elapsed: %v", elapsed)
	}
	if got := s.State(); got != session.StateResult {
		t.Errorf("expected result state, got %s", got)
	}
}

func TestSession_Reset(t *testing.T) {
	s := session.New(0)
	if err := s.SetInput("urgent", ""); err != nil {
		t.Fatalf("set input: %v", err)
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	s.Reset()
	if got := s.State(); got != session.StateIdle {
		t.Errorf("expected idle after reset, got %s", got)
	}
	if _, ok := s.Result(); ok {
		t.Error("reset session should have no result")
	}

	// A fresh submission works after reset.
	if err := s.SetInput("hi mom", ""); err != nil {
		t.Fatalf("set input after reset: %v", err)
	}
	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit after reset: %v", err)
	}
	if res.Status != domain.StatusSafe {
		t.Errorf("expected safe, got %s", res.Status)
	}
}

func TestSession_ExplanationTracksMode(t *testing.T) {
	s := session.New(0)
	if s.Explanation() != "" {
		t.Error("idle session should have no explanation")
	}

	if err := s.SetInput("urgent: verify your password immediately", ""); err != nil {
		t.Fatalf("set input: %v", err)
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	normal := s.Explanation()
	s.SetMode(domain.ModeSimple)
	simple := s.Explanation()

	if normal == "" || simple == "" {
		t.Fatal("expected non-empty explanations")
	}
	if normal == simple {
		t.Error("normal and simple copy should differ")
	}
	if !strings.Contains(simple, "trick") {
		t.Errorf("expected simplified risky copy, got %q", simple)
	}

	// Unknown mode falls back to normal.
	s.SetMode("verbose")
	if got := s.Explanation(); got != normal {
		t.Errorf("unknown mode should read as normal, got %q", got)
	}
}

func TestExplain_KeyedByStatusAndModeOnly(t *testing.T) {
	if session.Explain(domain.StatusSuspicious, domain.ModeNormal) !=
		session.Explain(domain.StatusDangerous, domain.ModeNormal) {
		t.Error("suspicious and dangerous should share the cautionary copy")
	}
	if session.Explain(domain.StatusSafe, domain.ModeNormal) ==
		session.Explain(domain.StatusSuspicious, domain.ModeNormal) {
		t.Error("safe copy should differ from risky copy")
	}
	if session.Explain(domain.StatusSafe, domain.ModeSimple) ==
		session.Explain(domain.StatusSafe, domain.ModeNormal) {
		t.Error("simple copy should differ from normal copy")
	}
}
