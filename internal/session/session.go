// Package session models the interactive front-end flow around the scoring
// engine as an explicit state machine: Idle (collecting input) → Analyzing
// (optional artificial delay) → Result (rendered analysis).
//
// The engine call itself is synchronous and instantaneous; the delay exists
// purely so interactive callers can show progress feedback, and it is
// cancellable through the submitted context. The engine never knows about
// any of this.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/engine"
)

// State identifies where a session is in the analyze flow.
type State int

const (
	StateIdle State = iota
	StateAnalyzing
	StateResult
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnalyzing:
		return "analyzing"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when Submit is called while an analysis is in flight
// or a result is still being shown.
var ErrBusy = errors.New("session: not idle")

// Session drives one user's analyze flow. Each state owns only the data it
// needs: Idle holds the form fields, Result holds the analysis and the
// explanation-mode selector.
type Session struct {
	mu    sync.Mutex
	state State
	delay time.Duration

	// Idle
	text, url string

	// Result
	result *domain.Result
	mode   string
}

// New creates an idle session. delay is the artificial wait inserted before
// scoring; zero means results appear immediately.
func New(delay time.Duration) *Session {
	return &Session{delay: delay, mode: domain.ModeNormal}
}

// State reports the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetInput stores the form fields. Allowed only while idle.
func (s *Session) SetInput(text, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrBusy
	}
	s.text, s.url = text, url
	return nil
}

// Submit runs the analyze flow: transition to Analyzing, wait out the
// configured delay (cancellable via ctx), score, and transition to Result.
// On cancellation the session returns to Idle with the form fields intact
// and the context error is returned.
func (s *Session) Submit(ctx context.Context) (*domain.Result, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = StateAnalyzing
	text, url := s.text, s.url
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.mu.Lock()
			s.state = StateIdle
			s.mu.Unlock()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	res := engine.Analyze(text, url)

	s.mu.Lock()
	s.result = &res
	s.state = StateResult
	s.mu.Unlock()

	return &res, nil
}

// Result returns the last analysis, if the session is showing one.
func (s *Session) Result() (*domain.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return nil, false
	}
	return s.result, true
}

// SetMode switches between the normal and simplified explanation copy.
// Unknown modes fall back to normal.
func (s *Session) SetMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != domain.ModeSimple {
		mode = domain.ModeNormal
	}
	s.mode = mode
}

// Explanation returns the canned copy for the current result and mode.
// Empty when no result is showing.
func (s *Session) Explanation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult {
		return ""
	}
	return Explain(s.result.Status, s.mode)
}

// Reset clears the result and returns to Idle. The form fields are cleared
// too; a fresh submission starts from a blank form.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.result = nil
	s.text, s.url = "", ""
}
