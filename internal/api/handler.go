package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/engine"
	"sentra/phishing-api/internal/store"
	"sentra/phishing-api/internal/webhook"
)

// Handler holds the dependencies shared across all HTTP handlers.
// The scoring engine itself is a pure function and needs no wiring.
type Handler struct {
	store    store.Store
	notifier *webhook.Notifier
}

// NewHandler creates a Handler wired to the given dependencies.
func NewHandler(s store.Store, n *webhook.Notifier) *Handler {
	return &Handler{store: s, notifier: n}
}

// ─── POST /api/v1/analyses ────────────────────────────────────────────────────

// SubmitAnalysis accepts a message payload, scores it, saves it, and returns
// the full analysis synchronously.
func (h *Handler) SubmitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	// The engine tolerates two empty strings, but a zero-signal analysis is
	// meaningless, so the API refuses it up front.
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
		badRequest(w, "VALIDATION_ERROR", "at least one of text or url is required")
		return
	}

	analysis := &domain.Analysis{
		ID:              uuid.NewString(),
		AnalysisRequest: req,
		Result:          engine.Analyze(req.Text, req.URL),
		ProcessedAt:     time.Now().UTC(),
	}

	if err := h.store.SaveAnalysis(analysis); err != nil {
		internalError(w)
		return
	}

	// Fire async webhook notifications for flagged analyses.
	h.notifier.NotifyAsync(analysis)

	created(w, analysis)
}

// ─── GET /api/v1/analyses/{id} ───────────────────────────────────────────────

// GetAnalysis retrieves a previously scored analysis by its ID.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, exists := h.store.GetAnalysis(id)
	if !exists {
		notFound(w, fmt.Sprintf("analysis '%s' not found", id))
		return
	}
	ok(w, a)
}

// ─── GET /api/v1/analyses ────────────────────────────────────────────────────

// ListAnalyses returns recent analyses, newest first.
//
// Query params:
//
//	status — filter by status tier (safe, suspicious, dangerous)
//	days   — look-back window in days (default: 7, max: 90)
func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	status := strings.ToLower(r.URL.Query().Get("status"))
	if status != "" && domain.StatusRank(status) < 0 {
		badRequest(w, "INVALID_STATUS", "status must be one of: safe, suspicious, dangerous")
		return
	}

	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 1 || parsed > 90 {
			badRequest(w, "INVALID_PARAM", "days must be an integer between 1 and 90")
			return
		}
		days = parsed
	}

	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	var (
		analyses []*domain.Analysis
		err      error
	)
	if status == "" {
		analyses, err = h.store.ListAnalyses(since)
	} else {
		analyses, err = h.store.ListAnalysesByStatus(status, since)
	}
	if err != nil {
		internalError(w)
		return
	}

	// Sort newest first for readability.
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].ProcessedAt.After(analyses[j].ProcessedAt)
	})

	if analyses == nil {
		analyses = []*domain.Analysis{}
	}
	ok(w, map[string]any{
		"period":   fmt.Sprintf("last_%d_days", days),
		"count":    len(analyses),
		"analyses": analyses,
	})
}

// ─── GET /api/v1/reports/indicators ──────────────────────────────────────────

// GetIndicatorReport summarises which indicators fired in the last 24 hours.
func (h *Handler) GetIndicatorReport(w http.ResponseWriter, r *http.Request) {
	since := time.Now().UTC().Add(-24 * time.Hour)
	analyses, err := h.store.ListAnalyses(since)
	if err != nil {
		internalError(w)
		return
	}
	ok(w, buildIndicatorReport(analyses))
}

func buildIndicatorReport(analyses []*domain.Analysis) domain.IndicatorReport {
	var summary domain.ReportSummary
	var totalScore int
	counts := make(map[string]int)

	for _, a := range analyses {
		totalScore += a.RiskScore
		switch a.Status {
		case domain.StatusDangerous:
			summary.DangerousCount++
		case domain.StatusSuspicious:
			summary.SuspiciousCount++
		default:
			summary.SafeCount++
		}
		for _, label := range a.Indicators {
			counts[label]++
		}
	}

	summary.TotalAnalyses = len(analyses)
	if len(analyses) > 0 {
		summary.AvgRiskScore = float64(totalScore) / float64(len(analyses))
	}

	// Report every known indicator, including ones that never fired, in
	// rule-declaration order so the output is stable.
	stats := make([]domain.IndicatorStat, 0, len(counts))
	for _, label := range engine.IndicatorLabels() {
		stat := domain.IndicatorStat{Label: label, Count: counts[label]}
		if len(analyses) > 0 {
			stat.Share = float64(stat.Count) / float64(len(analyses))
		}
		stats = append(stats, stat)
	}

	return domain.IndicatorReport{
		GeneratedAt: time.Now().UTC(),
		Period:      "last_24_hours",
		Summary:     summary,
		Indicators:  stats,
	}
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// RegisterWebhook adds a new webhook endpoint.
func (h *Handler) RegisterWebhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL     string `json:"url"`
		Trigger string `json:"trigger"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.URL == "" {
		badRequest(w, "MISSING_URL", "url is required")
		return
	}
	if req.Trigger == "" {
		req.Trigger = domain.StatusDangerous
	}
	if domain.StatusRank(req.Trigger) < 0 {
		badRequest(w, "INVALID_TRIGGER", "trigger must be one of: safe, suspicious, dangerous")
		return
	}

	wh := &domain.WebhookConfig{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Trigger:   req.Trigger,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	if err := h.store.SaveWebhook(wh); err != nil {
		internalError(w)
		return
	}
	created(w, wh)
}

// DeleteWebhook deactivates and removes a webhook.
func (h *Handler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := h.store.DeleteWebhook(id)
	if err != nil {
		internalError(w)
		return
	}
	if !deleted {
		notFound(w, fmt.Sprintf("webhook '%s' not found", id))
		return
	}
	noContent(w)
}

// ─── Admin ────────────────────────────────────────────────────────────────────

// SeedData loads an array of AnalysisRequests from the request body, scores
// them, and persists them. Useful for populating the store in demo environments.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	var requests []domain.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&requests); err != nil {
		badRequest(w, "INVALID_JSON", "body must be a JSON array of analysis requests")
		return
	}

	var loaded, skipped int
	for _, req := range requests {
		if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
			skipped++
			continue
		}
		analysis := &domain.Analysis{
			ID:              uuid.NewString(),
			AnalysisRequest: req,
			Result:          engine.Analyze(req.Text, req.URL),
			ProcessedAt:     time.Now().UTC(),
		}
		if err := h.store.SaveAnalysis(analysis); err != nil {
			skipped++
		} else {
			loaded++
		}
	}

	ok(w, map[string]int{"loaded": loaded, "skipped": skipped})
}
