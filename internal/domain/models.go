// Package domain contains all core types used across the application.
// Keeping domain types in one place makes the analysis pipeline easy to reason about.
package domain

import "time"

// ─── Constants ───────────────────────────────────────────────────────────────

// Status tiers assigned to an analyzed message.
const (
	StatusSafe       = "safe"       // no signals detected
	StatusSuspicious = "suspicious" // some signals, below the dangerous cutoff
	StatusDangerous  = "dangerous"  // strong keyword score or 3+ indicators
)

// Explanation modes for the canned result copy shown to end users.
const (
	ModeNormal = "normal" // standard explanation
	ModeSimple = "simple" // plain-language explanation
)

// ─── Scoring thresholds ───────────────────────────────────────────────────────

// Scoring constants. The status thresholds compare against the raw keyword
// score, before the per-indicator boost is applied; the displayed risk score
// includes the boost. This two-stage evaluation is intentional and must not
// be collapsed into a single post-boost comparison.
const (
	KeywordWeight  = 15 // points per matched corpus phrase
	IndicatorBoost = 10 // points added to the displayed score per indicator

	ThresholdSuspicious = 20 // raw score > 20 → at least suspicious
	ThresholdDangerous  = 60 // raw score > 60 → dangerous

	DangerousIndicators = 3 // 3+ indicators → dangerous regardless of raw score

	MaxScore = 100
)

// StatusRank orders statuses by severity for threshold comparisons
// (webhook triggers, report bucketing). Unknown statuses rank below safe.
func StatusRank(status string) int {
	switch status {
	case StatusSafe:
		return 0
	case StatusSuspicious:
		return 1
	case StatusDangerous:
		return 2
	default:
		return -1
	}
}

// ─── Core domain types ────────────────────────────────────────────────────────

// AnalysisRequest is the payload submitted for scoring.
// Either field may be empty, but not both; that precondition is enforced at
// the API boundary, not by the engine.
type AnalysisRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Signal is a single scoring contribution — a matched keyword phrase or a
// fired indicator rule. Exposing signals individually lets reviewers see why
// a message was flagged.
type Signal struct {
	Name        string `json:"name"`        // machine-readable identifier
	Description string `json:"description"` // human-readable explanation
	ScoreDelta  int    `json:"score_delta"` // points added to the displayed score
}

// Result is the output of one engine invocation.
//
// RiskScore is the clamped, boosted score shown to users. RawScore is the
// unclamped keyword sum the status tiers are derived from. Indicators holds
// the fired rule labels in rule-declaration order, each at most once.
type Result struct {
	Status      string   `json:"status"`
	RiskScore   int      `json:"risk_score"` // 0-100
	RawScore    int      `json:"raw_score"`
	Indicators  []string `json:"indicators"`
	Signals     []Signal `json:"signals"`
	Explanation string   `json:"explanation"`
}

// Analysis is an AnalysisRequest enriched with its scoring result.
// This is the canonical record stored and returned by the API.
type Analysis struct {
	ID string `json:"id"`
	AnalysisRequest
	Result
	ProcessedAt time.Time `json:"processed_at"`
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// WebhookConfig is a registered callback that receives real-time alerts when
// an analysis resolves to Trigger severity or above.
type WebhookConfig struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Trigger   string    `json:"trigger"` // fire when StatusRank(status) >= StatusRank(trigger)
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// WebhookPayload is the body sent to registered webhook URLs.
type WebhookPayload struct {
	Event       string    `json:"event"` // always "flagged_message"
	TriggeredAt time.Time `json:"triggered_at"`
	Analysis    Analysis  `json:"analysis"`
}

// ─── Reporting ────────────────────────────────────────────────────────────────

// IndicatorReport is the 24-hour indicator breakdown for operations teams.
type IndicatorReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Period      string          `json:"period"`
	Summary     ReportSummary   `json:"summary"`
	Indicators  []IndicatorStat `json:"indicators"`
}

// ReportSummary holds headline metrics for an IndicatorReport.
type ReportSummary struct {
	TotalAnalyses   int     `json:"total_analyses"`
	DangerousCount  int     `json:"dangerous_count"`
	SuspiciousCount int     `json:"suspicious_count"`
	SafeCount       int     `json:"safe_count"`
	AvgRiskScore    float64 `json:"avg_risk_score"`
}

// IndicatorStat counts how often one indicator fired within the window.
type IndicatorStat struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // fraction of analyses the indicator fired on
}
