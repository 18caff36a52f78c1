// Package engine implements the phishing risk scoring engine.
//
// Architecture:
//   The engine is a pure, stateless pipeline of four stages chained strictly
//   forward — normalize, keyword matching, indicator classification, status
//   resolution. It performs no I/O, holds no state between calls, and is safe
//   to invoke concurrently without locking. Persistence and notification
//   happen in the HTTP layer after scoring.
//
// Scoring philosophy:
//   Every matched keyword phrase contributes a fixed weight to the raw score;
//   every fired indicator rule boosts the displayed score by a fixed amount.
//   The status tier is derived from the raw score and the indicator count —
//   not from the boosted score. A message can therefore display a score above
//   the dangerous cutoff while the status remains suspicious; that asymmetry
//   is part of the contract and is pinned by tests.
package engine

import (
	"fmt"
	"strings"

	"sentra/phishing-api/internal/domain"
)

// ─── Public API ───────────────────────────────────────────────────────────────

// Analyze scores a message and optional URL for phishing signals.
// It is total over its input domain: any two strings, including both empty,
// produce a valid Result and never an error.
func Analyze(text, url string) domain.Result {
	corpus, normURL := normalize(text, url)

	raw, signals := matchKeywords(corpus)
	indicators, indicatorSignals := classify(corpus, normURL)
	signals = append(signals, indicatorSignals...)

	status, score := resolve(raw, len(indicators))

	return domain.Result{
		Status:      status,
		RiskScore:   score,
		RawScore:    raw,
		Indicators:  indicators,
		Signals:     signals,
		Explanation: buildExplanation(score, status, signals),
	}
}

// ─── Stage 1: Normalizer ──────────────────────────────────────────────────────

// normalize lower-cases the message and URL and joins them into the single
// search corpus every later stage matches against. The lower-cased URL is
// also returned on its own for the link rule's scheme check.
func normalize(text, url string) (corpus, normURL string) {
	normURL = strings.ToLower(url)
	return strings.ToLower(text) + " " + normURL, normURL
}

// ─── Stage 2: Keyword Matcher ─────────────────────────────────────────────────

// keywordCorpus is the fixed vocabulary of phishing-signal phrases.
// Immutable for the process lifetime; each phrase contributes
// domain.KeywordWeight to the raw score at most once per call, regardless of
// how often it repeats in the message.
var keywordCorpus = []string{
	"urgent",
	"verify",
	"account",
	"suspended",
	"click here",
	"password",
	"confirm",
	"immediately",
	"bank",
	"security alert",
	"lottery",
	"winner",
	"prize",
	"ssn",
	"wire transfer",
}

// matchKeywords scans the corpus against every phrase independently — no
// short-circuiting, so additional matches strictly increase the raw score.
// The raw score is unbounded at this stage; clamping happens in resolve.
func matchKeywords(corpus string) (raw int, signals []domain.Signal) {
	for _, phrase := range keywordCorpus {
		if strings.Contains(corpus, phrase) {
			raw += domain.KeywordWeight
			signals = append(signals, domain.Signal{
				Name:        "keyword_match",
				Description: fmt.Sprintf("Message contains the phrase %q", phrase),
				ScoreDelta:  domain.KeywordWeight,
			})
		}
	}
	return raw, signals
}

// ─── Stage 3: Indicator Classifier ────────────────────────────────────────────

// Indicator labels, exported so callers and tests can reference them without
// duplicating strings.
const (
	IndicatorUrgency       = "Sense of Urgency"
	IndicatorImpersonation = "Impersonation of Brands"
	IndicatorSuspiciousURL = "Suspicious Links"
	IndicatorGenericHello  = "Generic Greetings"
	IndicatorPersonalInfo  = "Request for Personal Info"
)

// indicatorRule pairs one detectable social-engineering pattern with its
// label. Rules are independent: evaluation order is declaration order only,
// not priority, and no rule reads another's outcome.
type indicatorRule struct {
	label string
	match func(corpus, url string) bool
}

var indicatorRules = []indicatorRule{
	{
		label: IndicatorUrgency,
		match: func(corpus, _ string) bool {
			return strings.Contains(corpus, "urgent") || strings.Contains(corpus, "immediate")
		},
	},
	{
		label: IndicatorImpersonation,
		match: func(corpus, _ string) bool {
			return strings.Contains(corpus, "verify") || strings.Contains(corpus, "account")
		},
	},
	{
		label: IndicatorSuspiciousURL,
		// An empty URL never fires this rule. A non-empty one fires on a known
		// shortener fragment, or on any scheme that isn't https (including no
		// scheme at all).
		match: func(_, url string) bool {
			if url == "" {
				return false
			}
			if strings.Contains(url, "bit.ly") || strings.Contains(url, "tinyurl") {
				return true
			}
			return !strings.HasPrefix(url, "https")
		},
	},
	{
		label: IndicatorGenericHello,
		match: func(corpus, _ string) bool {
			return strings.Contains(corpus, "dear customer") || strings.Contains(corpus, "valued user")
		},
	},
	{
		label: IndicatorPersonalInfo,
		match: func(corpus, _ string) bool {
			return strings.Contains(corpus, "password") ||
				strings.Contains(corpus, "credit card") ||
				strings.Contains(corpus, "ssn")
		},
	},
}

// classify evaluates every indicator rule against the corpus. Each rule fires
// at most once, appending its label in declaration order, so the result is
// deduplicated by construction.
func classify(corpus, url string) (labels []string, signals []domain.Signal) {
	for _, rule := range indicatorRules {
		if rule.match(corpus, url) {
			labels = append(labels, rule.label)
			signals = append(signals, domain.Signal{
				Name:        "indicator",
				Description: rule.label,
				ScoreDelta:  domain.IndicatorBoost,
			})
		}
	}
	return labels, signals
}

// ─── Stage 4: Status Resolver ─────────────────────────────────────────────────

// resolve combines the raw keyword score and the indicator count into the
// final status and displayed score.
//
// The displayed score is raw + 10 per indicator, clamped to [0, 100]. The
// status tiers compare the PRE-boost raw score; do not "fix" this by
// recomputing status from the boosted score.
func resolve(raw, indicatorCount int) (status string, score int) {
	score = raw + domain.IndicatorBoost*indicatorCount
	if score > domain.MaxScore {
		score = domain.MaxScore
	}

	switch {
	case raw > domain.ThresholdDangerous || indicatorCount >= domain.DangerousIndicators:
		status = domain.StatusDangerous
	case raw > domain.ThresholdSuspicious || indicatorCount >= 1:
		status = domain.StatusSuspicious
	default:
		status = domain.StatusSafe
	}
	return status, score
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// buildExplanation formats a score and its signals into a single readable
// summary line.
func buildExplanation(score int, status string, signals []domain.Signal) string {
	if len(signals) == 0 {
		return fmt.Sprintf("Risk Score: %d (%s). No phishing signals detected.", score, status)
	}

	parts := make([]string, len(signals))
	for i, s := range signals {
		parts[i] = fmt.Sprintf("%s (+%d)", s.Description, s.ScoreDelta)
	}
	return fmt.Sprintf("Risk Score: %d (%s). Signals: %s.", score, status, strings.Join(parts, "; "))
}

// Keywords returns a copy of the keyword corpus, in match order.
// Exposed for seed generation and documentation endpoints; the engine's own
// copy is never mutated.
func Keywords() []string {
	out := make([]string, len(keywordCorpus))
	copy(out, keywordCorpus)
	return out
}

// IndicatorLabels returns the indicator labels in rule-declaration order.
func IndicatorLabels() []string {
	out := make([]string, len(indicatorRules))
	for i, r := range indicatorRules {
		out[i] = r.label
	}
	return out
}
