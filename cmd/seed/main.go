// Command seed generates a test dataset for the Sentra Phishing API and
// writes it to data/seed.json.
//
// Usage:
//
//	go run ./cmd/seed
//
// The generated dataset mixes plainly benign messages with phishing samples
// covering every indicator the engine detects — urgency, brand
// impersonation, suspicious links, generic greetings, and personal-info
// requests — plus a few borderline messages that land in the suspicious
// tier.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"sentra/phishing-api/internal/domain"
)

func main() {
	rng := rand.New(rand.NewSource(42)) // deterministic seed for reproducibility

	var requests []domain.AnalysisRequest
	requests = append(requests, benignMessages()...)
	requests = append(requests, phishingMessages()...)
	requests = append(requests, borderlineMessages()...)

	// Shuffle so the tiers aren't trivially grouped in the file.
	rng.Shuffle(len(requests), func(i, j int) {
		requests[i], requests[j] = requests[j], requests[i]
	})

	if err := os.MkdirAll("data", 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create("data/seed.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(requests); err != nil {
		fmt.Fprintf(os.Stderr, "encode error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d messages → data/seed.json\n", len(requests))
}

// ─── Benign messages ──────────────────────────────────────────────────────────

func benignMessages() []domain.AnalysisRequest {
	return []domain.AnalysisRequest{
		{Text: "Hi Mom, I'll be home for dinner around 7. Want me to pick anything up?"},
		{Text: "Meeting moved to 3pm tomorrow, same room. Agenda attached."},
		{Text: "Happy birthday! Hope you have a wonderful day."},
		{Text: "The package was delivered to the front desk this morning."},
		{Text: "Great game last night! Same time next week?"},
		{Text: "Lunch at the usual place on Friday?", URL: "https://maps.example.com/usual-place"},
		{Text: "Here are the photos from the trip.", URL: "https://photos.example.com/album/4821"},
		{Text: "Reminder: book club meets Thursday at Elena's place."},
	}
}

// ─── Phishing samples, one cluster per indicator ──────────────────────────────

func phishingMessages() []domain.AnalysisRequest {
	return []domain.AnalysisRequest{
		// Urgency + impersonation, the classic template.
		{
			Text: "URGENT: Your account has been suspended. Click here to verify " +
				"your identity immediately or lose access forever.",
			URL: "http://secure-login.example.ru/verify",
		},
		// Suspicious link through a shortener.
		{
			Text: "Your payment failed. Update your billing info here.",
			URL:  "http://bit.ly/3xFakePay",
		},
		{
			Text: "New voicemail waiting for you.",
			URL:  "https://tinyurl.com/vm-inbox-992",
		},
		// Generic greeting + personal-info request.
		{
			Text: "Dear Customer, we detected unusual activity. Please confirm " +
				"your password and SSN to restore your account.",
		},
		{
			Text: "Dear valued user, your bank has issued a security alert. " +
				"Verify your account immediately.",
			URL: "http://bank-alerts.example.net",
		},
		// Prize / lottery bait.
		{
			Text: "Congratulations WINNER! You have been selected for our lottery " +
				"prize. Send a wire transfer fee to claim it immediately.",
		},
		// Credit-card harvesting without any keyword hits.
		{
			Text: "Immediate action needed: dear customer, send your credit card " +
				"number to keep your subscription active.",
		},
	}
}

// ─── Borderline messages (suspicious, not dangerous) ──────────────────────────

func borderlineMessages() []domain.AnalysisRequest {
	return []domain.AnalysisRequest{
		{Text: "Please verify your email address to finish signing up."},
		{Text: "Your account statement for July is ready to view."},
		{Text: "This is urgent — call me when you get a chance."},
		{Text: "Don't forget your password expires next week."},
	}
}
