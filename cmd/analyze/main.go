// Command analyze scores a single message from the command line, driving the
// same session flow an interactive front end would: the configured
// session.delay_ms elapses before the result prints, and Ctrl-C during the
// wait cancels cleanly.
//
// Usage:
//
//	go run ./cmd/analyze -text "urgent: verify your account" [flags]
//
// Flags:
//
//	-config  Path to a YAML config file (default: config.yaml)
//	-text    Message text to analyze
//	-url     URL accompanying the message
//	-simple  Print the plain-language explanation instead of the standard one
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sentra/phishing-api/internal/config"
	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/session"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to YAML config file")
	text := flag.String("text", "", "message text to analyze")
	url := flag.String("url", "", "URL accompanying the message")
	simple := flag.Bool("simple", false, "print the plain-language explanation")
	flag.Parse()

	if strings.TrimSpace(*text) == "" && strings.TrimSpace(*url) == "" {
		fmt.Fprintln(os.Stderr, "at least one of -text or -url is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config invalid: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *text, *url, *simple, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "analyze failed: %v\n", err)
		os.Exit(1)
	}
}

// run drives one session through the full Idle → Analyzing → Result flow
// using the configured delay, then prints the verdict and explanation copy.
func run(ctx context.Context, cfg *config.Config, text, url string, simple bool, w io.Writer) error {
	sess := session.New(cfg.SessionDelay())
	if err := sess.SetInput(text, url); err != nil {
		return err
	}

	res, err := sess.Submit(ctx)
	if err != nil {
		return err
	}

	if simple {
		sess.SetMode(domain.ModeSimple)
	}

	fmt.Fprintf(w, "Status:     %s\n", res.Status)
	fmt.Fprintf(w, "Risk Score: %d\n", res.RiskScore)
	if len(res.Indicators) > 0 {
		fmt.Fprintf(w, "Indicators: %s\n", strings.Join(res.Indicators, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", sess.Explanation())
	return nil
}
