// Package triage screens listing content before it becomes publicly visible.
//
// Analysis runs three strictly ordered passes: a bypass check, a keyword
// denylist, then an optional remote classifier. What happens when the remote
// classifier is missing or fails is decided by Policy, not inline.
package triage

import (
	"context"
	"log"
	"strings"
	"time"

	"locali/internal/domain"
	"locali/internal/port"
)

// Mode selects whether triage runs for real or short-circuits to safe.
type Mode string

const (
	ModeLive   Mode = "live"
	ModeBypass Mode = "bypass"
)

// Reason strings shared with callers and tests.
const (
	ReasonKeywordPrefix  = "Keyword filter violation"
	ReasonSystemError    = "Triage system error."
	ReasonDefaultFlagged = "Flagged by content classifier."
)

// Policy holds the verdicts returned when the remote classifier cannot be
// consulted. Missing configuration and call failure are deliberately
// independent settings.
type Policy struct {
	OnMissingConfig domain.TriageVerdict
	OnCallFailure   domain.TriageVerdict
}

// DefaultPolicy fails open when no classifier is configured and fails closed
// when a configured classifier errors.
func DefaultPolicy() Policy {
	return Policy{
		OnMissingConfig: domain.SafeVerdict(),
		OnCallFailure:   domain.FlaggedVerdict(ReasonSystemError),
	}
}

// Analyzer decides whether listing content may be published without review.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	mode   Mode
	policy Policy
	filter *KeywordFilter
	remote port.ContentClassifier
}

// Option customises an Analyzer.
type Option func(*Analyzer)

// WithPolicy overrides the default missing-config/call-failure policy.
func WithPolicy(p Policy) Option {
	return func(a *Analyzer) { a.policy = p }
}

// WithKeywordFilter overrides the built-in denylist.
func WithKeywordFilter(f *KeywordFilter) Option {
	return func(a *Analyzer) { a.filter = f }
}

// NewAnalyzer creates an Analyzer. remote may be nil, meaning no classifier
// is configured.
func NewAnalyzer(mode Mode, remote port.ContentClassifier, opts ...Option) *Analyzer {
	a := &Analyzer{
		mode:   mode,
		policy: DefaultPolicy(),
		filter: NewKeywordFilter(),
		remote: remote,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analysis is a verdict plus the provider's backoff request, if it throttled
// the call. A throttled Analysis still carries the policy's call-failure
// verdict.
type Analysis struct {
	Verdict domain.TriageVerdict
	Backoff time.Duration
}

// Throttled reports whether the remote classifier asked callers to back off.
func (a Analysis) Throttled() bool { return a.Backoff > 0 }

// AnalyzeListingContent screens a listing's name and description against the
// category it was submitted under. It never returns an error; failures are
// mapped to verdicts by the Analyzer's Policy.
func (a *Analyzer) AnalyzeListingContent(ctx context.Context, name string, description *string, category string) domain.TriageVerdict {
	return a.Analyze(ctx, name, description, category).Verdict
}

// Analyze is AnalyzeListingContent for callers that schedule work around
// provider throttling.
func (a *Analyzer) Analyze(ctx context.Context, name string, description *string, category string) Analysis {
	if a.mode == ModeBypass {
		return Analysis{Verdict: domain.SafeVerdict()}
	}

	desc := ""
	if description != nil {
		desc = *description
	}

	if term, ok := a.filter.Match(name + " " + desc); ok {
		return Analysis{Verdict: domain.FlaggedVerdict(ReasonKeywordPrefix + ": prohibited term \"" + strings.ToLower(term) + "\"")}
	}

	if a.remote == nil {
		return Analysis{Verdict: a.policy.OnMissingConfig.Clone()}
	}

	out, err := a.remote.Classify(ctx, port.ClassifyInput{
		Name:        name,
		Description: desc,
		Category:    category,
	})
	if err != nil {
		log.Printf("triage.Analyzer: remote classification failed: %v", err)
		backoff, _ := BackoffFor(err)
		return Analysis{Verdict: a.policy.OnCallFailure.Clone(), Backoff: backoff}
	}
	if out == nil {
		log.Printf("triage.Analyzer: remote classifier returned no result")
		return Analysis{Verdict: a.policy.OnCallFailure.Clone()}
	}

	if out.Safe {
		return Analysis{Verdict: domain.SafeVerdict()}
	}
	reason := out.Reason
	if reason == "" {
		reason = ReasonDefaultFlagged
	}
	return Analysis{Verdict: domain.FlaggedVerdict(reason)}
}
