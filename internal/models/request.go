// ABOUTME: Routing request and per-attempt dispatch guard
// ABOUTME: Requests are immutable; feedback threading produces new values
package models

import (
	"fmt"
	"strings"
)

// RoutingRequest carries one word through the pipeline. It is immutable
// for the duration of a routing attempt; retries build new values via
// WithFeedback rather than mutating shared text.
type RoutingRequest struct {
	Word       string
	Deck       string
	TargetLang string

	// Feedback holds verifier rejection reasons from earlier attempts,
	// oldest first
	feedback []string
}

// NewRoutingRequest creates a request for one top-level add-word call
func NewRoutingRequest(word, deck, targetLang string) RoutingRequest {
	return RoutingRequest{
		Word:       word,
		Deck:       deck,
		TargetLang: targetLang,
	}
}

// WithFeedback returns a new request carrying all previous feedback plus
// the given rejection reason. The receiver is not modified.
func (r RoutingRequest) WithFeedback(reason string) RoutingRequest {
	feedback := make([]string, 0, len(r.feedback)+1)
	feedback = append(feedback, r.feedback...)
	feedback = append(feedback, reason)

	next := r
	next.feedback = feedback
	return next
}

// Feedback returns the accumulated rejection reasons, oldest first
func (r RoutingRequest) Feedback() []string {
	out := make([]string, len(r.feedback))
	copy(out, r.feedback)
	return out
}

// Message renders the user message handed to the classifier, including
// one feedback line per earlier rejection
func (r RoutingRequest) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\nTarget language: %s", r.Word, r.TargetLang)
	for _, reason := range r.feedback {
		fmt.Fprintf(&b, "\nVerifier feedback: %s", reason)
	}
	return b.String()
}

// DuplicateCallIgnored is reported when classification attempts a second
// generator call within one attempt; the call is suppressed, not executed.
const DuplicateCallIgnored = "duplicate_tool_call_ignored"

// DispatchGuard enforces at-most-one generator dispatch per router
// attempt. Construct a fresh guard for every attempt; guards are never
// shared across attempts or requests.
type DispatchGuard struct {
	dispatched bool
}

// NewDispatchGuard returns a guard with no dispatch recorded
func NewDispatchGuard() *DispatchGuard {
	return &DispatchGuard{}
}

// TryDispatch records a dispatch. It returns true exactly once; every
// later call returns false and the caller must treat the dispatch as a
// no-op reported with DuplicateCallIgnored.
func (g *DispatchGuard) TryDispatch() bool {
	if g.dispatched {
		return false
	}
	g.dispatched = true
	return true
}

// Dispatched reports whether a generator has already run this attempt
func (g *DispatchGuard) Dispatched() bool {
	return g.dispatched
}
