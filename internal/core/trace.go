// ABOUTME: Request-scoped event trace for one add-word invocation
// ABOUTME: Collects ordered pipeline events for observability and tests
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Capability is one opaque LLM call: a system prompt plus user input
// producing structured text output. The classifier, the five generators,
// and the verifier are all capabilities; tests swap in scripted stubs.
type Capability interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Trace accumulates the ordered events of one pipeline run. Each
// top-level request gets its own trace; traces are never shared.
type Trace struct {
	sessionID string
	events    []string
}

// NewTrace creates a trace with a fresh session id
func NewTrace() *Trace {
	return &Trace{sessionID: uuid.New().String()}
}

// SessionID returns the id tagging this run's log lines
func (t *Trace) SessionID() string {
	if t == nil {
		return ""
	}
	return t.sessionID
}

// Add appends a formatted event. Safe on a nil trace.
func (t *Trace) Add(format string, args ...interface{}) {
	if t == nil {
		return
	}
	t.events = append(t.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of the recorded events in order
func (t *Trace) Events() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.events))
	copy(out, t.events)
	return out
}

// Contains reports whether any event contains the given substring
func (t *Trace) Contains(substr string) bool {
	if t == nil {
		return false
	}
	for _, e := range t.events {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
