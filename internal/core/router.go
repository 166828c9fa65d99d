// ABOUTME: Router classifying input and dispatching exactly one generator
// ABOUTME: Enforces at-most-once dispatch per attempt via a fresh guard
package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/harper/ankiword/internal/models"
)

// CategoryCall is one generator invocation requested by the classifier
type CategoryCall struct {
	Category models.CardType `json:"category"`
	Reason   string          `json:"reason,omitempty"`
}

// Decision is the classifier's structured output: normally a single
// category call, or an explicit failure when nothing fits.
type Decision struct {
	Calls   []CategoryCall        `json:"calls"`
	Failure *models.RouterFailure `json:"failure,omitempty"`
}

// Router classifies a routing request and invokes exactly one category
// generator for it. Classification accuracy belongs to the capability;
// the Router owns single-dispatch and the category-to-generator mapping.
type Router struct {
	capability Capability
	prompt     string
	generators *GeneratorSet
}

// NewRouter creates a router using the given classification capability
// and system prompt
func NewRouter(capability Capability, routerPrompt string, generators *GeneratorSet) *Router {
	return &Router{
		capability: capability,
		prompt:     routerPrompt,
		generators: generators,
	}
}

// Route runs one classification attempt for the request. It returns the
// generated card, or an explicit RouterFailure, or an error when the
// classifier or a generator failed. A fresh dispatch guard covers the
// attempt: the first category call executes, every later one is
// suppressed as a no-op and recorded on the trace.
func (r *Router) Route(ctx context.Context, req models.RoutingRequest, trace *Trace) (models.Card, *models.RouterFailure, error) {
	raw, err := r.capability.Complete(ctx, r.prompt, req.Message())
	if err != nil {
		return nil, nil, fmt.Errorf("classifier: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	var decision Decision
	if err := dec.Decode(&decision); err != nil {
		return nil, nil, models.SchemaViolationf("classifier returned unparseable decision %q: %v", raw, err)
	}

	if decision.Failure != nil {
		trace.Add("[Router] classifier declared failure: %s", decision.Failure.Explanation)
		return nil, decision.Failure, nil
	}
	if len(decision.Calls) == 0 {
		trace.Add("[Router] classifier made no category call")
		return nil, &models.RouterFailure{Explanation: "classifier made no category call"}, nil
	}

	guard := models.NewDispatchGuard()
	var card models.Card

	for _, call := range decision.Calls {
		if !guard.TryDispatch() {
			log.Printf("[Router] %s | category=%s source=%q", models.DuplicateCallIgnored, call.Category, req.Word)
			trace.Add("[Router] %s | category=%s", models.DuplicateCallIgnored, call.Category)
			continue
		}

		if !call.Category.IsValid() {
			return nil, nil, models.SchemaViolationf("classifier chose unknown category %q", call.Category)
		}

		log.Printf("[Router] chose: %s | source=%q deck=%q target=%q",
			call.Category, req.Word, req.Deck, req.TargetLang)
		trace.Add("[Router] chose: %s | source=%q", call.Category, req.Word)

		generated, err := r.generators.Generate(ctx, call.Category, req.Word, req.TargetLang)
		if err != nil {
			return nil, nil, err
		}
		card = generated
		trace.Add("[Router] generated %s", models.VariantName(card))
	}

	return card, nil, nil
}
