// ABOUTME: Verifier reviewing generated cards and the bounded retry loop
// ABOUTME: Rejections feed back into a fresh router attempt, up to max retries
package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/harper/ankiword/internal/models"
)

// ErrVerificationMalformed marks review output that does not parse as a
// verdict. A hard error: surfaced immediately, never retried.
var ErrVerificationMalformed = errors.New("verification agent returned invalid output")

// Verifier reviews one generated card through the review capability
type Verifier struct {
	capability Capability
	prompt     string
}

// NewVerifier creates a verifier using the given review capability and
// system prompt
func NewVerifier(capability Capability, verifierPrompt string) *Verifier {
	return &Verifier{capability: capability, prompt: verifierPrompt}
}

// Review serializes the attempt's output as "{variant} | {field dump}"
// and asks the review capability for a verdict
func (v *Verifier) Review(ctx context.Context, variantName, fieldDump string) (models.Verdict, error) {
	subject := fmt.Sprintf("%s | %s", variantName, fieldDump)

	raw, err := v.capability.Complete(ctx, v.prompt, subject)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("verifier: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	var verdict models.Verdict
	if err := dec.Decode(&verdict); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %q", ErrVerificationMalformed, raw)
	}
	return verdict, nil
}

// VerifyingRouter wraps the Router in the verification retry loop
type VerifyingRouter struct {
	router     *Router
	verifier   *Verifier
	maxRetries int
}

// NewVerifyingRouter creates the retry loop around router and verifier.
// maxRetries bounds the total router attempts per request (default 3).
func NewVerifyingRouter(router *Router, verifier *Verifier, maxRetries int) *VerifyingRouter {
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &VerifyingRouter{
		router:     router,
		verifier:   verifier,
		maxRetries: maxRetries,
	}
}

// MaxRetries returns the attempt bound
func (vr *VerifyingRouter) MaxRetries() int {
	return vr.maxRetries
}

// Run routes the request and reviews the result, retrying with feedback
// on rejection. The first verdict that passes (approved or uncertain)
// terminates the loop with that attempt's card or failure; exhausting
// all attempts yields a RouterFailure naming the retry count.
func (vr *VerifyingRouter) Run(ctx context.Context, req models.RoutingRequest, trace *Trace) (models.Card, *models.RouterFailure, error) {
	for attempt := 1; attempt <= vr.maxRetries; attempt++ {
		trace.Add("[Verify] attempt %d/%d", attempt, vr.maxRetries)

		card, failure, err := vr.router.Route(ctx, req, trace)
		if err != nil {
			return nil, nil, err
		}

		var variantName, fieldDump string
		if failure != nil {
			variantName, fieldDump = "RouterFailure", failure.Dump()
		} else {
			variantName, fieldDump = models.VariantName(card), card.Dump()
		}

		verdict, err := vr.verifier.Review(ctx, variantName, fieldDump)
		if err != nil {
			return nil, nil, err
		}

		if verdict.Passes() {
			trace.Add("[Verify] passed | approved=%v uncertain=%v", verdict.Approved, verdict.Uncertain)
			return card, failure, nil
		}

		log.Printf("[Verify] attempt %d rejected: %s", attempt, verdict.Reason)
		trace.Add("[Verify] rejected: %s", verdict.Reason)
		req = req.WithFeedback(verdict.Reason)
	}

	explanation := fmt.Sprintf("Verification failed after %d retries", vr.maxRetries)
	trace.Add("[Verify] %s", explanation)
	return nil, &models.RouterFailure{Explanation: explanation}, nil
}
