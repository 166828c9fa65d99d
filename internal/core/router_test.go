// ABOUTME: Tests for Router classification dispatch and the at-most-once guard
// ABOUTME: Uses a scripted capability stub in place of the LLM

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/harper/ankiword/internal/models"
)

const (
	testRouterPrompt   = "You are a router. Classify the word."
	testVerifierPrompt = "You are a verifier. Review the card."

	nounJSON = `{"translation":"dog","article":"en","plural":"hundar",` +
		`"definite_sg":"hunden","definite_pl":"hundarna","sample":"En hund springer."}`

	verbJSON = `{"translation":"eat","infinitive":"ata","present":"ater","past":"at",` +
		`"supine":"atit","imperative":"at!","sample_present":"Jag ater nu.",` +
		`"sample_past":"Jag at igar.","sample_supine":"Jag har atit.","sample_imperative":"At!"}`
)

// stubCapability scripts responses per capability role, keyed by the
// system prompt. The classifier and verifier scripts receive a 1-based
// call number so tests can vary behavior across retries.
type stubCapability struct {
	mu       sync.Mutex
	classify func(call int, userPrompt string) (string, error)
	review   func(call int, userPrompt string) (string, error)
	generate func(call int, systemPrompt, userPrompt string) (string, error)

	classifyCalls  int
	reviewCalls    int
	generateCalls  int
	classifyInputs []string
	reviewInputs   []string
	generateInputs []string
}

func (s *stubCapability) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch systemPrompt {
	case testRouterPrompt:
		s.classifyCalls++
		s.classifyInputs = append(s.classifyInputs, userPrompt)
		return s.classify(s.classifyCalls, userPrompt)
	case testVerifierPrompt:
		s.reviewCalls++
		s.reviewInputs = append(s.reviewInputs, userPrompt)
		return s.review(s.reviewCalls, userPrompt)
	default:
		s.generateCalls++
		s.generateInputs = append(s.generateInputs, userPrompt)
		return s.generate(s.generateCalls, systemPrompt, userPrompt)
	}
}

func newTestRouter(stub *stubCapability) *Router {
	return NewRouter(stub, testRouterPrompt, NewGeneratorSet(stub))
}

func decision(categories ...string) string {
	calls := make([]string, len(categories))
	for i, c := range categories {
		calls[i] = fmt.Sprintf(`{"category":%q}`, c)
	}
	return fmt.Sprintf(`{"calls":[%s]}`, strings.Join(calls, ","))
}

func TestRouter_DispatchesSingleGenerator(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return decision("noun"), nil
		},
		generate: func(call int, systemPrompt, userPrompt string) (string, error) {
			return nounJSON, nil
		},
	}

	router := newTestRouter(stub)
	trace := NewTrace()

	card, failure, err := router.Route(context.Background(), models.NewRoutingRequest("hund", "DemoDeck", "Swedish"), trace)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if failure != nil {
		t.Fatalf("Route() failure = %+v, want none", failure)
	}

	noun, ok := card.(models.NounCard)
	if !ok {
		t.Fatalf("card = %T, want NounCard", card)
	}
	if noun.Translation != "dog" || noun.Article != "en" {
		t.Errorf("card = %+v, want generated noun fields", noun)
	}

	if stub.generateCalls != 1 {
		t.Errorf("generator calls = %d, want 1", stub.generateCalls)
	}
	if got := stub.generateInputs[0]; got != "SOURCE: hund\nTARGET: Swedish" {
		t.Errorf("generator input = %q, want SOURCE/TARGET lines", got)
	}
	if !trace.Contains("chose: noun") {
		t.Errorf("trace = %v, missing dispatch event", trace.Events())
	}
}

func TestRouter_ClassifierSeesRequestMessage(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return decision("fallback"), nil
		},
		generate: func(call int, systemPrompt, userPrompt string) (string, error) {
			return `{"source":"hund"}`, nil
		},
	}

	router := newTestRouter(stub)
	_, _, err := router.Route(context.Background(), models.NewRoutingRequest("hund", "DemoDeck", "Swedish"), nil)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	want := "Word: hund\nTarget language: Swedish"
	if stub.classifyInputs[0] != want {
		t.Errorf("classifier input = %q, want %q", stub.classifyInputs[0], want)
	}
}

func TestRouter_SecondDispatchIgnored(t *testing.T) {
	// Classifier asks for noun and then verb in the same attempt: only
	// the first generator runs, the second call is a suppressed no-op.
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return decision("noun", "verb"), nil
		},
		generate: func(call int, systemPrompt, userPrompt string) (string, error) {
			return nounJSON, nil
		},
	}

	router := newTestRouter(stub)
	trace := NewTrace()

	card, failure, err := router.Route(context.Background(), models.NewRoutingRequest("ata", "DemoDeck", "Swedish"), trace)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if failure != nil {
		t.Fatalf("Route() failure = %+v, want none", failure)
	}

	if _, ok := card.(models.NounCard); !ok {
		t.Errorf("card = %T, want the first dispatch's NounCard", card)
	}
	if stub.generateCalls != 1 {
		t.Errorf("generator calls = %d, want exactly 1", stub.generateCalls)
	}
	if !trace.Contains(models.DuplicateCallIgnored) {
		t.Errorf("trace = %v, missing %q", trace.Events(), models.DuplicateCallIgnored)
	}
}

func TestRouter_ManyDuplicateCallsAllIgnored(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return decision("noun", "verb", "adjective", "phrase"), nil
		},
		generate: func(call int, systemPrompt, userPrompt string) (string, error) {
			return nounJSON, nil
		},
	}

	router := newTestRouter(stub)
	trace := NewTrace()

	if _, _, err := router.Route(context.Background(), models.NewRoutingRequest("hund", "D", "Swedish"), trace); err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if stub.generateCalls != 1 {
		t.Errorf("generator calls = %d, want 1", stub.generateCalls)
	}

	ignored := 0
	for _, e := range trace.Events() {
		if strings.Contains(e, models.DuplicateCallIgnored) {
			ignored++
		}
	}
	if ignored != 3 {
		t.Errorf("ignored events = %d, want 3", ignored)
	}
}

func TestRouter_ClassifierDeclaredFailure(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return `{"failure":{"explanation":"cannot categorize"}}`, nil
		},
	}

	router := newTestRouter(stub)
	card, failure, err := router.Route(context.Background(), models.NewRoutingRequest("???", "D", "Swedish"), nil)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if card != nil {
		t.Errorf("card = %v, want nil", card)
	}
	if failure == nil || failure.Explanation != "cannot categorize" {
		t.Errorf("failure = %+v, want classifier explanation", failure)
	}
}

func TestRouter_NoCategoryCall(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return `{"calls":[]}`, nil
		},
	}

	router := newTestRouter(stub)
	card, failure, err := router.Route(context.Background(), models.NewRoutingRequest("hund", "D", "Swedish"), nil)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if card != nil || failure == nil {
		t.Errorf("card = %v failure = %v, want failure for empty decision", card, failure)
	}
}

func TestRouter_UnknownCategory(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return decision("adverb"), nil
		},
	}

	router := newTestRouter(stub)
	_, _, err := router.Route(context.Background(), models.NewRoutingRequest("fort", "D", "Swedish"), nil)
	if !errors.Is(err, models.ErrSchemaViolation) {
		t.Errorf("error = %v, want ErrSchemaViolation", err)
	}
	if stub.generateCalls != 0 {
		t.Errorf("generator calls = %d, want 0", stub.generateCalls)
	}
}

func TestRouter_UnparseableDecision(t *testing.T) {
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return "not json at all", nil
		},
	}

	router := newTestRouter(stub)
	_, _, err := router.Route(context.Background(), models.NewRoutingRequest("hund", "D", "Swedish"), nil)
	if !errors.Is(err, models.ErrSchemaViolation) {
		t.Errorf("error = %v, want ErrSchemaViolation", err)
	}
}

func TestRouter_ClassifierError(t *testing.T) {
	boom := errors.New("model timeout")
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return "", boom
		},
	}

	router := newTestRouter(stub)
	_, _, err := router.Route(context.Background(), models.NewRoutingRequest("hund", "D", "Swedish"), nil)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped classifier error", err)
	}
}

func TestRouter_GeneratorError(t *testing.T) {
	boom := errors.New("model overloaded")
	stub := &stubCapability{
		classify: func(call int, userPrompt string) (string, error) {
			return decision("verb"), nil
		},
		generate: func(call int, systemPrompt, userPrompt string) (string, error) {
			return "", boom
		},
	}

	router := newTestRouter(stub)
	_, _, err := router.Route(context.Background(), models.NewRoutingRequest("ata", "D", "Swedish"), nil)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped generator error", err)
	}
}
