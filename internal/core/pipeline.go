// ABOUTME: Top-level add-word pipeline: route, verify, render, write, record
// ABOUTME: Request-scoped state only; concurrent calls never share guards or counters
package core

import (
	"context"
	"fmt"
	"log"

	"github.com/harper/ankiword/internal/anki"
	"github.com/harper/ankiword/internal/models"
	"github.com/harper/ankiword/internal/storage/sqlite"
)

// CardWriter is the card store consumed by the pipeline. The production
// implementation is the AnkiConnect client.
type CardWriter interface {
	CreateDeck(ctx context.Context, deck string) (int64, error)
	AddFlashcard(ctx context.Context, deck, source string, card models.Card, tags []string) (int64, error)
}

// HistoryRecorder journals completed requests. Recording is best-effort;
// a journal error never fails the request.
type HistoryRecorder interface {
	Record(entry *sqlite.Entry) error
}

// Pipeline runs one word through classification, generation,
// verification, rendering, and the card store write
type Pipeline struct {
	agent   *VerifyingRouter
	writer  CardWriter
	history HistoryRecorder // optional
}

// NewPipeline assembles the pipeline. history may be nil.
func NewPipeline(agent *VerifyingRouter, writer CardWriter, history HistoryRecorder) *Pipeline {
	return &Pipeline{
		agent:   agent,
		writer:  writer,
		history: history,
	}
}

// Outcome is the user-visible result of one add-word request: a created
// note, a duplicate (informational), or a failure with explanation.
type Outcome struct {
	Word       string      `json:"word"`
	Deck       string      `json:"deck"`
	TargetLang string      `json:"target_lang"`
	Card       models.Card `json:"card,omitempty"`
	NoteID     int64       `json:"note_id,omitempty"`
	Duplicate  bool        `json:"duplicate,omitempty"`
	Failure    string      `json:"failure,omitempty"`
	Trace      []string    `json:"trace,omitempty"`
}

// Created reports whether a new note was written
func (o *Outcome) Created() bool {
	return o.Failure == "" && !o.Duplicate
}

// AddWord converts one word into a flashcard and files it. Routing and
// verification errors resolve inside the pipeline; card store write
// errors return to the caller, who may retry the write independently.
func (p *Pipeline) AddWord(ctx context.Context, word, deck, targetLang string) (*Outcome, error) {
	trace := NewTrace()
	log.Printf("[Pipeline] session=%s adding word %q to deck=%q target=%q",
		trace.SessionID(), word, deck, targetLang)

	req := models.NewRoutingRequest(word, deck, targetLang)

	card, failure, err := p.agent.Run(ctx, req, trace)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Word:       word,
		Deck:       deck,
		TargetLang: targetLang,
	}

	if failure != nil {
		log.Printf("[Pipeline] RouterFailure: %s", failure.Explanation)
		outcome.Failure = failure.Explanation
		outcome.Trace = trace.Events()
		p.record(outcome, "")
		return outcome, nil
	}
	outcome.Card = card

	if _, err := p.writer.CreateDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("ensuring deck %q: %w", deck, err)
	}

	noteID, err := p.writer.AddFlashcard(ctx, deck, word, card, nil)
	if err != nil {
		return nil, fmt.Errorf("writing flashcard: %w", err)
	}

	if noteID == anki.DuplicateNote {
		log.Printf("[Pipeline] flashcard duplicate; not created")
		trace.Add("[Pipeline] duplicate; not created")
		outcome.Duplicate = true
	} else {
		log.Printf("[Pipeline] note created: id=%d", noteID)
		trace.Add("[Pipeline] note_id=%d", noteID)
		outcome.NoteID = noteID
	}

	outcome.Trace = trace.Events()
	p.record(outcome, string(card.Type()))
	return outcome, nil
}

func (p *Pipeline) record(outcome *Outcome, category string) {
	if p.history == nil {
		return
	}

	entry := &sqlite.Entry{
		Word:        outcome.Word,
		Deck:        outcome.Deck,
		TargetLang:  outcome.TargetLang,
		Category:    category,
		NoteID:      outcome.NoteID,
		Explanation: outcome.Failure,
	}
	switch {
	case outcome.Failure != "":
		entry.Outcome = sqlite.OutcomeFailed
	case outcome.Duplicate:
		entry.Outcome = sqlite.OutcomeDuplicate
	default:
		entry.Outcome = sqlite.OutcomeCreated
	}

	if err := p.history.Record(entry); err != nil {
		log.Printf("[Pipeline] Warning: recording history: %v", err)
	}
}
