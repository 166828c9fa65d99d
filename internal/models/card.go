// ABOUTME: Flashcard type definitions for the routing pipeline
// ABOUTME: Defines the closed set of 5 card variants plus RouterFailure and Verdict
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CardType identifies the lexical category of a card
type CardType string

const (
	// CardTypeNoun - a noun with gender article and definite forms
	CardTypeNoun CardType = "noun"

	// CardTypeAdjective - an adjective with comparison forms
	CardTypeAdjective CardType = "adjective"

	// CardTypeVerb - a verb with its principal forms and samples
	CardTypeVerb CardType = "verb"

	// CardTypePhrase - a multi-word expression
	CardTypePhrase CardType = "phrase"

	// CardTypeFallback - anything that fits no structured category
	CardTypeFallback CardType = "fallback"
)

// IsValid reports whether the card type is one of the five known categories
func (t CardType) IsValid() bool {
	switch t {
	case CardTypeNoun, CardTypeAdjective, CardTypeVerb, CardTypePhrase, CardTypeFallback:
		return true
	}
	return false
}

// ErrSchemaViolation marks output outside the closed card set.
// Fatal for the attempt that produced it, never retried.
var ErrSchemaViolation = errors.New("schema violation")

// SchemaViolationf wraps ErrSchemaViolation with a formatted description
func SchemaViolationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSchemaViolation, fmt.Sprintf(format, args...))
}

// Card is the closed union of flashcard variants. Exactly one concrete
// type backs any Card value; consumers switch exhaustively on the
// concrete type and treat anything else as a schema violation.
type Card interface {
	// Type returns the lexical category of the variant
	Type() CardType

	// Dump returns a compact field dump used for verification review
	Dump() string
}

// NounCard holds a generated noun flashcard
type NounCard struct {
	Translation string `json:"translation"`
	Article     string `json:"article"` // grammatical gender tag: "en" or "ett"
	Plural      string `json:"plural"`
	DefiniteSg  string `json:"definite_sg"`
	DefinitePl  string `json:"definite_pl"`
	Sample      string `json:"sample"`
}

func (c NounCard) Type() CardType { return CardTypeNoun }
func (c NounCard) Dump() string   { return dump(c) }

// AdjectiveCard holds a generated adjective flashcard.
// Comparative and Superlative are optional; empty means absent.
type AdjectiveCard struct {
	Translation string `json:"translation"`
	Positive    string `json:"positive"`
	Comparative string `json:"comparative,omitempty"`
	Superlative string `json:"superlative,omitempty"`
	Sample      string `json:"sample"`
}

func (c AdjectiveCard) Type() CardType { return CardTypeAdjective }
func (c AdjectiveCard) Dump() string   { return dump(c) }

// VerbCard holds a generated verb flashcard. All five forms are
// mandatory, each paired with its own short sample phrase.
type VerbCard struct {
	Translation      string `json:"translation"`
	Infinitive       string `json:"infinitive"`
	Present          string `json:"present"`
	Past             string `json:"past"`
	Supine           string `json:"supine"`
	Imperative       string `json:"imperative"`
	SamplePresent    string `json:"sample_present"`
	SamplePast       string `json:"sample_past"`
	SampleSupine     string `json:"sample_supine"`
	SampleImperative string `json:"sample_imperative"`
}

func (c VerbCard) Type() CardType { return CardTypeVerb }
func (c VerbCard) Dump() string   { return dump(c) }

// PhraseCard holds a generated phrase flashcard. Pattern is optional.
type PhraseCard struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Pattern     string `json:"pattern,omitempty"`
	Sample      string `json:"sample"`
}

func (c PhraseCard) Type() CardType { return CardTypePhrase }
func (c PhraseCard) Dump() string   { return dump(c) }

// FallbackCard echoes the source text verbatim for input that fits no
// structured category. Everything beyond Source is optional.
type FallbackCard struct {
	Source      string `json:"source"`
	Translation string `json:"translation,omitempty"`
	Sample      string `json:"sample,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (c FallbackCard) Type() CardType { return CardTypeFallback }
func (c FallbackCard) Dump() string   { return dump(c) }

// RouterFailure signals the router could not produce any card. Terminal:
// never rendered, never written, only reported.
type RouterFailure struct {
	Explanation string `json:"explanation"`
}

func (f RouterFailure) Dump() string { return dump(f) }

// Verdict is the verifier's review of one generated card
type Verdict struct {
	Approved  bool   `json:"approved"`
	Uncertain bool   `json:"uncertain"`
	Reason    string `json:"reason"`
}

// Passes reports whether the verdict lets the card through. Uncertain
// counts as a pass: a false rejection costs more than an unreviewed card.
func (v Verdict) Passes() bool {
	return v.Approved || v.Uncertain
}

// VariantName returns the review label for a card variant
func VariantName(c Card) string {
	switch c.(type) {
	case NounCard:
		return "NounCard"
	case AdjectiveCard:
		return "AdjectiveCard"
	case VerbCard:
		return "VerbCard"
	case PhraseCard:
		return "PhraseCard"
	case FallbackCard:
		return "FallbackCard"
	}
	return fmt.Sprintf("Unknown(%T)", c)
}

func dump(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
