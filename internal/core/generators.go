// ABOUTME: Category generators producing exactly one typed card each
// ABOUTME: Five sealed prompt/response contracts over the capability interface
package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/harper/ankiword/internal/models"
)

// Generator system prompts. Router and verifier prompts are loaded from
// files; these sub-agent contracts ship with the binary.
const (
	nounPrompt = `INPUT: a source word/phrase and a TARGET language.
TASK: Return a JSON object with fields translation, article, plural, definite_sg, definite_pl, sample.
1) translation: <concise translation into TARGET>
2) article is the gender article ("en" or "ett")
3) definite_sg and definite_pl are singular and plural in the defined form, respectively
4) sample is a useful sample phrase with the noun`

	adjectivePrompt = `INPUT: an adjective and TARGET language.
Return a JSON object with translation, positive, comparative (opt), superlative (opt), sample.`

	verbPrompt = `INPUT: a verb (infinitive) and a TARGET language.
TASK: Return a JSON object with fields translation, infinitive, present, past, supine, imperative,
sample_present, sample_past, sample_supine, sample_imperative.
1) translation: <word in target language>
2) The rest of the fields represent the different tenses and sample phrases in those tenses.
Use common and useful phrases. Make up a different phrase for each tense.`

	phrasePrompt = `INPUT: a phrase/expression and TARGET language.
Return a JSON object with text, translation, pattern (opt), sample.`

	fallbackPrompt = `INPUT may be ambiguous/non-lexical.
Return a JSON object with source (echo the input verbatim) and optional translation/sample/notes.`
)

// GeneratorSet dispatches to the five category generators. Generators
// have no side effects beyond producing the typed card.
type GeneratorSet struct {
	capability Capability
}

// NewGeneratorSet creates generators backed by the given capability
func NewGeneratorSet(capability Capability) *GeneratorSet {
	return &GeneratorSet{capability: capability}
}

// Generate runs the generator for one category and decodes its output
// into that category's card variant. Output that does not parse as the
// variant is a schema violation.
func (g *GeneratorSet) Generate(ctx context.Context, category models.CardType, source, targetLang string) (models.Card, error) {
	switch category {
	case models.CardTypeNoun:
		prompt := fmt.Sprintf("SOURCE: %s\nTARGET: %s", source, targetLang)
		var card models.NounCard
		if err := g.invoke(ctx, category, nounPrompt, prompt, &card); err != nil {
			return nil, err
		}
		if err := validateNoun(card); err != nil {
			return nil, err
		}
		return card, nil

	case models.CardTypeAdjective:
		prompt := fmt.Sprintf("ADJECTIVE: %s\nTARGET: %s", source, targetLang)
		var card models.AdjectiveCard
		if err := g.invoke(ctx, category, adjectivePrompt, prompt, &card); err != nil {
			return nil, err
		}
		if card.Translation == "" || card.Positive == "" || card.Sample == "" {
			return nil, models.SchemaViolationf("adjective card missing mandatory fields: %s", card.Dump())
		}
		return card, nil

	case models.CardTypeVerb:
		prompt := fmt.Sprintf("VERB: %s\nTARGET: %s", source, targetLang)
		var card models.VerbCard
		if err := g.invoke(ctx, category, verbPrompt, prompt, &card); err != nil {
			return nil, err
		}
		if err := validateVerb(card); err != nil {
			return nil, err
		}
		return card, nil

	case models.CardTypePhrase:
		prompt := fmt.Sprintf("PHRASE: %s\nTARGET: %s", source, targetLang)
		var card models.PhraseCard
		if err := g.invoke(ctx, category, phrasePrompt, prompt, &card); err != nil {
			return nil, err
		}
		if card.Text == "" || card.Translation == "" || card.Sample == "" {
			return nil, models.SchemaViolationf("phrase card missing mandatory fields: %s", card.Dump())
		}
		return card, nil

	case models.CardTypeFallback:
		prompt := fmt.Sprintf("FALLBACK SOURCE: %s\nTARGET: %s", source, targetLang)
		var card models.FallbackCard
		if err := g.invoke(ctx, category, fallbackPrompt, prompt, &card); err != nil {
			return nil, err
		}
		if card.Source == "" {
			// Fallback must echo the source even when the model drops it
			card.Source = source
		}
		return card, nil
	}

	return nil, models.SchemaViolationf("unknown card category %q", category)
}

func (g *GeneratorSet) invoke(ctx context.Context, category models.CardType, systemPrompt, userPrompt string, out interface{}) error {
	log.Printf("[Generators] %s sub-agent prompt: %s", category, userPrompt)

	raw, err := g.capability.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return fmt.Errorf("%s generator: %w", category, err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return models.SchemaViolationf("%s generator returned unparseable output %q: %v", category, raw, err)
	}
	return nil
}

func validateNoun(card models.NounCard) error {
	if card.Translation == "" || card.Plural == "" || card.DefiniteSg == "" ||
		card.DefinitePl == "" || card.Sample == "" {
		return models.SchemaViolationf("noun card missing mandatory fields: %s", card.Dump())
	}
	if card.Article != "en" && card.Article != "ett" {
		return models.SchemaViolationf("noun card has invalid article %q", card.Article)
	}
	return nil
}

func validateVerb(card models.VerbCard) error {
	mandatory := []string{
		card.Translation,
		card.Infinitive, card.Present, card.Past, card.Supine, card.Imperative,
		card.SamplePresent, card.SamplePast, card.SampleSupine, card.SampleImperative,
	}
	for _, field := range mandatory {
		if field == "" {
			return models.SchemaViolationf("verb card missing mandatory fields: %s", card.Dump())
		}
	}
	return nil
}
