// ABOUTME: Renders typed cards into two-field Basic notes
// ABOUTME: Per-variant front/back layout with conditional optional lines
package anki

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/harper/ankiword/internal/models"
)

// RenderedNote is the flat form of a card ready for submission
type RenderedNote struct {
	Front string
	Back  string
	Tags  []string
}

// Render converts a card into front/back text and tags. Optional fields
// that are unset produce no line at all. Anything outside the closed
// card set is a schema violation.
func Render(source string, card models.Card) (RenderedNote, error) {
	switch c := card.(type) {
	case models.NounCard:
		back := fmt.Sprintf(
			"Translation: %s\nArticle: %s\nPlural: %s\nDefinite: %s (sg), %s (pl)\nSample: %s",
			c.Translation, c.Article, c.Plural, c.DefiniteSg, c.DefinitePl, c.Sample)
		return RenderedNote{
			Front: source,
			Back:  back,
			Tags:  []string{"ai", "noun"},
		}, nil

	case models.AdjectiveCard:
		lines := []string{
			fmt.Sprintf("Translation: %s", c.Translation),
			fmt.Sprintf("Positive: %s", c.Positive),
		}
		if c.Comparative != "" {
			lines = append(lines, fmt.Sprintf("Comparative: %s", c.Comparative))
		}
		if c.Superlative != "" {
			lines = append(lines, fmt.Sprintf("Superlative: %s", c.Superlative))
		}
		lines = append(lines, fmt.Sprintf("Sample: %s", c.Sample))
		return RenderedNote{
			Front: source,
			Back:  strings.Join(lines, "\n"),
			Tags:  []string{"ai", "adjective"},
		}, nil

	case models.VerbCard:
		back := fmt.Sprintf(
			"Translation: %s\nForms:\n"+
				"- Infinitive: %s\n"+
				"- Present: %s — %s\n"+
				"- Past: %s — %s\n"+
				"- Supine: %s — %s\n"+
				"- Imperative: %s — %s",
			c.Translation,
			c.Infinitive,
			c.Present, c.SamplePresent,
			c.Past, c.SamplePast,
			c.Supine, c.SampleSupine,
			c.Imperative, c.SampleImperative)
		return RenderedNote{
			Front: fmt.Sprintf("%s (verb)", source),
			Back:  back,
			Tags:  []string{"ai", "verb"},
		}, nil

	case models.PhraseCard:
		lines := []string{
			fmt.Sprintf("Phrase: %s", c.Text),
			fmt.Sprintf("Translation: %s", c.Translation),
		}
		if c.Pattern != "" {
			lines = append(lines, fmt.Sprintf("Pattern: %s", c.Pattern))
		}
		lines = append(lines, fmt.Sprintf("Sample: %s", c.Sample))
		return RenderedNote{
			Front: source,
			Back:  strings.Join(lines, "\n"),
			Tags:  []string{"ai", "phrase"},
		}, nil

	case models.FallbackCard:
		lines := []string{fmt.Sprintf("Source: %s", c.Source)}
		if c.Translation != "" {
			lines = append(lines, fmt.Sprintf("Translation: %s", c.Translation))
		}
		if c.Sample != "" {
			lines = append(lines, fmt.Sprintf("Sample: %s", c.Sample))
		}
		if c.Notes != "" {
			lines = append(lines, fmt.Sprintf("Notes: %s", c.Notes))
		}
		return RenderedNote{
			Front: source,
			Back:  strings.Join(lines, "\n"),
			Tags:  []string{"ai", "fallback"},
		}, nil
	}

	return RenderedNote{}, models.SchemaViolationf("cannot render card of type %T", card)
}

// AddFlashcard renders a card and submits it to the deck, appending the
// variant tags to any extra tags given. Returns the note id or
// DuplicateNote.
func (c *Client) AddFlashcard(ctx context.Context, deck, source string, card models.Card, tags []string) (int64, error) {
	rendered, err := Render(source, card)
	if err != nil {
		return 0, err
	}

	allTags := make([]string, 0, len(tags)+len(rendered.Tags))
	allTags = append(allTags, tags...)
	allTags = append(allTags, rendered.Tags...)

	log.Printf("[Anki] Adding %s flashcard: deck=%s word=%s", card.Type(), deck, source)
	return c.AddNote(ctx, NewBasicNote(deck, rendered.Front, rendered.Back, allTags))
}
