// ABOUTME: AnkiConnect HTTP client for deck and note management
// ABOUTME: Maps transport failures, envelope errors, and duplicate notes to distinct outcomes
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// APIVersion is the AnkiConnect protocol version
	APIVersion = 6

	// DefaultURL is the standard local AnkiConnect endpoint
	DefaultURL = "http://127.0.0.1:8765"
)

// DuplicateNote is returned by AddNote when AnkiConnect rejects the note
// as a duplicate. Informational, not an error.
const DuplicateNote int64 = -2

// ErrUnreachable marks transport-level failures: connection refused,
// timeout, malformed JSON. Distinct from an error reported in the
// response envelope.
var ErrUnreachable = errors.New("cannot reach AnkiConnect")

// Client talks to a local AnkiConnect instance
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given AnkiConnect URL. An empty
// apiKey omits the key field from request bodies.
func NewClient(url, apiKey string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NoteFields holds the two fields of a Basic note
type NoteFields struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

// DuplicateScopeOptions scope duplicate detection to a single deck
type DuplicateScopeOptions struct {
	DeckName       string `json:"deckName"`
	CheckChildren  bool   `json:"checkChildren"`
	CheckAllModels bool   `json:"checkAllModels"`
}

// NoteOptions control AnkiConnect's duplicate policy
type NoteOptions struct {
	AllowDuplicate        bool                  `json:"allowDuplicate"`
	DuplicateScope        string                `json:"duplicateScope"`
	DuplicateScopeOptions DuplicateScopeOptions `json:"duplicateScopeOptions"`
}

// Note is the addNote payload
type Note struct {
	DeckName  string      `json:"deckName"`
	ModelName string      `json:"modelName"`
	Fields    NoteFields  `json:"fields"`
	Options   NoteOptions `json:"options"`
	Tags      []string    `json:"tags"`
}

type request struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params,omitempty"`
	Key     string      `json:"key,omitempty"`
}

// Invoke performs one AnkiConnect action and returns the raw result.
// Envelope errors come back as plain errors; transport and JSON
// failures wrap ErrUnreachable.
func (c *Client) Invoke(ctx context.Context, action string, params interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(request{
		Action:  action,
		Version: APIVersion,
		Params:  params,
		Key:     c.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Anki] Failed to reach AnkiConnect at %s for action=%s: %v", c.url, action, err)
		return nil, fmt.Errorf("%w at %s: is Anki running with AnkiConnect enabled? (%v)", ErrUnreachable, c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		log.Printf("[Anki] Invalid JSON from AnkiConnect for action=%s: %v", action, err)
		return nil, fmt.Errorf("%w: invalid JSON response (%v)", ErrUnreachable, err)
	}

	result, hasResult := envelope["result"]
	errMsg, hasError := envelope["error"]
	if !hasResult || !hasError {
		return nil, fmt.Errorf("invalid AnkiConnect response: missing result or error field")
	}

	var apiErr *string
	if err := json.Unmarshal(errMsg, &apiErr); err != nil {
		return nil, fmt.Errorf("invalid AnkiConnect error field: %w", err)
	}
	if apiErr != nil {
		return nil, fmt.Errorf("AnkiConnect error: %s", *apiErr)
	}

	return result, nil
}

// CreateDeck ensures the deck exists. Idempotent: safe to call before
// every write.
func (c *Client) CreateDeck(ctx context.Context, deck string) (int64, error) {
	raw, err := c.Invoke(ctx, "createDeck", map[string]interface{}{"deck": deck})
	if err != nil {
		return 0, err
	}

	// createDeck returns the new deck id, or null if it already existed
	var deckID *int64
	if err := json.Unmarshal(raw, &deckID); err != nil {
		return 0, fmt.Errorf("parsing createDeck result: %w", err)
	}
	if deckID == nil {
		return 0, nil
	}
	return *deckID, nil
}

// AddNote submits a Basic note. Returns the new note id on success, or
// DuplicateNote when the deck already holds a note with the same
// front/back.
func (c *Client) AddNote(ctx context.Context, note Note) (int64, error) {
	raw, err := c.Invoke(ctx, "addNote", map[string]interface{}{"note": note})
	if err != nil {
		if errors.Is(err, ErrUnreachable) {
			return 0, err
		}
		if isDuplicateError(err.Error()) {
			log.Printf("[Anki] Duplicate note detected; skipping creation")
			return DuplicateNote, nil
		}
		return 0, err
	}

	var noteID int64
	if err := json.Unmarshal(raw, &noteID); err != nil {
		return 0, fmt.Errorf("parsing addNote result: %w", err)
	}
	return noteID, nil
}

// NewBasicNote builds an addNote payload with the duplicate policy
// scoped to the target deck
func NewBasicNote(deck, front, back string, tags []string) Note {
	if tags == nil {
		tags = []string{}
	}
	return Note{
		DeckName:  deck,
		ModelName: "Basic",
		Fields:    NoteFields{Front: front, Back: back},
		Options: NoteOptions{
			AllowDuplicate: false,
			DuplicateScope: "deck",
			DuplicateScopeOptions: DuplicateScopeOptions{
				DeckName:       deck,
				CheckChildren:  false,
				CheckAllModels: false,
			},
		},
		Tags: tags,
	}
}

// isDuplicateError recognizes AnkiConnect's duplicate-note rejection.
// AnkiConnect reports it as free text; the substring match lives here so
// a structured error from a future backend only touches this function.
func isDuplicateError(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "duplicate")
}
