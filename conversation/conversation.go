// Package conversation implements the client side state machine for one
// conversation slot: Idle -> Loading -> {Answered, Failed}, with every
// submit re-entering Loading and fully replacing prior state. Each query
// is answered independently with fresh search results; nothing persists
// beyond the most recent question.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/atomic"

	"github.com/citeseek/citeseek/schema"
)

// Phase is the lifecycle phase of the conversation slot.
type Phase int

const (
	Idle Phase = iota
	Loading
	Answered
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Answered:
		return "answered"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Tab selects which sub-view is active once an answer arrived.
type Tab string

const (
	TabAnswer  Tab = "answer"
	TabSources Tab = "sources"
)

const (
	searchFailedMessage   = "Search failed"
	generateFailedMessage = "Failed to generate response"
)

var (
	// ErrEmptyQuery reports a blank submit.
	ErrEmptyQuery = errors.New("conversation: query is empty")
	// ErrInFlight reports a submit while a round trip is still running.
	ErrInFlight = errors.New("conversation: a request is already in flight")
)

// State is a snapshot of the conversation. Slices are shared with the
// conversation and must be treated as read-only.
type State struct {
	Phase            Phase
	Question         string
	Answer           string
	Sources          []schema.SearchResult
	RelatedQuestions []string
	// Message is the flash message shown in the Failed phase.
	Message   string
	ActiveTab Tab
}

// Paragraphs splits the answer on line breaks for rendering, dropping
// empty lines. Citation markers stay literal text.
func (s State) Paragraphs() []string {
	lines := strings.Split(s.Answer, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		if p := strings.TrimSpace(line); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Conversation sequences the two-stage round trip (search, then
// generate) and tracks view state. A monotonic generation token claimed
// at submit entry and checked before every commit makes late-arriving
// responses from a superseded round trip write nothing.
type Conversation struct {
	id     string
	client *Client
	gen    *atomic.Int64
	mu     sync.Mutex
	state  State
}

// New returns an Idle conversation backed by the given client.
func New(client *Client) *Conversation {
	return &Conversation{
		id:     xid.New().String(),
		client: client,
		gen:    atomic.NewInt64(0),
		state:  State{Phase: Idle, ActiveTab: TabAnswer},
	}
}

// ID returns the conversation slot identifier.
func (c *Conversation) ID() string {
	return c.id
}

// State returns the current snapshot.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one full round trip for text. It blocks until the round
// trip finishes; concurrent submits on the same slot return ErrInFlight.
// On search failure the synthesizer is never invoked. On generate
// failure the already fetched sources are retained for display.
func (c *Conversation) Submit(ctx context.Context, text string) error {
	query := strings.TrimSpace(text)
	if query == "" {
		return ErrEmptyQuery
	}
	gen, err := c.begin(query)
	if err != nil {
		return err
	}

	results, err := c.client.Search(ctx, query)
	if err != nil {
		c.commit(gen, State{Phase: Failed, Question: query, Message: searchFailedMessage, ActiveTab: TabAnswer})
		return err
	}

	payload, err := c.client.Generate(ctx, query, results)
	if err != nil {
		c.commit(gen, State{Phase: Failed, Question: query, Sources: results, Message: generateFailedMessage, ActiveTab: TabAnswer})
		return err
	}

	c.commit(gen, State{
		Phase:            Answered,
		Question:         query,
		Answer:           payload.Response,
		Sources:          payload.Sources,
		RelatedQuestions: payload.RelatedQuestions,
		ActiveTab:        TabAnswer,
	})
	return nil
}

// ClickRelatedQuestion submits a suggested follow-up, replacing the
// prior conversation state exactly like a fresh submit.
func (c *Conversation) ClickRelatedQuestion(ctx context.Context, question string) error {
	return c.Submit(ctx, question)
}

// SelectTab switches the active sub-view between answer and sources.
func (c *Conversation) SelectTab(tab Tab) {
	if tab != TabAnswer && tab != TabSources {
		return
	}
	c.mu.Lock()
	c.state.ActiveTab = tab
	c.mu.Unlock()
}

// Reset returns the slot to Idle. Bumping the generation invalidates any
// round trip still in flight so its eventual commit is discarded.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.gen.Inc()
	c.state = State{Phase: Idle, ActiveTab: TabAnswer}
	c.mu.Unlock()
}

// begin claims a new generation and enters Loading, clearing all prior
// results, answer, related questions and error message.
func (c *Conversation) begin(query string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase == Loading {
		return 0, ErrInFlight
	}
	gen := c.gen.Inc()
	c.state = State{Phase: Loading, Question: query, ActiveTab: TabAnswer}
	return gen, nil
}

// commit stores the outcome unless a newer submit or reset superseded
// this round trip.
func (c *Conversation) commit(gen int64, next State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen {
		// stale response from a superseded round trip
		return
	}
	c.state = next
}
