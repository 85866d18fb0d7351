package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/citeseek/citeseek/schema"
)

// apiStub mocks the /search and /generate endpoints with call counters.
type apiStub struct {
	mu            sync.Mutex
	searchCalls   int
	generateCalls int

	searchStatus   int
	results        []schema.SearchResult
	generateStatus int
	payload        schema.AnswerPayload

	// generateGate, when non-nil, blocks /generate until closed.
	generateGate chan struct{}
}

func (a *apiStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.searchCalls++
		status, results := a.searchStatus, a.results
		a.mu.Unlock()
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(schema.ErrorResponse{Error: "Search failed"})
			return
		}
		json.NewEncoder(w).Encode(schema.SearchResponse{Results: results})
	})
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.generateCalls++
		status, payload, gate := a.generateStatus, a.payload, a.generateGate
		a.mu.Unlock()
		if gate != nil {
			<-gate
		}
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(schema.ErrorResponse{Error: "Failed to generate response"})
			return
		}
		json.NewEncoder(w).Encode(payload)
	})
	return mux
}

func (a *apiStub) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.searchCalls, a.generateCalls
}

func testSources() []schema.SearchResult {
	return []schema.SearchResult{
		{Title: "Paris", Link: "https://x", Snippet: "Paris is the capital of France", DisplayLink: "x"},
	}
}

func newTestConversation(t *testing.T, stub *apiStub) *Conversation {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return New(NewClient(srv.URL))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSubmitSuccess(t *testing.T) {
	stub := &apiStub{
		results: testSources(),
		payload: schema.AnswerPayload{
			Response:         "Paris is the capital of France [1].\n\nIt is on the Seine.",
			Sources:          testSources(),
			RelatedQuestions: []string{"q1", "q2"},
		},
	}
	conv := newTestConversation(t, stub)
	if err := conv.Submit(context.Background(), "What is the capital of France?"); err != nil {
		t.Fatalf("Error running submit: %v", err)
	}
	state := conv.State()
	if state.Phase != Answered {
		t.Fatalf("Expect Answered, but got %s", state.Phase)
	}
	if state.Question != "What is the capital of France?" {
		t.Errorf("Expect question recorded, but got %q", state.Question)
	}
	if state.ActiveTab != TabAnswer {
		t.Errorf("Expect answer tab active, but got %s", state.ActiveTab)
	}
	if len(state.Sources) != 1 || state.Sources[0].Title != "Paris" {
		t.Errorf("Expect sources stored, but got %v", state.Sources)
	}
	if !reflect.DeepEqual(state.RelatedQuestions, []string{"q1", "q2"}) {
		t.Errorf("Expect related questions stored, but got %v", state.RelatedQuestions)
	}
	want := []string{"Paris is the capital of France [1].", "It is on the Seine."}
	if got := state.Paragraphs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expect paragraphs %v, but got %v", want, got)
	}
}

func TestSubmitSearchFailureSkipsGenerate(t *testing.T) {
	stub := &apiStub{searchStatus: http.StatusInternalServerError}
	conv := newTestConversation(t, stub)
	if err := conv.Submit(context.Background(), "anything"); err == nil {
		t.Fatal("Expect error on search failure")
	}
	state := conv.State()
	if state.Phase != Failed {
		t.Fatalf("Expect Failed, but got %s", state.Phase)
	}
	if state.Message != "Search failed" {
		t.Errorf("Expect Search failed message, but got %q", state.Message)
	}
	if _, generateCalls := stub.counts(); generateCalls != 0 {
		t.Errorf("Expect generate never invoked, but got %d calls", generateCalls)
	}
}

func TestSubmitGenerateFailureRetainsSources(t *testing.T) {
	stub := &apiStub{results: testSources(), generateStatus: http.StatusInternalServerError}
	conv := newTestConversation(t, stub)
	if err := conv.Submit(context.Background(), "anything"); err == nil {
		t.Fatal("Expect error on generate failure")
	}
	state := conv.State()
	if state.Phase != Failed {
		t.Fatalf("Expect Failed, but got %s", state.Phase)
	}
	if state.Message != "Failed to generate response" {
		t.Errorf("Expect generate failure message, but got %q", state.Message)
	}
	if len(state.Sources) != 1 {
		t.Errorf("Expect fetched sources retained, but got %v", state.Sources)
	}
}

func TestSubmitEmptyQuery(t *testing.T) {
	stub := &apiStub{}
	conv := newTestConversation(t, stub)
	if err := conv.Submit(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Expect ErrEmptyQuery, but got %v", err)
	}
	if searchCalls, _ := stub.counts(); searchCalls != 0 {
		t.Errorf("Expect no round trip for empty query, but got %d search calls", searchCalls)
	}
	if state := conv.State(); state.Phase != Idle {
		t.Errorf("Expect Idle, but got %s", state.Phase)
	}
}

func TestSubmitWhileLoading(t *testing.T) {
	gate := make(chan struct{})
	stub := &apiStub{results: testSources(), payload: schema.AnswerPayload{Response: "ok"}, generateGate: gate}
	conv := newTestConversation(t, stub)

	done := make(chan error, 1)
	go func() {
		done <- conv.Submit(context.Background(), "first")
	}()
	waitFor(t, func() bool {
		_, generateCalls := stub.counts()
		return generateCalls == 1
	})
	if err := conv.Submit(context.Background(), "second"); !errors.Is(err, ErrInFlight) {
		t.Errorf("Expect ErrInFlight, but got %v", err)
	}
	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("Error finishing first submit: %v", err)
	}
	state := conv.State()
	if state.Phase != Answered || state.Question != "first" {
		t.Errorf("Expect first submit to win, but got %s %q", state.Phase, state.Question)
	}
}

func TestResetDiscardsStaleResponse(t *testing.T) {
	gate := make(chan struct{})
	stub := &apiStub{results: testSources(), payload: schema.AnswerPayload{Response: "late"}, generateGate: gate}
	conv := newTestConversation(t, stub)

	done := make(chan error, 1)
	go func() {
		done <- conv.Submit(context.Background(), "superseded")
	}()
	waitFor(t, func() bool {
		_, generateCalls := stub.counts()
		return generateCalls == 1
	})
	conv.Reset()
	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("Error finishing submit: %v", err)
	}
	// The round trip succeeded, but its commit must have been discarded.
	if state := conv.State(); state.Phase != Idle || state.Answer != "" {
		t.Errorf("Expect stale response discarded, but got %s %q", state.Phase, state.Answer)
	}
}

func TestSelectTab(t *testing.T) {
	stub := &apiStub{results: testSources(), payload: schema.AnswerPayload{Response: "ok", Sources: testSources()}}
	conv := newTestConversation(t, stub)
	if err := conv.Submit(context.Background(), "anything"); err != nil {
		t.Fatal(err)
	}
	conv.SelectTab(TabSources)
	if got := conv.State().ActiveTab; got != TabSources {
		t.Errorf("Expect sources tab, but got %s", got)
	}
	conv.SelectTab(Tab("bogus"))
	if got := conv.State().ActiveTab; got != TabSources {
		t.Errorf("Expect unknown tab ignored, but got %s", got)
	}
}

func TestClickRelatedQuestionReplacesState(t *testing.T) {
	stub := &apiStub{
		results: testSources(),
		payload: schema.AnswerPayload{Response: "first answer", RelatedQuestions: []string{"follow up"}},
	}
	conv := newTestConversation(t, stub)
	if err := conv.Submit(context.Background(), "original"); err != nil {
		t.Fatal(err)
	}
	if err := conv.ClickRelatedQuestion(context.Background(), conv.State().RelatedQuestions[0]); err != nil {
		t.Fatal(err)
	}
	state := conv.State()
	if state.Question != "follow up" {
		t.Errorf("Expect follow up as the new question, but got %q", state.Question)
	}
	if searchCalls, generateCalls := stub.counts(); searchCalls != 2 || generateCalls != 2 {
		t.Errorf("Expect a fresh round trip per question, but got %d/%d", searchCalls, generateCalls)
	}
}
