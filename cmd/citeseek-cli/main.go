// citeseek-cli is a terminal client for a running citeseek server. It
// drives one conversation slot: type a question, read the cited answer,
// then either pick a follow-up question by number or ask something new.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/citeseek/citeseek/conversation"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "citeseek server base URL")
	timeout := flag.Duration("timeout", 60*time.Second, "round trip timeout")
	flag.Parse()

	conv := conversation.New(conversation.NewClient(*serverURL))
	fmt.Println("citeseek — ask a question, or /sources, /answer, /reset, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/reset":
			conv.Reset()
			continue
		case line == "/sources":
			conv.SelectTab(conversation.TabSources)
			render(conv.State())
			continue
		case line == "/answer":
			conv.SelectTab(conversation.TabAnswer)
			render(conv.State())
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		err := submit(ctx, conv, line)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		render(conv.State())
	}
}

// submit treats a bare number as picking one of the displayed follow-up
// questions; anything else is a fresh query.
func submit(ctx context.Context, conv *conversation.Conversation, line string) error {
	if n, err := strconv.Atoi(line); err == nil {
		questions := conv.State().RelatedQuestions
		if n >= 1 && n <= len(questions) {
			return conv.ClickRelatedQuestion(ctx, questions[n-1])
		}
	}
	return conv.Submit(ctx, line)
}

func render(state conversation.State) {
	switch state.Phase {
	case conversation.Failed:
		fmt.Printf("\n%s\n\n", state.Message)
	case conversation.Answered:
	default:
		return
	}

	if state.ActiveTab == conversation.TabSources || state.Phase == conversation.Failed {
		renderSources(state)
		return
	}
	for _, paragraph := range state.Paragraphs() {
		fmt.Println(paragraph)
	}
	if len(state.RelatedQuestions) > 0 {
		fmt.Println("\nRelated questions:")
		for i, q := range state.RelatedQuestions {
			fmt.Printf("  %d. %s\n", i+1, q)
		}
	}
	fmt.Println()
}

func renderSources(state conversation.State) {
	if len(state.Sources) == 0 {
		fmt.Println("No sources.")
		return
	}
	for i, src := range state.Sources {
		fmt.Printf("[%d] %s\n    %s\n    %s\n", i+1, src.Title, src.DisplayLink, src.Link)
	}
	fmt.Println()
}
