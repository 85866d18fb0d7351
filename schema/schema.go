// Package schema defines the wire types shared by the search gateway,
// the answer synthesizer and the conversation client.
package schema

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a request against its validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// SearchResult is a single normalized web search result. Providers map
// their records into this shape preserving relevance order; missing
// optional fields stay empty strings.
type SearchResult struct {
	// Title is the result title.
	Title string `json:"title"`
	// Link is the full URL of the result.
	Link string `json:"link" validate:"omitempty,url"`
	// Snippet is a short content excerpt.
	Snippet string `json:"snippet"`
	// DisplayLink is the human readable host shown next to the result.
	DisplayLink string `json:"displayLink"`
}

func (s SearchResult) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// AnswerPayload is the combined output of the answer synthesizer.
// Sources is always exactly the slice the caller supplied, never
// filtered or reordered. Citation markers [n] inside Response refer to
// the 1-based position in Sources and are advisory model output, not
// validated against len(Sources).
type AnswerPayload struct {
	Response         string         `json:"response"`
	Sources          []SearchResult `json:"sources"`
	RelatedQuestions []string       `json:"relatedQuestions,omitempty"`
}

func (s AnswerPayload) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
