package synthesis

import (
	"fmt"
	"strings"

	"github.com/citeseek/citeseek/schema"
)

const answerSystemPrompt = "You are a helpful assistant that provides accurate information based on search results. Always cite your sources using [1], [2], etc. format."

const relatedSystemPrompt = "You generate related questions based on a user's query. Always format questions without question marks at the end."

const answerPromptTemplate = `Based on the following search results, provide a comprehensive and accurate answer to the user's question. Include relevant citations using [1], [2], etc. format to reference the sources.

User Question: %s

Search Results:
%s

Please provide a well-structured response with proper citations. Only use information from the provided search results.`

const relatedPromptTemplate = `Based on the user's original question "%s", generate 5 related questions that someone might want to ask next.

Requirements:
- Questions should be related but not identical to the original question
- Format each question WITHOUT a question mark at the end
- Questions should be concise and clear
- Return only the questions, one per line
- Do not include numbers, bullets, or any other formatting

Original question: %s`

// buildContext renders the numbered source blocks embedded into the
// answer prompt: "[i] title", snippet, "Source: link", one blank line
// between sources. Indices are 1-based and match the citation markers
// the model is asked to emit.
func buildContext(sources []schema.SearchResult) string {
	blocks := make([]string, 0, len(sources))
	for i, src := range sources {
		blocks = append(blocks, fmt.Sprintf("[%d] %s\n%s\nSource: %s\n", i+1, src.Title, src.Snippet, src.Link))
	}
	return strings.Join(blocks, "\n")
}

func answerPrompt(query string, sources []schema.SearchResult) string {
	return fmt.Sprintf(answerPromptTemplate, query, buildContext(sources))
}

func relatedPrompt(query string) string {
	return fmt.Sprintf(relatedPromptTemplate, query, query)
}
