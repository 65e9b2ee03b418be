package assistant

import (
	"context"
	"fmt"
	"strings"

	"politix/internal/insight"
	"politix/internal/llmclient"
)

const systemPrompt = `
You are a specialized AI that analyzes regulatory insights and answers questions about them.
You have access to a set of regulatory insights that you can reference in your answers.
Always provide specific references to the insights you're using in your answer.
Be factual, precise, and only use the information provided in the insights.
If the information to answer the question is not available in the insights, clearly state that.
`

// Service answers free-form questions grounded on a caller-provided set of
// insights. The insights travel with the request rather than being fetched
// here so the answer reflects exactly what the caller is looking at.
type Service struct {
	llm llmclient.Client
}

func New(llm llmclient.Client) *Service {
	return &Service{llm: llm}
}

// Ask runs the query against the given insights and returns the model's
// answer verbatim.
func (s *Service) Ask(ctx context.Context, query string, insights []insight.Insight) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	if len(insights) == 0 {
		return "", fmt.Errorf("insights are required")
	}

	answer, err := s.llm.Complete(ctx, llmclient.ChatRequest{
		System:      systemPrompt,
		User:        buildUserPrompt(query, insights),
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("regulatory assistant: %w", err)
	}
	return answer, nil
}

// buildUserPrompt flattens the insights into labeled text blocks the model can
// cite by id.
func buildUserPrompt(query string, insights []insight.Insight) string {
	blocks := make([]string, 0, len(insights))
	for _, in := range insights {
		blocks = append(blocks, fmt.Sprintf(`
INSIGHT ID: %s
TITLE: %s
DESCRIPTION: %s
SOURCE: %s
PRIORITY: %s
DATE: %s
TOPIC: %s
`, in.ID, in.Title, in.Description, in.Source, in.Priority, in.Date, in.Topic))
	}
	return fmt.Sprintf(`
I want you to analyze the following regulatory insights and answer my question:

%s

My question is: %s
`, strings.Join(blocks, "\n\n"), query)
}
