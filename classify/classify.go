// Package classify wraps the optional LLM-backed priority classifier. The
// heuristic engine is always the fallback; nothing here is required for
// correctness.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/jorget15/UnityAid/triage"
	"github.com/jorget15/UnityAid/types"
)

const classifyTimeout = 5 * time.Second

const systemPrompt = `You are a disaster response triage specialist. Classify the priority of the emergency ticket from 1 (lowest) to 5 (critical/life-threatening). Respond with a JSON object of the form {"priority": <1-5>} and nothing else.`

// PriorityClassifier is the external classifier collaborator contract.
type PriorityClassifier interface {
	Classify(ctx context.Context, text string) (int, error)
}

// OpenAIClassifier asks a chat model for a priority with a bounded timeout.
type OpenAIClassifier struct {
	client *openai.Client
}

// NewFromEnv returns nil when OPENAI_API_KEY is unset, which disables the
// collaborator entirely.
func NewFromEnv() *OpenAIClassifier {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	return &OpenAIClassifier{client: openai.NewClient(apiKey)}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT3Dot5Turbo,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: "Classify the priority of the following ticket: " + text,
				},
			},
			MaxTokens: 50,
		},
	)
	if err != nil {
		return 0, fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("openai classify: empty response")
	}

	var parsed struct {
		Priority int `json:"priority"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return 0, fmt.Errorf("openai classify: bad response %q: %w", content, err)
	}
	if parsed.Priority < 1 || parsed.Priority > 5 {
		return 0, fmt.Errorf("openai classify: priority %d out of range", parsed.Priority)
	}
	return parsed.Priority, nil
}

// WithFallback classifies text heuristically and lets the collaborator
// override the priority when it answers in time. Any collaborator failure
// leaves the heuristic result unchanged.
func WithFallback(ctx context.Context, c PriorityClassifier, text string) types.PriorityResult {
	result := triage.Classify(text)
	if c == nil {
		return result
	}

	priority, err := c.Classify(ctx, text)
	if err != nil {
		log.Printf("classifier unavailable, keeping heuristic result: %v", err)
		return result
	}
	result.Priority = priority
	result.Recommendation = triage.Recommendation(priority)
	result.Source = "llm_classifier"
	return result
}
