package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = `You are a glossary search expert. Given a user query and a glossary of terms, ` +
	`find the most relevant terms that match the user's intent. ` +
	`Consider synonyms, related concepts, context, and partial matches. ` +
	`Return ONLY a JSON array of term names that are EXACT matches from the glossary, ` +
	`ordered by relevance, at most 5 entries. ` +
	`Format: ["term 1", "term 2", ...]. No explanation, no markdown.`

// OpenAI implements Capability against any OpenAI-compatible chat API.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAI creates the capability. A base URL may point at a local gateway
// (Ollama, vLLM); an empty one uses the public API. Construction fails
// without an API key so the caller can leave the capability absent.
func NewOpenAI(apiKey, baseURL, model string, logger *slog.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("API key not set")
	}
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	logger.Info("Created language capability", "model", model, "base_url", cfg.BaseURL)

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}, nil
}

// RelevantTerms asks the model which glossary terms best answer the request,
// grounding it on the full corpus text.
func (o *OpenAI) RelevantTerms(ctx context.Context, request, corpusText string) ([]string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("User query: %s\n\nGlossary content:\n%s", request, corpusText),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty completion response")
	}

	names, err := parseTermNames(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("Language capability returned terms", "request", request, "count", len(names))
	return names, nil
}

// parseTermNames extracts the JSON array of term names from the model
// output. Models often wrap JSON in markdown code fences despite
// instructions, so those are stripped first.
func parseTermNames(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var names []string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		return nil, fmt.Errorf("parse term names: %w, text: %s", err, text)
	}
	return names, nil
}
