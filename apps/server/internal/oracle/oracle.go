// Package oracle adapts the OpenAI chat completions API to the engine's
// decision provider interface.
package oracle

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"arena-lite/arena"
)

// Provider submits an agent's persona and world context as one chat
// completion and returns the raw text. Parsing and every fallback belong to
// the engine; the provider only reports transport errors.
type Provider struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) *Provider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Provider{client: &client, model: model}
}

// NewProviderFromEnv wires the provider from OPENAI_API_KEY. Without a key
// the engine runs providerless and every agent falls back to observing, so
// the returned mode doubles as the default simulation mode.
func NewProviderFromEnv(model string) (arena.DecisionProvider, string) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, "demo"
	}
	log.Printf("[Oracle] Decision provider online (model=%s)", model)
	return New(apiKey, model), "live"
}

func (p *Provider) Decide(ctx context.Context, req arena.DecisionRequest) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.Context),
		},
		MaxCompletionTokens: openai.Int(500),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: func() *shared.ResponseFormatJSONObjectParam {
				p := shared.NewResponseFormatJSONObjectParam()
				return &p
			}(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("decision completion for %s: %w", req.AgentID, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("decision completion for %s: no choices returned", req.AgentID)
	}
	return resp.Choices[0].Message.Content, nil
}
