package respond

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ren-assistant/internal/config"
	"ren-assistant/internal/conversation"
)

const remoteSystemPrompt = "You are REN, the assistant of a rental marketplace. " +
	"Help users search for rentals, make bookings, create listings and resolve " +
	"account or payment questions. Keep replies short, concrete and friendly. " +
	"Never invent listings or prices."

// RemoteProvider is the primary tier: an OpenAI-compatible chat completion
// backend, guarded by a circuit breaker.
type RemoteProvider struct {
	client  *openai.Client
	model   string
	breaker *Breaker
}

// NewRemoteProvider builds the remote tier from config. A custom URL points
// the client at any OpenAI-compatible gateway.
func NewRemoteProvider(cfg config.ProviderConfig, breaker *Breaker) *RemoteProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.URL != "" {
		clientCfg.BaseURL = cfg.URL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &RemoteProvider{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		breaker: breaker,
	}
}

func (p *RemoteProvider) Name() string { return "remote" }

func (p *RemoteProvider) Generate(ctx context.Context, message string, convCtx *conversation.Context) (*conversation.Response, error) {
	if p.breaker != nil {
		if err := p.breaker.Allow(); err != nil {
			return nil, err
		}
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: remoteSystemPrompt},
	}
	if summary := contextSummary(convCtx); summary != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: summary,
		})
	}
	for _, turn := range recentHistory(convCtx, 10) {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if p.breaker != nil {
		p.breaker.Record(err)
	}
	if err != nil {
		return nil, fmt.Errorf("remote completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	return &conversation.Response{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

// contextSummary flattens remembered context into a short system note.
func contextSummary(convCtx *conversation.Context) string {
	if convCtx == nil {
		return ""
	}
	var parts []string
	if convCtx.Topic != nil {
		parts = append(parts, "current topic: "+convCtx.Topic.Primary)
	}
	if len(convCtx.Entities.Items) > 0 {
		parts = append(parts, "items mentioned: "+strings.Join(convCtx.Entities.Items, ", "))
	}
	if len(convCtx.Entities.Locations) > 0 {
		parts = append(parts, "locations mentioned: "+strings.Join(convCtx.Entities.Locations, ", "))
	}
	if inferred, ok := convCtx.Preferences["inferred"].(map[string]any); ok {
		if budget, ok := inferred["budget"].(float64); ok {
			parts = append(parts, fmt.Sprintf("budget around $%g", budget))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Known conversation context: " + strings.Join(parts, "; ") + "."
}

func recentHistory(convCtx *conversation.Context, max int) []conversation.HistoryMessage {
	if convCtx == nil || len(convCtx.History) == 0 {
		return nil
	}
	history := convCtx.History
	if len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}
