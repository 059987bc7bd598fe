package respond

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ren-assistant/internal/config"
	"ren-assistant/internal/conversation"
)

// LocalProvider is the secondary tier: a llama.cpp-style completion endpoint
// running on the same host. It trades quality for availability.
type LocalProvider struct {
	url        string
	model      string
	httpClient *http.Client
}

func NewLocalProvider(cfg config.ProviderConfig) *LocalProvider {
	return &LocalProvider{
		url:   cfg.URL,
		model: cfg.Model,
		httpClient: &http.Client{
			Transport: &http.Transport{MaxIdleConns: 4},
		},
	}
}

func (p *LocalProvider) Name() string { return "local" }

type localRequest struct {
	Model    string `json:"model,omitempty"`
	Prompt   string `json:"prompt"`
	NPredict int    `json:"n_predict"`
	Stream   bool   `json:"stream"`
}

type localResponse struct {
	Content string `json:"content"`
}

func (p *LocalProvider) Generate(ctx context.Context, message string, convCtx *conversation.Context) (*conversation.Response, error) {
	if p.url == "" {
		return nil, fmt.Errorf("local provider not configured")
	}

	prompt := buildLocalPrompt(message, convCtx)
	payload, err := json.Marshal(localRequest{
		Model:    p.model,
		Prompt:   prompt,
		NPredict: 256,
		Stream:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("local completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("local provider returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var parsed localResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed local provider output: %w", err)
	}
	return &conversation.Response{Text: strings.TrimSpace(parsed.Content)}, nil
}

func buildLocalPrompt(message string, convCtx *conversation.Context) string {
	var b strings.Builder
	b.WriteString(remoteSystemPrompt)
	b.WriteString("\n\n")
	if summary := contextSummary(convCtx); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	for _, turn := range recentHistory(convCtx, 6) {
		if turn.Role == "assistant" {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("User: ")
		}
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	b.WriteString("\nAssistant:")
	return b.String()
}
