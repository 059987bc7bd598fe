package respond

import (
	"context"
	"log"
	"strings"
	"time"

	"ren-assistant/internal/conversation"
)

// Provider is one response-generation tier.
type Provider interface {
	Name() string
	Generate(ctx context.Context, message string, convCtx *conversation.Context) (*conversation.Response, error)
}

// Tier pairs a provider with its call budget. A zero timeout means the tier
// inherits the caller's deadline.
type Tier struct {
	Provider Provider
	Timeout  time.Duration
}

// Pipeline evaluates tiers in order and returns the first usable response.
// Errors and empty output both fall through to the next tier; the final tier
// is expected to be the rule-based generator, which cannot fail.
type Pipeline struct {
	tiers []Tier
}

func NewPipeline(tiers ...Tier) *Pipeline {
	return &Pipeline{tiers: tiers}
}

// Generate runs the fallback chain. A hung provider cannot block the turn
// past its tier timeout; cancellation from the caller's context is honored.
func (p *Pipeline) Generate(ctx context.Context, message string, convCtx *conversation.Context) (*conversation.Response, error) {
	for _, tier := range p.tiers {
		resp, err := callTier(ctx, tier, message, convCtx)
		if err != nil {
			log.Printf("[Pipeline] WARNING: provider %s failed, falling through: %v",
				tier.Provider.Name(), err)
			continue
		}
		if resp == nil || strings.TrimSpace(resp.Text) == "" {
			log.Printf("[Pipeline] WARNING: provider %s returned empty output, falling through",
				tier.Provider.Name())
			continue
		}
		return resp, nil
	}

	// Only reachable when the pipeline was assembled without a terminal
	// rule-based tier.
	log.Printf("[Pipeline] WARNING: all tiers exhausted, using static reply")
	return &conversation.Response{
		Text: "Sorry, I'm having trouble answering right now. Please try again in a moment.",
	}, nil
}

func callTier(ctx context.Context, tier Tier, message string, convCtx *conversation.Context) (*conversation.Response, error) {
	if tier.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tier.Timeout)
		defer cancel()
	}
	return tier.Provider.Generate(ctx, message, convCtx)
}
