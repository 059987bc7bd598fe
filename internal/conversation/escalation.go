package conversation

import (
	"strings"

	"ren-assistant/internal/config"
	"ren-assistant/internal/nlu"
)

// Escalation reasons, surfaced in the escalate_to_human action payload.
const (
	ReasonFrustrated           = "frustrated"
	ReasonExplicitRequest      = "explicit request"
	ReasonClarificationFailure = "repeated clarification failure"
	ReasonComplexAccountIssue  = "complex account issue"
)

// EscalationPolicy decides when a conversation is handed to a human agent.
// Conditions are checked in a fixed order and short-circuit on the first hit.
type EscalationPolicy struct {
	cfg config.DialogueConfig
}

func NewEscalationPolicy(cfg config.DialogueConfig) *EscalationPolicy {
	return &EscalationPolicy{cfg: cfg}
}

// Evaluate returns an escalation response, or nil to continue the pipeline.
func (p *EscalationPolicy) Evaluate(message string, intent *nlu.Intent, sentiment *nlu.Sentiment, convCtx *Context) *Response {
	switch {
	case sentiment.Tone == nlu.ToneFrustrated && sentiment.Confidence > p.cfg.FrustrationConfidence:
		return escalationResponse(ReasonFrustrated)

	case nlu.MentionsHumanSupport(message):
		return escalationResponse(ReasonExplicitRequest)

	case convCtx.State.ClarificationNeeded && p.clarificationLoopDetected(convCtx):
		return escalationResponse(ReasonClarificationFailure)

	case intent.Type == nlu.IntentAccount &&
		intent.Confidence > p.cfg.AccountIntentThreshold &&
		nlu.MentionsComplexAccountIssue(message):
		return escalationResponse(ReasonComplexAccountIssue)
	}
	return nil
}

// clarificationLoopDetected counts clarifying questions among the last
// ClarificationWindow assistant turns.
func (p *EscalationPolicy) clarificationLoopDetected(convCtx *Context) bool {
	count := 0
	inspected := 0
	for i := len(convCtx.History) - 1; i >= 0 && inspected < p.cfg.ClarificationWindow; i-- {
		msg := convCtx.History[i]
		if msg.Role != "assistant" {
			continue
		}
		inspected++
		if strings.HasPrefix(msg.Content, clarificationPrefix) {
			count++
		}
	}
	return count > p.cfg.ClarificationLimit
}

func escalationResponse(reason string) *Response {
	return &Response{
		Text: "I'm connecting you with a human agent who can help you better. " +
			"Please hold on for a moment.",
		Suggestions: []string{"Wait for agent", "Keep chatting with me"},
		Action: &Action{
			Type:    "escalate_to_human",
			Payload: map[string]any{"reason": reason},
		},
	}
}
