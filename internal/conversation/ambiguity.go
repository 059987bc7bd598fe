package conversation

import (
	"fmt"

	"ren-assistant/internal/config"
	"ren-assistant/internal/nlu"
)

// clarificationPrefix opens every clarifying question. The escalation policy
// counts assistant turns carrying this prefix to detect clarification loops.
const clarificationPrefix = "I'm not quite sure"

var genericClarifyOptions = []string{
	"Search rentals", "Make a booking", "List an item", "Talk to support",
}

// AmbiguityResolver decides whether a turn needs a clarifying question
// instead of an answer.
type AmbiguityResolver struct {
	cfg config.DialogueConfig
}

func NewAmbiguityResolver(cfg config.DialogueConfig) *AmbiguityResolver {
	return &AmbiguityResolver{cfg: cfg}
}

// Resolve returns a clarifying response, or nil when the utterance is clear
// enough to answer. Triggering sets ClarificationNeeded on the context.
func (r *AmbiguityResolver) Resolve(message string, intent *nlu.Intent, convCtx *Context) *Response {
	lowConfidence := intent.Confidence < r.cfg.AmbiguityConfidence
	vague := nlu.HasVagueTerm(message) && intent.Entities.IsEmpty()
	incomplete := nlu.StartsIncomplete(message) && nlu.WordCount(message) < 4

	if !lowConfidence && !vague && !incomplete {
		return nil
	}

	convCtx.State.ClarificationNeeded = true
	if resp := entityClarification(intent.Entities); resp != nil {
		return resp
	}
	return genericClarification(convCtx)
}

// entityClarification asks about the most specific entity present, preferring
// items over locations over dates over prices.
func entityClarification(entities *nlu.Entities) *Response {
	if entities.IsEmpty() {
		return nil
	}
	switch {
	case len(entities.Items) > 0:
		return &Response{
			Text: fmt.Sprintf("%s what you'd like to do with the %s. Are you looking to rent one, or list yours?",
				clarificationPrefix, entities.Items[0]),
			Suggestions: []string{"Rent one", "List mine", "Just browsing"},
		}
	case len(entities.Locations) > 0:
		return &Response{
			Text: fmt.Sprintf("%s what you need in %s. Are you searching for a rental there?",
				clarificationPrefix, entities.Locations[0]),
			Suggestions: []string{"Search rentals there", "List an item there"},
		}
	case len(entities.Dates) > 0:
		return &Response{
			Text: fmt.Sprintf("%s what you're planning for %s. Is this about a booking?",
				clarificationPrefix, entities.Dates[0]),
			Suggestions: []string{"Check availability", "Make a booking"},
		}
	case len(entities.Prices) > 0:
		return &Response{
			Text: fmt.Sprintf("%s what the $%g refers to. Is that your budget?",
				clarificationPrefix, entities.Prices[0]),
			Suggestions: []string{"That's my budget", "That's my listing price"},
		}
	}
	return nil
}

// genericClarification falls back to a contextual prompt seeded with any
// inferred preferences.
func genericClarification(convCtx *Context) *Response {
	text := fmt.Sprintf("%s what you're looking for yet.", clarificationPrefix)
	if inferred, ok := convCtx.Preferences["inferred"].(map[string]any); ok {
		if item, ok := inferred["preferred_item"].(string); ok {
			text = fmt.Sprintf("%s what you're looking for yet. Earlier you mentioned a %s. Is this related?",
				clarificationPrefix, item)
		}
	}
	return &Response{
		Text:        text + " Could you tell me a bit more?",
		Suggestions: genericClarifyOptions,
	}
}
