package conversation

import (
	"fmt"
	"math"
	"strings"

	"ren-assistant/internal/nlu"
)

// wizardStep is one slot to fill in a guided flow.
type wizardStep struct {
	Key         string
	Prompt      string
	Suggestions []string
}

var wizardFlows = map[WizardType][]wizardStep{
	WizardListing: {
		{
			Key:         "title",
			Prompt:      "Let's create your listing. What are you renting out?",
			Suggestions: []string{"Camera gear", "A room", "A car", "Tools"},
		},
		{
			Key:    "description",
			Prompt: "Great. Describe it in a sentence or two so renters know what to expect.",
		},
		{
			Key:         "price",
			Prompt:      "What's your price per day?",
			Suggestions: []string{"$10", "$25", "$50", "$100"},
		},
		{
			Key:    "location",
			Prompt: "Where can renters pick it up (or where is the property)?",
		},
		{
			Key:         "availability",
			Prompt:      "Last step: when is it available?",
			Suggestions: []string{"Weekends only", "Every day", "Weekdays"},
		},
	},
	WizardBooking: {
		{
			Key:    "item",
			Prompt: "Let's book it. Which listing would you like to book?",
		},
		{
			Key:         "start_date",
			Prompt:      "When would you like the rental to start?",
			Suggestions: []string{"Today", "Tomorrow", "This weekend"},
		},
		{
			Key:         "duration",
			Prompt:      "For how long?",
			Suggestions: []string{"1 day", "3 days", "1 week"},
		},
		{
			Key:         "payment_method",
			Prompt:      "How would you like to pay?",
			Suggestions: []string{"Saved card", "New card", "PayPal"},
		},
	},
}

// StartWizard activates a flow on the context and returns the first prompt.
func StartWizard(wizardType WizardType, convCtx *Context) *Response {
	steps := wizardFlows[wizardType]
	convCtx.State.ActiveWizard = &WizardState{
		Type:       wizardType,
		Step:       0,
		TotalSteps: len(steps),
		Data:       make(map[string]string),
		Progress:   0,
	}
	return &Response{
		Text:        steps[0].Prompt,
		Suggestions: steps[0].Suggestions,
	}
}

// AdvanceWizard consumes one free-text answer for the current step. Answers
// are stored verbatim; the flow does no domain validation. Completing the
// final step clears the wizard and emits a wizard_complete_<type> action
// carrying every captured slot.
func AdvanceWizard(message string, convCtx *Context) *Response {
	wizard := convCtx.State.ActiveWizard
	if wizard == nil {
		return nil
	}

	if isWizardCancel(message) {
		convCtx.State.ActiveWizard = nil
		return &Response{
			Text:        "No problem, I've cancelled that. What else can I help you with?",
			Suggestions: []string{"Search rentals", "My bookings", "Help"},
		}
	}

	steps := wizardFlows[wizard.Type]
	wizard.Data[steps[wizard.Step].Key] = strings.TrimSpace(message)
	wizard.Step++
	wizard.Progress = int(math.Round(float64(wizard.Step) / float64(wizard.TotalSteps) * 100))

	if wizard.Step < wizard.TotalSteps {
		next := steps[wizard.Step]
		return &Response{
			Text:        next.Prompt,
			Suggestions: next.Suggestions,
		}
	}

	// Completed: summarize captured slots and return to Idle
	payload := make(map[string]any, len(wizard.Data))
	var summary []string
	for _, step := range steps {
		payload[step.Key] = wizard.Data[step.Key]
		summary = append(summary, fmt.Sprintf("%s: %s", step.Key, wizard.Data[step.Key]))
	}
	wizardType := wizard.Type
	convCtx.State.ActiveWizard = nil

	return &Response{
		Text: fmt.Sprintf("All set! Here's what I captured: %s.", strings.Join(summary, ", ")),
		Action: &Action{
			Type:    fmt.Sprintf("wizard_complete_%s", wizardType),
			Payload: payload,
		},
	}
}

func isWizardCancel(message string) bool {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "cancel", "stop", "never mind", "nevermind", "quit":
		return true
	}
	return false
}

// detectWizardStart maps an utterance and its classified intent to a wizard
// flow, or returns false when no flow should start.
func detectWizardStart(message string, intentType nlu.IntentType) (WizardType, bool) {
	lower := strings.ToLower(message)
	switch {
	case intentType == nlu.IntentListing && (strings.Contains(lower, "list") || strings.Contains(lower, "rent out")):
		return WizardListing, true
	case intentType == nlu.IntentBooking && (strings.Contains(lower, "book") || strings.Contains(lower, "reserve")):
		return WizardBooking, true
	}
	return "", false
}
