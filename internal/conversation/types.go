package conversation

import (
	"time"

	"ren-assistant/internal/nlu"
)

// Recency window caps for remembered entities.
const (
	maxRememberedItems     = 5
	maxRememberedLocations = 3
	maxRememberedDates     = 3
	maxRememberedPrices    = 3
	maxSecondaryTopics     = 5
)

// HistoryMessage is one turn of the conversation transcript.
type HistoryMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// WizardType identifies a slot-filling flow.
type WizardType string

const (
	WizardListing WizardType = "listing"
	WizardBooking WizardType = "booking"
)

// WizardState tracks progress through an active slot-filling flow.
type WizardState struct {
	Type       WizardType        `json:"type"`
	Step       int               `json:"step"`
	TotalSteps int               `json:"total_steps"`
	Data       map[string]string `json:"data"`
	Progress   int               `json:"progress"` // 0-100
}

// State carries the per-session dialogue flags between turns.
type State struct {
	ActiveWizard        *WizardState   `json:"active_wizard,omitempty"`
	ClarificationNeeded bool           `json:"clarification_needed"`
	LastIntent          nlu.IntentType `json:"last_intent,omitempty"`
}

// RememberedEntities are sliding recency windows over extracted entities.
// Each list is FIFO-trimmed to its cap; insertion order is preserved.
type RememberedEntities struct {
	Items     []string  `json:"items,omitempty"`
	Locations []string  `json:"locations,omitempty"`
	Dates     []string  `json:"dates,omitempty"`
	Prices    []float64 `json:"prices,omitempty"`
}

// Topic tracks what the conversation is currently about.
type Topic struct {
	Primary       string    `json:"primary"`
	Secondary     []string  `json:"secondary,omitempty"`
	Confidence    float64   `json:"confidence"`
	LastMentioned time.Time `json:"last_mentioned"`
}

// Goal tracks the user's inferred objective across turns.
type Goal struct {
	Type      nlu.IntentType `json:"type"`
	Details   map[string]any `json:"details"`
	Progress  int            `json:"progress"` // 0-100
	CreatedAt time.Time      `json:"created_at"`
}

// Context is the session-scoped conversation memory. It is created lazily on
// first reference to a session id, read-merged-rewritten once per turn by the
// orchestrator, and never mutated concurrently (turns are serialized per
// session).
type Context struct {
	SessionID   string             `json:"session_id"`
	UserID      uint               `json:"user_id,omitempty"`
	History     []HistoryMessage   `json:"conversation_history,omitempty"`
	Intent      *nlu.Intent        `json:"user_intent,omitempty"`
	Sentiment   *nlu.Sentiment     `json:"user_sentiment,omitempty"`
	State       State              `json:"conversation_state"`
	Preferences map[string]any     `json:"remembered_preferences,omitempty"`
	Entities    RememberedEntities `json:"remembered_entities"`
	Topic       *Topic             `json:"conversation_topic,omitempty"`
	Goal        *Goal              `json:"user_goal,omitempty"`
}

// NewContext returns an empty context for a session.
func NewContext(sessionID string) *Context {
	return &Context{SessionID: sessionID}
}

// AppendHistory adds one transcript entry.
func (c *Context) AppendHistory(role, content string) {
	c.History = append(c.History, HistoryMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Action instructs the caller to perform a side effect alongside the reply.
type Action struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response is the JSON shape returned to callers.
type Response struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
	Action      *Action  `json:"action,omitempty"`
}
