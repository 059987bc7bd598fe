package conversation

import (
	"context"
	"log"
	"sync"

	"ren-assistant/internal/config"
	"ren-assistant/internal/nlu"
)

// Generator produces the free-form reply for a turn. The response pipeline
// implements it.
type Generator interface {
	Generate(ctx context.Context, message string, convCtx *Context) (*Response, error)
}

// PreferenceSource looks up a user's stored preferences.
type PreferenceSource interface {
	GetUserPreferences(ctx context.Context, userID uint) (map[string]any, error)
}

// InteractionRecord is one logged turn.
type InteractionRecord struct {
	SessionID string
	UserID    uint
	Message   string
	Reply     string
	Intent    nlu.IntentType
	Tone      nlu.Tone
	Escalated bool
}

// InteractionLogger persists turn records. Failures are swallowed; logging is
// never allowed to affect the reply.
type InteractionLogger interface {
	SaveInteraction(ctx context.Context, rec InteractionRecord) error
}

// Orchestrator sequences one conversation turn: extract signals, merge
// context, then route through wizard, escalation, ambiguity and finally the
// generation pipeline. Turns on the same session are serialized.
type Orchestrator struct {
	store     Store
	resolver  *AmbiguityResolver
	policy    *EscalationPolicy
	generator Generator
	prefs     PreferenceSource  // optional
	logger    InteractionLogger // optional

	maxHistoryChars int

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is a refcounted mutex; the map entry is dropped once the last
// waiting turn releases it, so idle sessions cost nothing.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewOrchestrator(
	store Store,
	generator Generator,
	prefs PreferenceSource,
	logger InteractionLogger,
	cfg config.DialogueConfig,
) *Orchestrator {
	return &Orchestrator{
		store:           store,
		resolver:        NewAmbiguityResolver(cfg),
		policy:          NewEscalationPolicy(cfg),
		generator:       generator,
		prefs:           prefs,
		logger:          logger,
		maxHistoryChars: cfg.MaxHistoryChars,
		locks:           make(map[string]*sessionLock),
	}
}

// ProcessMessage runs one turn and always returns a usable response; every
// upstream failure degrades to a simpler reply instead of an error.
func (o *Orchestrator) ProcessMessage(ctx context.Context, message string, convCtx *Context) *Response {
	if convCtx == nil {
		convCtx = NewContext("")
	}
	if convCtx.SessionID != "" {
		unlock := o.lockSession(convCtx.SessionID)
		defer unlock()
		convCtx = o.loadContext(ctx, convCtx)
	}

	o.loadPreferences(ctx, convCtx)

	sentiment := nlu.AnalyzeSentiment(message)
	intent := nlu.ClassifyIntent(message)
	Merge(convCtx, &intent, &sentiment)
	convCtx.AppendHistory("user", message)

	// Wizard turns bypass the rest of the pipeline entirely
	if convCtx.State.ActiveWizard != nil {
		return o.finish(ctx, convCtx, message, AdvanceWizard(message, convCtx), false)
	}
	if wizardType, ok := detectWizardStart(message, intent.Type); ok {
		return o.finish(ctx, convCtx, message, StartWizard(wizardType, convCtx), false)
	}

	if resp := o.policy.Evaluate(message, &intent, &sentiment, convCtx); resp != nil {
		return o.finish(ctx, convCtx, message, resp, true)
	}

	if resp := o.resolver.Resolve(message, &intent, convCtx); resp != nil {
		return o.finish(ctx, convCtx, message, AdaptResponse(resp, &sentiment), false)
	}
	convCtx.State.ClarificationNeeded = false

	resp, err := o.generator.Generate(ctx, message, convCtx)
	if err != nil || resp == nil {
		// The pipeline's terminal tier makes this unreachable in a correctly
		// assembled orchestrator; degrade anyway rather than fail the turn.
		log.Printf("[Orchestrator] WARNING: generator returned no response: %v", err)
		resp = &Response{Text: "Sorry, I couldn't process that. Could you rephrase?"}
	}
	return o.finish(ctx, convCtx, message, AdaptResponse(resp, &sentiment), false)
}

// finish records the assistant turn, persists context and logs the
// interaction. Persistence and logging failures never reach the caller.
func (o *Orchestrator) finish(ctx context.Context, convCtx *Context, message string, resp *Response, escalated bool) *Response {
	convCtx.AppendHistory("assistant", resp.Text)
	convCtx.History = trimHistory(convCtx.History, o.maxHistoryChars)

	if convCtx.SessionID != "" {
		if err := o.store.Put(ctx, convCtx); err != nil {
			log.Printf("[Orchestrator] WARNING: failed to persist context for session %s: %v",
				convCtx.SessionID, err)
		}
	}

	if o.logger != nil {
		rec := InteractionRecord{
			SessionID: convCtx.SessionID,
			UserID:    convCtx.UserID,
			Message:   message,
			Reply:     resp.Text,
			Escalated: escalated,
		}
		if convCtx.Intent != nil {
			rec.Intent = convCtx.Intent.Type
		}
		if convCtx.Sentiment != nil {
			rec.Tone = convCtx.Sentiment.Tone
		}
		if err := o.logger.SaveInteraction(ctx, rec); err != nil {
			log.Printf("[Orchestrator] WARNING: failed to log interaction: %v", err)
		}
	}
	return resp
}

// loadContext swaps in the stored context for the session, keeping the
// caller-supplied user id. Store failures fall back to the fresh context.
func (o *Orchestrator) loadContext(ctx context.Context, convCtx *Context) *Context {
	stored, err := o.store.Get(ctx, convCtx.SessionID)
	if err != nil {
		log.Printf("[Orchestrator] WARNING: context load failed for session %s: %v",
			convCtx.SessionID, err)
		return convCtx
	}
	if stored == nil {
		return convCtx
	}
	if convCtx.UserID != 0 {
		stored.UserID = convCtx.UserID
	}
	return stored
}

func (o *Orchestrator) loadPreferences(ctx context.Context, convCtx *Context) {
	if o.prefs == nil || convCtx.UserID == 0 {
		return
	}
	prefs, err := o.prefs.GetUserPreferences(ctx, convCtx.UserID)
	if err != nil {
		log.Printf("[Orchestrator] WARNING: preference lookup failed for user %d: %v",
			convCtx.UserID, err)
		return
	}
	MergePreferences(convCtx, prefs)
}

// lockSession serializes turns per session id. Contexts are read-modified-
// rewritten without internal locking, so concurrent turns on one session
// must queue. Entries are refcounted and removed on last release; one-shot
// session ids cannot grow the map.
func (o *Orchestrator) lockSession(sessionID string) func() {
	o.mu.Lock()
	lock, ok := o.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		o.locks[sessionID] = lock
	}
	lock.refs++
	o.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		o.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(o.locks, sessionID)
		}
		o.mu.Unlock()
	}
}

// trimHistory keeps the newest messages within a character budget, oldest
// dropped first.
func trimHistory(history []HistoryMessage, maxChars int) []HistoryMessage {
	if maxChars <= 0 {
		return history
	}
	total := 0
	for i := len(history) - 1; i >= 0; i-- {
		total += len(history[i].Content)
		if total > maxChars {
			return append([]HistoryMessage(nil), history[i+1:]...)
		}
	}
	return history
}
