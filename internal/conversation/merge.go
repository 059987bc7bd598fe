package conversation

import (
	"fmt"
	"time"

	"ren-assistant/internal/nlu"
)

// intentTopics maps each intent type onto a conversation topic.
var intentTopics = map[nlu.IntentType]string{
	nlu.IntentGreeting: "general",
	nlu.IntentBooking:  "booking",
	nlu.IntentListing:  "hosting",
	nlu.IntentSearch:   "discovery",
	nlu.IntentAccount:  "account",
	nlu.IntentPayment:  "payments",
	nlu.IntentSupport:  "support",
	nlu.IntentWishlist: "wishlist",
	nlu.IntentReview:   "reviews",
	nlu.IntentOther:    "general",
}

// Merge folds a turn's signals into the accumulated context. It is a pure
// transformation of the context value: calling it with nil intent and nil
// sentiment leaves remembered state untouched.
func Merge(convCtx *Context, intent *nlu.Intent, sentiment *nlu.Sentiment) *Context {
	if intent == nil && sentiment == nil {
		return convCtx
	}
	if sentiment != nil {
		convCtx.Sentiment = sentiment
	}
	if intent == nil {
		return convCtx
	}
	convCtx.Intent = intent

	mergeInferredPreferences(convCtx, intent.Entities)
	mergeEntities(&convCtx.Entities, intent.Entities)
	convCtx.Topic = recomputeTopic(convCtx.Topic, intent)
	convCtx.Goal = updateGoal(convCtx.Goal, intent)
	convCtx.State.LastIntent = intent.Type
	return convCtx
}

// MergePreferences unions explicit user preferences into remembered
// preferences, last writer wins per key.
func MergePreferences(convCtx *Context, prefs map[string]any) {
	if len(prefs) == 0 {
		return
	}
	if convCtx.Preferences == nil {
		convCtx.Preferences = make(map[string]any)
	}
	for k, v := range prefs {
		convCtx.Preferences[k] = v
	}
}

// mergeInferredPreferences derives soft preferences from entities and nests
// them under the "inferred" sub-key so they never clobber explicit settings.
func mergeInferredPreferences(convCtx *Context, entities *nlu.Entities) {
	if entities.IsEmpty() {
		return
	}
	inferred := make(map[string]any)
	if existing, ok := convCtx.Preferences["inferred"].(map[string]any); ok {
		for k, v := range existing {
			inferred[k] = v
		}
	}
	if len(entities.Items) > 0 {
		inferred["preferred_item"] = entities.Items[len(entities.Items)-1]
	}
	if len(entities.Locations) > 0 {
		inferred["preferred_location"] = entities.Locations[len(entities.Locations)-1]
	}
	if len(entities.Prices) > 0 {
		inferred["budget"] = entities.Prices[len(entities.Prices)-1]
	}
	if len(inferred) == 0 {
		return
	}
	if convCtx.Preferences == nil {
		convCtx.Preferences = make(map[string]any)
	}
	convCtx.Preferences["inferred"] = inferred
}

func mergeEntities(remembered *RememberedEntities, entities *nlu.Entities) {
	if entities.IsEmpty() {
		return
	}
	remembered.Items = appendCapped(remembered.Items, entities.Items, maxRememberedItems)
	remembered.Locations = appendCapped(remembered.Locations, entities.Locations, maxRememberedLocations)
	remembered.Dates = appendCapped(remembered.Dates, entities.Dates, maxRememberedDates)
	remembered.Prices = appendCappedFloat(remembered.Prices, entities.Prices, maxRememberedPrices)
}

// appendCapped appends then trims from the front, keeping the newest limit
// entries in insertion order.
func appendCapped(window, fresh []string, limit int) []string {
	window = append(window, fresh...)
	if len(window) > limit {
		window = append([]string(nil), window[len(window)-limit:]...)
	}
	return window
}

func appendCappedFloat(window, fresh []float64, limit int) []float64 {
	window = append(window, fresh...)
	if len(window) > limit {
		window = append([]float64(nil), window[len(window)-limit:]...)
	}
	return window
}

func recomputeTopic(prev *Topic, intent *nlu.Intent) *Topic {
	primary := intentTopics[intent.Type]
	if primary == "" {
		primary = "general"
	}

	var secondary []string
	if prev != nil && prev.Primary != primary {
		secondary = append(secondary, prev.Primary)
	}
	if prev != nil {
		secondary = append(secondary, prev.Secondary...)
	}
	if e := intent.Entities; !e.IsEmpty() {
		if len(e.Items) > 0 {
			secondary = append(secondary, "items")
		}
		if len(e.Locations) > 0 {
			secondary = append(secondary, "locations")
		}
		if len(e.Dates) > 0 {
			secondary = append(secondary, "dates")
		}
		if len(e.Prices) > 0 {
			secondary = append(secondary, "pricing")
		}
	}

	deduped := make([]string, 0, len(secondary))
	seen := map[string]struct{}{primary: {}}
	for _, s := range secondary {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		deduped = append(deduped, s)
		if len(deduped) == maxSecondaryTopics {
			break
		}
	}

	return &Topic{
		Primary:       primary,
		Secondary:     deduped,
		Confidence:    intent.Confidence,
		LastMentioned: time.Now(),
	}
}

// updateGoal replaces the goal when the intent type changes, otherwise merges
// details and bumps progress by 10 up to 100.
func updateGoal(goal *Goal, intent *nlu.Intent) *Goal {
	if goal == nil || goal.Type != intent.Type {
		return &Goal{
			Type:      intent.Type,
			Details:   goalDetails(intent.Entities),
			Progress:  0,
			CreatedAt: time.Now(),
		}
	}
	for k, v := range goalDetails(intent.Entities) {
		goal.Details[k] = v
	}
	goal.Progress += 10
	if goal.Progress > 100 {
		goal.Progress = 100
	}
	return goal
}

func goalDetails(entities *nlu.Entities) map[string]any {
	details := make(map[string]any)
	if entities.IsEmpty() {
		return details
	}
	if len(entities.Items) > 0 {
		details["item"] = entities.Items[len(entities.Items)-1]
	}
	if len(entities.Locations) > 0 {
		details["location"] = entities.Locations[len(entities.Locations)-1]
	}
	if len(entities.Dates) > 0 {
		details["date"] = entities.Dates[len(entities.Dates)-1]
	}
	if len(entities.Prices) > 0 {
		details["price"] = fmt.Sprintf("%g", entities.Prices[len(entities.Prices)-1])
	}
	return details
}
