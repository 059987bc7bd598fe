package conversation

import (
	"testing"

	"ren-assistant/internal/nlu"
)

func TestMerge_NilSignalsIsIdempotent(t *testing.T) {
	convCtx := NewContext("s1")
	convCtx.Entities.Items = []string{"camera"}
	convCtx.Preferences = map[string]any{"currency": "usd"}

	Merge(convCtx, nil, nil)
	Merge(convCtx, nil, nil)

	if len(convCtx.Entities.Items) != 1 || convCtx.Entities.Items[0] != "camera" {
		t.Errorf("entities changed: %+v", convCtx.Entities)
	}
	if len(convCtx.Preferences) != 1 || convCtx.Preferences["currency"] != "usd" {
		t.Errorf("preferences changed: %+v", convCtx.Preferences)
	}
}

func TestMerge_EntityWindowsAreCapped(t *testing.T) {
	convCtx := NewContext("s1")
	cities := []string{"berlin", "paris", "rome", "madrid", "lisbon"}
	for _, city := range cities {
		intent := nlu.ClassifyIntent("find me a room in " + city)
		Merge(convCtx, &intent, nil)
	}

	if len(convCtx.Entities.Locations) != 3 {
		t.Fatalf("locations = %v, want 3 entries", convCtx.Entities.Locations)
	}
	// oldest evicted first, insertion order preserved
	want := []string{"rome", "madrid", "lisbon"}
	for i, city := range want {
		if convCtx.Entities.Locations[i] != city {
			t.Errorf("locations[%d] = %s, want %s", i, convCtx.Entities.Locations[i], city)
		}
	}
	if len(convCtx.Entities.Items) != 5 {
		t.Errorf("items window should cap at 5, got %v", convCtx.Entities.Items)
	}
}

func TestMerge_InferredPreferencesNested(t *testing.T) {
	convCtx := NewContext("s1")
	MergePreferences(convCtx, map[string]any{"language": "en"})
	intent := nlu.ClassifyIntent("looking for a kayak in Lisbon under $30")
	Merge(convCtx, &intent, nil)

	inferred, ok := convCtx.Preferences["inferred"].(map[string]any)
	if !ok {
		t.Fatalf("inferred sub-key missing: %+v", convCtx.Preferences)
	}
	if inferred["preferred_item"] != "kayak" {
		t.Errorf("preferred_item = %v", inferred["preferred_item"])
	}
	if inferred["budget"] != 30.0 {
		t.Errorf("budget = %v", inferred["budget"])
	}
	if convCtx.Preferences["language"] != "en" {
		t.Errorf("explicit preference clobbered: %+v", convCtx.Preferences)
	}
}

func TestMerge_TopicRecomputed(t *testing.T) {
	convCtx := NewContext("s1")
	search := nlu.ClassifyIntent("show me cameras in Berlin")
	Merge(convCtx, &search, nil)

	if convCtx.Topic == nil || convCtx.Topic.Primary != "discovery" {
		t.Fatalf("topic = %+v, want discovery", convCtx.Topic)
	}

	booking := nlu.ClassifyIntent("ok, book it for tomorrow")
	Merge(convCtx, &booking, nil)

	if convCtx.Topic.Primary != "booking" {
		t.Errorf("primary = %s, want booking", convCtx.Topic.Primary)
	}
	// previous primary demoted to secondary
	found := false
	for _, s := range convCtx.Topic.Secondary {
		if s == "discovery" {
			found = true
		}
	}
	if !found {
		t.Errorf("secondary topics missing old primary: %v", convCtx.Topic.Secondary)
	}
	if len(convCtx.Topic.Secondary) > 5 {
		t.Errorf("secondary topics over cap: %v", convCtx.Topic.Secondary)
	}
}

func TestMerge_GoalProgression(t *testing.T) {
	convCtx := NewContext("s1")
	first := nlu.ClassifyIntent("I want to rent this camera")
	Merge(convCtx, &first, nil)

	if convCtx.Goal == nil || convCtx.Goal.Type != nlu.IntentBooking || convCtx.Goal.Progress != 0 {
		t.Fatalf("goal = %+v", convCtx.Goal)
	}

	second := nlu.ClassifyIntent("book it for tomorrow in Berlin")
	Merge(convCtx, &second, nil)
	if convCtx.Goal.Progress != 10 {
		t.Errorf("progress = %d, want 10", convCtx.Goal.Progress)
	}
	if convCtx.Goal.Details["location"] != "berlin" {
		t.Errorf("details not merged: %+v", convCtx.Goal.Details)
	}

	// switching intent resets the goal
	listing := nlu.ClassifyIntent("actually I want to list my drone")
	Merge(convCtx, &listing, nil)
	if convCtx.Goal.Type != nlu.IntentListing || convCtx.Goal.Progress != 0 {
		t.Errorf("goal not reset: %+v", convCtx.Goal)
	}
}

func TestMerge_GoalProgressCapped(t *testing.T) {
	convCtx := NewContext("s1")
	for i := 0; i < 15; i++ {
		intent := nlu.ClassifyIntent("book the room")
		Merge(convCtx, &intent, nil)
	}
	if convCtx.Goal.Progress != 100 {
		t.Errorf("progress = %d, want capped 100", convCtx.Goal.Progress)
	}
}
