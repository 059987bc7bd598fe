package conversation

import (
	"strings"
	"testing"

	"ren-assistant/internal/config"
	"ren-assistant/internal/nlu"
)

func testDialogueConfig() config.DialogueConfig {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg.Dialogue
}

func TestResolve_ClearMessagePasses(t *testing.T) {
	r := NewAmbiguityResolver(testDialogueConfig())
	convCtx := NewContext("s1")
	msg := "I want to rent this camera in Berlin"
	intent := nlu.ClassifyIntent(msg)

	if resp := r.Resolve(msg, &intent, convCtx); resp != nil {
		t.Errorf("clear message triggered clarification: %+v", resp)
	}
	if convCtx.State.ClarificationNeeded {
		t.Errorf("flag set without trigger")
	}
}

func TestResolve_VagueWithoutEntities(t *testing.T) {
	r := NewAmbiguityResolver(testDialogueConfig())
	convCtx := NewContext("s1")
	msg := "can you find me something"
	intent := nlu.ClassifyIntent(msg)

	resp := r.Resolve(msg, &intent, convCtx)
	if resp == nil {
		t.Fatal("vague message without entities should trigger clarification")
	}
	if !strings.HasPrefix(resp.Text, "I'm not quite sure") {
		t.Errorf("clarification prefix missing: %s", resp.Text)
	}
	if !convCtx.State.ClarificationNeeded {
		t.Errorf("flag not set")
	}
	if len(resp.Suggestions) != 4 {
		t.Errorf("generic clarification should carry 4 options, got %v", resp.Suggestions)
	}
}

func TestResolve_VagueWithEntitiesPasses(t *testing.T) {
	r := NewAmbiguityResolver(testDialogueConfig())
	convCtx := NewContext("s1")
	msg := "I'm looking for something like a kayak"
	intent := nlu.ClassifyIntent(msg)

	if resp := r.Resolve(msg, &intent, convCtx); resp != nil {
		t.Errorf("vague term with a concrete entity should not trigger: %+v", resp)
	}
}

func TestResolve_IncompleteShortRequest(t *testing.T) {
	r := NewAmbiguityResolver(testDialogueConfig())
	convCtx := NewContext("s1")
	msg := "help me"
	intent := nlu.ClassifyIntent(msg)

	if resp := r.Resolve(msg, &intent, convCtx); resp == nil {
		t.Error("short incomplete request should trigger clarification")
	}
}

func TestResolve_LowConfidencePrefersItemQuestion(t *testing.T) {
	r := NewAmbiguityResolver(testDialogueConfig())
	convCtx := NewContext("s1")
	// no intent keywords, but a concrete item
	msg := "the drone, you know"
	intent := nlu.ClassifyIntent(msg)
	if intent.Confidence >= 0.5 {
		t.Fatalf("fixture drifted: confidence %v", intent.Confidence)
	}

	resp := r.Resolve(msg, &intent, convCtx)
	if resp == nil {
		t.Fatal("low confidence should trigger clarification")
	}
	if !strings.Contains(resp.Text, "drone") {
		t.Errorf("expected an item-specific question, got: %s", resp.Text)
	}
}

func TestResolve_GenericUsesInferredPreference(t *testing.T) {
	r := NewAmbiguityResolver(testDialogueConfig())
	convCtx := NewContext("s1")
	convCtx.Preferences = map[string]any{
		"inferred": map[string]any{"preferred_item": "camera"},
	}
	msg := "hmm whatever works"
	intent := nlu.ClassifyIntent(msg)

	resp := r.Resolve(msg, &intent, convCtx)
	if resp == nil {
		t.Fatal("expected clarification")
	}
	if !strings.Contains(resp.Text, "camera") {
		t.Errorf("inferred preference not used: %s", resp.Text)
	}
}
