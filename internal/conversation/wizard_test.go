package conversation

import (
	"strings"
	"testing"
)

func TestBookingWizard_FullRun(t *testing.T) {
	convCtx := NewContext("s1")
	first := StartWizard(WizardBooking, convCtx)
	if first == nil || !strings.Contains(first.Text, "Which listing") {
		t.Fatalf("unexpected first prompt: %+v", first)
	}

	wizard := convCtx.State.ActiveWizard
	if wizard == nil || wizard.Step != 0 || wizard.TotalSteps != 4 {
		t.Fatalf("wizard not started: %+v", wizard)
	}

	answers := []string{"the red kayak", "tomorrow", "3 days", "saved card"}
	wantProgress := []int{25, 50, 75, 100}
	var last *Response
	for i, answer := range answers {
		last = AdvanceWizard(answer, convCtx)
		if i < len(answers)-1 {
			if convCtx.State.ActiveWizard.Progress != wantProgress[i] {
				t.Errorf("after answer %d: progress = %d, want %d",
					i, convCtx.State.ActiveWizard.Progress, wantProgress[i])
			}
			if convCtx.State.ActiveWizard.Step != i+1 {
				t.Errorf("after answer %d: step = %d", i, convCtx.State.ActiveWizard.Step)
			}
		}
	}

	if convCtx.State.ActiveWizard != nil {
		t.Errorf("wizard should be cleared after final step")
	}
	if last.Action == nil || last.Action.Type != "wizard_complete_booking" {
		t.Fatalf("completion action missing: %+v", last.Action)
	}
	for key, want := range map[string]string{
		"item": "the red kayak", "start_date": "tomorrow",
		"duration": "3 days", "payment_method": "saved card",
	} {
		if last.Action.Payload[key] != want {
			t.Errorf("payload[%s] = %v, want %s", key, last.Action.Payload[key], want)
		}
	}
	for _, answer := range answers {
		if !strings.Contains(last.Text, answer) {
			t.Errorf("summary missing %q: %s", answer, last.Text)
		}
	}
}

func TestListingWizard_HasFiveSteps(t *testing.T) {
	convCtx := NewContext("s1")
	StartWizard(WizardListing, convCtx)
	if convCtx.State.ActiveWizard.TotalSteps != 5 {
		t.Errorf("listing wizard steps = %d, want 5", convCtx.State.ActiveWizard.TotalSteps)
	}
}

func TestAdvanceWizard_Cancel(t *testing.T) {
	convCtx := NewContext("s1")
	StartWizard(WizardBooking, convCtx)
	resp := AdvanceWizard("cancel", convCtx)
	if convCtx.State.ActiveWizard != nil {
		t.Errorf("wizard should be cleared on cancel")
	}
	if resp.Action != nil {
		t.Errorf("cancel must not emit a completion action")
	}
}

func TestAdvanceWizard_NoActiveWizard(t *testing.T) {
	convCtx := NewContext("s1")
	if resp := AdvanceWizard("hello", convCtx); resp != nil {
		t.Errorf("expected nil without an active wizard, got %+v", resp)
	}
}

func TestDetectWizardStart(t *testing.T) {
	if wt, ok := detectWizardStart("I want to list my camera", "listing"); !ok || wt != WizardListing {
		t.Errorf("listing start not detected")
	}
	if wt, ok := detectWizardStart("book this apartment", "booking"); !ok || wt != WizardBooking {
		t.Errorf("booking start not detected")
	}
	if _, ok := detectWizardStart("how much does booking cost", "support"); ok {
		t.Errorf("support intent must not start a wizard")
	}
}
