package nlu

import "testing"

func TestClassifyIntent_Greeting(t *testing.T) {
	for _, msg := range []string{"Hello", "hi there", "Good morning!", "Hey, quick question"} {
		intent := ClassifyIntent(msg)
		if intent.Type != IntentGreeting {
			t.Errorf("%q: expected greeting, got %s", msg, intent.Type)
		}
		if intent.Confidence != 0.9 {
			t.Errorf("%q: expected confidence 0.9, got %v", msg, intent.Confidence)
		}
	}
}

func TestClassifyIntent_GreetingNotInsideWords(t *testing.T) {
	intent := ClassifyIntent("this history is high quality")
	if intent.Type == IntentGreeting {
		t.Errorf("greeting matched inside unrelated words")
	}
}

func TestClassifyIntent_Categories(t *testing.T) {
	tests := []struct {
		message string
		want    IntentType
	}{
		{"I want to rent this apartment for next week", IntentBooking},
		{"I want to list my camera for rent", IntentListing},
		{"show me apartments in Berlin", IntentSearch},
		{"I can't log in to my account", IntentAccount},
		{"I was charged twice for my booking refund", IntentPayment},
		{"how do I contact the owner", IntentSupport},
		{"add this to my wishlist", IntentWishlist},
		{"I'd like to leave a review for the host", IntentReview},
	}
	for _, tt := range tests {
		intent := ClassifyIntent(tt.message)
		if intent.Type != tt.want {
			t.Errorf("%q: got %s, want %s", tt.message, intent.Type, tt.want)
		}
	}
}

func TestClassifyIntent_LongPhraseOutweighsShort(t *testing.T) {
	// "cancel my booking" (3 words) must beat the single "help" keyword
	intent := ClassifyIntent("help, I have to cancel my booking")
	if intent.Type != IntentBooking {
		t.Errorf("got %s, want booking", intent.Type)
	}
}

func TestClassifyIntent_NoMatchIsOther(t *testing.T) {
	intent := ClassifyIntent("the weather is lovely these days")
	if intent.Type != IntentOther {
		t.Errorf("got %s, want other", intent.Type)
	}
	if intent.Confidence != 0.3 {
		t.Errorf("got confidence %v, want 0.3", intent.Confidence)
	}
}

func TestClassifyIntent_EntitiesAttached(t *testing.T) {
	intent := ClassifyIntent("book the camera in Berlin for $40 tomorrow")
	if intent.Entities == nil {
		t.Fatal("expected entities on a matched intent")
	}
	if len(intent.Entities.Items) != 1 || intent.Entities.Items[0] != "camera" {
		t.Errorf("items = %v", intent.Entities.Items)
	}
	// entities ride along even when classification falls back to other
	other := ClassifyIntent("the drone up on the hill")
	if other.Type != IntentOther || other.Entities == nil {
		t.Errorf("expected other with entities, got %s %v", other.Type, other.Entities)
	}
}

func TestClassifyIntent_ConfidenceScaling(t *testing.T) {
	// "i want to rent" (4) + "rent this" (2) = 6 -> capped at 1.0
	intent := ClassifyIntent("i want to rent this")
	if intent.Type != IntentBooking {
		t.Fatalf("got %s, want booking", intent.Type)
	}
	if intent.Confidence != 1.0 {
		t.Errorf("got confidence %v, want 1.0", intent.Confidence)
	}
}
