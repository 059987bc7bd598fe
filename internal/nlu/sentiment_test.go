package nlu

import "testing"

func TestAnalyzeSentiment_Neutral(t *testing.T) {
	s := AnalyzeSentiment("What time is checkout on Sunday?")
	if s.Tone != ToneNeutral {
		t.Errorf("expected neutral, got %s", s.Tone)
	}
	if s.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", s.Confidence)
	}
}

func TestAnalyzeSentiment_FrustratedBeatsPositive(t *testing.T) {
	// "great" is positive but the frustration markers must win
	s := AnalyzeSentiment("Great, this is ridiculous and I'm fed up")
	if s.Tone != ToneFrustrated {
		t.Fatalf("expected frustrated, got %s", s.Tone)
	}
	// two frustration hits: 0.5 + 2*0.2
	if s.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", s.Confidence)
	}
	if len(s.Indicators) != 2 {
		t.Errorf("expected 2 indicators, got %v", s.Indicators)
	}
}

func TestAnalyzeSentiment_ExcitedBeatsPolarity(t *testing.T) {
	s := AnalyzeSentiment("I can't wait, this place looks wonderful")
	if s.Tone != ToneExcited {
		t.Errorf("expected excited, got %s", s.Tone)
	}
}

func TestAnalyzeSentiment_Polarity(t *testing.T) {
	tests := []struct {
		name    string
		message string
		tone    Tone
		conf    float64
	}{
		{"single positive", "thanks for the quick reply", TonePositive, 0.6},
		{"single negative", "the listing photos are terrible", ToneNegative, 0.6},
		{"positive outweighs", "great stay, wonderful host, one small problem", TonePositive, 0.6},
		{"stacked negative", "terrible host, broken lock, awful smell", ToneNegative, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AnalyzeSentiment(tt.message)
			if s.Tone != tt.tone {
				t.Errorf("tone = %s, want %s", s.Tone, tt.tone)
			}
			if s.Confidence != tt.conf {
				t.Errorf("confidence = %v, want %v", s.Confidence, tt.conf)
			}
		})
	}
}

func TestAnalyzeSentiment_ConfidenceCapped(t *testing.T) {
	s := AnalyzeSentiment("frustrated annoyed angry furious ridiculous unacceptable")
	if s.Confidence != 1.0 {
		t.Errorf("expected capped confidence 1.0, got %v", s.Confidence)
	}
}

func TestAnalyzeSentiment_TieIsNeutral(t *testing.T) {
	s := AnalyzeSentiment("the room was nice but the host was wrong about parking")
	if s.Tone != ToneNeutral {
		t.Errorf("expected neutral on tie, got %s", s.Tone)
	}
}
