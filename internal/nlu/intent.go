package nlu

import "strings"

// ClassifyIntent scores the message against each category's phrase list.
// Greetings short-circuit. Each matched phrase contributes its word count, so
// "cancel my booking" outweighs a bare "book". Confidence saturates at
// score/5; a zero score falls back to IntentOther.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	entities := ExtractEntities(message)

	if isGreeting(lower) {
		return Intent{Type: IntentGreeting, Confidence: 0.9, Entities: entities}
	}

	best := IntentOther
	bestScore := 0
	for _, category := range intentOrder {
		score := 0
		for _, phrase := range intentPhrases[category] {
			if containsPhrase(lower, phrase) {
				score += len(strings.Fields(phrase))
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return Intent{Type: IntentOther, Confidence: 0.3, Entities: entities}
	}

	confidence := float64(bestScore) / 5.0
	if confidence > 1.0 {
		confidence = 1.0
	}
	return Intent{Type: best, Confidence: confidence, Entities: entities}
}

func isGreeting(lower string) bool {
	for _, g := range greetingKeywords {
		if containsPhrase(lower, g) {
			return true
		}
	}
	return false
}

// containsPhrase matches on word boundaries so "hi" does not fire inside
// "this" and "car" does not fire inside "care".
func containsPhrase(lower, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if (start == 0 || isBoundary(lower[start-1])) &&
			(end == len(lower) || isBoundary(lower[end])) {
			return true
		}
		idx = start + 1
		if idx >= len(lower) {
			return false
		}
	}
}

func isBoundary(b byte) bool {
	return !(b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '\'')
}
