package nlu

import "strings"

// Predicates over the shared dictionaries, used by the ambiguity resolver and
// the escalation policy.

// HasVagueTerm reports whether the message contains a vague placeholder word.
func HasVagueTerm(message string) bool {
	lower := strings.ToLower(message)
	for _, term := range vagueTerms {
		if containsPhrase(lower, term) {
			return true
		}
	}
	return false
}

// StartsIncomplete reports whether the message opens with a dangling request
// starter ("i need", "help me", ...).
func StartsIncomplete(message string) bool {
	lower := strings.TrimSpace(strings.ToLower(message))
	for _, starter := range incompleteStarters {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

// MentionsHumanSupport reports whether the message explicitly asks for a
// human agent.
func MentionsHumanSupport(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range humanSupportKeywords {
		if containsPhrase(lower, kw) {
			return true
		}
	}
	return false
}

// MentionsComplexAccountIssue reports whether the message names an account
// problem that needs manual review.
func MentionsComplexAccountIssue(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range complexAccountKeywords {
		if containsPhrase(lower, kw) {
			return true
		}
	}
	return false
}

// WordCount returns the number of whitespace-separated words.
func WordCount(message string) int {
	return len(strings.Fields(message))
}
