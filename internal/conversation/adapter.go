package conversation

import "ren-assistant/internal/nlu"

// tonePrefixes are prepended to a reply based on the user's sentiment.
var tonePrefixes = map[nlu.Tone]string{
	nlu.ToneFrustrated: "I understand this might be frustrating. ",
	nlu.ToneExcited:    "Love the enthusiasm! ",
	nlu.ToneNegative:   "I'm sorry to hear that. ",
	nlu.TonePositive:   "Glad to hear it! ",
}

const contactSupportSuggestion = "Contact support"

// AdaptResponse adjusts a reply's tone to the user's sentiment. Neutral tone
// passes through unchanged; frustrated tone also guarantees a support
// suggestion. The input response is not mutated.
func AdaptResponse(resp *Response, sentiment *nlu.Sentiment) *Response {
	if resp == nil || sentiment == nil {
		return resp
	}
	prefix, ok := tonePrefixes[sentiment.Tone]
	if !ok {
		return resp
	}

	out := &Response{
		Text:        prefix + resp.Text,
		Suggestions: append([]string(nil), resp.Suggestions...),
		Action:      resp.Action,
	}
	if sentiment.Tone == nlu.ToneFrustrated && !containsSuggestion(out.Suggestions, contactSupportSuggestion) {
		out.Suggestions = append(out.Suggestions, contactSupportSuggestion)
	}
	return out
}

func containsSuggestion(suggestions []string, target string) bool {
	for _, s := range suggestions {
		if s == target {
			return true
		}
	}
	return false
}
