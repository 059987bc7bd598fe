package nlu

import "strings"

// AnalyzeSentiment classifies the tone of a message against the four keyword
// sets. Frustration and excitement outrank plain polarity; within polarity the
// larger match count wins.
func AnalyzeSentiment(message string) Sentiment {
	lower := strings.ToLower(message)

	frustrated := matchedKeywords(lower, frustratedKeywords)
	if len(frustrated) > 0 {
		return Sentiment{
			Tone:       ToneFrustrated,
			Confidence: capConfidence(0.5 + 0.2*float64(len(frustrated))),
			Indicators: frustrated,
		}
	}

	excited := matchedKeywords(lower, excitedKeywords)
	if len(excited) > 0 {
		return Sentiment{
			Tone:       ToneExcited,
			Confidence: capConfidence(0.5 + 0.2*float64(len(excited))),
			Indicators: excited,
		}
	}

	positive := matchedKeywords(lower, positiveKeywords)
	negative := matchedKeywords(lower, negativeKeywords)

	switch {
	case len(positive) > len(negative):
		return Sentiment{
			Tone:       TonePositive,
			Confidence: capConfidence(0.5 + 0.1*float64(len(positive)-len(negative))),
			Indicators: positive,
		}
	case len(negative) > len(positive):
		return Sentiment{
			Tone:       ToneNegative,
			Confidence: capConfidence(0.5 + 0.1*float64(len(negative)-len(positive))),
			Indicators: negative,
		}
	}

	// No matches, or an exact positive/negative tie
	return Sentiment{Tone: ToneNeutral, Confidence: 0.5}
}

func matchedKeywords(lower string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func capConfidence(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
