package nlu

// IntentType is the closed set of utterance purposes the classifier can emit.
type IntentType string

const (
	IntentGreeting IntentType = "greeting"
	IntentBooking  IntentType = "booking"
	IntentListing  IntentType = "listing"
	IntentSearch   IntentType = "search"
	IntentAccount  IntentType = "account"
	IntentPayment  IntentType = "payment"
	IntentSupport  IntentType = "support"
	IntentWishlist IntentType = "wishlist"
	IntentReview   IntentType = "review"
	IntentOther    IntentType = "other"
)

// Tone is the closed set of coarse sentiment labels.
type Tone string

const (
	ToneNeutral    Tone = "neutral"
	TonePositive   Tone = "positive"
	ToneNegative   Tone = "negative"
	ToneFrustrated Tone = "frustrated"
	ToneExcited    Tone = "excited"
)

// Intent is the classified purpose of a single utterance.
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
	Entities   *Entities  `json:"entities,omitempty"`
}

// Sentiment is the coarse emotional classification of a single utterance.
type Sentiment struct {
	Tone       Tone     `json:"tone"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators,omitempty"`
}

// Entities holds the structured values extracted from free text.
// A nil field means that entity kind was not present in the utterance.
type Entities struct {
	Items     []string  `json:"items,omitempty"`
	Dates     []string  `json:"dates,omitempty"`
	Locations []string  `json:"locations,omitempty"`
	Prices    []float64 `json:"prices,omitempty"`
	Durations []string  `json:"durations,omitempty"`
}

// IsEmpty reports whether no entity kind was extracted.
func (e *Entities) IsEmpty() bool {
	if e == nil {
		return true
	}
	return len(e.Items) == 0 && len(e.Dates) == 0 && len(e.Locations) == 0 &&
		len(e.Prices) == 0 && len(e.Durations) == 0
}
