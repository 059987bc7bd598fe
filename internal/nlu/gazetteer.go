package nlu

// Keyword and phrase dictionaries for the deterministic extractors.
// Data lives here, matching logic lives in sentiment.go / intent.go /
// entities.go, so tuning a dictionary never touches control flow.

var positiveKeywords = []string{
	"great", "awesome", "perfect", "excellent", "wonderful", "amazing",
	"love", "fantastic", "happy", "glad", "nice", "helpful",
	"thank you", "thanks", "appreciate",
}

var negativeKeywords = []string{
	"bad", "terrible", "awful", "horrible", "disappointed", "disappointing",
	"poor", "worst", "hate", "broken", "useless", "unhappy", "wrong",
	"problem", "issue", "doesn't work", "not working",
}

var frustratedKeywords = []string{
	"frustrated", "frustrating", "annoyed", "annoying", "angry", "furious",
	"ridiculous", "unacceptable", "fed up", "sick of", "waste of time",
	"this is not working", "still not", "again and again", "how many times",
}

var excitedKeywords = []string{
	"can't wait", "so excited", "excited", "amazing!", "awesome!", "wow",
	"incredible", "thrilled", "best ever", "love it",
}

var greetingKeywords = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"howdy", "greetings", "what's up",
}

// intentPhrases maps each category to its phrase list. Longer phrases score
// higher (one point per word), so specific requests beat generic keywords.
var intentPhrases = map[IntentType][]string{
	IntentBooking: {
		"book", "booking", "reserve", "reservation", "rent this", "rent it",
		"i want to rent", "availability", "available", "check in", "check out",
		"cancel my booking", "change my booking",
	},
	IntentListing: {
		"list", "listing", "list my", "rent out", "rent out my",
		"i want to list", "post my", "advertise", "create a listing",
		"put up for rent",
	},
	IntentSearch: {
		"search", "find", "looking for", "i'm looking for", "show me",
		"do you have", "browse", "anything like", "near me", "results",
	},
	IntentAccount: {
		"account", "my account", "profile", "password", "login", "log in",
		"sign in", "email address", "settings", "verification", "verify my account",
	},
	IntentPayment: {
		"pay", "payment", "charge", "charged", "refund", "invoice",
		"credit card", "billing", "payout", "deposit", "was charged twice",
	},
	IntentSupport: {
		"help", "support", "assist", "question", "how do i", "how does",
		"contact", "report", "not working", "something went wrong",
	},
	IntentWishlist: {
		"wishlist", "wish list", "save this", "save for later", "favorite",
		"favourites", "add to my list", "bookmark",
	},
	IntentReview: {
		"review", "reviews", "rating", "rate", "leave a review",
		"write a review", "feedback", "stars",
	},
}

// intentOrder fixes tie-break iteration so classification is deterministic.
var intentOrder = []IntentType{
	IntentBooking, IntentListing, IntentSearch, IntentAccount,
	IntentPayment, IntentSupport, IntentWishlist, IntentReview,
}

// rentalItems is the item gazetteer. Single nouns, matched per word.
var rentalItems = map[string]struct{}{
	"apartment": {}, "house": {}, "room": {}, "studio": {}, "cabin": {},
	"villa": {}, "loft": {}, "car": {}, "van": {}, "truck": {},
	"scooter": {}, "bike": {}, "bicycle": {}, "motorcycle": {},
	"camera": {}, "lens": {}, "drone": {}, "projector": {}, "speaker": {},
	"tent": {}, "kayak": {}, "canoe": {}, "surfboard": {}, "snowboard": {},
	"skis": {}, "drill": {}, "ladder": {}, "generator": {}, "trailer": {},
	"boat": {}, "jetski": {}, "tools": {}, "equipment": {},
}

// knownCities covers the launch markets. Multi-word names are matched as
// substrings, single words per word.
var knownCities = []string{
	"new york", "los angeles", "san francisco", "san diego", "las vegas",
	"chicago", "boston", "seattle", "portland", "austin", "denver", "miami",
	"atlanta", "dallas", "houston", "philadelphia", "phoenix", "london",
	"paris", "berlin", "amsterdam", "barcelona", "madrid", "rome", "lisbon",
	"toronto", "vancouver", "sydney", "melbourne", "tokyo",
}

var relativeDateTerms = []string{
	"today", "tomorrow", "tonight", "this weekend", "next weekend",
	"this week", "next week", "this month", "next month",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var vagueTerms = []string{
	"something", "anything", "stuff", "things", "whatever", "some kind of",
	"you know", "like that",
}

var incompleteStarters = []string{
	"i need", "i want", "help me", "can you", "how about", "what about",
}

var humanSupportKeywords = []string{
	"human", "agent", "representative", "real person", "speak to someone",
	"talk to someone", "customer service", "operator",
}

var complexAccountKeywords = []string{
	"suspended", "banned", "locked", "hacked", "verification", "identity",
	"deleted", "fraud", "unauthorized",
}
