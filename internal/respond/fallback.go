package respond

import (
	"context"
	"fmt"

	"ren-assistant/internal/conversation"
	"ren-assistant/internal/nlu"
)

// RuleBased is the terminal tier. It never returns an error and never
// returns empty text, which is what lets the pipeline promise a reply even
// when both generative backends are down.
type RuleBased struct{}

func NewRuleBased() *RuleBased { return &RuleBased{} }

func (p *RuleBased) Name() string { return "rule-based" }

type cannedReply struct {
	text        string
	suggestions []string
}

var intentReplies = map[nlu.IntentType]cannedReply{
	nlu.IntentGreeting: {
		text: "Hello! I'm REN, your rental marketplace assistant. I can help you " +
			"find rentals, make bookings, or list your own items. What would you like to do?",
		suggestions: []string{"Search rentals", "Make a booking", "List an item"},
	},
	nlu.IntentBooking: {
		text:        "I can help with bookings. Tell me which listing you're interested in and your dates, and I'll check availability.",
		suggestions: []string{"Check availability", "My bookings", "Cancel a booking"},
	},
	nlu.IntentListing: {
		text:        "Listing an item takes just a few steps: what it is, a short description, a price and a location. Want to start now?",
		suggestions: []string{"Start listing", "Pricing tips", "My listings"},
	},
	nlu.IntentSearch: {
		text:        "Sure, let's find you something. Tell me what you need, where, and for when.",
		suggestions: []string{"Popular near me", "Browse categories", "Search by date"},
	},
	nlu.IntentAccount: {
		text:        "For account matters I can help with profile details, password resets and verification status. What do you need?",
		suggestions: []string{"Reset password", "Update profile", "Verification status"},
	},
	nlu.IntentPayment: {
		text:        "I can look into payments: charges, refunds and payout schedules. Which one is this about?",
		suggestions: []string{"A charge", "A refund", "Payouts"},
	},
	nlu.IntentSupport: {
		text:        "Happy to help. Describe the problem and I'll point you in the right direction.",
		suggestions: []string{"Booking problem", "Listing problem", "Something else"},
	},
	nlu.IntentWishlist: {
		text:        "Your wishlist keeps items handy for later. I can add, remove or show saved items.",
		suggestions: []string{"Show my wishlist", "Add current item"},
	},
	nlu.IntentReview: {
		text:        "Reviews help everyone rent with confidence. Do you want to write one or read what others said?",
		suggestions: []string{"Write a review", "Read reviews"},
	},
	nlu.IntentOther: {
		text:        "I can help with searching rentals, bookings, listings, payments and your account. What would you like to do?",
		suggestions: []string{"Search rentals", "Make a booking", "List an item", "Talk to support"},
	},
}

// Generate picks the canned reply for the turn's classified intent, lightly
// personalized from remembered context. It cannot fail.
func (p *RuleBased) Generate(_ context.Context, _ string, convCtx *conversation.Context) (*conversation.Response, error) {
	intentType := nlu.IntentOther
	if convCtx != nil && convCtx.Intent != nil {
		intentType = convCtx.Intent.Type
	}
	reply, ok := intentReplies[intentType]
	if !ok {
		reply = intentReplies[nlu.IntentOther]
	}

	resp := &conversation.Response{
		Text:        reply.text,
		Suggestions: append([]string(nil), reply.suggestions...),
	}
	if intentType == nlu.IntentSearch && convCtx != nil {
		if item, location, ok := searchHint(convCtx); ok {
			resp.Text = fmt.Sprintf("Sure, let's find you a %s in %s. Any dates or budget in mind?", item, location)
		}
	}
	return resp, nil
}

func searchHint(convCtx *conversation.Context) (string, string, bool) {
	items := convCtx.Entities.Items
	locations := convCtx.Entities.Locations
	if len(items) == 0 || len(locations) == 0 {
		return "", "", false
	}
	return items[len(items)-1], locations[len(locations)-1], true
}
