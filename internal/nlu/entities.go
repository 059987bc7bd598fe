package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numericDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`)
	monthDayRe    = regexp.MustCompile(`\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?\b`)
	priceRe       = regexp.MustCompile(`[$€£]\s*\d+(?:\.\d+)?|\b\d+(?:\.\d+)?\s*(?:dollars|bucks|usd|eur|euros|pounds)\b`)
	durationRe    = regexp.MustCompile(`\b\d+\s*(?:day|night|week|month|hour)s?\b`)
	priceStripRe  = regexp.MustCompile(`[^0-9.]`)
)

// ExtractEntities pulls structured values out of free text. Every field is
// matched independently and de-duplicated; the result is nil when nothing
// matched at all.
func ExtractEntities(message string) *Entities {
	lower := strings.ToLower(message)

	e := &Entities{
		Items:     extractItems(lower),
		Dates:     extractDates(lower),
		Locations: extractLocations(lower),
		Prices:    extractPrices(lower),
		Durations: dedupe(durationRe.FindAllString(lower, -1)),
	}
	if e.IsEmpty() {
		return nil
	}
	return e
}

func extractItems(lower string) []string {
	var items []string
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if _, ok := rentalItems[word]; ok {
			items = append(items, word)
			continue
		}
		// naive plural: "cameras" -> "camera"
		if singular, found := strings.CutSuffix(word, "s"); found {
			if _, ok := rentalItems[singular]; ok {
				items = append(items, singular)
			}
		}
	}
	return dedupe(items)
}

func extractDates(lower string) []string {
	var dates []string
	for _, term := range relativeDateTerms {
		if containsPhrase(lower, term) {
			dates = append(dates, term)
		}
	}
	dates = append(dates, numericDateRe.FindAllString(lower, -1)...)
	dates = append(dates, monthDayRe.FindAllString(lower, -1)...)
	return dedupe(dates)
}

func extractLocations(lower string) []string {
	var locations []string
	for _, city := range knownCities {
		if containsPhrase(lower, city) {
			locations = append(locations, city)
		}
	}
	return dedupe(locations)
}

func extractPrices(lower string) []float64 {
	var prices []float64
	seen := make(map[float64]struct{})
	for _, match := range priceRe.FindAllString(lower, -1) {
		raw := priceStripRe.ReplaceAllString(match, "")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		prices = append(prices, value)
	}
	return prices
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
