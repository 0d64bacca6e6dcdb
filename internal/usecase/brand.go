package usecase

import (
	"strings"
)

// brandPrefixWindow is how many leading title characters strategy two inspects
const brandPrefixWindow = 20

// genericWords never count as brand candidates: stop words, shopping
// vocabulary, units and common product descriptors
var genericWords = map[string]bool{
	// Stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	// Shopping vocabulary
	"buy": true, "best": true, "cheap": true, "cheapest": true, "price": true,
	"prices": true, "online": true, "offer": true, "offers": true, "deal": true,
	"deals": true, "sale": true, "discount": true, "delivery": true, "near": true,
	"me": true, "india": true, "top": true, "new": true, "latest": true,
	// Units and packaging
	"kg": true, "g": true, "gm": true, "gms": true, "gram": true, "grams": true,
	"ml": true, "l": true, "ltr": true, "litre": true, "liter": true,
	"pack": true, "packs": true, "combo": true, "set": true, "pcs": true,
	"pc": true, "piece": true, "pieces": true, "count": true, "box": true,
	"bottle": true, "jar": true, "pouch": true, "refill": true,
	// Descriptors
	"size": true, "small": true, "medium": true, "large": true, "big": true,
	"mini": true, "jumbo": true, "family": true, "value": true, "fresh": true,
	"pure": true, "natural": true, "organic": true, "premium": true,
	"original": true, "classic": true, "regular": true, "extra": true,
	"brand": true, "product": true, "products": true, "item": true, "items": true,
}

// DetectBrands infers candidate brand tokens from a search query, in priority order:
//  1. the leading token, when longer than two characters and not generic
//  2. every Title-Case token of the original query that is not generic
//  3. when nothing was found, every non-generic token
func DetectBrands(query string) []string {
	tokens := strings.Fields(query)
	brands := make([]string, 0, len(tokens))
	seen := make(map[string]bool)
	add := func(token string) {
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		brands = append(brands, token)
	}

	if len(tokens) > 0 {
		first := strings.ToLower(trimPunctuation(tokens[0]))
		if len(first) > 2 && !genericWords[first] {
			add(first)
		}
	}

	for _, token := range tokens {
		word := trimPunctuation(token)
		if !isTitleCase(word) {
			continue
		}
		lower := strings.ToLower(word)
		if !genericWords[lower] {
			add(lower)
		}
	}

	if len(brands) == 0 {
		for _, token := range tokens {
			lower := strings.ToLower(trimPunctuation(token))
			if !genericWords[lower] {
				add(lower)
			}
		}
	}

	return brands
}

// CheckBrandMatch reports whether a title plausibly names one of the candidate
// brands. Strategies, first success wins:
//  1. the title's first word equals, contains or is contained in a candidate
//  2. a candidate occurs within the first 20 characters of the title
//  3. any title word equals, contains or is contained in a candidate
func CheckBrandMatch(title string, candidates []string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	words := strings.Fields(lower)
	if len(words) == 0 {
		return false
	}

	brands := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			brands = append(brands, c)
		}
	}
	if len(brands) == 0 {
		return false
	}

	for _, brand := range brands {
		if overlaps(words[0], brand) {
			return true
		}
	}

	prefix := lower
	if runes := []rune(lower); len(runes) > brandPrefixWindow {
		prefix = string(runes[:brandPrefixWindow])
	}
	for _, brand := range brands {
		if strings.Contains(prefix, brand) {
			return true
		}
	}

	for _, word := range words {
		for _, brand := range brands {
			if overlaps(word, brand) {
				return true
			}
		}
	}
	return false
}

// overlaps is true when a and b are equal or one contains the other
func overlaps(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// isTitleCase reports an ASCII upper-case letter followed by a lower-case one
func isTitleCase(word string) bool {
	if len(word) < 2 {
		return false
	}
	return word[0] >= 'A' && word[0] <= 'Z' && word[1] >= 'a' && word[1] <= 'z'
}

func trimPunctuation(s string) string {
	return strings.Trim(s, ",.!?;:'\"()[]{}")
}
