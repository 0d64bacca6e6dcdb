package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// unitAlternation lists weight/volume units longest-first so that "gm" or
// "gram" is never cut short to "g" and "litre" never to "l"
const unitAlternation = `kg|grams?|gms?|g|ml|litres?|liters?|l`

// weightPatterns are tried in order, first match wins. The hyphenated form
// ("500-gm") must precede the bare form.
var weightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*-\s*(` + unitAlternation + `)\b`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(` + unitAlternation + `)\b`),
}

// packPatterns are tried in order, first match wins
var packPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpack\s*of\s*(\d+)`),
	regexp.MustCompile(`(?i)\b(\d+)\s*[x×]\s*\d+(?:\.\d+)?\s*(?:` + unitAlternation + `)\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*packs?\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*(?:count|ct)\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*(?:pcs|pc|pieces|piece)\b`),
	regexp.MustCompile(`(?i)\bset\s*of\s*(\d+)`),
}

// unitAliases folds plural spellings onto the base unit vocabulary
var unitAliases = map[string]string{
	"grams":  "gram",
	"gms":    "gm",
	"litres": "litre",
	"liters": "liter",
}

// featureRule tags a title when every keyword occurs in it
type featureRule struct {
	Tag      string
	Keywords []string
}

// featureRules is the keyword vocabulary; a tag may require several keywords
var featureRules = []featureRule{
	{Tag: "organic", Keywords: []string{"organic"}},
	{Tag: "natural", Keywords: []string{"natural"}},
	{Tag: "herbal", Keywords: []string{"herbal"}},
	{Tag: "ayurvedic", Keywords: []string{"ayurved"}},
	{Tag: "germ protection", Keywords: []string{"germ", "protection"}},
	{Tag: "antibacterial", Keywords: []string{"antibacterial"}},
	{Tag: "moisturizing", Keywords: []string{"moistur"}},
	{Tag: "fragrance free", Keywords: []string{"fragrance", "free"}},
	{Tag: "sugar free", Keywords: []string{"sugar", "free"}},
	{Tag: "gluten free", Keywords: []string{"gluten", "free"}},
	{Tag: "vegan", Keywords: []string{"vegan"}},
	{Tag: "refill", Keywords: []string{"refill"}},
	{Tag: "combo", Keywords: []string{"combo"}},
	{Tag: "value pack", Keywords: []string{"value", "pack"}},
}

// ExtractWeight detects a weight or volume like "500g" or "1.5 L" in text
func ExtractWeight(text string) *domain.WeightMatch {
	if text == "" {
		return nil
	}

	for _, pattern := range weightPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &domain.WeightMatch{
			Value: value,
			Unit:  normalizeUnit(m[2]),
			Text:  m[0],
		}
	}
	return nil
}

// ExtractPackSize detects a multi-pack count like "pack of 4" or "6 x 100ml"
func ExtractPackSize(text string) *domain.PackMatch {
	if text == "" {
		return nil
	}

	for _, pattern := range packPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		count, err := strconv.Atoi(m[1])
		if err != nil || count < 1 {
			continue
		}
		return &domain.PackMatch{Count: count, Text: m[0]}
	}
	return nil
}

// ExtractFeatures returns every feature tag whose keywords all occur in text,
// in vocabulary order
func ExtractFeatures(text string) []string {
	features := []string{}
	if text == "" {
		return features
	}

	lower := strings.ToLower(text)
	for _, rule := range featureRules {
		if containsAll(lower, rule.Keywords) {
			features = append(features, rule.Tag)
		}
	}
	return features
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return len(keywords) > 0
}

func normalizeUnit(unit string) string {
	u := strings.ToLower(unit)
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	return u
}
