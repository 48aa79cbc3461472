package search

import (
	"regexp"
	"strconv"
	"strings"

	"storevista-be/internal/store"
)

// Intent is what a free-text shopping query asks for.
type Intent struct {
	Keyword  string
	MaxPrice *float64
	Category store.Category
}

var (
	pricePattern  = regexp.MustCompile(`(?i)(under|less than|below|cheaper than)\s+(\d+)`)
	fillerPattern = regexp.MustCompile(`(?i)\b(?:i want|looking for|show me|buy|need|find|an|a|the)\b`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

type categorySynonyms struct {
	category store.Category
	pattern  *regexp.Regexp
}

// Declaration order decides which category wins.
var synonymTable = []categorySynonyms{
	newSynonyms(store.CategoryElectronics, "electronics", "phone", "laptop", "computer", "tech", "gadget"),
	newSynonyms(store.CategoryFashion, "fashion", "clothes", "clothing", "shoes", "dress", "shirt"),
	newSynonyms(store.CategoryFood, "food", "grocery", "groceries", "snack", "drink", "fruit"),
	newSynonyms(store.CategoryHome, "home", "furniture", "kitchen", "garden", "decor"),
	newSynonyms(store.CategoryArt, "art", "craft", "crafts", "painting", "handmade"),
}

func newSynonyms(c store.Category, words ...string) categorySynonyms {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return categorySynonyms{
		category: c,
		pattern:  regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// ParseQuery extracts a price ceiling, a store category and a residual
// keyword from query. It never fails; unmatched parts stay in the keyword.
func ParseQuery(query string) Intent {
	var intent Intent
	text := query

	if m := pricePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			intent.MaxPrice = &v
		}
		text = pricePattern.ReplaceAllString(text, " ")
	}

	for _, entry := range synonymTable {
		if entry.pattern.MatchString(text) {
			intent.Category = entry.category
			text = entry.pattern.ReplaceAllString(text, " ")
			break
		}
	}

	text = fillerPattern.ReplaceAllString(text, " ")
	intent.Keyword = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))

	return intent
}
