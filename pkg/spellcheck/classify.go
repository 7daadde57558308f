package spellcheck

import (
	"strings"
	"unicode"
)

// classifyRule is one entry of the ordered classification table. The
// order is load-bearing: an all-caps short acronym must win over the
// proper-noun rule even though it also starts with a capital.
type classifyRule struct {
	wordType WordType
	codeOnly bool
	match    func(word string) bool
}

var classifyRules = []classifyRule{
	{Acronym, false, isAcronymShape},
	{ProperNoun, false, isProperNounShape},
	{CodeIdentifier, true, isCodeIdentifierShape},
	{TechnicalTerm, false, isTechnicalTermShape},
}

// Classify assigns the semantic category of a token, first matching
// rule wins.
func Classify(word string, isCode bool) WordType {
	for _, rule := range classifyRules {
		if rule.codeOnly && !isCode {
			continue
		}
		if rule.match(word) {
			return rule.wordType
		}
	}
	return Normal
}

// isAcronymShape: every character uppercase, digit, or underscore, and
// at most six characters.
func isAcronymShape(word string) bool {
	if len(word) > 6 {
		return false
	}
	for _, c := range word {
		if !unicode.IsUpper(c) && !unicode.IsDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

// Capitalized function words that are not proper nouns.
var commonCapitalized = map[string]struct{}{
	"I": {}, "A": {}, "The": {}, "And": {}, "But": {},
	"Or": {}, "For": {}, "Nor": {}, "Yet": {}, "So": {},
}

func isProperNounShape(word string) bool {
	first, _ := firstRune(word)
	if !unicode.IsUpper(first) || len(word) <= 2 {
		return false
	}
	_, common := commonCapitalized[word]
	return !common
}

func isCodeIdentifierShape(word string) bool {
	if strings.Contains(word, "_") {
		return true
	}
	hasUpper := strings.ContainsFunc(word, unicode.IsUpper)
	hasLower := strings.ContainsFunc(word, unicode.IsLower)
	if hasUpper && hasLower {
		return true
	}
	return strings.HasPrefix(word, "get_") || strings.HasPrefix(word, "set_") ||
		strings.HasSuffix(word, "_t") || strings.HasSuffix(word, "_ptr")
}

func isTechnicalTermShape(word string) bool {
	return strings.Contains(word, "-") && len(word) > 5
}

func firstRune(word string) (rune, bool) {
	for _, c := range word {
		return c, true
	}
	return 0, false
}
