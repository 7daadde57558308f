package language

import (
	"sort"
	"strings"
)

// Score is one detection candidate with its match percentage.
type Score struct {
	Language Language
	Score    float64
}

// Stop words per language, used for frequency-based detection. Only the
// languages with sufficiently distinctive function words are listed;
// the CJK languages are detected by script instead.
var commonWords = map[Language][]string{
	English: {
		"the", "and", "that", "have", "for", "with", "this", "from", "they", "would",
		"will", "what", "there", "their", "about", "which", "when", "who", "them",
		"some", "time", "could", "people", "other", "than", "then", "now", "look",
		"only", "come", "its", "over", "think", "also", "back", "after", "use",
		"two", "how", "our", "work", "first", "well", "way", "even", "new", "want",
	},
	Afrikaans: {
		"die", "en", "het", "vir", "om", "wat", "in", "is", "jy", "ek",
		"nie", "sy", "ons", "hulle", "daar", "maar", "my", "haar", "so", "by",
		"kan", "van", "dit", "te", "met", "hy", "was", "op", "een",
		"toe", "gaan", "moet", "nog", "al", "uit", "sê", "baie", "hier",
		"wees", "gewees", "word", "waar", "kom", "laat", "dink", "sien",
	},
	French: {
		"le", "la", "et", "que", "dans", "un", "est", "pour", "des", "les",
		"une", "pas", "son", "avec", "il", "elle", "qui", "mais", "nous",
		"vous", "ce", "se", "aux", "du", "de", "par", "sur", "sont",
		"cette", "été", "plus", "pouvoir", "comme", "tout", "faire", "me", "même",
		"sans", "autre", "aussi", "bien", "si", "y", "ou", "où", "lui", "donc",
	},
	Spanish: {
		"el", "la", "de", "que", "y", "a", "en", "un", "ser", "se",
		"no", "haber", "por", "con", "su", "para", "como", "estar", "tener", "le",
		"lo", "todo", "pero", "más", "hacer", "o", "poder", "decir", "este", "ir",
		"otro", "ese", "si", "me", "ya", "ver", "porque", "dar", "cuando",
		"él", "muy", "sin", "vez", "mucho", "saber", "qué", "sobre", "mi", "alguno",
	},
	German: {
		"der", "die", "und", "in", "den", "von", "zu", "das", "mit", "sich",
		"des", "auf", "für", "ist", "im", "dem", "nicht", "ein", "eine",
		"als", "auch", "es", "an", "werden", "aus", "er", "hat", "dass", "sie",
		"nach", "wird", "bei", "einer", "um", "am", "sind", "noch", "wie",
	},
}

func isCJKRune(c rune) bool {
	return (c >= 0x4E00 && c <= 0x9FFF) || // Han
		(c >= 0x3040 && c <= 0x309F) || // Hiragana
		(c >= 0x30A0 && c <= 0x30FF) || // Katakana
		(c >= 0xAC00 && c <= 0xD7AF) // Hangul
}

// ContainsCJK reports whether the text holds any CJK code points.
func ContainsCJK(text string) bool {
	for _, c := range text {
		if isCJKRune(c) {
			return true
		}
	}
	return false
}

// DetectFromText scores the built-in languages against the text and
// returns up to the top three candidates, best first. Texts shorter
// than three words default to English.
func DetectFromText(text string) []Score {
	// Script analysis first: CJK text has no space-separated words, so
	// the stop-word path would never see it.
	cjkCount, totalCount := 0, 0
	var hasHan, hasKana, hasHangul bool
	for _, c := range text {
		totalCount++
		if isCJKRune(c) {
			cjkCount++
			switch {
			case c >= 0x4E00 && c <= 0x9FFF:
				hasHan = true
			case c >= 0x3040 && c <= 0x30FF:
				hasKana = true
			case c >= 0xAC00 && c <= 0xD7AF:
				hasHangul = true
			}
		}
	}
	if totalCount > 0 && float64(cjkCount)/float64(totalCount) > 0.3 {
		// Kana before Han: Japanese text carries kanji too.
		switch {
		case hasKana:
			return []Score{{Japanese, 100.0}}
		case hasHan:
			return []Score{{Chinese, 100.0}}
		case hasHangul:
			return []Score{{Korean, 100.0}}
		}
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) < 3 {
		return []Score{{English, 100.0}}
	}

	if len(words) > 50 {
		words = words[:50]
	}

	scores := make(map[Language]float64)
	for lang, stopWords := range commonWords {
		matches := 0
		for _, word := range words {
			for _, stop := range stopWords {
				if word == stop {
					matches++
					break
				}
			}
		}
		score := float64(matches) / float64(len(words)) * 100.0
		if score > 10.0 {
			scores[lang] = score
		}
	}

	if len(scores) == 0 {
		scores[English] = 80.0
	}

	sorted := make([]Score, 0, len(scores))
	for lang, score := range scores {
		sorted = append(sorted, Score{lang, score})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Language < sorted[j].Language
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	return sorted
}

// Detect returns the most likely concrete language for the text, or
// English when no candidate scores above the acceptance threshold.
func Detect(text string) Language {
	if strings.TrimSpace(text) == "" {
		return English
	}
	scores := DetectFromText(text)
	if len(scores) > 0 && scores[0].Score > 25.0 {
		return scores[0].Language
	}
	return English
}
