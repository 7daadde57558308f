package spellcheck

import (
	"log"
	"sort"
	"strings"
	"sync"
	"unicode"

	lru "github.com/hashicorp/golang-lru"
	"github.com/hbollon/go-edlib"
	"github.com/sajari/fuzzy"

	"github.com/atomspell/atomspell/pkg/dictionary"
	"github.com/atomspell/atomspell/pkg/language"
)

const (
	suggestionCacheSize = 4096

	// Cached entries hold the full ranked pool, clamped per request, so
	// one caller's max never truncates another's.
	suggestionPoolSize = 32
)

// suggester produces ranked correction candidates. One fuzzy model is
// trained per language from the active dictionary; ranked results are
// kept in a bounded cache keyed by (language, word).
type suggester struct {
	mu     sync.Mutex
	models map[language.Language]*fuzzy.Model
	cache  *lru.Cache
}

func newSuggester() *suggester {
	cache, err := lru.New(suggestionCacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	return &suggester{
		models: make(map[language.Language]*fuzzy.Model),
		cache:  cache,
	}
}

// purge drops the model and cached suggestions for a language, used on
// language change and dictionary reload.
func (s *suggester) purge(lang language.Language) {
	s.mu.Lock()
	delete(s.models, lang)
	s.mu.Unlock()
	s.cache.Purge()
}

func (s *suggester) modelFor(lang language.Language, dict *dictionary.Dictionary) *fuzzy.Model {
	s.mu.Lock()
	defer s.mu.Unlock()

	if model, ok := s.models[lang]; ok {
		return model
	}

	model := fuzzy.NewModel()
	model.SetDepth(2)     // maximum edit distance
	model.SetThreshold(1) // minimum frequency threshold

	words := dict.Words()
	for _, word := range words {
		model.TrainWord(word)
	}
	log.Printf("[SpellCheck] Trained suggestion model for %s with %d words", lang.Name(), len(words))

	s.models[lang] = model
	return model
}

// suggest returns up to max corrections for word, best first. An empty
// result is valid.
func (s *suggester) suggest(dict *dictionary.Dictionary, lang language.Language, word string, max int) []string {
	if max <= 0 {
		return nil
	}

	lower := strings.ToLower(word)
	key := lang.Code() + "_" + lower

	if cached, ok := s.cache.Get(key); ok {
		return matchCase(word, clampSuggestions(cached.([]string), max))
	}

	model := s.modelFor(lang, dict)
	candidates := model.SpellCheckSuggestions(lower, suggestionPoolSize)

	ranked := rankCandidates(lower, candidates, suggestionPoolSize)
	s.cache.Add(key, ranked)
	return matchCase(word, clampSuggestions(ranked, max))
}

// rankCandidates orders candidates by OSA Damerau-Levenshtein
// similarity to the misspelled word, ties broken by length proximity
// then lexicographically.
func rankCandidates(word string, candidates []string, max int) []string {
	type scored struct {
		word       string
		similarity float32
		lenDiff    int
	}

	seen := make(map[string]struct{}, len(candidates))
	pool := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || candidate == word {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		similarity, err := edlib.StringsSimilarity(word, candidate, edlib.OSADamerauLevenshtein)
		if err != nil {
			similarity = 0
		}
		lenDiff := len(candidate) - len(word)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		pool = append(pool, scored{candidate, similarity, lenDiff})
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].similarity != pool[j].similarity {
			return pool[i].similarity > pool[j].similarity
		}
		if pool[i].lenDiff != pool[j].lenDiff {
			return pool[i].lenDiff < pool[j].lenDiff
		}
		return pool[i].word < pool[j].word
	})

	ranked := make([]string, 0, max)
	for _, entry := range pool {
		ranked = append(ranked, entry.word)
		if len(ranked) == max {
			break
		}
	}
	return ranked
}

func clampSuggestions(suggestions []string, max int) []string {
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return append([]string(nil), suggestions...)
}

// matchCase restores the original token's capitalization pattern on the
// suggestions: all-caps input yields all-caps suggestions, capitalized
// input yields capitalized ones.
func matchCase(original string, suggestions []string) []string {
	if len(suggestions) == 0 {
		return suggestions
	}

	switch {
	case isAllUpper(original):
		out := make([]string, len(suggestions))
		for i, s := range suggestions {
			out[i] = strings.ToUpper(s)
		}
		return out
	case startsUpper(original):
		out := make([]string, len(suggestions))
		for i, s := range suggestions {
			out[i] = capitalize(s)
		}
		return out
	default:
		return suggestions
	}
}

func isAllUpper(word string) bool {
	hasLetter := false
	for _, c := range word {
		if unicode.IsLetter(c) {
			hasLetter = true
			if !unicode.IsUpper(c) {
				return false
			}
		}
	}
	return hasLetter && len(word) > 1
}

func startsUpper(word string) bool {
	first, ok := firstRune(word)
	return ok && unicode.IsUpper(first)
}

func capitalize(word string) string {
	for i, c := range word {
		return string(unicode.ToUpper(c)) + word[i+len(string(c)):]
	}
	return word
}
