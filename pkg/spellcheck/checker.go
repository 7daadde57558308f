package spellcheck

import (
	"log"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/atomspell/atomspell/pkg/dictionary"
	"github.com/atomspell/atomspell/pkg/language"
)

// Checker is the spell-check engine. It is safe for concurrent use:
// document checks take a read lock, while language and configuration
// changes take the write lock. Correctness verdicts are memoized in a
// cache keyed by (language, word) that only empties on language change
// or explicit invalidation, never by eviction.
type Checker struct {
	mu      sync.RWMutex
	manager *dictionary.Manager
	lang    language.Language
	config  Config

	// cache maps "<code>_<word>" to a bool verdict.
	cache sync.Map

	ignoreList  map[string]struct{}
	userWords   map[string]struct{}
	properNouns map[string]struct{}
	acronyms    map[string]struct{}

	sugg *suggester
}

// Well-known technical acronyms, always skipped.
var defaultAcronyms = []string{
	"API", "HTTP", "HTTPS", "URL", "URI", "HTML", "CSS", "JS", "TS",
	"JSON", "XML", "SQL", "NoSQL", "CPU", "GPU", "RAM", "ROM", "USB",
	"SSD", "HDD", "LAN", "WAN", "VPN", "DNS", "IP", "TCP", "UDP",
}

// NewChecker creates a checker over the given dictionary manager. The
// initial language's dictionary is warmed immediately; a load failure
// is logged and the checker still works, reporting every document as
// fully accurate until a dictionary becomes available.
func NewChecker(manager *dictionary.Manager, lang language.Language) *Checker {
	if manager == nil {
		manager = dictionary.NewManager(nil, "")
	}
	if lang == language.AutoDetect || lang == "" {
		lang = language.Default
	}

	c := &Checker{
		manager:     manager,
		lang:        lang,
		config:      DefaultConfig(),
		ignoreList:  make(map[string]struct{}),
		userWords:   make(map[string]struct{}),
		properNouns: make(map[string]struct{}),
		acronyms:    make(map[string]struct{}, len(defaultAcronyms)),
		sugg:        newSuggester(),
	}
	for _, acronym := range defaultAcronyms {
		c.acronyms[strings.ToLower(acronym)] = struct{}{}
	}

	if _, err := manager.Get(lang); err != nil {
		log.Printf("[SpellCheck] Could not load dictionary for %s: %v", lang.Name(), err)
	}
	return c
}

// Language returns the active language.
func (c *Checker) Language() language.Language {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// ActiveLanguage returns the concrete language mutations apply to. The
// AutoDetect marker resolves to the default language: it is never a
// dictionary key.
func (c *Checker) ActiveLanguage() language.Language {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lang == language.AutoDetect {
		return language.Default
	}
	return c.lang
}

// Config returns the current check configuration.
func (c *Checker) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// SetConfig replaces the check configuration.
func (c *Checker) SetConfig(config Config) {
	if config.MaxSuggestions <= 0 {
		config.MaxSuggestions = DefaultConfig().MaxSuggestions
	}
	if config.ConfidenceThreshold <= 0 {
		config.ConfidenceThreshold = DefaultConfig().ConfidenceThreshold
	}
	c.mu.Lock()
	c.config = config
	c.mu.Unlock()
}

// SetLanguage switches the active language. A no-op when the language
// is unchanged; otherwise the new dictionary must load before the
// switch takes effect, and the verdict cache is dropped.
func (c *Checker) SetLanguage(lang language.Language) error {
	c.mu.RLock()
	same := lang == c.lang
	c.mu.RUnlock()
	if same {
		return nil
	}

	// AutoDetect is a request marker resolved per document; there is no
	// dictionary to warm for it.
	if lang != language.AutoDetect {
		if _, err := c.manager.Get(lang); err != nil {
			return err
		}
	}

	c.mu.Lock()
	old := c.lang
	c.lang = lang
	c.mu.Unlock()

	c.cache.Clear()
	c.sugg.purge(old)
	log.Printf("[SpellCheck] Language changed from %s to %s", old.Name(), lang.Name())
	return nil
}

// AddWord adds a word to the user dictionary for the active language
// and makes it immediately correct.
func (c *Checker) AddWord(word string) error {
	lang := c.ActiveLanguage()

	dict, err := c.manager.Get(lang)
	if err != nil {
		return err
	}
	if err := dict.AddWord(word); err != nil {
		return err
	}

	lower := strings.ToLower(strings.TrimSpace(word))
	c.mu.Lock()
	c.userWords[lower] = struct{}{}
	c.mu.Unlock()
	c.cache.Store(cacheKey(lang, lower, false), true)
	c.cache.Store(cacheKey(lang, lower, true), true)
	return nil
}

// IgnoreWord marks a word as ignored. Ignored words always check as
// correct and are never counted as misspellings.
func (c *Checker) IgnoreWord(word string) error {
	lang := c.ActiveLanguage()

	dict, err := c.manager.Get(lang)
	if err != nil {
		return err
	}
	if err := dict.IgnoreWord(word); err != nil {
		return err
	}

	lower := strings.ToLower(strings.TrimSpace(word))
	c.mu.Lock()
	c.ignoreList[lower] = struct{}{}
	c.mu.Unlock()
	c.cache.Store(cacheKey(lang, lower, false), true)
	c.cache.Store(cacheKey(lang, lower, true), true)
	return nil
}

// ClearIgnored drops the ignore list. Cached verdicts for previously
// ignored words are stale afterwards, so the cache goes too.
func (c *Checker) ClearIgnored() error {
	lang := c.ActiveLanguage()

	dict, err := c.manager.Get(lang)
	if err != nil {
		return err
	}
	if err := dict.ClearIgnored(); err != nil {
		return err
	}

	c.mu.Lock()
	c.ignoreList = make(map[string]struct{})
	c.mu.Unlock()
	c.cache.Clear()
	return nil
}

// AddProperNoun registers a proper noun to skip in future checks.
func (c *Checker) AddProperNoun(word string) {
	c.mu.Lock()
	c.properNouns[strings.ToLower(word)] = struct{}{}
	c.mu.Unlock()
}

// AddAcronym registers an acronym to skip in future checks.
func (c *Checker) AddAcronym(word string) {
	c.mu.Lock()
	c.acronyms[strings.ToLower(word)] = struct{}{}
	c.mu.Unlock()
}

// CheckText checks a document with no filename context.
func (c *Checker) CheckText(text string) *DocumentAnalysis {
	return c.CheckDocument(text, "")
}

// CheckDocument spell-checks a document. Lines are independent, so
// they are fanned out over a worker pool and the per-line results
// merged back in document order. The returned analysis is a fresh
// value every call.
func (c *Checker) CheckDocument(text, filename string) *DocumentAnalysis {
	c.mu.RLock()
	lang := c.lang
	config := c.config
	c.mu.RUnlock()
	return c.CheckDocumentWith(text, filename, lang, config)
}

// CheckDocumentWith runs one check with explicit language and
// configuration, leaving the checker's defaults untouched.
func (c *Checker) CheckDocumentWith(text, filename string, lang language.Language, config Config) *DocumentAnalysis {
	started := time.Now()

	if lang == language.AutoDetect {
		lang = c.manager.DetectLanguage(text)
	}

	analysis := &DocumentAnalysis{
		Accuracy: 100.0,
		Language: lang,
		FileType: filename,
	}

	dict, err := c.manager.Get(lang)
	if err != nil {
		log.Printf("[SpellCheck] No dictionary for %s: %v", lang.Name(), err)
		return analysis
	}

	isCJK, isCode := contextFor(lang, text, filename)
	pattern := tokenPattern(isCJK, isCode)
	lines := splitLines(text)

	results := make([]lineResult, len(lines))
	jobs := make(chan int)

	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers > len(lines) {
		workers = len(lines)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.checkLine(dict, lang, config, pattern, lines[i], i+1, isCJK, isCode)
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, res := range results {
		analysis.Words = append(analysis.Words, res.checks...)
		analysis.TotalWords += res.total
		analysis.MisspelledWords += res.misspelled
		analysis.SuggestionsCount += res.suggestions
	}
	analysis.Accuracy = Accuracy(analysis.TotalWords, analysis.MisspelledWords)
	analysis.LinesChecked = len(lines)
	analysis.LikelyCode = isCode
	analysis.CheckDuration = time.Since(started)
	return analysis
}

type lineResult struct {
	checks      []WordCheck
	total       int
	misspelled  int
	suggestions int
}

func (c *Checker) checkLine(dict *dictionary.Dictionary, lang language.Language, config Config, pattern *regexp.Regexp, line string, lineNo int, isCJK, isCode bool) lineResult {
	var res lineResult

	for _, tok := range tokenizeLine(pattern, line) {
		original := tok.Text

		wordType := Classify(original, isCode)
		check := WordCheck{
			Word:     normalizeToken(original, isCJK),
			Original: original,
			Start:    tok.Start,
			End:      tok.End,
			Line:     lineNo,
			Column:   tok.Start + 1,
			WordType: wordType,
		}

		// Skipped tokens are reported correct at full confidence and
		// excluded from the document totals.
		if c.shouldSkip(original, wordType) {
			check.IsCorrect = true
			check.Confidence = 1.0
			res.checks = append(res.checks, check)
			continue
		}

		isCorrect := c.resolveCorrect(dict, lang, config, check.Word, original, wordType, isCode)
		confidence := calculateConfidence(original, wordType, isCorrect)

		// A low-confidence misspelling verdict is not worth reporting.
		reported := isCorrect || confidence < config.ConfidenceThreshold
		check.IsCorrect = reported
		check.Confidence = confidence

		res.total++
		if !reported {
			res.misspelled++
			if config.SuggestionsEnabled {
				check.Suggestions = c.sugg.suggest(dict, lang, original, config.MaxSuggestions)
				res.suggestions += len(check.Suggestions)
			}
		}
		res.checks = append(res.checks, check)
	}
	return res
}

// shouldSkip filters categories that are not worth checking at all:
// known acronyms, registered proper nouns, and code identifier shapes
// that are clearly not words.
func (c *Checker) shouldSkip(word string, wordType WordType) bool {
	switch wordType {
	case Acronym:
		c.mu.RLock()
		_, known := c.acronyms[strings.ToLower(word)]
		c.mu.RUnlock()
		return known
	case ProperNoun:
		c.mu.RLock()
		_, known := c.properNouns[strings.ToLower(word)]
		c.mu.RUnlock()
		return known
	case CodeIdentifier:
		return len(word) <= 3 ||
			allDigits(word) ||
			strings.HasPrefix(word, "0x") ||
			strings.Contains(word, "__")
	default:
		return false
	}
}

// resolveCorrect decides whether a token is correct. Resolution order:
// ignore list, user words, cached verdict, dictionary membership with
// category leniency. Only the final step is memoized; the session
// lists are consulted live so mutations take effect at once.
func (c *Checker) resolveCorrect(dict *dictionary.Dictionary, lang language.Language, config Config, lower, original string, wordType WordType, isCode bool) bool {
	c.mu.RLock()
	_, ignored := c.ignoreList[lower]
	_, userWord := c.userWords[lower]
	c.mu.RUnlock()
	if ignored || userWord {
		return true
	}

	// Case-sensitive verdicts depend on the original casing, so they
	// key by it.
	keyWord := lower
	if config.CaseSensitive {
		keyWord = original
	}
	key := cacheKey(lang, keyWord, config.CaseSensitive)
	if cached, ok := c.cache.Load(key); ok {
		return cached.(bool)
	}

	inDictionary := dict.Contains(original, config.CaseSensitive, isCode)

	var isCorrect bool
	switch wordType {
	case ProperNoun, Acronym:
		isCorrect = inDictionary || looksReasonable(original)
	case CodeIdentifier:
		isCorrect = inDictionary || len(original) <= 15
	default:
		isCorrect = inDictionary
	}

	c.cache.Store(key, isCorrect)
	return isCorrect
}

// InvalidateCache drops all memoized verdicts, used after a dictionary
// reload.
func (c *Checker) InvalidateCache() {
	c.cache.Clear()
	c.sugg.purge(c.ActiveLanguage())
}

// cacheKey scopes a verdict by language and case mode, so a verdict
// computed under one case setting is never replayed under the other.
func cacheKey(lang language.Language, lower string, caseSensitive bool) string {
	key := lang.Code() + "_" + lower
	if caseSensitive {
		key += "_cs"
	}
	return key
}

func normalizeToken(word string, isCJK bool) string {
	word = norm.NFC.String(word)
	if isCJK {
		return word
	}
	return strings.ToLower(word)
}

// looksReasonable is the leniency test for unknown proper nouns and
// acronyms: mostly letters, no long character runs, and vowels once
// the word is long enough to need them.
func looksReasonable(word string) bool {
	if word == "" {
		return false
	}

	letters, total := 0, 0
	for _, c := range word {
		total++
		if unicode.IsLetter(c) {
			letters++
		}
	}
	if total == 0 {
		return false
	}

	return float64(letters)/float64(total) > 0.7 &&
		!hasRepeatedRun(word, 4) &&
		(len(word) <= 4 || hasVowels(word))
}

func hasRepeatedRun(word string, maxRepeats int) bool {
	var current rune
	count := 0
	for _, c := range word {
		if c == current {
			count++
			if count > maxRepeats {
				return true
			}
		} else {
			current = c
			count = 1
		}
	}
	return false
}

func hasVowels(word string) bool {
	return strings.ContainsAny(word, "aeiouyAEIOUY")
}

func allDigits(word string) bool {
	for _, c := range word {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return len(word) > 0
}

var typoPatterns = []string{
	"ie", "ei",
	"tion", "sion",
	"able", "ible",
	"ment", "ness",
	"ough",
}

func hasTypoPatterns(word string) bool {
	for _, pattern := range typoPatterns {
		if strings.Contains(word, pattern) {
			return true
		}
	}
	return false
}

// calculateConfidence scores how confident a misspelling verdict is.
// Correct words are always 1.0; for the rest the base score is shaped
// by category, length, and spelling patterns, clamped to [0, 1].
func calculateConfidence(word string, wordType WordType, isCorrect bool) float64 {
	if isCorrect {
		return 1.0
	}

	confidence := 0.5

	switch wordType {
	case Normal:
		confidence *= 1.2
	case CodeIdentifier:
		confidence *= 0.3
	case Acronym:
		confidence *= 0.4
	case ProperNoun:
		confidence *= 0.6
	case TechnicalTerm:
		confidence *= 0.8
	}

	if len(word) < 3 {
		confidence *= 0.3
	} else if len(word) > 20 {
		confidence *= 0.7
	}

	if strings.ContainsAny(word, "_-") {
		confidence *= 1.1
	}

	if hasTypoPatterns(word) {
		confidence *= 1.3
	}

	if confidence > 1.0 {
		return 1.0
	}
	if confidence < 0.0 {
		return 0.0
	}
	return confidence
}
