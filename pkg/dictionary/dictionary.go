package dictionary

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/atomspell/atomspell/pkg/language"
)

// Dictionary holds the normalized word set for one language plus the
// user-scoped added and ignored word sets. The base set is read-mostly
// after Load; mutations go through AddWord/IgnoreWord which also
// persist to the user scope.
type Dictionary struct {
	mu            sync.RWMutex
	words         map[string]struct{}
	userWords     map[string]struct{}
	ignored       map[string]struct{}
	minWordLength int
	lang          language.Language
	loaded        bool
	userDir       string
}

// New creates an empty dictionary for a language. userDir is where the
// user-added and ignored word lists live; empty means the default
// per-user directory.
func New(lang language.Language, userDir string) *Dictionary {
	if userDir == "" {
		userDir = language.UserDictDir()
	}
	return &Dictionary{
		words:         make(map[string]struct{}),
		userWords:     make(map[string]struct{}),
		ignored:       make(map[string]struct{}),
		minWordLength: 1,
		lang:          lang,
		userDir:       userDir,
	}
}

// Language returns the dictionary's language tag.
func (d *Dictionary) Language() language.Language {
	return d.lang
}

// IsLoaded reports whether Load has completed.
func (d *Dictionary) IsLoaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// WordCount returns the number of known words, user additions included.
func (d *Dictionary) WordCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// IgnoredCount returns the number of ignored words.
func (d *Dictionary) IgnoredCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.ignored)
}

// Words returns a snapshot of the known word set.
func (d *Dictionary) Words() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	words := make([]string, 0, len(d.words))
	for word := range d.words {
		words = append(words, word)
	}
	return words
}

// normalize applies NFC and the language's case convention: lower-case
// for Latin scripts, verbatim for CJK. All stored words pass through
// here so lookups never re-normalize stored data.
func (d *Dictionary) normalize(word string) string {
	word = norm.NFC.String(strings.TrimSpace(word))
	if d.lang.IsCJK() {
		return word
	}
	return strings.ToLower(word)
}

// Load resolves and reads the base word list, then merges the
// user-scoped lists. Idempotent: repeated calls are no-ops once loaded.
// Resolution order: catalog path (CSV before plain text) -> embedded
// fallback list -> default language's list -> ErrDictionaryNotFound.
func (d *Dictionary) Load(catalog *language.Manager) error {
	d.mu.Lock()
	if d.loaded {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	var loadErr error
	if path, ok := catalog.DictionaryPath(d.lang); ok {
		loadErr = d.LoadFile(path)
	}

	// Fall back one level before surfacing: the default language's
	// list, then the embedded list.
	if d.WordCount() == 0 {
		if d.lang != language.Default {
			if path, ok := catalog.DictionaryPath(language.Default); ok {
				loadErr = d.LoadFile(path)
			}
		}
		if d.WordCount() == 0 {
			d.loadEmbedded()
		}
	}

	d.mu.Lock()
	if len(d.words) == 0 {
		d.mu.Unlock()
		if loadErr != nil {
			return loadErr
		}
		return fmt.Errorf("%w for %s", ErrDictionaryNotFound, d.lang.Name())
	}
	d.loaded = true
	d.mu.Unlock()

	d.loadUserData()

	if d.WordCount() == 0 {
		return ErrEmptyDictionary
	}
	return nil
}

// LoadFile merges the words of one list file into the dictionary. The
// format is dispatched on the file extension: .csv takes the first
// column of each record, .txt is one word per line. Content that is not
// valid UTF-8 gets a repair pass before the load fails.
func (d *Dictionary) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading word list: %w", err)
	}

	content := string(data)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
		}
	}

	var lines []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		reader := csv.NewReader(strings.NewReader(content))
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, record := range records {
			if len(record) > 0 {
				lines = append(lines, record[0])
			}
		}
	case ".txt":
		lines = strings.Split(content, "\n")
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	if d.mergeLines(lines) == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptyDictionary)
	}
	return nil
}

// mergeLines normalizes raw list lines across a small worker pool and
// merges the results into the word set, returning the number of usable
// words seen. Line parsing is independent per line, so the split is
// safe.
func (d *Dictionary) mergeLines(lines []string) int {
	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}
	if workers < 1 || len(lines) < 1024 {
		workers = 1
	}

	partial := make([]map[string]struct{}, workers)
	chunk := (len(lines) + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := start + chunk
		if end > len(lines) {
			end = len(lines)
		}
		if start >= end {
			partial[i] = map[string]struct{}{}
			continue
		}
		wg.Add(1)
		go func(slot int, part []string) {
			defer wg.Done()
			set := make(map[string]struct{}, len(part))
			for _, line := range part {
				word := d.normalize(line)
				if word == "" || len(word) < d.minWordLength {
					continue
				}
				set[word] = struct{}{}
			}
			partial[slot] = set
		}(i, lines[start:end])
	}
	wg.Wait()

	usable := 0
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, set := range partial {
		usable += len(set)
		for word := range set {
			d.words[word] = struct{}{}
		}
	}
	return usable
}

// Contains answers "is this token correct, or should it be skipped".
// It returns true for input the checker must never flag: empty or
// too-short tokens, ignored words, numeric-heavy tokens, and code
// identifier shapes in code context. Otherwise membership in the
// normalized word set decides.
func (d *Dictionary) Contains(word string, caseSensitive, isCode bool) bool {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" || len(trimmed) < d.minWordLength {
		return true
	}

	normalized := d.normalize(trimmed)

	d.mu.RLock()
	_, isIgnored := d.ignored[normalized]
	d.mu.RUnlock()
	if isIgnored {
		return true
	}

	if !d.lang.IsCJK() && isNumericHeavy(trimmed) {
		return true
	}

	if isCode && looksLikeIdentifier(trimmed) {
		return true
	}

	key := normalized
	if caseSensitive {
		key = norm.NFC.String(trimmed)
	}

	d.mu.RLock()
	_, found := d.words[key]
	d.mu.RUnlock()
	return found
}

// isNumericHeavy reports tokens that are mostly digits: at least one
// digit and fewer than three letters.
func isNumericHeavy(word string) bool {
	digits, letters := 0, 0
	for _, c := range word {
		switch {
		case unicode.IsDigit(c):
			digits++
		case unicode.IsLetter(c):
			letters++
		}
	}
	return digits > 0 && letters < 3
}

var identifierPrefixes = []string{"get_", "set_", "is_", "has_"}
var identifierSuffixes = []string{"_t", "_ptr", "Handler", "Service", "Manager", "Factory"}

// looksLikeIdentifier is a shape test for code identifiers, independent
// of the classifier: interior underscore, mixed case that is not
// all-caps, or a conventional prefix/suffix.
func looksLikeIdentifier(word string) bool {
	if len(word) > 2 && strings.Contains(word[1:len(word)-1], "_") {
		return true
	}

	hasUpper := strings.ContainsFunc(word, unicode.IsUpper)
	hasLower := strings.ContainsFunc(word, unicode.IsLower)
	if hasUpper && hasLower {
		return true
	}

	for _, prefix := range identifierPrefixes {
		if strings.HasPrefix(word, prefix) {
			return true
		}
	}
	for _, suffix := range identifierSuffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// validateInput trims and normalizes a word for mutation, rejecting
// empty or too-short input.
func (d *Dictionary) validateInput(word string) (string, error) {
	normalized := d.normalize(word)
	if normalized == "" || utf8.RuneCountInString(normalized) < 2 ||
		!strings.ContainsFunc(normalized, unicode.IsLetter) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return normalized, nil
}

// AddWord adds a word to the dictionary and the user scope, removing it
// from the ignored set if present. The in-memory mutation stands even
// when persisting to the user file fails; the error is still reported.
func (d *Dictionary) AddWord(word string) error {
	normalized, err := d.validateInput(word)
	if err != nil {
		return err
	}

	d.mu.Lock()
	_, alreadyAdded := d.userWords[normalized]
	d.words[normalized] = struct{}{}
	d.userWords[normalized] = struct{}{}
	_, wasIgnored := d.ignored[normalized]
	delete(d.ignored, normalized)
	d.mu.Unlock()

	// Already persisted; a repeat append would only grow the file.
	if !alreadyAdded {
		if err := d.appendUserWord(normalized); err != nil {
			return err
		}
	}
	if wasIgnored {
		return d.writeIgnoredFile()
	}
	return nil
}

// IgnoreWord marks a word as ignored for this user. Ignored words are
// consulted before any dictionary lookup, so they always pass.
func (d *Dictionary) IgnoreWord(word string) error {
	normalized, err := d.validateInput(word)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.ignored[normalized] = struct{}{}
	d.mu.Unlock()

	return d.writeIgnoredFile()
}

// ClearIgnored drops all ignored words and rewrites the user file.
func (d *Dictionary) ClearIgnored() error {
	d.mu.Lock()
	d.ignored = make(map[string]struct{})
	d.mu.Unlock()

	return d.writeIgnoredFile()
}
