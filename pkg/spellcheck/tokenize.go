package spellcheck

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/atomspell/atomspell/pkg/language"
)

// Token patterns, compiled once. The pattern is selected once per
// document based on language and context.
var (
	// Prose: runs of letters with embedded apostrophes/hyphens.
	proseWordRE = regexp.MustCompile(`[\p{L}][\p{L}'-]*`)

	// CJK: maximal script runs, or Latin words as in prose.
	cjkWordRE = regexp.MustCompile(`[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]+|[\p{L}][\p{L}'-]*`)

	// Code: only runs of 3+ Latin letters are worth checking.
	codeWordRE = regexp.MustCompile(`[a-zA-Z][a-zA-Z'-]{2,}`)
)

// Token is one tokenizer match within a line, byte offsets.
type Token struct {
	Text  string
	Start int
	End   int
}

func tokenPattern(isCJK, isCode bool) *regexp.Regexp {
	switch {
	case isCJK:
		return cjkWordRE
	case isCode:
		return codeWordRE
	default:
		return proseWordRE
	}
}

// tokenizeLine returns the line's candidate words in order. Tokens
// shorter than two bytes are discarded before classification.
func tokenizeLine(pattern *regexp.Regexp, line string) []Token {
	matches := pattern.FindAllStringIndex(line, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		text := line[m[0]:m[1]]
		if len(text) < 2 {
			continue
		}
		tokens = append(tokens, Token{Text: text, Start: m[0], End: m[1]})
	}
	return tokens
}

var codeExtensions = map[string]struct{}{
	"rs": {}, "py": {}, "js": {}, "ts": {}, "jsx": {}, "tsx": {},
	"java": {}, "cpp": {}, "c": {}, "cc": {}, "go": {}, "rb": {},
	"php": {}, "cs": {}, "swift": {}, "kt": {}, "scala": {}, "hs": {},
	"lua": {}, "pl": {}, "r": {}, "m": {}, "f": {}, "f90": {},
	"v": {}, "sv": {}, "vhd": {}, "vhdl": {}, "asm": {}, "s": {},
	"sh": {}, "bash": {}, "zsh": {}, "fish": {}, "ps1": {}, "bat": {},
	"cmd": {}, "yml": {}, "yaml": {}, "toml": {}, "json": {},
	"xml": {}, "html": {}, "htm": {}, "css": {}, "scss": {}, "less": {},
}

// IsCodeFile reports whether the filename extension indicates source
// code.
func IsCodeFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	_, ok := codeExtensions[ext]
	return ok
}

var codeIndicators = []string{
	"->", "=>", "fn ", "def ", "function ", "class ", "import ",
	"export ", "#include", "pub ", "let ", "const ", "var ", "return ",
}

// IsLikelyCode scans the first ten lines for code indicators. Fewer
// than three lines is never code; two or more indicator lines is.
func IsLikelyCode(text string) bool {
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return false
	}
	if len(lines) > 10 {
		lines = lines[:10]
	}

	indicatorLines := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		hit := strings.Contains(trimmed, "{") || strings.Contains(trimmed, "}") ||
			(strings.Contains(trimmed, ";") && !strings.HasPrefix(trimmed, "//"))
		if !hit {
			for _, indicator := range codeIndicators {
				if strings.Contains(trimmed, indicator) {
					hit = true
					break
				}
			}
		}
		if hit {
			indicatorLines++
		}
	}
	return indicatorLines >= 2
}

// splitLines splits a document into lines the way a line-based scanner
// would: no trailing empty line, and an empty document has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Accuracy computes the document accuracy percentage, rounded. A
// document with no counted words is fully accurate.
func Accuracy(total, misspelled int) float64 {
	if total == 0 {
		return 100.0
	}
	ratio := float64(total-misspelled) / float64(total)
	return float64(int(ratio*100.0 + 0.5))
}

// ExtractWords returns the raw tokens of a text under the given
// context, normalized for counting.
func ExtractWords(text string, isCJK, isCode bool) []string {
	pattern := tokenPattern(isCJK, isCode)
	var words []string
	for _, line := range splitLines(text) {
		for _, tok := range tokenizeLine(pattern, line) {
			if isCJK {
				words = append(words, tok.Text)
			} else {
				words = append(words, strings.ToLower(tok.Text))
			}
		}
	}
	return words
}

// WordFrequency counts word occurrences with context awareness.
func WordFrequency(text string, isCJK, isCode bool) map[string]int {
	freq := make(map[string]int)
	for _, word := range ExtractWords(text, isCJK, isCode) {
		freq[word]++
	}
	return freq
}

// WordCount is one entry of a frequency ranking.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MostCommonWords ranks a frequency table, count descending with
// lexicographic tie-break.
func MostCommonWords(freq map[string]int, n int) []WordCount {
	ranked := make([]WordCount, 0, len(freq))
	for word, count := range freq {
		ranked = append(ranked, WordCount{word, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ReadingTime estimates minutes and seconds at 200 words per minute.
func ReadingTime(text string) (minutes, seconds int) {
	words := len(ExtractWords(text, false, false))
	return words / 200, (words % 200) * 60 / 200
}

// contextFor decides the tokenizer context for one document.
func contextFor(lang language.Language, text, filename string) (isCJK, isCode bool) {
	isCJK = lang.IsCJK()
	isCode = (filename != "" && IsCodeFile(filename)) || IsLikelyCode(text)
	return isCJK, isCode
}
