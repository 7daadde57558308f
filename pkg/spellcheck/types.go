package spellcheck

import (
	"encoding/json"
	"time"

	"github.com/atomspell/atomspell/pkg/language"
)

// WordType is the semantic category assigned to a token by the
// classifier.
type WordType int

const (
	Normal WordType = iota
	CodeIdentifier
	Acronym
	ProperNoun
	TechnicalTerm
)

var wordTypeNames = [...]string{
	Normal:         "normal",
	CodeIdentifier: "code_identifier",
	Acronym:        "acronym",
	ProperNoun:     "proper_noun",
	TechnicalTerm:  "technical_term",
}

func (t WordType) String() string {
	if int(t) >= 0 && int(t) < len(wordTypeNames) {
		return wordTypeNames[t]
	}
	return "unknown"
}

// MarshalJSON emits the category name rather than its ordinal.
func (t WordType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// WordCheck is the result for one token. Immutable once produced.
type WordCheck struct {
	Word        string   `json:"word"`     // normalized form
	Original    string   `json:"original"` // original casing
	Start       int      `json:"start"`    // byte offset in the line
	End         int      `json:"end"`
	IsCorrect   bool     `json:"is_correct"`
	Suggestions []string `json:"suggestions,omitempty"`
	Line        int      `json:"line"`   // 1-based
	Column      int      `json:"column"` // start + 1
	Confidence  float64  `json:"confidence"`
	WordType    WordType `json:"word_type"`
}

// DocumentAnalysis aggregates the per-token results of one check.
// Produced fresh per call; never mutated after return.
type DocumentAnalysis struct {
	TotalWords       int               `json:"total_words"`
	MisspelledWords  int               `json:"misspelled_words"`
	Accuracy         float64           `json:"accuracy"`
	Words            []WordCheck       `json:"words"`
	SuggestionsCount int               `json:"suggestions_count"`
	Language         language.Language `json:"language"`
	LinesChecked     int               `json:"lines_checked"`
	CheckDuration    time.Duration     `json:"check_duration_ns"`
	LikelyCode       bool              `json:"likely_code"`
	FileType         string            `json:"file_type,omitempty"`
}

// Config holds the tunable check parameters.
type Config struct {
	SuggestionsEnabled  bool
	CaseSensitive       bool
	MaxSuggestions      int
	ConfidenceThreshold float64
}

// DefaultConfig returns the standard check configuration.
func DefaultConfig() Config {
	return Config{
		SuggestionsEnabled:  true,
		CaseSensitive:       false,
		MaxSuggestions:      5,
		ConfidenceThreshold: 0.7,
	}
}
