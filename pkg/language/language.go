package language

import (
	"fmt"
	"strings"
)

// Language identifies a spell-check language by its ISO-like code.
// Values compare and hash by code, so they can be used directly as map
// keys. Codes outside the built-in set are treated as custom languages.
type Language string

const (
	English    Language = "eng"
	Afrikaans  Language = "afr"
	French     Language = "fra"
	Spanish    Language = "spa"
	German     Language = "deu"
	Chinese    Language = "zho"
	Italian    Language = "ita"
	Portuguese Language = "por"
	Russian    Language = "rus"
	Japanese   Language = "jpn"
	Korean     Language = "kor"

	// AutoDetect is a request marker, never a dictionary key. It must be
	// resolved to a concrete language before any lookup.
	AutoDetect Language = "auto"
)

// Default is the fallback language used when a requested dictionary
// cannot be found.
const Default = English

var names = map[Language]string{
	English:    "English",
	Afrikaans:  "Afrikaans",
	French:     "French",
	Spanish:    "Spanish",
	German:     "German",
	Chinese:    "Chinese",
	Italian:    "Italian",
	Portuguese: "Portuguese",
	Russian:    "Russian",
	Japanese:   "Japanese",
	Korean:     "Korean",
	AutoDetect: "Auto-detect",
}

// All returns the built-in languages in display order.
func All() []Language {
	return []Language{
		English, Afrikaans, French, Spanish, German, Chinese,
		Italian, Portuguese, Russian, Japanese, Korean, AutoDetect,
	}
}

// Code returns the language code.
func (l Language) Code() string {
	return string(l)
}

// Name returns the display name. Custom languages display their code.
func (l Language) Name() string {
	if name, ok := names[l]; ok {
		return name
	}
	return string(l)
}

// IsCJK reports whether the language uses a CJK script. CJK words are
// stored verbatim instead of lower-cased.
func (l Language) IsCJK() bool {
	switch l {
	case Chinese, Japanese, Korean:
		return true
	}
	return false
}

// DictionaryFilename returns the conventional base word list filename,
// or "" for AutoDetect which has no dictionary of its own.
func (l Language) DictionaryFilename() string {
	if l == AutoDetect {
		return ""
	}
	return fmt.Sprintf("dictionary(%s).txt", l.Code())
}

var aliases = map[string]Language{
	"eng": English, "en": English, "english": English,
	"afr": Afrikaans, "af": Afrikaans, "afrikaans": Afrikaans,
	"fra": French, "fr": French, "french": French,
	"spa": Spanish, "es": Spanish, "spanish": Spanish,
	"deu": German, "de": German, "german": German,
	"zho": Chinese, "zh": Chinese, "chinese": Chinese,
	"ita": Italian, "it": Italian, "italian": Italian,
	"por": Portuguese, "pt": Portuguese, "portuguese": Portuguese,
	"rus": Russian, "ru": Russian, "russian": Russian,
	"jpn": Japanese, "ja": Japanese, "japanese": Japanese,
	"kor": Korean, "ko": Korean, "korean": Korean,
	"auto": AutoDetect, "autodetect": AutoDetect,
}

// FromCode resolves a code or display-name alias to a Language. An
// unknown non-empty code becomes a custom language carrying the code
// verbatim; an empty code resolves to English.
func FromCode(code string) Language {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return English
	}
	if lang, ok := aliases[normalized]; ok {
		return lang
	}
	return Language(normalized)
}
