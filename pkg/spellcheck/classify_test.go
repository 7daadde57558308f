package spellcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAcronym(t *testing.T) {
	assert.Equal(t, Acronym, Classify("API", false))
	assert.Equal(t, Acronym, Classify("HTTP2", false))
	assert.Equal(t, Acronym, Classify("IO", false))

	// Seven characters is past the acronym cutoff.
	assert.Equal(t, ProperNoun, Classify("ABCDEFG", false))
}

func TestClassifyProperNoun(t *testing.T) {
	assert.Equal(t, ProperNoun, Classify("London", false))
	assert.Equal(t, ProperNoun, Classify("Teh", false))

	// Capitalized function words are not proper nouns.
	assert.Equal(t, Normal, Classify("The", false))
	assert.Equal(t, Normal, Classify("And", false))
}

func TestClassifyCodeIdentifier(t *testing.T) {
	assert.Equal(t, CodeIdentifier, Classify("myVariable", true))
	assert.Equal(t, CodeIdentifier, Classify("get_value", true))
	assert.Equal(t, CodeIdentifier, Classify("snake_case", true))

	// Identifier shapes only apply in code context.
	assert.Equal(t, Normal, Classify("myVariable", false))
	assert.Equal(t, Normal, Classify("get_value", false))
}

func TestClassifyOrderAcronymBeforeIdentifier(t *testing.T) {
	// All-caps short tokens stay acronyms even in code context.
	assert.Equal(t, Acronym, Classify("HTTP", true))
	assert.Equal(t, Acronym, Classify("MAX_N", true))
}

func TestClassifyTechnicalTerm(t *testing.T) {
	assert.Equal(t, TechnicalTerm, Classify("state-of-the-art", false))
	assert.Equal(t, TechnicalTerm, Classify("command-line", false))

	// Short hyphenations stay normal.
	assert.Equal(t, Normal, Classify("co-op", false))
}

func TestClassifyNormal(t *testing.T) {
	assert.Equal(t, Normal, Classify("hello", false))
	assert.Equal(t, Normal, Classify("spelling", true))
}

func TestWordTypeNames(t *testing.T) {
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "code_identifier", CodeIdentifier.String())
	assert.Equal(t, "acronym", Acronym.String())
	assert.Equal(t, "proper_noun", ProperNoun.String())
	assert.Equal(t, "technical_term", TechnicalTerm.String())
}
