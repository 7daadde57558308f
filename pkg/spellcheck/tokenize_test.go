package spellcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atomspell/atomspell/pkg/language"
)

func tokenTexts(tokens []Token) []string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return texts
}

func TestTokenizeProse(t *testing.T) {
	tokens := tokenizeLine(proseWordRE, "Hello, world! It's a don't-stop day")
	assert.Equal(t, []string{"Hello", "world", "It's", "don't-stop", "day"}, tokenTexts(tokens))
}

func TestTokenizeOffsets(t *testing.T) {
	tokens := tokenizeLine(proseWordRE, "ab cd")
	assert.Len(t, tokens, 2)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 2, tokens[0].End)
	assert.Equal(t, 3, tokens[1].Start)
	assert.Equal(t, 5, tokens[1].End)
}

func TestTokenizeCode(t *testing.T) {
	// Code tokens need three letters; underscores split identifiers.
	tokens := tokenizeLine(codeWordRE, "let x = foo_bar(42);")
	assert.Equal(t, []string{"let", "foo", "bar"}, tokenTexts(tokens))
}

func TestTokenizeCJK(t *testing.T) {
	tokens := tokenizeLine(cjkWordRE, "日本語 test テスト")
	assert.Equal(t, []string{"日本語", "test", "テスト"}, tokenTexts(tokens))
}

func TestIsCodeFile(t *testing.T) {
	assert.True(t, IsCodeFile("main.go"))
	assert.True(t, IsCodeFile("script.PY"))
	assert.True(t, IsCodeFile("config.yaml"))
	assert.False(t, IsCodeFile("notes.txt"))
	assert.False(t, IsCodeFile("README"))
}

func TestIsLikelyCode(t *testing.T) {
	code := "fn main() {\n    let x = 1;\n    return x;\n}"
	assert.True(t, IsLikelyCode(code))

	prose := "This is a paragraph.\nIt has several lines.\nNone of them are code."
	assert.False(t, IsLikelyCode(prose))

	// Fewer than three lines is never code.
	assert.False(t, IsLikelyCode("let x = 1; { }"))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 100.0, Accuracy(0, 0))
	assert.Equal(t, 100.0, Accuracy(10, 0))
	assert.Equal(t, 70.0, Accuracy(10, 3))
	assert.Equal(t, 67.0, Accuracy(3, 1))
	assert.Equal(t, 0.0, Accuracy(5, 5))
}

func TestWordFrequency(t *testing.T) {
	freq := WordFrequency("the cat and the dog and the bird", false, false)
	assert.Equal(t, 3, freq["the"])
	assert.Equal(t, 2, freq["and"])
	assert.Equal(t, 1, freq["cat"])

	ranked := MostCommonWords(freq, 2)
	assert.Equal(t, []WordCount{{"the", 3}, {"and", 2}}, ranked)
}

func TestReadingTime(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 450))
	minutes, seconds := ReadingTime(text)
	assert.Equal(t, 2, minutes)
	assert.Equal(t, 15, seconds)
}

func TestContextFor(t *testing.T) {
	isCJK, isCode := contextFor(language.Japanese, "text", "")
	assert.True(t, isCJK)
	assert.False(t, isCode)

	_, isCode = contextFor(language.English, "text", "main.go")
	assert.True(t, isCode)
}
