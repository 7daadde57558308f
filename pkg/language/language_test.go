package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCode(t *testing.T) {
	assert.Equal(t, English, FromCode("eng"))
	assert.Equal(t, English, FromCode("en"))
	assert.Equal(t, English, FromCode("English"))
	assert.Equal(t, French, FromCode("FRA"))
	assert.Equal(t, German, FromCode("german"))
	assert.Equal(t, AutoDetect, FromCode("auto"))

	// Empty input falls back to the default language.
	assert.Equal(t, English, FromCode(""))

	// Unknown codes become custom languages rather than failing.
	custom := FromCode("xyz")
	assert.Equal(t, "xyz", custom.Code())
}

func TestDictionaryFilename(t *testing.T) {
	assert.Equal(t, "dictionary(eng).txt", English.DictionaryFilename())
	assert.Equal(t, "dictionary(deu).txt", German.DictionaryFilename())

	// AutoDetect has no dictionary of its own.
	assert.Empty(t, AutoDetect.DictionaryFilename())
}

func TestIsCJK(t *testing.T) {
	assert.True(t, Chinese.IsCJK())
	assert.True(t, Japanese.IsCJK())
	assert.True(t, Korean.IsCJK())
	assert.False(t, English.IsCJK())
	assert.False(t, Russian.IsCJK())
}

func TestAll(t *testing.T) {
	assert.Contains(t, All(), English)
	assert.Contains(t, All(), Korean)
	assert.Contains(t, All(), AutoDetect)
}

func TestDetectEnglish(t *testing.T) {
	text := "the cat sat on the mat and then they went to look for some other place"
	assert.Equal(t, English, Detect(text))
}

func TestDetectFrench(t *testing.T) {
	text := "le chat est dans la maison et il ne veut pas sortir pour le moment"
	assert.Equal(t, French, Detect(text))
}

func TestDetectGerman(t *testing.T) {
	text := "der hund und die katze sind in dem haus mit den kindern und sie spielen"
	assert.Equal(t, German, Detect(text))
}

func TestDetectShortTextDefaultsToEnglish(t *testing.T) {
	scores := DetectFromText("bonjour monde")
	assert.Len(t, scores, 1)
	assert.Equal(t, English, scores[0].Language)
	assert.Equal(t, 100.0, scores[0].Score)
}

func TestDetectCJKOverride(t *testing.T) {
	// Kana wins over Han so Japanese text with kanji detects as Japanese.
	japanese := "これは日本語のテキストです。漢字も含まれています。"
	assert.Equal(t, Japanese, Detect(japanese))

	chinese := "这是一段中文文本，用来测试语言检测功能。"
	assert.Equal(t, Chinese, Detect(chinese))

	korean := "이것은 한국어 텍스트입니다. 언어 감지 테스트입니다."
	assert.Equal(t, Korean, Detect(korean))
}

func TestContainsCJK(t *testing.T) {
	assert.True(t, ContainsCJK("hello 世界"))
	assert.False(t, ContainsCJK("hello world"))
}

func TestDetectFromTextReturnsAtMostThree(t *testing.T) {
	text := "the cat and the dog die katze und der hund le chat et la maison el gato y la casa"
	scores := DetectFromText(text)
	assert.LessOrEqual(t, len(scores), 3)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Score, scores[i].Score)
	}
}
