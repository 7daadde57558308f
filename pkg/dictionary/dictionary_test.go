package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomspell/atomspell/pkg/language"
)

func newTestDictionary(t *testing.T, words string) (*Dictionary, *language.Manager) {
	t.Helper()
	dictDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dictDir, "dictionary(eng).txt"), []byte(words), 0644))

	catalog := language.NewManager(dictDir)
	dict := New(language.English, t.TempDir())
	require.NoError(t, dict.Load(catalog))
	return dict, catalog
}

func TestLoadIsIdempotent(t *testing.T) {
	dict, catalog := newTestDictionary(t, "hello\nworld\n")
	count := dict.WordCount()

	require.NoError(t, dict.Load(catalog))
	assert.Equal(t, count, dict.WordCount())
	assert.True(t, dict.IsLoaded())
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	// No word list on disk anywhere: the embedded list still loads.
	catalog := language.NewManager(t.TempDir())
	dict := New(language.English, t.TempDir())
	require.NoError(t, dict.Load(catalog))
	assert.True(t, dict.Contains("the", false, false))
}

func TestLoadFileCSV(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	csvPath := filepath.Join(t.TempDir(), "extra.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Apple,fruit\nBanana,fruit\n"), 0644))
	require.NoError(t, dict.LoadFile(csvPath))

	// Only the first column counts, normalized to lower case.
	assert.True(t, dict.Contains("apple", false, false))
	assert.True(t, dict.Contains("banana", false, false))
	assert.False(t, dict.Contains("fruit", false, false))
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	jsonPath := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`["hello"]`), 0644))

	err := dict.LoadFile(jsonPath)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFileEmpty(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	emptyPath := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(emptyPath, []byte("\n\n  \n"), 0644))

	err := dict.LoadFile(emptyPath)
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestContains(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\nworld\nspelling\n")

	assert.True(t, dict.Contains("hello", false, false))
	assert.True(t, dict.Contains("Hello", false, false))
	assert.False(t, dict.Contains("helo", false, false))

	// Empty and too-short tokens are never flagged.
	assert.True(t, dict.Contains("", false, false))
	assert.True(t, dict.Contains("   ", false, false))
}

func TestContainsCaseSensitive(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	assert.True(t, dict.Contains("hello", true, false))
	assert.False(t, dict.Contains("Hello", true, false))
}

func TestContainsNumericHeavy(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	// Mostly-digit tokens pass without a dictionary hit.
	assert.True(t, dict.Contains("42nd", false, false))
	assert.True(t, dict.Contains("0x1F", false, false))
	assert.False(t, dict.Contains("version", false, false))
}

func TestContainsCodeIdentifiers(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	// Identifier shapes pass in code context only.
	assert.True(t, dict.Contains("get_value", false, true))
	assert.True(t, dict.Contains("myVariable", false, true))
	assert.True(t, dict.Contains("WidgetFactory", false, true))
	assert.False(t, dict.Contains("widget", false, true))
	assert.False(t, dict.Contains("myVariable", false, false))
}

func TestAddWordPersists(t *testing.T) {
	userDir := t.TempDir()
	dictDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dictDir, "dictionary(eng).txt"), []byte("hello\n"), 0644))
	catalog := language.NewManager(dictDir)

	dict := New(language.English, userDir)
	require.NoError(t, dict.Load(catalog))
	require.NoError(t, dict.AddWord("Gadgetry"))
	assert.True(t, dict.Contains("gadgetry", false, false))

	// A fresh dictionary over the same user directory sees the word.
	fresh := New(language.English, userDir)
	require.NoError(t, fresh.Load(catalog))
	assert.True(t, fresh.Contains("gadgetry", false, false))
}

func TestAddWordAppendsOnce(t *testing.T) {
	userDir := t.TempDir()
	dictDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dictDir, "dictionary(eng).txt"), []byte("hello\n"), 0644))

	dict := New(language.English, userDir)
	require.NoError(t, dict.Load(language.NewManager(dictDir)))
	require.NoError(t, dict.AddWord("gadgetry"))
	require.NoError(t, dict.AddWord("gadgetry"))
	require.NoError(t, dict.AddWord("Gadgetry"))

	// The user word list carries a single line for the word.
	data, err := os.ReadFile(filepath.Join(userDir, "user(eng).txt"))
	require.NoError(t, err)
	assert.Equal(t, "gadgetry\n", string(data))
}

func TestAddWordRejectsInvalid(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	assert.ErrorIs(t, dict.AddWord(""), ErrInvalidWord)
	assert.ErrorIs(t, dict.AddWord("x"), ErrInvalidWord)
	assert.ErrorIs(t, dict.AddWord("123"), ErrInvalidWord)
}

func TestIgnoreWord(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	assert.False(t, dict.Contains("zzyzx", false, false))
	require.NoError(t, dict.IgnoreWord("zzyzx"))
	assert.True(t, dict.Contains("zzyzx", false, false))
	assert.Equal(t, 1, dict.IgnoredCount())

	require.NoError(t, dict.ClearIgnored())
	assert.False(t, dict.Contains("zzyzx", false, false))
	assert.Equal(t, 0, dict.IgnoredCount())
}

func TestAddWordUnignores(t *testing.T) {
	dict, _ := newTestDictionary(t, "hello\n")

	require.NoError(t, dict.IgnoreWord("gadgetry"))
	require.NoError(t, dict.AddWord("gadgetry"))

	assert.Equal(t, 0, dict.IgnoredCount())
	assert.True(t, dict.Contains("gadgetry", false, false))
}

func TestExportImportRoundTrip(t *testing.T) {
	dict, _ := newTestDictionary(t, "alpha\nbeta\ngamma\n")

	exportPath := filepath.Join(t.TempDir(), "export.txt")
	require.NoError(t, dict.ExportFile(exportPath))

	fresh := New(language.English, t.TempDir())
	require.NoError(t, fresh.ImportFile(exportPath))
	assert.Equal(t, dict.WordCount(), fresh.WordCount())
	assert.True(t, fresh.Contains("gamma", false, false))
}

func TestExportUnsupportedFormat(t *testing.T) {
	dict, _ := newTestDictionary(t, "alpha\n")

	err := dict.ExportFile(filepath.Join(t.TempDir(), "export.xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestManagerGetCaches(t *testing.T) {
	dictDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dictDir, "dictionary(eng).txt"), []byte("hello\n"), 0644))

	m := NewManager(language.NewManager(dictDir), t.TempDir())

	first, err := m.Get(language.English)
	require.NoError(t, err)
	second, err := m.Get(language.English)
	require.NoError(t, err)
	assert.Same(t, first, second)

	cached, ok := m.Cached(language.English)
	assert.True(t, ok)
	assert.Same(t, first, cached)

	_, ok = m.Cached(language.French)
	assert.False(t, ok)
}

func TestManagerRejectsAutoDetect(t *testing.T) {
	dictDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dictDir, "dictionary(eng).txt"), []byte("hello\n"), 0644))

	m := NewManager(language.NewManager(dictDir), t.TempDir())

	// The detection marker never becomes a cache key.
	_, err := m.Get(language.AutoDetect)
	assert.ErrorIs(t, err, ErrDictionaryNotFound)

	_, err = m.Reload(language.AutoDetect)
	assert.ErrorIs(t, err, ErrDictionaryNotFound)

	_, ok := m.Cached(language.AutoDetect)
	assert.False(t, ok)
}

func TestManagerReloadReplaces(t *testing.T) {
	dictDir := t.TempDir()
	listPath := filepath.Join(dictDir, "dictionary(eng).txt")
	require.NoError(t, os.WriteFile(listPath, []byte("hello\n"), 0644))

	m := NewManager(language.NewManager(dictDir), t.TempDir())
	first, err := m.Get(language.English)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(listPath, []byte("hello\nworld\n"), 0644))
	reloaded, err := m.Reload(language.English)
	require.NoError(t, err)
	assert.NotSame(t, first, reloaded)
	assert.True(t, reloaded.Contains("world", false, false))
}
