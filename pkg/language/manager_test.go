package language

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestManagerScan(t *testing.T) {
	dir := t.TempDir()
	engPath := writeList(t, dir, "dictionary(eng).txt", "hello\nworld\n")
	writeList(t, dir, "notes.txt", "not a word list\n")

	m := NewManager(dir)

	path, ok := m.DictionaryPath(English)
	assert.True(t, ok)
	assert.Equal(t, engPath, path)

	_, ok = m.DictionaryPath(German)
	assert.False(t, ok)
}

func TestManagerCSVWinsOverText(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "dictionary(eng).txt", "hello\n")
	csvPath := writeList(t, dir, "dictionary(eng).csv", "hello,noun\n")

	m := NewManager(dir)

	path, ok := m.DictionaryPath(English)
	assert.True(t, ok)
	assert.Equal(t, csvPath, path)
}

func TestManagerProbesLateArrivals(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	_, ok := m.DictionaryPath(French)
	assert.False(t, ok)

	// A list dropped in after the initial scan is still found.
	fraPath := writeList(t, dir, "dictionary(fra).txt", "bonjour\n")
	path, ok := m.DictionaryPath(French)
	assert.True(t, ok)
	assert.Equal(t, fraPath, path)
}

func TestManagerAutoDetectHasNoPath(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, "dictionary(auto).txt", "nothing\n")

	m := NewManager(dir)
	_, ok := m.DictionaryPath(AutoDetect)
	assert.False(t, ok)
}

func TestAddCustomDictionary(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	custom := writeList(t, dir, "mywords.txt", "alpha\nbeta\n")
	m.AddCustomDictionary(custom, Spanish)

	path, ok := m.DictionaryPath(Spanish)
	assert.True(t, ok)
	assert.Equal(t, custom, path)
}
