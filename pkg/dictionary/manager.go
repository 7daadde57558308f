package dictionary

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/atomspell/atomspell/pkg/language"
)

// Manager caches one Dictionary per language. Load-or-fetch is atomic
// per key: concurrent readers never race with the lazy-load path for
// the same language, and at most one live dictionary exists per
// language inside a single manager.
type Manager struct {
	mu           sync.Mutex
	dictionaries map[language.Language]*Dictionary
	catalog      *language.Manager
	userDir      string
}

// NewManager creates a manager over the given language catalog.
// userDir is handed to every dictionary for user-scope persistence;
// empty means the default per-user directory.
func NewManager(catalog *language.Manager, userDir string) *Manager {
	if catalog == nil {
		catalog = language.NewManager()
	}
	return &Manager{
		dictionaries: make(map[language.Language]*Dictionary),
		catalog:      catalog,
		userDir:      userDir,
	}
}

// Catalog exposes the underlying language catalog.
func (m *Manager) Catalog() *language.Manager {
	return m.catalog
}

// Get returns the cached dictionary for a language, loading it on the
// first request. An empty-but-loaded dictionary is logged and returned
// as usable; a missing dictionary with no fallback is an error.
func (m *Manager) Get(lang language.Language) (*Dictionary, error) {
	// AutoDetect is a request marker, never a dictionary key.
	if lang == language.AutoDetect {
		return nil, fmt.Errorf("%w for %s", ErrDictionaryNotFound, lang.Name())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if dict, ok := m.dictionaries[lang]; ok {
		return dict, nil
	}

	dict := New(lang, m.userDir)
	if err := dict.Load(m.catalog); err != nil {
		if !errors.Is(err, ErrEmptyDictionary) {
			return nil, err
		}
		log.Printf("[Dictionary] Word list for %s is empty: %v", lang.Name(), err)
	}
	m.dictionaries[lang] = dict
	return dict, nil
}

// Cached returns the dictionary for a language only if already loaded.
func (m *Manager) Cached(lang language.Language) (*Dictionary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dict, ok := m.dictionaries[lang]
	return dict, ok
}

// Reload forces a fresh load and replaces the cache slot.
func (m *Manager) Reload(lang language.Language) (*Dictionary, error) {
	if lang == language.AutoDetect {
		return nil, fmt.Errorf("%w for %s", ErrDictionaryNotFound, lang.Name())
	}

	dict := New(lang, m.userDir)
	if err := dict.Load(m.catalog); err != nil && !errors.Is(err, ErrEmptyDictionary) {
		return nil, err
	}

	m.mu.Lock()
	m.dictionaries[lang] = dict
	m.mu.Unlock()
	return dict, nil
}

// AddCustomDictionary registers a word list path for a language and
// loads it immediately.
func (m *Manager) AddCustomDictionary(path string, lang language.Language) (*Dictionary, error) {
	m.catalog.AddCustomDictionary(path, lang)
	return m.Reload(lang)
}

// Loaded returns the languages with a cached dictionary, sorted by
// code.
func (m *Manager) Loaded() []language.Language {
	m.mu.Lock()
	defer m.mu.Unlock()
	langs := make([]language.Language, 0, len(m.dictionaries))
	for lang := range m.dictionaries {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// DetectLanguage resolves the most likely language for a text.
func (m *Manager) DetectLanguage(text string) language.Language {
	return language.Detect(text)
}
