package language

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// appDirName is the per-user data directory name for dictionaries and
// word lists.
const appDirName = "atomspell"

// Manager locates base word lists on disk and tracks custom dictionary
// registrations. Word lists follow the dictionary(<code>).txt or
// dictionary(<code>).csv naming convention.
type Manager struct {
	mu         sync.RWMutex
	searchDirs []string
	paths      map[Language]string
}

// NewManager scans the given directories for word lists. With no
// arguments the conventional locations are scanned: ./dictionary,
// ./src/dictionary, the per-user data directory, and the working
// directory.
func NewManager(searchDirs ...string) *Manager {
	if len(searchDirs) == 0 {
		searchDirs = []string{
			"dictionary",
			filepath.Join("src", "dictionary"),
			SystemDictDir(),
			".",
		}
	}
	m := &Manager{
		searchDirs: searchDirs,
		paths:      make(map[Language]string),
	}
	m.scan()
	return m
}

// SystemDictDir returns the per-user data directory for dictionaries.
func SystemDictDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDirName)
}

// UserDictDir returns the directory holding user-added and ignored word
// lists, creating it if necessary.
func UserDictDir() string {
	dir := filepath.Join(SystemDictDir(), "user_dictionaries")
	_ = os.MkdirAll(dir, 0755)
	return dir
}

func (m *Manager) scan() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, dir := range m.searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".txt" && ext != ".csv" {
				continue
			}
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			code, ok := strings.CutPrefix(stem, "dictionary(")
			if !ok {
				continue
			}
			code, ok = strings.CutSuffix(code, ")")
			if !ok {
				continue
			}
			lang := FromCode(code)
			// CSV lists win over plain text for the same language, and
			// earlier search directories win over later ones.
			if existing, found := m.paths[lang]; found {
				if strings.EqualFold(filepath.Ext(existing), ".csv") || ext != ".csv" {
					continue
				}
			}
			m.paths[lang] = filepath.Join(dir, name)
		}
	}
}

// DictionaryPath resolves the base word list for a language. AutoDetect
// never has a path of its own.
func (m *Manager) DictionaryPath(lang Language) (string, bool) {
	if lang == AutoDetect {
		return "", false
	}

	m.mu.RLock()
	path, ok := m.paths[lang]
	m.mu.RUnlock()
	if ok {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	// Not seen during the scan: probe the conventional filenames in the
	// search directories, structured list first.
	for _, ext := range []string{".csv", ".txt"} {
		filename := fmt.Sprintf("dictionary(%s)%s", lang.Code(), ext)
		for _, dir := range m.searchDirs {
			candidate := filepath.Join(dir, filename)
			if _, err := os.Stat(candidate); err == nil {
				m.mu.Lock()
				m.paths[lang] = candidate
				m.mu.Unlock()
				return candidate, true
			}
		}
	}
	return "", false
}

// AddCustomDictionary registers an explicit word list path for a
// language, overriding the scanned location.
func (m *Manager) AddCustomDictionary(path string, lang Language) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths[lang] = path
}

// SearchDirs returns the directories the manager consults, first match
// wins.
func (m *Manager) SearchDirs() []string {
	return append([]string(nil), m.searchDirs...)
}
