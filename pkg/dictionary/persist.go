package dictionary

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// User-scope word lists live next to each other in the user dictionary
// directory, keyed by language code.
func (d *Dictionary) userWordsPath() string {
	return filepath.Join(d.userDir, fmt.Sprintf("user(%s).txt", d.lang.Code()))
}

func (d *Dictionary) ignoredPath() string {
	return filepath.Join(d.userDir, fmt.Sprintf("ignored(%s).txt", d.lang.Code()))
}

// loadUserData merges the persisted user-added and ignored word lists
// into the in-memory sets. Missing files are not an error.
func (d *Dictionary) loadUserData() {
	if data, err := os.ReadFile(d.userWordsPath()); err == nil {
		d.mu.Lock()
		for _, line := range strings.Split(string(data), "\n") {
			word := d.normalize(line)
			if word == "" {
				continue
			}
			d.words[word] = struct{}{}
			d.userWords[word] = struct{}{}
		}
		d.mu.Unlock()
	}

	if data, err := os.ReadFile(d.ignoredPath()); err == nil {
		d.mu.Lock()
		for _, line := range strings.Split(string(data), "\n") {
			word := d.normalize(line)
			if word == "" {
				continue
			}
			// A word that was separately added wins over being ignored.
			if _, added := d.userWords[word]; !added {
				d.ignored[word] = struct{}{}
			}
		}
		d.mu.Unlock()
	}
}

func (d *Dictionary) appendUserWord(normalized string) error {
	if err := os.MkdirAll(d.userDir, 0755); err != nil {
		return fmt.Errorf("creating user dictionary directory: %w", err)
	}
	f, err := os.OpenFile(d.userWordsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening user word list: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(normalized + "\n"); err != nil {
		return fmt.Errorf("writing user word list: %w", err)
	}
	return nil
}

func (d *Dictionary) writeIgnoredFile() error {
	if err := os.MkdirAll(d.userDir, 0755); err != nil {
		return fmt.Errorf("creating user dictionary directory: %w", err)
	}

	d.mu.RLock()
	words := make([]string, 0, len(d.ignored))
	for word := range d.ignored {
		words = append(words, word)
	}
	d.mu.RUnlock()
	sort.Strings(words)

	var sb strings.Builder
	for _, word := range words {
		sb.WriteString(word)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(d.ignoredPath(), []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing ignored word list: %w", err)
	}
	return nil
}

// ImportFile merges a word list into the dictionary. The format is
// dispatched on the extension; anything but .csv or .txt is a format
// error.
func (d *Dictionary) ImportFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err := d.LoadFile(path); err != nil {
		return err
	}
	d.mu.Lock()
	d.loaded = true
	d.mu.Unlock()
	return nil
}

// ExportFile writes the normalized word set, sorted, to path in the
// format selected by the extension. Export followed by ImportFile into
// a fresh dictionary reproduces the same set.
func (d *Dictionary) ExportFile(path string) error {
	words := d.Words()
	sort.Strings(words)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		writer := csv.NewWriter(f)
		for _, word := range words {
			if err := writer.Write([]string{word}); err != nil {
				return fmt.Errorf("writing export record: %w", err)
			}
		}
		writer.Flush()
		return writer.Error()
	case ".txt":
		var sb strings.Builder
		for _, word := range words {
			sb.WriteString(word)
			sb.WriteByte('\n')
		}
		if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
