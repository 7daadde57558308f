package dictionary

import "errors"

var (
	// ErrDictionaryNotFound means no base word list exists for the
	// language and no fallback was available.
	ErrDictionaryNotFound = errors.New("dictionary not found")

	// ErrEmptyDictionary means a word list loaded but produced zero
	// usable words. Non-fatal: callers log it and continue.
	ErrEmptyDictionary = errors.New("empty dictionary")

	// ErrInvalidEncoding means the file content was not valid UTF-8 and
	// could not be repaired.
	ErrInvalidEncoding = errors.New("invalid document encoding")

	// ErrUnsupportedFormat means the file extension is not a recognized
	// word list format (.csv or .txt).
	ErrUnsupportedFormat = errors.New("unsupported dictionary format")

	// ErrInvalidWord means add/ignore was called with empty or too-short
	// input after trimming and normalization.
	ErrInvalidWord = errors.New("invalid word")
)
