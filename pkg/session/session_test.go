package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetMintsSessionID(t *testing.T) {
	info := Set(Info{RootDir: "/tmp/project"})
	assert.NotEmpty(t, info.SessionID)

	stored, ok := Get(info.SessionID)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/project", stored.RootDir)
}

func TestSetKeepsExplicitSessionID(t *testing.T) {
	info := Set(Info{RootDir: "/tmp/a", SessionID: "fixed-id"})
	assert.Equal(t, "fixed-id", info.SessionID)

	// Re-initializing the same session replaces its info.
	Set(Info{RootDir: "/tmp/b", SessionID: "fixed-id"})
	stored, ok := Get("fixed-id")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/b", stored.RootDir)
}

func TestGetUnknownSession(t *testing.T) {
	_, ok := Get("no-such-session")
	assert.False(t, ok)
	assert.Equal(t, ".", GetRootDir("no-such-session"))
}

func TestResolveRelativePath(t *testing.T) {
	info := Set(Info{RootDir: "/srv/docs"})

	resolved := ResolveRelativePath("words.txt", info.SessionID)
	assert.Equal(t, filepath.Join("/srv/docs", "words.txt"), resolved)

	// Absolute paths pass through untouched.
	abs := filepath.Join("/etc", "words.txt")
	assert.Equal(t, abs, ResolveRelativePath(abs, info.SessionID))

	// Unknown sessions resolve against the working directory.
	assert.Equal(t, filepath.Join(".", "words.txt"), ResolveRelativePath("words.txt", "missing"))
}
