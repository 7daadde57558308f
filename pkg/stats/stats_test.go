package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToolUsage(t *testing.T) {
	statsPath := filepath.Join(t.TempDir(), "stats.json")
	m, err := NewStatsManager(statsPath)
	require.NoError(t, err)

	require.NoError(t, m.RecordToolUsage("spellcheck", 20*time.Millisecond, 512, false))
	require.NoError(t, m.RecordToolUsage("spellcheck", 40*time.Millisecond, 256, true))

	session := m.GetSessionStats()
	tool := session.Tools["spellcheck"]
	require.NotNil(t, tool)
	assert.Equal(t, 2, tool.CallCount)
	assert.Equal(t, 1, tool.ErrorCount)
	assert.Equal(t, 768, tool.OutputBytes)
	assert.Equal(t, 30*time.Millisecond, tool.AverageExecutionTime)
}

func TestPersistentStatsSurviveRestart(t *testing.T) {
	statsPath := filepath.Join(t.TempDir(), "stats.json")

	m, err := NewStatsManager(statsPath)
	require.NoError(t, err)
	require.NoError(t, m.RecordToolUsage("dictionary", 10*time.Millisecond, 100, false))

	// A new manager over the same file picks up the history.
	reopened, err := NewStatsManager(statsPath)
	require.NoError(t, err)

	persistent := reopened.GetPersistentStats()
	tool := persistent.Tools["dictionary"]
	require.NotNil(t, tool)
	assert.Equal(t, 1, tool.CallCount)

	// Session stats start fresh.
	assert.Empty(t, reopened.GetSessionStats().Tools)
}

func TestFormatStats(t *testing.T) {
	statsPath := filepath.Join(t.TempDir(), "stats.json")
	m, err := NewStatsManager(statsPath)
	require.NoError(t, err)
	require.NoError(t, m.RecordToolUsage("langdetect", 5*time.Millisecond, 64, false))

	text := FormatStats(m.GetSessionStats(), m.GetPersistentStats())
	assert.Contains(t, text, "langdetect")
	assert.Contains(t, text, "Current Session Statistics")
	assert.Contains(t, text, "All-Time Statistics")
}
