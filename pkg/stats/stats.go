package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// ToolStats represents statistics for a single tool
type ToolStats struct {
	Name                 string        `json:"name"`
	CallCount            int           `json:"call_count"`
	ErrorCount           int           `json:"error_count"`
	TotalExecutionTime   time.Duration `json:"total_execution_time"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	OutputBytes          int           `json:"output_bytes"`
	LastUsed             time.Time     `json:"last_used"`
}

// SessionStats represents statistics for the current server run
type SessionStats struct {
	StartTime time.Time             `json:"start_time"`
	Tools     map[string]*ToolStats `json:"tools"`
}

// PersistentStats represents statistics persisted across all runs
type PersistentStats struct {
	FirstRecorded time.Time             `json:"first_recorded"`
	LastUpdated   time.Time             `json:"last_updated"`
	Tools         map[string]*ToolStats `json:"tools"`
}

// StatsManager manages tool usage statistics
type StatsManager struct {
	sessionStats    *SessionStats
	persistentStats *PersistentStats
	statsFilePath   string
	mutex           sync.RWMutex
}

// NewStatsManager creates a new StatsManager
func NewStatsManager(statsFilePath string) (*StatsManager, error) {
	manager := &StatsManager{
		sessionStats: &SessionStats{
			StartTime: time.Now(),
			Tools:     make(map[string]*ToolStats),
		},
		persistentStats: &PersistentStats{
			FirstRecorded: time.Now(),
			LastUpdated:   time.Now(),
			Tools:         make(map[string]*ToolStats),
		},
		statsFilePath: statsFilePath,
	}

	dir := filepath.Dir(statsFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for stats file: %v", err)
	}

	// Load persistent stats if they exist
	if _, err := os.Stat(statsFilePath); err == nil {
		data, err := os.ReadFile(statsFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read stats file: %v", err)
		}
		if err := json.Unmarshal(data, &manager.persistentStats); err != nil {
			return nil, fmt.Errorf("failed to parse stats file: %v", err)
		}
	}

	return manager, nil
}

// RecordToolUsage records statistics for a tool usage
func (m *StatsManager) RecordToolUsage(toolName string, executionTime time.Duration, outputBytes int, failed bool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record(m.sessionStats.Tools, toolName, executionTime, outputBytes, failed)
	record(m.persistentStats.Tools, toolName, executionTime, outputBytes, failed)
	m.persistentStats.LastUpdated = time.Now()

	return m.savePersistentStats()
}

func record(tools map[string]*ToolStats, toolName string, executionTime time.Duration, outputBytes int, failed bool) {
	tool, ok := tools[toolName]
	if !ok {
		tool = &ToolStats{Name: toolName}
		tools[toolName] = tool
	}

	tool.CallCount++
	if failed {
		tool.ErrorCount++
	}
	tool.TotalExecutionTime += executionTime
	tool.AverageExecutionTime = tool.TotalExecutionTime / time.Duration(tool.CallCount)
	tool.OutputBytes += outputBytes
	tool.LastUsed = time.Now()
}

// GetSessionStats returns statistics for the current server run
func (m *StatsManager) GetSessionStats() *SessionStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := &SessionStats{
		StartTime: m.sessionStats.StartTime,
		Tools:     make(map[string]*ToolStats),
	}
	for name, tool := range m.sessionStats.Tools {
		toolCopy := *tool
		stats.Tools[name] = &toolCopy
	}
	return stats
}

// GetPersistentStats returns statistics persisted across all runs
func (m *StatsManager) GetPersistentStats() *PersistentStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stats := &PersistentStats{
		FirstRecorded: m.persistentStats.FirstRecorded,
		LastUpdated:   m.persistentStats.LastUpdated,
		Tools:         make(map[string]*ToolStats),
	}
	for name, tool := range m.persistentStats.Tools {
		toolCopy := *tool
		stats.Tools[name] = &toolCopy
	}
	return stats
}

// savePersistentStats saves persistent stats to file
func (m *StatsManager) savePersistentStats() error {
	data, err := json.MarshalIndent(m.persistentStats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}
	if err := os.WriteFile(m.statsFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %v", err)
	}
	return nil
}

// FormatStats formats statistics as a string
func FormatStats(sessionStats *SessionStats, persistentStats *PersistentStats) string {
	result := "Tool Usage Statistics\n\n"

	result += "Current Session Statistics:\n"
	result += fmt.Sprintf("Session started: %s\n", sessionStats.StartTime.Format(time.RFC3339))
	result += fmt.Sprintf("Session duration: %s\n\n", time.Since(sessionStats.StartTime).Round(time.Second))
	result += formatTools(sessionStats.Tools, "No tools used in this session.\n")

	result += "\nAll-Time Statistics:\n"
	result += fmt.Sprintf("First recorded: %s\n", persistentStats.FirstRecorded.Format(time.RFC3339))
	result += fmt.Sprintf("Last updated: %s\n\n", persistentStats.LastUpdated.Format(time.RFC3339))
	result += formatTools(persistentStats.Tools, "No tools used across all sessions.\n")

	return result
}

func formatTools(tools map[string]*ToolStats, empty string) string {
	if len(tools) == 0 {
		return empty
	}

	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	result := "Tool                  | Calls | Errors | Avg Time  | Total Time | Output Bytes\n"
	result += "----------------------|-------|--------|-----------|------------|-------------\n"
	for _, name := range names {
		tool := tools[name]
		result += fmt.Sprintf("%-22s| %5d | %6d | %9s | %10s | %12d\n",
			tool.Name,
			tool.CallCount,
			tool.ErrorCount,
			tool.AverageExecutionTime.Round(time.Millisecond).String(),
			tool.TotalExecutionTime.Round(time.Millisecond).String(),
			tool.OutputBytes)
	}
	return result
}
