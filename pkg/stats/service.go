package stats

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	// Global stats manager instance
	globalStatsManager *StatsManager
)

// InitStatsManager initializes the global stats manager
func InitStatsManager(dataDir string) error {
	statsFilePath := filepath.Join(dataDir, "stats.json")
	var err error
	globalStatsManager, err = NewStatsManager(statsFilePath)
	return err
}

// GetStatsManager returns the global stats manager
func GetStatsManager() *StatsManager {
	return globalStatsManager
}

// HandleGetStats handles requests to get tool usage statistics
func HandleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Printf("[Stats] Received request to get stats")

	if globalStatsManager == nil {
		log.Printf("[Stats] Error: stats manager not initialized")
		return nil, fmt.Errorf("stats manager not initialized")
	}

	sessionStats := globalStatsManager.GetSessionStats()
	persistentStats := globalStatsManager.GetPersistentStats()
	statsText := FormatStats(sessionStats, persistentStats)

	log.Printf("[Stats] Returning stats information")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: statsText,
			},
		},
	}, nil
}

// RecordToolUsage records statistics for a tool usage
func RecordToolUsage(toolName string, startTime time.Time, result *mcp.CallToolResult, failed bool) {
	if globalStatsManager == nil {
		log.Printf("[Stats] Warning: stats manager not initialized, cannot record tool usage")
		return
	}

	executionTime := time.Since(startTime)
	outputBytes := measureOutput(result)

	log.Printf("[Stats] Recording usage for tool '%s': execution time=%v, output bytes=%d",
		toolName, executionTime, outputBytes)

	if err := globalStatsManager.RecordToolUsage(toolName, executionTime, outputBytes, failed); err != nil {
		// Log the error but don't fail the request
		log.Printf("[Stats] Failed to record tool usage: %v", err)
	}
}

// WrapHandler wraps a tool handler with stats tracking
func WrapHandler(toolName string, handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		log.Printf("[Stats] Starting execution of tool '%s'", toolName)

		result, err := handler(ctx, request)
		if err != nil {
			log.Printf("[Stats] Error executing tool '%s': %v", toolName, err)
			RecordToolUsage(toolName, startTime, nil, true)
			return nil, err
		}

		RecordToolUsage(toolName, startTime, result, false)
		return result, nil
	}
}

// ResetSessionStats resets the session statistics
func (m *StatsManager) ResetSessionStats() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessionStats = &SessionStats{
		StartTime: time.Now(),
		Tools:     make(map[string]*ToolStats),
	}

	log.Printf("[Stats] Session statistics reset")
}

// measureOutput sums the text payload size of a result
func measureOutput(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}

	bytes := 0
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			bytes += len(text.Text)
		}
	}
	return bytes
}

// RegisterStats registers the stats tool with the MCP server
func RegisterStats(mcpServer *server.MCPServer, dataDir string) error {
	if err := InitStatsManager(dataDir); err != nil {
		return err
	}

	statsTool := mcp.NewTool("stats",
		mcp.WithDescription("Retrieves usage statistics for the spell check tools"),
	)

	wrappedHandler := WrapHandler("stats", HandleGetStats)
	mcpServer.AddTool(statsTool, wrappedHandler)

	log.Printf("[Stats] Registered stats tool")

	return nil
}
