package serverinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/atomspell/atomspell/pkg/dictionary"
	"github.com/atomspell/atomspell/pkg/language"
)

// dictManager is injected at registration so the resource can report
// dictionary state.
var dictManager *dictionary.Manager

// HandleServerInfo is the handler function for the server info resource
func HandleServerInfo(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var info strings.Builder
	info.WriteString("Server Information:\n\n")
	info.WriteString(fmt.Sprintf("timestamp: %s\n", time.Now().Format(time.RFC3339)))
	info.WriteString(fmt.Sprintf("go_version: %s\n", runtime.Version()))
	info.WriteString(fmt.Sprintf("os: %s\n", runtime.GOOS))
	info.WriteString(fmt.Sprintf("architecture: %s\n", runtime.GOARCH))
	info.WriteString(fmt.Sprintf("cpu_cores: %d\n", runtime.NumCPU()))
	info.WriteString(fmt.Sprintf("goroutines: %d\n", runtime.NumGoroutine()))
	info.WriteString(fmt.Sprintf("uptime_seconds: %.0f\n", getUptime()))

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	info.WriteString(fmt.Sprintf("alloc_mb: %.1f\n", float64(memStats.Alloc)/1024/1024))
	info.WriteString(fmt.Sprintf("sys_mb: %.1f\n", float64(memStats.Sys)/1024/1024))
	info.WriteString(fmt.Sprintf("num_gc: %d\n", memStats.NumGC))

	info.WriteString("\nSupported Languages:\n")
	for _, lang := range language.All() {
		info.WriteString(fmt.Sprintf("  %s: %s\n", lang.Code(), lang.Name()))
	}

	if dictManager != nil {
		info.WriteString("\nLoaded Dictionaries:\n")
		loaded := dictManager.Loaded()
		if len(loaded) == 0 {
			info.WriteString("  none\n")
		}
		for _, lang := range loaded {
			if dict, ok := dictManager.Cached(lang); ok {
				info.WriteString(fmt.Sprintf("  %s: %d words, %d ignored\n",
					lang.Code(), dict.WordCount(), dict.IgnoredCount()))
			}
		}
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     info.String(),
		},
	}, nil
}

// RegisterServerInfo registers the server info resource with the MCP server
func RegisterServerInfo(mcpServer *server.MCPServer, manager *dictionary.Manager) {
	dictManager = manager

	mcpServer.AddResource(
		mcp.NewResource(
			"server://info",
			"Server Information",
			mcp.WithMIMEType("text/plain"),
		),
		HandleServerInfo,
	)
}

// startTime is used to calculate uptime
var startTime = time.Now()

// getUptime returns the server uptime in seconds
func getUptime() float64 {
	return time.Since(startTime).Seconds()
}
