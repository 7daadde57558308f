package session

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/atomspell/atomspell/pkg/stats"
)

// Info represents one client session: the root directory relative
// paths resolve against, plus the preferred language for checks.
type Info struct {
	RootDir    string    `json:"root_dir"`
	Language   string    `json:"language"`
	InitTime   time.Time `json:"init_time"`
	SessionID  string    `json:"session_id"`
	LastAccess time.Time `json:"last_access"`
}

// Store manages session information for multiple clients
type Store struct {
	sessions map[string]Info
	mutex    sync.RWMutex
}

// Global session store
var store = &Store{
	sessions: make(map[string]Info),
}

// Get returns the session info for a session ID
func Get(sessionID string) (Info, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	info, exists := store.sessions[sessionID]
	if exists {
		info.LastAccess = time.Now()
		store.sessions[sessionID] = info
	}
	return info, exists
}

// Set stores the session info, minting an ID when none is given
func Set(info Info) Info {
	if info.SessionID == "" {
		info.SessionID = uuid.NewString()
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	info.InitTime = time.Now()
	info.LastAccess = time.Now()
	store.sessions[info.SessionID] = info
	return info
}

// List returns all session IDs
func List() []string {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	sessions := make([]string, 0, len(store.sessions))
	for sessionID := range store.sessions {
		sessions = append(sessions, sessionID)
	}
	return sessions
}

// GetRootDir returns the root directory for a session
func GetRootDir(sessionID string) string {
	info, exists := Get(sessionID)
	if !exists {
		return "." // Default to current directory if session doesn't exist
	}
	return info.RootDir
}

// ResolveRelativePath resolves a relative path against the session's
// root directory
func ResolveRelativePath(path string, sessionID string) string {
	if filepath.IsAbs(path) {
		return path
	}

	rootDir := GetRootDir(sessionID)
	if rootDir == "" {
		rootDir = "."
	}
	return filepath.Join(rootDir, path)
}

// HandleSession is the handler function for the session tool
func HandleSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	operation, ok := arguments["operation"].(string)
	if !ok {
		return nil, fmt.Errorf("operation must be a string")
	}

	switch operation {
	case "initialize":
		rootDir, _ := arguments["root_dir"].(string)
		if rootDir == "" {
			rootDir = "."
		}
		lang, _ := arguments["language"].(string)
		sessionID, _ := arguments["session_id"].(string)

		info := Set(Info{
			RootDir:   rootDir,
			Language:  lang,
			SessionID: sessionID,
		})

		resultText := "Session initialized successfully\n\n"
		resultText += fmt.Sprintf("Root directory: %s\n", info.RootDir)
		if info.Language != "" {
			resultText += fmt.Sprintf("Language: %s\n", info.Language)
		}
		resultText += fmt.Sprintf("Session ID: %s\n", info.SessionID)

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: resultText,
				},
			},
		}, nil

	case "info":
		sessionID, ok := arguments["session_id"].(string)
		if !ok {
			return nil, fmt.Errorf("session_id must be a string")
		}

		info, exists := Get(sessionID)
		if !exists {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		}

		resultText := "Session Information\n\n"
		resultText += fmt.Sprintf("Root directory: %s\n", info.RootDir)
		resultText += fmt.Sprintf("Language: %s\n", info.Language)
		resultText += fmt.Sprintf("Session ID: %s\n", info.SessionID)
		resultText += fmt.Sprintf("Initialized: %s\n", info.InitTime.Format(time.RFC3339))
		resultText += fmt.Sprintf("Last accessed: %s\n", info.LastAccess.Format(time.RFC3339))

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: resultText,
				},
			},
		}, nil

	case "list":
		sessions := List()

		resultText := fmt.Sprintf("Active Sessions (%d)\n\n", len(sessions))
		for i, sessionID := range sessions {
			info, _ := Get(sessionID)
			resultText += fmt.Sprintf("%d. Session ID: %s\n", i+1, sessionID)
			resultText += fmt.Sprintf("   Root directory: %s\n", info.RootDir)
			resultText += fmt.Sprintf("   Language: %s\n", info.Language)
			resultText += fmt.Sprintf("   Initialized: %s\n", info.InitTime.Format(time.RFC3339))
			resultText += fmt.Sprintf("   Last accessed: %s\n\n", info.LastAccess.Format(time.RFC3339))
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: resultText,
				},
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported operation: %s", operation)
	}
}

// HandleSessionResource is the handler function for the session resource
func HandleSessionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	sessionID := ""

	// Format: session://info/session_id
	if strings.HasPrefix(uri, "session://info/") {
		sessionID = strings.TrimPrefix(uri, "session://info/")
	}

	if sessionID == "" {
		sessions := List()

		infoStr := fmt.Sprintf("Active Sessions (%d):\n\n", len(sessions))
		for i, id := range sessions {
			info, _ := Get(id)
			infoStr += fmt.Sprintf("%d. Session ID: %s\n", i+1, id)
			infoStr += fmt.Sprintf("   Root directory: %s\n", info.RootDir)
			infoStr += fmt.Sprintf("   Language: %s\n", info.Language)
			infoStr += fmt.Sprintf("   Initialized: %s\n", info.InitTime.Format(time.RFC3339))
			infoStr += fmt.Sprintf("   Last accessed: %s\n\n", info.LastAccess.Format(time.RFC3339))
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/plain",
				Text:     infoStr,
			},
		}, nil
	}

	info, exists := Get(sessionID)
	if !exists {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}

	infoStr := "Session Information:\n\n"
	infoStr += fmt.Sprintf("root_dir: %s\n", info.RootDir)
	infoStr += fmt.Sprintf("language: %s\n", info.Language)
	infoStr += fmt.Sprintf("session_id: %s\n", info.SessionID)
	infoStr += fmt.Sprintf("init_time: %s\n", info.InitTime.Format(time.RFC3339))
	infoStr += fmt.Sprintf("last_access: %s\n", info.LastAccess.Format(time.RFC3339))

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     infoStr,
		},
	}, nil
}

// RegisterSession registers the session tool and resource with the MCP server
func RegisterSession(mcpServer *server.MCPServer) {
	sessionTool := mcp.NewTool("session",
		mcp.WithDescription("Initializes and manages client sessions: the root directory for resolving relative paths and the preferred spell check language"),
		mcp.WithString("operation",
			mcp.Description("Operation to perform: 'initialize' to set up a session, 'info' to retrieve session information, 'list' to list all sessions"),
			mcp.Required(),
		),
		mcp.WithString("root_dir",
			mcp.Description("Root directory for resolving relative paths (for 'initialize' operation)"),
		),
		mcp.WithString("language",
			mcp.Description("Preferred language code for this session (for 'initialize' operation)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID (required for 'info' operation, optional for 'initialize' operation)"),
		),
	)

	wrappedHandler := stats.WrapHandler("session", HandleSession)
	mcpServer.AddTool(sessionTool, wrappedHandler)

	mcpServer.AddResource(
		mcp.NewResource(
			"session://info",
			"Session Information",
			mcp.WithMIMEType("text/plain"),
		),
		HandleSessionResource,
	)

	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"session://info/{session_id}",
			"Session Details",
			mcp.WithTemplateMIMEType("text/plain"),
			mcp.WithTemplateDescription("Information about a specific session"),
		),
		HandleSessionResource,
	)

	log.Printf("[Session] Registered session tool and resource")
}
