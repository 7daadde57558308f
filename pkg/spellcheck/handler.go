package spellcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/atomspell/atomspell/pkg/dictionary"
	"github.com/atomspell/atomspell/pkg/language"
	"github.com/atomspell/atomspell/pkg/session"
	"github.com/atomspell/atomspell/pkg/stats"
)

// Service bundles the engine state the MCP handlers operate on: one
// dictionary manager and one checker shared by every request.
type Service struct {
	Manager *dictionary.Manager
	Checker *Checker
}

var (
	serviceMu     sync.Mutex
	globalService *Service
)

// InitService creates the global service. userDir is where user word
// lists are persisted; empty means the per-user default. searchDirs
// extend the dictionary search path.
func InitService(defaultLang language.Language, userDir string, searchDirs ...string) *Service {
	serviceMu.Lock()
	defer serviceMu.Unlock()

	catalog := language.NewManager(searchDirs...)
	manager := dictionary.NewManager(catalog, userDir)
	globalService = &Service{
		Manager: manager,
		Checker: NewChecker(manager, defaultLang),
	}
	log.Printf("[SpellCheck] Service initialized with default language %s", defaultLang.Name())
	return globalService
}

// GetService returns the global service, initializing it with defaults
// on first use.
func GetService() *Service {
	serviceMu.Lock()
	svc := globalService
	serviceMu.Unlock()
	if svc != nil {
		return svc
	}
	return InitService(language.Default, "")
}

// HandleSpellCheck is the handler function for the spellcheck tool
func HandleSpellCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	// Extract the text to check
	text, ok := arguments["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text must be a string")
	}

	// Extract language (optional, default: checker's active language)
	svc := GetService()
	lang := svc.Checker.Language()
	if langStr, ok := arguments["language"].(string); ok && langStr != "" {
		lang = language.FromCode(langStr)
	}

	// Extract filename (optional, used for code detection)
	filename, _ := arguments["filename"].(string)

	// Per-request configuration overrides
	config := svc.Checker.Config()
	if suggestionsVal, ok := arguments["suggestions"].(bool); ok {
		config.SuggestionsEnabled = suggestionsVal
	}
	if caseSensitiveVal, ok := arguments["case_sensitive"].(bool); ok {
		config.CaseSensitive = caseSensitiveVal
	}
	if maxVal, ok := arguments["max_suggestions"].(float64); ok && int(maxVal) > 0 {
		config.MaxSuggestions = int(maxVal)
	}
	if thresholdVal, ok := arguments["confidence_threshold"].(float64); ok && thresholdVal > 0 {
		config.ConfidenceThreshold = thresholdVal
	}

	analysis := svc.Checker.CheckDocumentWith(text, filename, lang, config)

	// Create a text summary
	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Spell check results (%s):\n\n", analysis.Language.Name()))
	summary.WriteString(fmt.Sprintf("Words checked: %d\n", analysis.TotalWords))
	summary.WriteString(fmt.Sprintf("Misspelled: %d\n", analysis.MisspelledWords))
	summary.WriteString(fmt.Sprintf("Accuracy: %.1f%%\n", analysis.Accuracy))
	summary.WriteString(fmt.Sprintf("Lines checked: %d\n", analysis.LinesChecked))
	if analysis.LikelyCode {
		summary.WriteString("Content treated as source code\n")
	}
	summary.WriteString(fmt.Sprintf("Duration: %s\n", analysis.CheckDuration))

	misspellings := 0
	for _, check := range analysis.Words {
		if check.IsCorrect {
			continue
		}
		if misspellings == 0 {
			summary.WriteString("\nIssues:\n\n")
		}
		misspellings++
		summary.WriteString(fmt.Sprintf("%d. Word: %s\n", misspellings, check.Original))
		summary.WriteString(fmt.Sprintf("   Line: %d, Column: %d\n", check.Line, check.Column))
		summary.WriteString(fmt.Sprintf("   Type: %s, Confidence: %.2f\n", check.WordType, check.Confidence))
		if len(check.Suggestions) > 0 {
			summary.WriteString(fmt.Sprintf("   Suggestions: %s\n", strings.Join(check.Suggestions, ", ")))
		}
		summary.WriteString("\n")
	}
	if misspellings == 0 {
		summary.WriteString("\nNo spelling issues found.\n")
	}

	result := &mcp.CallToolResult{}
	result.Content = append(result.Content, mcp.TextContent{
		Text: summary.String(),
		Type: "text",
	})

	// Full analysis as JSON for clients that want the structured form.
	if payload, err := json.MarshalIndent(analysis, "", "  "); err == nil {
		result.Content = append(result.Content, mcp.TextContent{
			Text: string(payload),
			Type: "text",
		})
	}
	return result, nil
}

// HandleDictionary is the handler function for the dictionary tool
func HandleDictionary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	operation, ok := arguments["operation"].(string)
	if !ok {
		return nil, fmt.Errorf("operation must be a string")
	}

	svc := GetService()

	// Extract language (optional, default: checker's active language).
	// Dictionary operations need a concrete language, so the auto
	// marker resolves here.
	lang := svc.Checker.ActiveLanguage()
	if langStr, ok := arguments["language"].(string); ok && langStr != "" {
		lang = language.FromCode(langStr)
		if lang == language.AutoDetect {
			lang = svc.Checker.ActiveLanguage()
		}
	}

	word, _ := arguments["word"].(string)
	path, _ := arguments["path"].(string)
	sessionID, _ := arguments["session_id"].(string)

	var resultText string
	switch operation {
	case "add_word":
		if word == "" {
			return nil, fmt.Errorf("word is required for add_word")
		}
		if err := mutateDictionary(svc, lang, word, (*Checker).AddWord, (*dictionary.Dictionary).AddWord); err != nil {
			return nil, fmt.Errorf("error adding word: %v", err)
		}
		resultText = fmt.Sprintf("Added %q to the %s dictionary", word, lang.Name())

	case "ignore_word":
		if word == "" {
			return nil, fmt.Errorf("word is required for ignore_word")
		}
		if err := mutateDictionary(svc, lang, word, (*Checker).IgnoreWord, (*dictionary.Dictionary).IgnoreWord); err != nil {
			return nil, fmt.Errorf("error ignoring word: %v", err)
		}
		resultText = fmt.Sprintf("Ignoring %q for %s", word, lang.Name())

	case "clear_ignored":
		if lang == svc.Checker.ActiveLanguage() {
			if err := svc.Checker.ClearIgnored(); err != nil {
				return nil, fmt.Errorf("error clearing ignored words: %v", err)
			}
		} else {
			dict, err := svc.Manager.Get(lang)
			if err != nil {
				return nil, fmt.Errorf("error loading dictionary: %v", err)
			}
			if err := dict.ClearIgnored(); err != nil {
				return nil, fmt.Errorf("error clearing ignored words: %v", err)
			}
		}
		resultText = fmt.Sprintf("Cleared ignored words for %s", lang.Name())

	case "import":
		if path == "" {
			return nil, fmt.Errorf("path is required for import")
		}
		fullPath := session.ResolveRelativePath(path, sessionID)
		dict, err := svc.Manager.Get(lang)
		if err != nil {
			return nil, fmt.Errorf("error loading dictionary: %v", err)
		}
		if err := dict.ImportFile(fullPath); err != nil {
			return nil, fmt.Errorf("error importing word list: %v", err)
		}
		svc.Checker.InvalidateCache()
		resultText = fmt.Sprintf("Imported %s into the %s dictionary (%d words total)",
			fullPath, lang.Name(), dict.WordCount())

	case "export":
		if path == "" {
			return nil, fmt.Errorf("path is required for export")
		}
		fullPath := session.ResolveRelativePath(path, sessionID)
		dict, err := svc.Manager.Get(lang)
		if err != nil {
			return nil, fmt.Errorf("error loading dictionary: %v", err)
		}
		if err := dict.ExportFile(fullPath); err != nil {
			return nil, fmt.Errorf("error exporting word list: %v", err)
		}
		resultText = fmt.Sprintf("Exported %d words to %s", dict.WordCount(), fullPath)

	case "info":
		dict, err := svc.Manager.Get(lang)
		if err != nil {
			return nil, fmt.Errorf("error loading dictionary: %v", err)
		}
		var info strings.Builder
		info.WriteString("Dictionary Information\n\n")
		info.WriteString(fmt.Sprintf("Language: %s (%s)\n", lang.Name(), lang.Code()))
		info.WriteString(fmt.Sprintf("Words: %d\n", dict.WordCount()))
		info.WriteString(fmt.Sprintf("Ignored: %d\n", dict.IgnoredCount()))
		info.WriteString(fmt.Sprintf("Loaded: %v\n", dict.IsLoaded()))
		loaded := svc.Manager.Loaded()
		codes := make([]string, 0, len(loaded))
		for _, l := range loaded {
			codes = append(codes, l.Code())
		}
		info.WriteString(fmt.Sprintf("Cached languages: %s\n", strings.Join(codes, ", ")))
		resultText = info.String()

	default:
		return nil, fmt.Errorf("unsupported operation: %s", operation)
	}

	result := &mcp.CallToolResult{}
	result.Content = append(result.Content, mcp.TextContent{
		Text: resultText,
		Type: "text",
	})
	return result, nil
}

// mutateDictionary routes a word mutation through the checker when it
// targets the active language, keeping the session state in sync, and
// straight to the dictionary otherwise.
func mutateDictionary(svc *Service, lang language.Language, word string,
	viaChecker func(*Checker, string) error, viaDict func(*dictionary.Dictionary, string) error) error {
	if lang == svc.Checker.ActiveLanguage() {
		return viaChecker(svc.Checker, word)
	}
	dict, err := svc.Manager.Get(lang)
	if err != nil {
		return err
	}
	return viaDict(dict, word)
}

// HandleLangDetect is the handler function for the langdetect tool
func HandleLangDetect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	text, ok := arguments["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text must be a string")
	}

	candidates := language.DetectFromText(text)

	var summary strings.Builder
	summary.WriteString("Language Detection\n\n")
	if len(candidates) == 0 {
		summary.WriteString("No candidate languages found.\n")
	} else {
		best := candidates[0]
		summary.WriteString(fmt.Sprintf("Best match: %s (%s), score %.1f\n\n", best.Language.Name(), best.Language.Code(), best.Score))
		summary.WriteString("Candidates:\n")
		for i, cand := range candidates {
			summary.WriteString(fmt.Sprintf("%d. %s (%s): %.1f\n", i+1, cand.Language.Name(), cand.Language.Code(), cand.Score))
		}
	}

	result := &mcp.CallToolResult{}
	result.Content = append(result.Content, mcp.TextContent{
		Text: summary.String(),
		Type: "text",
	})
	return result, nil
}

// RegisterSpellCheck registers the spellcheck tool with the MCP server
func RegisterSpellCheck(mcpServer *server.MCPServer) {
	spellCheckTool := mcp.NewTool("spellcheck",
		mcp.WithDescription("Checks spelling in plain text and source code. Detects the document language, classifies words (normal, code identifier, acronym, proper noun, technical term), scores confidence per word, and provides ranked correction suggestions. Source code gets lenient treatment for identifiers."),
		mcp.WithString("text",
			mcp.Description("The text to spell check"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Language code or name, e.g. 'eng', 'fra', 'auto' (default: the active language)"),
		),
		mcp.WithString("filename",
			mcp.Description("Filename the text came from, used to detect source code"),
		),
		mcp.WithBoolean("suggestions",
			mcp.Description("Whether to generate correction suggestions (default: true)"),
		),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Whether dictionary lookups are case sensitive (default: false)"),
		),
		mcp.WithNumber("max_suggestions",
			mcp.Description("Maximum number of suggestions per word (default: 5)"),
		),
		mcp.WithNumber("confidence_threshold",
			mcp.Description("Minimum confidence to report a misspelling (default: 0.7)"),
		),
	)

	wrappedHandler := stats.WrapHandler("spellcheck", HandleSpellCheck)
	mcpServer.AddTool(spellCheckTool, wrappedHandler)

	log.Printf("[SpellCheck] Registered spellcheck tool")
}

// RegisterDictionary registers the dictionary tool with the MCP server
func RegisterDictionary(mcpServer *server.MCPServer) {
	dictionaryTool := mcp.NewTool("dictionary",
		mcp.WithDescription("Manages the spell check dictionaries: add words, ignore words, clear the ignore list, import or export word lists (.txt or .csv), and inspect dictionary state."),
		mcp.WithString("operation",
			mcp.Description("Operation to perform: 'add_word', 'ignore_word', 'clear_ignored', 'import', 'export', 'info'"),
			mcp.Required(),
		),
		mcp.WithString("word",
			mcp.Description("The word to add or ignore"),
		),
		mcp.WithString("language",
			mcp.Description("Language code or name (default: the active language)"),
		),
		mcp.WithString("path",
			mcp.Description("Word list path for 'import' and 'export' (absolute or relative to the session root)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to use for resolving relative paths"),
		),
	)

	wrappedHandler := stats.WrapHandler("dictionary", HandleDictionary)
	mcpServer.AddTool(dictionaryTool, wrappedHandler)

	log.Printf("[SpellCheck] Registered dictionary tool")
}

// RegisterLangDetect registers the langdetect tool with the MCP server
func RegisterLangDetect(mcpServer *server.MCPServer) {
	langDetectTool := mcp.NewTool("langdetect",
		mcp.WithDescription("Detects the most likely language of a text using stop-word frequency and script analysis. Returns the ranked candidates with their scores."),
		mcp.WithString("text",
			mcp.Description("The text to analyze"),
			mcp.Required(),
		),
	)

	wrappedHandler := stats.WrapHandler("langdetect", HandleLangDetect)
	mcpServer.AddTool(langDetectTool, wrappedHandler)

	log.Printf("[SpellCheck] Registered langdetect tool")
}
