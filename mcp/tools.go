package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const languageDescription = "Language tag such as python, javascript, go or java. Omit or use \"auto\" to detect it"

// RegisterTools registers all plagscan MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("compare_code",
		mcp.WithDescription("Compare two code snippets and return an overall similarity score, per-signal breakdown (lexical, structural, semantic, token sequence) and a risk level"),
		mcp.WithString("code1",
			mcp.Required(),
			mcp.Description("First code snippet")),
		mcp.WithString("code2",
			mcp.Required(),
			mcp.Description("Second code snippet")),
		mcp.WithString("language",
			mcp.Description(languageDescription)),
		mcp.WithString("language1",
			mcp.Description("Language of code1, overrides language")),
		mcp.WithString("language2",
			mcp.Description("Language of code2, overrides language")),
		mcp.WithString("filename1",
			mcp.Description("File name of code1, used for language detection")),
		mcp.WithString("filename2",
			mcp.Description("File name of code2, used for language detection")),
		mcp.WithBoolean("include_evidence",
			mcp.Description("Include lines that appear verbatim in both snippets")),
		mcp.WithBoolean("detailed",
			mcp.Description("Include shared functions, statistics and a unified diff (default: false)")),
	), h.HandleCompareCode)

	s.AddTool(mcp.NewTool("compare_batch",
		mcp.WithDescription("Compare every pair in a set of code snippets, most similar pairs first"),
		mcp.WithArray("submissions",
			mcp.Required(),
			mcp.Description("At least two submissions, each a code string or an object {code, language, name}")),
		mcp.WithString("language",
			mcp.Description(languageDescription)),
		mcp.WithNumber("min_score",
			mcp.Description("Only return pairs scoring at least this value 0.0-1.0 (default: 0)")),
	), h.HandleCompareBatch)

	s.AddTool(mcp.NewTool("search_corpus",
		mcp.WithDescription("Search the reference corpus for code similar to a snippet. Matches below the report floor are omitted"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Code snippet to search for")),
		mcp.WithString("language",
			mcp.Description(languageDescription+". An explicit language restricts the search to entries of that language")),
		mcp.WithString("filename",
			mcp.Description("File name of the snippet, used for language detection")),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of matches (default: 10)")),
	), h.HandleSearchCorpus)

	s.AddTool(mcp.NewTool("add_to_corpus",
		mcp.WithDescription("Add a code snippet to the reference corpus. Content already present is not added again"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Code to add")),
		mcp.WithString("language",
			mcp.Description(languageDescription)),
		mcp.WithString("description",
			mcp.Description("Short description of the code")),
		mcp.WithString("source",
			mcp.Description("Where the code came from")),
		mcp.WithString("filename",
			mcp.Description("File name, used for language detection")),
	), h.HandleAddToCorpus)

	s.AddTool(mcp.NewTool("list_corpus",
		mcp.WithDescription("List reference corpus entries"),
		mcp.WithString("language",
			mcp.Description("Only list entries of this language")),
		mcp.WithBoolean("include_content",
			mcp.Description("Return full content instead of an excerpt (default: false)")),
	), h.HandleListCorpus)

	s.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List the supported language tags"),
	), h.HandleListLanguages)
}
