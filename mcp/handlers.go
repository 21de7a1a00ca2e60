package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	return &HandlerSet{deps: deps}
}

// HandleCompareCode handles the compare_code tool
func (h *HandlerSet) HandleCompareCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	code1, ok := args["code1"].(string)
	if !ok {
		return mcp.NewToolResultError("code1 parameter is required and must be a string"), nil
	}
	code2, ok := args["code2"].(string)
	if !ok {
		return mcp.NewToolResultError("code2 parameter is required and must be a string"), nil
	}

	shared, err := languageArg(args, "language")
	if err != nil {
		return toolError(err), nil
	}
	lang1, lang2 := shared, shared
	if _, set := args["language1"]; set {
		if lang1, err = languageArg(args, "language1"); err != nil {
			return toolError(err), nil
		}
	}
	if _, set := args["language2"]; set {
		if lang2, err = languageArg(args, "language2"); err != nil {
			return toolError(err), nil
		}
	}

	includeEvidence := h.deps.Config().Output.ShowEvidence
	result, err := h.deps.comparison.Compare(ctx, &domain.CompareRequest{
		Code1:           code1,
		Code2:           code2,
		Language1:       lang1,
		Language2:       lang2,
		Filename1:       stringArg(args, "filename1"),
		Filename2:       stringArg(args, "filename2"),
		IncludeEvidence: boolArg(args, "include_evidence", includeEvidence),
		Detailed:        boolArg(args, "detailed", false),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

// HandleCompareBatch handles the compare_batch tool
func (h *HandlerSet) HandleCompareBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	rawSubmissions, ok := args["submissions"].([]interface{})
	if !ok {
		return mcp.NewToolResultError("submissions parameter is required and must be an array"), nil
	}
	lang, err := languageArg(args, "language")
	if err != nil {
		return toolError(err), nil
	}

	submissions := make([]domain.CodeSubmission, 0, len(rawSubmissions))
	for i, raw := range rawSubmissions {
		sub, err := parseSubmission(raw, lang)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("submission %d: %v", i+1, err)), nil
		}
		submissions = append(submissions, sub)
	}

	resp, err := h.deps.comparison.BatchCompare(ctx, &domain.BatchCompareRequest{
		Submissions: submissions,
		MinScore:    numberArg(args, "min_score", 0),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(resp)
}

// HandleSearchCorpus handles the search_corpus tool
func (h *HandlerSet) HandleSearchCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	code, ok := args["code"].(string)
	if !ok {
		return mcp.NewToolResultError("code parameter is required and must be a string"), nil
	}
	lang, err := languageArg(args, "language")
	if err != nil {
		return toolError(err), nil
	}

	resp, err := h.deps.corpus.Search(ctx, &domain.SearchRequest{
		Code:     code,
		Language: lang,
		Filename: stringArg(args, "filename"),
		TopK:     int(numberArg(args, "top_k", float64(h.deps.Config().Corpus.DefaultTopK))),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(resp)
}

// HandleAddToCorpus handles the add_to_corpus tool
func (h *HandlerSet) HandleAddToCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	code, ok := args["code"].(string)
	if !ok {
		return mcp.NewToolResultError("code parameter is required and must be a string"), nil
	}
	lang, err := languageArg(args, "language")
	if err != nil {
		return toolError(err), nil
	}

	result, err := h.deps.corpus.Add(ctx, &domain.AddRequest{
		Code:        code,
		Language:    lang,
		Description: stringArg(args, "description"),
		Source:      stringArg(args, "source"),
		Filename:    stringArg(args, "filename"),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

// HandleListCorpus handles the list_corpus tool
func (h *HandlerSet) HandleListCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	lang, err := languageArg(args, "language")
	if err != nil {
		return toolError(err), nil
	}
	entries, err := h.deps.corpus.List(ctx, lang)
	if err != nil {
		return toolError(err), nil
	}

	excerptLength := h.deps.Config().Corpus.ExcerptLength
	includeContent := boolArg(args, "include_content", false)
	items := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		item := map[string]interface{}{
			"id":           e.ID,
			"language":     e.Language,
			"description":  e.Description,
			"source":       e.Source,
			"content_hash": e.ContentHash,
			"created_at":   e.CreatedAt,
		}
		if includeContent {
			item["content"] = e.Content
		} else {
			item["excerpt"] = service.Excerpt(e.Content, excerptLength)
		}
		items = append(items, item)
	}

	return jsonResult(map[string]interface{}{
		"total":   len(items),
		"entries": items,
	})
}

// HandleListLanguages handles the list_languages tool
func (h *HandlerSet) HandleListLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"languages": domain.SupportedLanguages,
	})
}

func parseSubmission(raw interface{}, fallback domain.Language) (domain.CodeSubmission, error) {
	switch v := raw.(type) {
	case string:
		return domain.CodeSubmission{Content: v, Language: fallback}, nil
	case map[string]interface{}:
		code, ok := v["code"].(string)
		if !ok {
			return domain.CodeSubmission{}, fmt.Errorf("code must be a string")
		}
		lang := fallback
		if _, set := v["language"]; set {
			parsed, err := languageArg(v, "language")
			if err != nil {
				return domain.CodeSubmission{}, err
			}
			lang = parsed
		}
		return domain.CodeSubmission{
			Content:  code,
			Language: lang,
			Filename: stringArg(v, "name"),
		}, nil
	default:
		return domain.CodeSubmission{}, fmt.Errorf("expected a string or an object with a code field")
	}
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]interface{}, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}

// numberArg reads a JSON number; JSON decoding yields float64
func numberArg(args map[string]interface{}, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func languageArg(args map[string]interface{}, key string) (domain.Language, error) {
	return domain.ParseLanguage(stringArg(args, key))
}

// toolError reports err to the client as a failed tool call
func toolError(err error) *mcp.CallToolResult {
	categorized := service.NewErrorCategorizer().Categorize(err)
	return mcp.NewToolResultError(categorized.Error())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
