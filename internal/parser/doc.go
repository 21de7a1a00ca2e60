// Package parser provides multi-language source parsing using tree-sitter.
//
// It wraps the tree-sitter Go bindings and bundles grammars for the languages
// whose structure the feature extractor reads directly. For each grammar the
// package also knows which node types describe functions, classes, imports,
// assignments and control flow.
//
// Parse fails with ErrNoGrammar when a language has no bundled grammar and
// with ErrSyntax when the tree contains error nodes. Both are signals for the
// caller to switch to heuristic extraction, not fatal conditions.
//
// Basic usage:
//
//	p := parser.New()
//	result, err := p.Parse(ctx, []byte("def hello(): pass"), domain.LanguagePython)
//	if err != nil {
//	    // fall back to regex extraction
//	}
//	funcs := parser.FindNodes(result.RootNode, "function_definition")
package parser
