package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/ludo-technologies/plagscan/domain"
	sitter "github.com/smacker/go-tree-sitter"
)

var (
	// ErrNoGrammar is returned when no tree-sitter grammar is bundled for a language
	ErrNoGrammar = errors.New("no grammar for language")

	// ErrSyntax is returned when the source parses with error nodes
	ErrSyntax = errors.New("syntax errors found in source code")
)

// Parser parses source code with the grammar of a given language.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// ParseResult represents the result of parsing source code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
	Language   domain.Language
}

// Parse parses source code and returns the syntax tree.
// It fails with ErrNoGrammar or ErrSyntax so callers can take a fallback path.
func (p *Parser) Parse(ctx context.Context, source []byte, lang domain.Language) (*ParseResult, error) {
	tsLang := grammarFor(lang)
	if tsLang == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoGrammar, lang)
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, ErrSyntax
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   rootNode,
		SourceCode: source,
		Language:   lang,
	}, nil
}

// GetNodeText returns the text content of a node
func (p *Parser) GetNodeText(node *sitter.Node, source []byte) string {
	return node.Content(source)
}

// WalkTree traverses the tree and calls the visitor function for each node
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if node == nil {
		return nil
	}
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		if err := WalkTree(node.Child(i), visitor); err != nil {
			return err
		}
	}

	return nil
}

// FindNodes finds all nodes of the given types in the tree
func FindNodes(node *sitter.Node, nodeTypes ...string) []*sitter.Node {
	want := make(map[string]bool, len(nodeTypes))
	for _, t := range nodeTypes {
		want[t] = true
	}

	var nodes []*sitter.Node
	_ = WalkTree(node, func(n *sitter.Node) error {
		if want[n.Type()] {
			nodes = append(nodes, n)
		}
		return nil
	})

	return nodes
}

// CountNodes counts nodes of the given types in the tree
func CountNodes(node *sitter.Node, nodeTypes ...string) int {
	return len(FindNodes(node, nodeTypes...))
}
