package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// identifierTypes are leaf node types that name a variable, function or type
var identifierTypes = map[string]bool{
	"identifier":          true,
	"simple_identifier":   true,
	"type_identifier":     true,
	"field_identifier":    true,
	"property_identifier": true,
	"constant":            true,
	"name":                true,
}

// opaqueTargets are assignment-target shapes that do not bind a plain variable
var opaqueTargets = map[string]bool{
	"attribute":                 true,
	"member_expression":         true,
	"subscript":                 true,
	"subscript_expression":      true,
	"field_expression":          true,
	"selector_expression":       true,
	"index_expression":          true,
	"element_access_expression": true,
	"call":                      true,
	"call_expression":           true,
	"navigation_expression":     true,
	"scoped_identifier":         true,
}

// FeatureExtractor turns comment-stripped code into a structural feature set.
// It tries a grammar-aware parse first and falls back to the regex handler
// of the language family; it never fails.
type FeatureExtractor struct {
	// tree-sitter parsers are not safe for concurrent use
	parsers sync.Pool
}

// NewFeatureExtractor creates a new feature extractor
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{
		parsers: sync.Pool{New: func() any { return parser.New() }},
	}
}

// Extract runs the two-path extraction.
// Path records which branch produced the features and Diagnostics why the
// structured branch was skipped.
func (e *FeatureExtractor) Extract(ctx context.Context, stripped string, lang domain.Language) *domain.FeatureExtraction {
	result := &domain.FeatureExtraction{Language: lang}

	features, err := e.extractStructured(ctx, stripped, lang)
	if err == nil {
		result.Path = domain.ExtractionStructured
		result.Features = features
		return result
	}

	result.Path = domain.ExtractionHeuristic
	result.Features = extractHeuristic(stripped, lang)
	result.Diagnostics = append(result.Diagnostics, fallbackReason(err))
	slog.Debug("feature extraction fell back to heuristic path", "language", lang, "reason", err)
	return result
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, parser.ErrNoGrammar):
		return "no grammar for language"
	case errors.Is(err, parser.ErrSyntax):
		return "syntax errors in source"
	default:
		return fmt.Sprintf("parse failed: %v", err)
	}
}

// extractStructured reads features from a tree-sitter parse
func (e *FeatureExtractor) extractStructured(ctx context.Context, stripped string, lang domain.Language) (domain.StructuralFeatureSet, error) {
	kinds, ok := parser.KindsFor(lang)
	if !ok {
		return domain.StructuralFeatureSet{}, fmt.Errorf("%w: %s", parser.ErrNoGrammar, lang)
	}

	p := e.parsers.Get().(*parser.Parser)
	defer e.parsers.Put(p)

	source := []byte(stripped)
	result, err := p.Parse(ctx, source, lang)
	if err != nil {
		return domain.StructuralFeatureSet{}, err
	}

	v := &structureVisitor{
		lang:      lang,
		source:    source,
		kinds:     newKindIndex(kinds),
		functions: make(domain.NameSet),
		classes:   make(domain.NameSet),
		imports:   make(domain.NameSet),
		variables: make(domain.NameSet),
	}
	_ = parser.WalkTree(result.RootNode, v.visit)

	// Grammars without import nodes still get import names from the regex handler
	if len(kinds.Imports) == 0 {
		collectNames(v.imports, stripped, heuristicPatternsFor(lang).imports)
	}

	return domain.StructuralFeatureSet{
		Functions:   v.functions.Sorted(),
		Variables:   v.variables.Sorted(),
		Classes:     v.classes.Sorted(),
		Imports:     v.imports.Sorted(),
		ControlFlow: v.control,
	}, nil
}

type nodeRole int

const (
	roleNone nodeRole = iota
	roleFunction
	roleClass
	roleImport
	roleAssignment
	roleIf
	roleLoop
	roleTry
)

type kindIndex struct {
	roles          map[string]nodeRole
	functionValues map[string]bool
}

func newKindIndex(kinds parser.NodeKinds) kindIndex {
	idx := kindIndex{
		roles:          make(map[string]nodeRole),
		functionValues: make(map[string]bool),
	}
	for role, types := range map[nodeRole][]string{
		roleFunction:   kinds.Functions,
		roleClass:      kinds.Classes,
		roleImport:     kinds.Imports,
		roleAssignment: kinds.Assignments,
		roleIf:         kinds.Ifs,
		roleLoop:       kinds.Loops,
		roleTry:        kinds.Trys,
	} {
		for _, t := range types {
			idx.roles[t] = role
		}
	}
	for _, t := range kinds.FunctionValues {
		idx.functionValues[t] = true
	}
	return idx
}

type structureVisitor struct {
	lang      domain.Language
	source    []byte
	kinds     kindIndex
	functions domain.NameSet
	classes   domain.NameSet
	imports   domain.NameSet
	variables domain.NameSet
	control   domain.ControlFlowCounts
}

func (v *structureVisitor) visit(n *sitter.Node) error {
	switch v.kinds.roles[n.Type()] {
	case roleFunction:
		v.functions.Add(v.nodeName(n))
	case roleClass:
		v.classes.Add(v.nodeName(n))
	case roleImport:
		v.addImports(n)
	case roleAssignment:
		v.addAssignment(n)
	case roleIf:
		v.control.If++
	case roleLoop:
		v.control.Loop++
	case roleTry:
		v.control.Try++
	}
	return nil
}

// nodeName finds the declared name of a function or type node
func (v *structureVisitor) nodeName(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Content(v.source)
	}
	// C-style declarators nest the name: function_definition > function_declarator > identifier
	if decl := n.ChildByFieldName("declarator"); decl != nil {
		return v.firstIdentifier(decl)
	}
	return v.firstIdentifier(n)
}

func (v *structureVisitor) firstIdentifier(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if identifierTypes[n.Type()] || n.Type() == "qualified_identifier" || n.Type() == "destructor_name" {
		return n.Content(v.source)
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child.Type() == "parameter_list" || child.Type() == "parameters" || child.Type() == "formal_parameters" {
			continue
		}
		if name := v.firstIdentifier(child); name != "" {
			return name
		}
	}
	return ""
}

// addAssignment records the plain variable names bound by an assignment or declaration
func (v *structureVisitor) addAssignment(n *sitter.Node) {
	target := assignmentTarget(n)
	if target == nil {
		return
	}

	names := make(domain.NameSet)
	v.collectBoundNames(target, names)
	for name := range names {
		v.variables.Add(name)
	}

	// `const add = (a, b) => a + b` also names a function
	if value := n.ChildByFieldName("value"); value != nil && v.kinds.functionValues[value.Type()] {
		for name := range names {
			v.functions.Add(name)
		}
	}
}

// assignmentTarget picks the node holding the bound names, never the assigned value
func assignmentTarget(n *sitter.Node) *sitter.Node {
	for _, field := range []string{"left", "name", "pattern", "declarator"} {
		if target := n.ChildByFieldName(field); target != nil {
			return target
		}
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		t := child.Type()
		if identifierTypes[t] || strings.Contains(t, "variable_declaration") ||
			strings.Contains(t, "pattern") || strings.Contains(t, "declarator") ||
			t == "directly_assignable_expression" {
			return child
		}
	}
	return nil
}

func (v *structureVisitor) collectBoundNames(n *sitter.Node, names domain.NameSet) {
	if n == nil || opaqueTargets[n.Type()] {
		return
	}
	if identifierTypes[n.Type()] {
		names.Add(n.Content(v.source))
		return
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		// array sizes and initializer values are not bound names
		if child.Type() == "number_literal" || child.Type() == "initializer_list" {
			continue
		}
		v.collectBoundNames(child, names)
	}
}

// addImports reads module names out of an import node's text
func (v *structureVisitor) addImports(n *sitter.Node) {
	text := n.Content(v.source)
	found := make(domain.NameSet)
	collectNames(found, text, heuristicPatternsFor(v.lang).imports)
	if len(found) == 0 {
		collectNames(found, text, importSpecPatterns)
	}
	if len(found) == 0 {
		found.Add(strings.TrimSpace(text))
	}
	for name := range found {
		v.imports.Add(name)
	}
}

// importSpecPatterns cover import nodes that hold only the quoted path, such as Go import specs
var importSpecPatterns = rx(
	`^\s*(?:[\w.]+\s+)?"([^"]+)"\s*$`,
)
