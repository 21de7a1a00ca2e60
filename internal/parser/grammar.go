package parser

import (
	"github.com/ludo-technologies/plagscan/domain"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// NodeKinds names the node types that carry structural features for one grammar
type NodeKinds struct {
	Functions   []string
	Classes     []string
	Imports     []string
	Assignments []string
	Ifs         []string
	Loops       []string
	Trys        []string

	// FunctionValues are value node types that make an assignment target a function name
	FunctionValues []string
}

// grammarFor returns the tree-sitter grammar for a language, or nil
func grammarFor(lang domain.Language) *sitter.Language {
	switch lang {
	case domain.LanguagePython:
		return python.GetLanguage()
	case domain.LanguageJavaScript:
		return javascript.GetLanguage()
	case domain.LanguageTypeScript:
		return typescript.GetLanguage()
	case domain.LanguageJava:
		return java.GetLanguage()
	case domain.LanguageC:
		return c.GetLanguage()
	case domain.LanguageCPP:
		return cpp.GetLanguage()
	case domain.LanguageCSharp:
		return csharp.GetLanguage()
	case domain.LanguageGo:
		return golang.GetLanguage()
	case domain.LanguageRust:
		return rust.GetLanguage()
	case domain.LanguageKotlin:
		return kotlin.GetLanguage()
	case domain.LanguageRuby:
		return ruby.GetLanguage()
	default:
		return nil
	}
}

// HasGrammar reports whether structured parsing is available for a language
func HasGrammar(lang domain.Language) bool {
	_, ok := nodeKinds[lang]
	return ok
}

// KindsFor returns the node kinds for a language
func KindsFor(lang domain.Language) (NodeKinds, bool) {
	kinds, ok := nodeKinds[lang]
	return kinds, ok
}

var jsKinds = NodeKinds{
	Functions:      []string{"function_declaration", "generator_function_declaration", "method_definition"},
	Classes:        []string{"class_declaration"},
	Imports:        []string{"import_statement"},
	Assignments:    []string{"variable_declarator", "assignment_expression"},
	Ifs:            []string{"if_statement"},
	Loops:          []string{"for_statement", "for_in_statement", "while_statement", "do_statement"},
	Trys:           []string{"try_statement", "catch_clause"},
	FunctionValues: []string{"arrow_function", "function", "function_expression", "generator_function"},
}

var cKinds = NodeKinds{
	Functions:   []string{"function_definition"},
	Classes:     []string{"struct_specifier", "union_specifier"},
	Imports:     []string{"preproc_include"},
	Assignments: []string{"init_declarator", "assignment_expression"},
	Ifs:         []string{"if_statement"},
	Loops:       []string{"for_statement", "while_statement", "do_statement"},
}

var nodeKinds = map[domain.Language]NodeKinds{
	domain.LanguagePython: {
		Functions:   []string{"function_definition"},
		Classes:     []string{"class_definition"},
		Imports:     []string{"import_statement", "import_from_statement"},
		Assignments: []string{"assignment", "augmented_assignment"},
		Ifs:         []string{"if_statement", "elif_clause"},
		Loops:       []string{"for_statement", "while_statement"},
		Trys:        []string{"try_statement", "except_clause"},
	},
	domain.LanguageJavaScript: jsKinds,
	domain.LanguageTypeScript: {
		Functions:      jsKinds.Functions,
		Classes:        []string{"class_declaration", "interface_declaration"},
		Imports:        jsKinds.Imports,
		Assignments:    jsKinds.Assignments,
		Ifs:            jsKinds.Ifs,
		Loops:          jsKinds.Loops,
		Trys:           jsKinds.Trys,
		FunctionValues: jsKinds.FunctionValues,
	},
	domain.LanguageJava: {
		Functions:   []string{"method_declaration", "constructor_declaration"},
		Classes:     []string{"class_declaration", "interface_declaration", "enum_declaration"},
		Imports:     []string{"import_declaration"},
		Assignments: []string{"variable_declarator", "assignment_expression"},
		Ifs:         []string{"if_statement"},
		Loops:       []string{"for_statement", "enhanced_for_statement", "while_statement", "do_statement"},
		Trys:        []string{"try_statement", "try_with_resources_statement", "catch_clause"},
	},
	domain.LanguageC: cKinds,
	domain.LanguageCPP: {
		Functions:   cKinds.Functions,
		Classes:     []string{"struct_specifier", "union_specifier", "class_specifier"},
		Imports:     cKinds.Imports,
		Assignments: cKinds.Assignments,
		Ifs:         cKinds.Ifs,
		Loops:       []string{"for_statement", "for_range_loop", "while_statement", "do_statement"},
		Trys:        []string{"try_statement", "catch_clause"},
	},
	domain.LanguageCSharp: {
		Functions:   []string{"method_declaration", "constructor_declaration", "local_function_statement"},
		Classes:     []string{"class_declaration", "interface_declaration", "struct_declaration", "record_declaration"},
		Imports:     []string{"using_directive"},
		Assignments: []string{"variable_declarator", "assignment_expression"},
		Ifs:         []string{"if_statement"},
		Loops:       []string{"for_statement", "for_each_statement", "while_statement", "do_statement"},
		Trys:        []string{"try_statement", "catch_clause"},
	},
	domain.LanguageGo: {
		Functions:   []string{"function_declaration", "method_declaration"},
		Classes:     []string{"type_spec"},
		Imports:     []string{"import_spec"},
		Assignments: []string{"short_var_declaration", "var_spec", "assignment_statement"},
		Ifs:         []string{"if_statement"},
		Loops:       []string{"for_statement"},
	},
	domain.LanguageRust: {
		Functions:   []string{"function_item"},
		Classes:     []string{"struct_item", "enum_item", "trait_item"},
		Imports:     []string{"use_declaration"},
		Assignments: []string{"let_declaration", "assignment_expression"},
		Ifs:         []string{"if_expression"},
		Loops:       []string{"for_expression", "while_expression", "loop_expression"},
	},
	domain.LanguageKotlin: {
		Functions:   []string{"function_declaration"},
		Classes:     []string{"class_declaration", "object_declaration"},
		Imports:     []string{"import_header"},
		Assignments: []string{"property_declaration", "assignment"},
		Ifs:         []string{"if_expression"},
		Loops:       []string{"for_statement", "while_statement", "do_while_statement"},
		Trys:        []string{"try_expression", "catch_block"},
	},
	domain.LanguageRuby: {
		Functions:   []string{"method", "singleton_method"},
		Classes:     []string{"class", "module"},
		Assignments: []string{"assignment", "operator_assignment"},
		Ifs:         []string{"if", "elsif", "unless", "if_modifier", "unless_modifier"},
		Loops:       []string{"for", "while", "until", "while_modifier", "until_modifier"},
		Trys:        []string{"rescue"},
	},
}
