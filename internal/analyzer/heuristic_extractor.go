package analyzer

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/plagscan/domain"
)

// heuristicPatterns is the regex handler for one language family.
// Every pattern captures the name in group 1.
type heuristicPatterns struct {
	functions []*regexp.Regexp
	classes   []*regexp.Regexp
	imports   []*regexp.Regexp
	variables []*regexp.Regexp
}

var (
	ifRegex   = regexp.MustCompile(`\b(?:if|elif|elsif|unless)\b`)
	loopRegex = regexp.MustCompile(`\b(?:for|foreach|while|until|loop)\b`)
	tryRegex  = regexp.MustCompile(`\b(?:try|except|catch|rescue)\b`)

	stringLiteralRegex = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'`)
	goImportBlockRegex = regexp.MustCompile(`(?s)\bimport\s*\((.*?)\)`)
	quotedRegex        = regexp.MustCompile(`"([^"]+)"`)

	genericAssignRegex = regexp.MustCompile(`(?m)(?:^|[^\w.=!<>$:])([A-Za-z_]\w*)\s*=(?:[^=]|$)`)
)

var (
	pythonPatterns = heuristicPatterns{
		functions: rx(`\bdef\s+(\w+)\s*\(`),
		classes:   rx(`\bclass\s+(\w+)`),
		imports:   rx(`(?m)^\s*import\s+([\w.]+)`, `(?m)^\s*from\s+([\w.]+)\s+import\b`),
		variables: []*regexp.Regexp{genericAssignRegex},
	}

	jsPatterns = heuristicPatterns{
		functions: rx(
			`\bfunction\s*\*?\s*(\w+)\s*\(`,
			`\b(\w+)\s*:\s*(?:async\s+)?function\b`,
			`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|\w+\s*=>)`,
		),
		classes: rx(`\b(?:class|interface)\s+(\w+)`),
		imports: rx(
			`\bimport\s+(?:[^'"]*?\s+from\s+)?['"]([^'"]+)['"]`,
			`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`,
		),
		variables: []*regexp.Regexp{regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)`), genericAssignRegex},
	}

	jvmPatterns = heuristicPatterns{
		functions: rx(
			`\b[\w<>\[\],]+\s+(\w+)\s*\([^;{)]*\)\s*(?:throws\s+[\w.,\s]+)?\{`,
			`\bfun\s+(?:<[^>]*>\s*)?(?:[\w.]+\.)?(\w+)\s*\(`,
		),
		classes: rx(`\b(?:class|interface|enum|struct|record|object)\s+(\w+)`),
		imports: rx(
			`(?m)^\s*import\s+(?:static\s+)?([\w.*]+)`,
			`(?m)^\s*using\s+(?:static\s+)?([\w.]+)\s*;`,
		),
		variables: []*regexp.Regexp{regexp.MustCompile(`\b(?:val|var)\s+(\w+)`), genericAssignRegex},
	}

	cPatterns = heuristicPatterns{
		functions: rx(`\b[\w*&:<>]+\s+[*&]*(\w+)\s*\([^;{)]*\)\s*(?:const\s*)?\{`),
		classes:   rx(`\b(?:struct|class|union)\s+(\w+)`),
		imports:   rx(`#\s*include\s*[<"]([^>"]+)[>"]`),
		variables: []*regexp.Regexp{genericAssignRegex},
	}

	goPatterns = heuristicPatterns{
		functions: rx(`\bfunc\s+(?:\([^)]*\)\s*)?(\w+)\s*[\[(]`),
		classes:   rx(`\btype\s+(\w+)\s+(?:struct|interface)\b`),
		imports:   rx(`(?m)^\s*import\s+(?:\w+\s+)?"([^"]+)"`),
		variables: rx(`\b(\w+)(?:\s*,\s*\w+)*\s*:=`, `\bvar\s+(\w+)`),
	}

	rustPatterns = heuristicPatterns{
		functions: rx(`\bfn\s+(\w+)`),
		classes:   rx(`\b(?:struct|enum|trait)\s+(\w+)`),
		imports:   rx(`(?m)^\s*use\s+([\w:]+)`),
		variables: rx(`\blet\s+(?:mut\s+)?(\w+)`),
	}

	rubyPatterns = heuristicPatterns{
		functions: rx(`\bdef\s+(?:self\.)?(\w+[?!]?)`),
		classes:   rx(`\b(?:class|module)\s+(\w+)`),
		imports:   rx(`\brequire(?:_relative)?\s*\(?\s*['"]([^'"]+)['"]`),
		variables: []*regexp.Regexp{genericAssignRegex},
	}

	phpPatterns = heuristicPatterns{
		functions: rx(`\bfunction\s+(\w+)\s*\(`),
		classes:   rx(`\b(?:class|interface|trait)\s+(\w+)`),
		imports: rx(
			`\b(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`,
			`(?m)^\s*use\s+([\w\\]+)`,
		),
		variables: rx(`\$(\w+)\s*=(?:[^=]|$)`),
	}

	swiftPatterns = heuristicPatterns{
		functions: rx(`\bfunc\s+(\w+)`),
		classes:   rx(`\b(?:class|struct|enum|protocol)\s+(\w+)`),
		imports:   rx(`(?m)^\s*import\s+(\w+)`),
		variables: rx(`\b(?:let|var)\s+(\w+)`),
	}

	// genericPatterns is the language-agnostic identifier and keyword scan
	genericPatterns = heuristicPatterns{
		functions: rx(`\b([A-Za-z_]\w*)\s*\(`),
		classes:   rx(`\b(?:class|struct|interface)\s+(\w+)`),
		imports: rx(
			`(?m)^\s*(?:import|from|use|using)\s+([\w.:\\]+)`,
			`#\s*include\s*[<"]([^>"]+)[>"]`,
			`\brequire\s*\(?\s*['"]([^'"]+)['"]`,
		),
		variables: []*regexp.Regexp{genericAssignRegex},
	}
)

// nonNames are keywords that the loose patterns can capture as names
var nonNames = map[string]bool{
	"if": true, "elif": true, "else": true, "for": true, "foreach": true, "while": true,
	"switch": true, "case": true, "return": true, "catch": true, "except": true,
	"try": true, "with": true, "and": true, "or": true, "not": true, "in": true,
	"new": true, "typeof": true, "sizeof": true, "using": true, "lock": true,
	"assert": true, "function": true, "def": true, "func": true, "fn": true,
	"self": true, "this": true, "super": true, "await": true,
	"yield": true, "throw": true, "raise": true, "do": true, "loop": true,
}

func rx(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// heuristicPatternsFor dispatches a language to its regex handler
func heuristicPatternsFor(lang domain.Language) heuristicPatterns {
	switch lang {
	case domain.LanguagePython:
		return pythonPatterns
	case domain.LanguageJavaScript, domain.LanguageTypeScript:
		return jsPatterns
	case domain.LanguageJava, domain.LanguageCSharp, domain.LanguageKotlin:
		return jvmPatterns
	case domain.LanguageC, domain.LanguageCPP:
		return cPatterns
	case domain.LanguageGo:
		return goPatterns
	case domain.LanguageRust:
		return rustPatterns
	case domain.LanguageRuby:
		return rubyPatterns
	case domain.LanguagePHP:
		return phpPatterns
	case domain.LanguageSwift:
		return swiftPatterns
	default:
		return genericPatterns
	}
}

// extractHeuristic scans comment-stripped code with the family's regex handler
func extractHeuristic(stripped string, lang domain.Language) domain.StructuralFeatureSet {
	patterns := heuristicPatternsFor(lang)

	// Keywords inside string literals must not count as structure
	blanked := stringLiteralRegex.ReplaceAllString(stripped, `""`)

	functions := make(domain.NameSet)
	collectNames(functions, blanked, patterns.functions)
	classes := make(domain.NameSet)
	collectNames(classes, blanked, patterns.classes)
	variables := make(domain.NameSet)
	collectNames(variables, blanked, patterns.variables)

	imports := make(domain.NameSet)
	collectNames(imports, stripped, patterns.imports)
	if lang == domain.LanguageGo {
		for _, block := range goImportBlockRegex.FindAllStringSubmatch(stripped, -1) {
			for _, m := range quotedRegex.FindAllStringSubmatch(block[1], -1) {
				imports.Add(m[1])
			}
		}
	}

	return domain.StructuralFeatureSet{
		Functions: functions.Sorted(),
		Variables: variables.Sorted(),
		Classes:   classes.Sorted(),
		Imports:   imports.Sorted(),
		ControlFlow: domain.ControlFlowCounts{
			If:   len(ifRegex.FindAllStringIndex(blanked, -1)),
			Loop: len(loopRegex.FindAllStringIndex(blanked, -1)),
			Try:  len(tryRegex.FindAllStringIndex(blanked, -1)),
		},
	}
}

func collectNames(set domain.NameSet, text string, patterns []*regexp.Regexp) {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			name := strings.TrimSpace(m[1])
			if nonNames[name] {
				continue
			}
			set.Add(name)
		}
	}
}
