package analyzer

import (
	"regexp"

	"github.com/ludo-technologies/plagscan/domain"
)

// languageSignatures are content patterns that vote for a language
var languageSignatures = map[domain.Language][]*regexp.Regexp{
	domain.LanguagePython: rx(
		`(?m)^\s*def\s+\w+\s*\(.*\)\s*(?:->\s*[\w\[\], .]+)?:`,
		`(?m)^\s*import\s+\w+\s*$`,
		`(?m)^\s*from\s+[\w.]+\s+import\b`,
		`if\s+__name__\s*==\s*["']__main__["']`,
		`\bself\.\w+`,
		`\belif\b`,
	),
	domain.LanguageJavaScript: rx(
		`\bfunction\s+\w+\s*\(`,
		`\b(?:const|let)\s+\w+\s*=`,
		`\bvar\s+\w+\s*=`,
		`console\.log\s*\(`,
		`=>\s*\{`,
		`\brequire\s*\(\s*['"]`,
	),
	domain.LanguageTypeScript: rx(
		`\binterface\s+\w+\s*\{`,
		`:\s*(?:string|number|boolean|void|any)\b`,
		`\bexport\s+(?:type|interface)\b`,
	),
	domain.LanguageJava: rx(
		`\bpublic\s+class\s+\w+`,
		`public\s+static\s+void\s+main`,
		`System\.out\.print`,
		`(?m)^\s*import\s+java\.`,
		`\bpackage\s+[\w.]+\s*;`,
	),
	domain.LanguageC: rx(
		`#include\s*<(?:stdio|stdlib|string|math)\.h>`,
		`\bprintf\s*\(`,
		`\bmalloc\s*\(`,
	),
	domain.LanguageCPP: rx(
		`#include\s*<\w+>`,
		`\bint\s+main\s*\(`,
		`\bstd::\w+`,
		`\bcout\s*<<`,
		`\btemplate\s*<`,
	),
	domain.LanguageCSharp: rx(
		`(?m)^\s*using\s+System`,
		`Console\.Write`,
		`\bnamespace\s+\w+`,
		`\bpublic\s+class\s+\w+`,
	),
	domain.LanguageGo: rx(
		`(?m)^\s*package\s+\w+\s*$`,
		`\bfunc\s+(?:\([^)]*\)\s*)?\w+\s*\(`,
		`:=`,
		`\bfmt\.\w+`,
	),
	domain.LanguageRust: rx(
		`\bfn\s+\w+\s*\(`,
		`\blet\s+mut\b`,
		`\bprintln!\s*\(`,
		`(?m)^\s*use\s+std::`,
		`\bimpl\b`,
	),
	domain.LanguageRuby: rx(
		`(?m)^\s*def\s+\w+[?!]?\s*(?:\(|$)`,
		`(?m)^\s*end\s*$`,
		`\bputs\b`,
		`\brequire\s+['"]`,
	),
	domain.LanguagePHP: rx(
		`<\?php`,
		`\$\w+\s*=`,
		`\becho\b`,
	),
	domain.LanguageSwift: rx(
		`\bfunc\s+\w+\s*\([^)]*\)\s*->`,
		`(?m)^\s*import\s+(?:Foundation|UIKit|SwiftUI)\b`,
		`\bguard\s+let\b`,
	),
	domain.LanguageKotlin: rx(
		`\bfun\s+\w+\s*\(`,
		`\bval\s+\w+\s*[:=]`,
		`\bprintln\s*\(`,
	),
}

// DetectLanguage guesses the language of a submission.
// The filename extension wins when it is recognized; otherwise the language
// whose signature patterns match most often is chosen, ties going to the
// earlier entry of domain.SupportedLanguages. No match yields LanguageUnknown.
func DetectLanguage(code, filename string) domain.Language {
	if filename != "" {
		if lang := domain.LanguageFromFilename(filename); lang.IsConcrete() {
			return lang
		}
	}

	best := domain.LanguageUnknown
	bestScore := 0
	for _, lang := range domain.SupportedLanguages {
		score := 0
		for _, re := range languageSignatures[lang] {
			score += len(re.FindAllStringIndex(code, -1))
		}
		if score > bestScore {
			best, bestScore = lang, score
		}
	}
	return best
}

// ResolveLanguage returns the declared language, detecting it when it is auto
func ResolveLanguage(declared domain.Language, code, filename string) domain.Language {
	if declared.IsConcrete() {
		return declared
	}
	if declared == domain.LanguageUnknown {
		return domain.LanguageUnknown
	}
	return DetectLanguage(code, filename)
}
