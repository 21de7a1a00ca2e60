package domain

import (
	"path/filepath"
	"strings"
)

// Language identifies the programming language of a submission
type Language string

const (
	LanguageAuto       Language = "auto"
	LanguageUnknown    Language = "unknown"
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageJava       Language = "java"
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguageRuby       Language = "ruby"
	LanguagePHP        Language = "php"
	LanguageSwift      Language = "swift"
	LanguageKotlin     Language = "kotlin"
)

// SupportedLanguages lists the concrete languages in a stable order
var SupportedLanguages = []Language{
	LanguagePython,
	LanguageJavaScript,
	LanguageTypeScript,
	LanguageJava,
	LanguageC,
	LanguageCPP,
	LanguageCSharp,
	LanguageGo,
	LanguageRust,
	LanguageRuby,
	LanguagePHP,
	LanguageSwift,
	LanguageKotlin,
}

var languageAliases = map[string]Language{
	"":           LanguageAuto,
	"auto":       LanguageAuto,
	"unknown":    LanguageUnknown,
	"python":     LanguagePython,
	"py":         LanguagePython,
	"javascript": LanguageJavaScript,
	"js":         LanguageJavaScript,
	"typescript": LanguageTypeScript,
	"ts":         LanguageTypeScript,
	"java":       LanguageJava,
	"c":          LanguageC,
	"cpp":        LanguageCPP,
	"c++":        LanguageCPP,
	"csharp":     LanguageCSharp,
	"c#":         LanguageCSharp,
	"cs":         LanguageCSharp,
	"go":         LanguageGo,
	"golang":     LanguageGo,
	"rust":       LanguageRust,
	"rs":         LanguageRust,
	"ruby":       LanguageRuby,
	"rb":         LanguageRuby,
	"php":        LanguagePHP,
	"swift":      LanguageSwift,
	"kotlin":     LanguageKotlin,
	"kt":         LanguageKotlin,
}

var extensionLanguages = map[string]Language{
	".py":    LanguagePython,
	".pyi":   LanguagePython,
	".js":    LanguageJavaScript,
	".jsx":   LanguageJavaScript,
	".mjs":   LanguageJavaScript,
	".ts":    LanguageTypeScript,
	".tsx":   LanguageTypeScript,
	".java":  LanguageJava,
	".c":     LanguageC,
	".h":     LanguageC,
	".cpp":   LanguageCPP,
	".cc":    LanguageCPP,
	".cxx":   LanguageCPP,
	".hpp":   LanguageCPP,
	".cs":    LanguageCSharp,
	".go":    LanguageGo,
	".rs":    LanguageRust,
	".rb":    LanguageRuby,
	".php":   LanguagePHP,
	".swift": LanguageSwift,
	".kt":    LanguageKotlin,
	".kts":   LanguageKotlin,
}

// ParseLanguage converts a user supplied tag into a Language.
// An empty tag means auto-detection.
func ParseLanguage(tag string) (Language, error) {
	lang, ok := languageAliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return "", NewUnsupportedLanguageError(tag)
	}
	return lang, nil
}

// LanguageFromFilename returns the language implied by a file extension,
// or LanguageUnknown when the extension is not recognized.
func LanguageFromFilename(name string) Language {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	return LanguageUnknown
}

// IsConcrete reports whether the language names an actual language
// rather than auto or unknown.
func (l Language) IsConcrete() bool {
	return l != LanguageAuto && l != LanguageUnknown && l != ""
}

// String returns the string representation of the language
func (l Language) String() string {
	if l == "" {
		return string(LanguageAuto)
	}
	return string(l)
}
