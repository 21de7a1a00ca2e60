package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ludo-technologies/plagscan/domain"
)

// Precompiled regex for whitespace normalization (avoid recompilation on each call)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// commentSyntax describes how comments look in a language family
type commentSyntax struct {
	slash bool // `//` line and `/* */` block comments
	hash  bool // `#` line comments
	// hashNeedsSpace keeps `#include`-style directives when the family is unknown
	hashNeedsSpace bool
	// backtick strings may span lines and have no escapes
	backtick bool
	// python drops standalone docstrings; ruby drops =begin/=end blocks
	docstrings bool
	rubyBlocks bool
}

// commentSyntaxFor dispatches a language to its comment family.
// Languages without an explicit entry use the default handler.
func commentSyntaxFor(lang domain.Language) commentSyntax {
	switch lang {
	case domain.LanguagePython:
		return commentSyntax{hash: true, docstrings: true}
	case domain.LanguageRuby:
		return commentSyntax{hash: true, rubyBlocks: true}
	case domain.LanguageJavaScript, domain.LanguageTypeScript, domain.LanguageGo:
		return commentSyntax{slash: true, backtick: true}
	case domain.LanguageJava, domain.LanguageC, domain.LanguageCPP, domain.LanguageCSharp,
		domain.LanguageRust, domain.LanguageSwift, domain.LanguageKotlin:
		return commentSyntax{slash: true}
	case domain.LanguagePHP:
		return commentSyntax{slash: true, hash: true}
	default:
		return commentSyntax{slash: true, hash: true, hashNeedsSpace: true, backtick: true}
	}
}

// NormalizedCode holds the two views of a submission that the engine works on
type NormalizedCode struct {
	// Stripped has comments removed but keeps line structure
	Stripped string
	// Normalized is Stripped with whitespace runs collapsed and trimmed
	Normalized string
}

// CodeNormalizer removes comments and normalizes whitespace
type CodeNormalizer struct{}

// NewCodeNormalizer creates a new code normalizer
func NewCodeNormalizer() *CodeNormalizer {
	return &CodeNormalizer{}
}

// Normalize produces both views of the code
func (n *CodeNormalizer) Normalize(code string, lang domain.Language) NormalizedCode {
	stripped := n.StripComments(code, lang)
	return NormalizedCode{
		Stripped:   stripped,
		Normalized: NormalizeWhitespace(stripped),
	}
}

// StripComments removes line and block comments for the language family
func (n *CodeNormalizer) StripComments(code string, lang domain.Language) string {
	if code == "" {
		return ""
	}
	code = strings.ReplaceAll(code, "\r\n", "\n")

	syntax := commentSyntaxFor(lang)
	if syntax.docstrings {
		return removePythonComments(code)
	}
	if syntax.rubyBlocks {
		code = removeRubyBlockComments(code)
	}
	return trimLineEnds(scanComments(code, syntax))
}

// NormalizeWhitespace collapses whitespace runs to single spaces and trims
func NormalizeWhitespace(content string) string {
	content = whitespaceRegex.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

const (
	scanCode = iota
	scanString
	scanLineComment
	scanBlockComment
)

// scanComments is a byte scanner that drops comments and keeps string literals intact.
// Newlines inside block comments are kept so line numbers survive.
func scanComments(code string, syntax commentSyntax) string {
	var b strings.Builder
	b.Grow(len(code))

	state := scanCode
	var quote byte
	for i := 0; i < len(code); i++ {
		c := code[i]
		var next byte
		if i+1 < len(code) {
			next = code[i+1]
		}

		switch state {
		case scanCode:
			switch {
			case syntax.slash && c == '/' && next == '/':
				state = scanLineComment
				i++
			case syntax.slash && c == '/' && next == '*':
				state = scanBlockComment
				i++
			case syntax.hash && c == '#' && (!syntax.hashNeedsSpace || isHashCommentStart(next)):
				state = scanLineComment
			case c == '"' || c == '\'' || (syntax.backtick && c == '`'):
				state = scanString
				quote = c
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		case scanString:
			b.WriteByte(c)
			switch {
			case c == '\\' && quote != '`' && next != 0 && next != '\n':
				b.WriteByte(next)
				i++
			case c == quote:
				state = scanCode
			case c == '\n' && quote != '`':
				state = scanCode
			}
		case scanLineComment:
			if c == '\n' {
				state = scanCode
				b.WriteByte('\n')
			}
		case scanBlockComment:
			if c == '*' && next == '/' {
				state = scanCode
				b.WriteByte(' ')
				i++
			} else if c == '\n' {
				b.WriteByte('\n')
			}
		}
	}

	return b.String()
}

func isHashCommentStart(next byte) bool {
	return next == 0 || next == ' ' || next == '\t' || next == '#' || next == '\n'
}

// removePythonComments removes # comments and standalone docstrings
func removePythonComments(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	inMultilineString := false
	stringDelimiter := ""

	for _, line := range lines {
		processedLine := processPythonLine(line, &inMultilineString, &stringDelimiter)
		if processedLine != "" || !inMultilineString {
			result = append(result, processedLine)
		}
	}

	return strings.Join(result, "\n")
}

// processPythonLine processes a single line, removing comments and docstrings
func processPythonLine(line string, inMultilineString *bool, stringDelimiter *string) string {
	if *inMultilineString {
		if idx := strings.Index(line, *stringDelimiter); idx >= 0 {
			*inMultilineString = false
			return removeHashComment(line[idx+len(*stringDelimiter):])
		}
		return ""
	}

	for _, delim := range []string{`"""`, `'''`} {
		idx := strings.Index(line, delim)
		if idx < 0 {
			continue
		}
		// Only a docstring when nothing but indentation precedes it
		if strings.TrimLeftFunc(line[:idx], unicode.IsSpace) != "" {
			continue
		}
		rest := line[idx+3:]
		if endIdx := strings.Index(rest, delim); endIdx >= 0 {
			return strings.TrimRightFunc(line[:idx]+removeHashComment(rest[endIdx+3:]), unicode.IsSpace)
		}
		*inMultilineString = true
		*stringDelimiter = delim
		return strings.TrimRightFunc(line[:idx], unicode.IsSpace)
	}

	return removeHashComment(line)
}

// removeHashComment removes a # comment from a line, respecting strings
func removeHashComment(line string) string {
	inString := false
	stringChar := rune(0)
	escaped := false

	for i, ch := range line {
		if escaped {
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if !inString {
			if ch == '"' || ch == '\'' {
				inString = true
				stringChar = ch
			} else if ch == '#' {
				return strings.TrimRightFunc(line[:i], unicode.IsSpace)
			}
		} else if ch == stringChar {
			inString = false
		}
	}

	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// removeRubyBlockComments blanks =begin/=end blocks while keeping line count
func removeRubyBlockComments(content string) string {
	lines := strings.Split(content, "\n")
	inBlock := false
	for i, line := range lines {
		switch {
		case !inBlock && strings.HasPrefix(line, "=begin"):
			inBlock = true
			lines[i] = ""
		case inBlock:
			if strings.HasPrefix(line, "=end") {
				inBlock = false
			}
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func trimLineEnds(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}
