package analyzer

import (
	"regexp"
	"strings"
)

// tokenRegex matches, in order of preference: string literals, identifiers and
// keywords, numbers, and any single non-space punctuation or operator rune.
var tokenRegex = regexp.MustCompile(
	`"(?:[^"\\\n]|\\.)*"` +
		`|'(?:[^'\\\n]|\\.)*'` +
		"|`[^`]*`" +
		`|[\p{L}_][\p{L}\p{N}_]*` +
		`|\p{N}+(?:\.\p{N}+)?` +
		`|[^\s\p{L}\p{N}_]`)

// StringPlaceholder replaces every string literal in the token stream
const StringPlaceholder = "str"

// stopTokens are English filler words dropped from the token stream.
// Short words common as identifiers (a, to, on, by) are kept.
var stopTokens = map[string]bool{
	"the": true,
	"an":  true,
	"of":  true,
	"but": true,
}

// Tokenize splits normalized code into lower-cased tokens.
// Identifiers, keywords, numbers and each punctuation rune become tokens;
// string literals collapse to StringPlaceholder.
func Tokenize(normalized string) []string {
	raw := tokenRegex.FindAllString(normalized, -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if isStringLiteral(tok) {
			tokens = append(tokens, StringPlaceholder)
			continue
		}
		tok = strings.ToLower(tok)
		if stopTokens[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isStringLiteral(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	first, last := tok[0], tok[len(tok)-1]
	return (first == '"' || first == '\'' || first == '`') && first == last
}

// TokenSet returns the distinct tokens
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
