package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/plagscan/domain"
)

func TestCodeNormalizer_StripComments(t *testing.T) {
	n := NewCodeNormalizer()

	tests := []struct {
		name     string
		lang     domain.Language
		code     string
		expected string
	}{
		{
			name:     "python hash comment",
			lang:     domain.LanguagePython,
			code:     "x = 1  # set x\ny = 2",
			expected: "x = 1\ny = 2",
		},
		{
			name:     "python hash inside string kept",
			lang:     domain.LanguagePython,
			code:     `s = "a # b"`,
			expected: `s = "a # b"`,
		},
		{
			name:     "python docstring removed",
			lang:     domain.LanguagePython,
			code:     "def f():\n    \"\"\"Doc.\"\"\"\n    return 1",
			expected: "def f():\n\n    return 1",
		},
		{
			name:     "javascript line and block comments",
			lang:     domain.LanguageJavaScript,
			code:     "/* header */let a = 1; // trailing\nlet b = 2;",
			expected: " let a = 1;\nlet b = 2;",
		},
		{
			name:     "slash inside string kept",
			lang:     domain.LanguageJavaScript,
			code:     `const url = "http://example.com";`,
			expected: `const url = "http://example.com";`,
		},
		{
			name:     "block comment keeps line count",
			lang:     domain.LanguageC,
			code:     "int a;\n/* one\ntwo */\nint b;",
			expected: "int a;\n\n\nint b;",
		},
		{
			name:     "ruby block comment",
			lang:     domain.LanguageRuby,
			code:     "=begin\nnotes\n=end\nputs 1 # done",
			expected: "\n\n\nputs 1",
		},
		{
			name:     "crlf line endings",
			lang:     domain.LanguageGo,
			code:     "a := 1 // x\r\nb := 2",
			expected: "a := 1\nb := 2",
		},
		{
			name:     "empty",
			lang:     domain.LanguagePython,
			code:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.StripComments(tt.code, tt.lang))
		})
	}
}

func TestCodeNormalizer_Normalize(t *testing.T) {
	n := NewCodeNormalizer()

	code := "def add(a, b):\n    # sum\n    return a + b\n"
	result := n.Normalize(code, domain.LanguagePython)

	assert.Equal(t, "def add(a, b):\n\n    return a + b\n", result.Stripped)
	assert.Equal(t, "def add(a, b): return a + b", result.Normalized)
}

func TestCodeNormalizer_ReformattingIsInvisible(t *testing.T) {
	n := NewCodeNormalizer()

	compact := "int main(){return 0;}"
	spaced := "int   main(){\n\treturn 0;   // exit\n}"

	c := n.Normalize(compact, domain.LanguageC).Normalized
	s := n.Normalize(spaced, domain.LanguageC).Normalized

	assert.Equal(t, Tokenize(c), Tokenize(s))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a \t\n b\n\n\nc  "))
	assert.Equal(t, "", NormalizeWhitespace(" \n\t "))
}
