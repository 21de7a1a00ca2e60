package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/plagscan/domain"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		filename string
		expected domain.Language
	}{
		{
			name:     "extension wins",
			code:     "def add(a, b): return a + b",
			filename: "solution.js",
			expected: domain.LanguageJavaScript,
		},
		{
			name:     "python content",
			code:     "from math import sqrt\n\ndef dist(p):\n    return sqrt(p.x ** 2)\n",
			expected: domain.LanguagePython,
		},
		{
			name:     "javascript content",
			code:     "function greet(name) {\n  const msg = 'hi ' + name;\n  console.log(msg);\n}\n",
			expected: domain.LanguageJavaScript,
		},
		{
			name:     "java content",
			code:     "public class Main {\n  public static void main(String[] args) {\n    System.out.println(1);\n  }\n}\n",
			expected: domain.LanguageJava,
		},
		{
			name:     "go content",
			code:     "package main\n\nfunc main() {\n\tx := 1\n\tfmt.Println(x)\n}\n",
			expected: domain.LanguageGo,
		},
		{
			name:     "php content",
			code:     "<?php\n$total = 0;\necho $total;\n",
			expected: domain.LanguagePHP,
		},
		{
			name:     "unknown extension falls back to content",
			code:     "def add(a, b):\n    return a + b\n",
			filename: "notes.txt",
			expected: domain.LanguagePython,
		},
		{
			name:     "nothing recognizable",
			code:     "lorem ipsum dolor",
			expected: domain.LanguageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.code, tt.filename))
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	code := "def add(a, b):\n    return a + b\n"

	assert.Equal(t, domain.LanguageRust, ResolveLanguage(domain.LanguageRust, code, ""))
	assert.Equal(t, domain.LanguagePython, ResolveLanguage(domain.LanguageAuto, code, ""))
	assert.Equal(t, domain.LanguageUnknown, ResolveLanguage(domain.LanguageUnknown, code, ""))
}
