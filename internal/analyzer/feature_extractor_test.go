package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/plagscan/domain"
)

const pythonSample = `import os
from collections import Counter

class Stack:
    def push(self, item):
        self.items.append(item)

def count_words(text):
    counts = Counter()
    for word in text.split():
        if word:
            counts[word] += 1
    try:
        total = len(counts)
    except ValueError:
        total = 0
    return counts
`

func TestFeatureExtractor_PythonStructured(t *testing.T) {
	e := NewFeatureExtractor()

	result := e.Extract(context.Background(), pythonSample, domain.LanguagePython)
	require.NotNil(t, result)

	assert.Equal(t, domain.ExtractionStructured, result.Path)
	assert.Empty(t, result.Diagnostics)

	f := result.Features
	assert.Equal(t, []string{"count_words", "push"}, f.Functions)
	assert.Equal(t, []string{"Stack"}, f.Classes)
	assert.Equal(t, []string{"collections", "os"}, f.Imports)
	assert.Equal(t, []string{"counts", "total"}, f.Variables)
	assert.Equal(t, domain.ControlFlowCounts{If: 1, Loop: 1, Try: 2}, f.ControlFlow)
}

func TestFeatureExtractor_PathsAgreeOnPython(t *testing.T) {
	e := NewFeatureExtractor()

	structured := e.Extract(context.Background(), pythonSample, domain.LanguagePython)
	heuristic := extractHeuristic(pythonSample, domain.LanguagePython)

	assert.Equal(t, structured.Features.Functions, heuristic.Functions)
	assert.Equal(t, structured.Features.Classes, heuristic.Classes)
	assert.Equal(t, structured.Features.Imports, heuristic.Imports)
	assert.Equal(t, structured.Features.ControlFlow, heuristic.ControlFlow)
}

func TestFeatureExtractor_SyntaxErrorFallsBack(t *testing.T) {
	e := NewFeatureExtractor()

	code := "def broken(:\n    x = 1\n    if x:\n        pass\n"
	result := e.Extract(context.Background(), code, domain.LanguagePython)

	assert.Equal(t, domain.ExtractionHeuristic, result.Path)
	assert.Equal(t, []string{"syntax errors in source"}, result.Diagnostics)
	assert.Equal(t, []string{"broken"}, result.Features.Functions)
	assert.Contains(t, result.Features.Variables, "x")
	assert.Equal(t, 1, result.Features.ControlFlow.If)
}

func TestFeatureExtractor_NoGrammarFallsBack(t *testing.T) {
	e := NewFeatureExtractor()

	code := "import Foundation\nfunc greet(name: String) -> String {\n    let msg = \"Hi \" + name\n    return msg\n}\n"
	result := e.Extract(context.Background(), code, domain.LanguageSwift)

	assert.Equal(t, domain.ExtractionHeuristic, result.Path)
	assert.Equal(t, []string{"no grammar for language"}, result.Diagnostics)
	assert.Equal(t, []string{"greet"}, result.Features.Functions)
	assert.Equal(t, []string{"Foundation"}, result.Features.Imports)
	assert.Equal(t, []string{"msg"}, result.Features.Variables)
}

func TestFeatureExtractor_JavaScript(t *testing.T) {
	e := NewFeatureExtractor()

	code := `import fs from 'fs';
const add = (a, b) => a + b;
function main() {
  let total = 0;
  for (let i = 0; i < 3; i++) {
    total = add(total, i);
  }
}
`
	result := e.Extract(context.Background(), code, domain.LanguageJavaScript)

	assert.Equal(t, domain.ExtractionStructured, result.Path)
	assert.Equal(t, []string{"add", "main"}, result.Features.Functions)
	assert.Equal(t, []string{"fs"}, result.Features.Imports)
	assert.Subset(t, result.Features.Variables, []string{"total", "i"})
	assert.Equal(t, 1, result.Features.ControlFlow.Loop)
}

func TestFeatureExtractor_GoImports(t *testing.T) {
	e := NewFeatureExtractor()

	code := `package main

import (
	"fmt"
	"strings"
)

func main() {
	words := strings.Fields("a b")
	for _, w := range words {
		if w != "" {
			fmt.Println(w)
		}
	}
}
`
	result := e.Extract(context.Background(), code, domain.LanguageGo)

	assert.Equal(t, domain.ExtractionStructured, result.Path)
	assert.Equal(t, []string{"main"}, result.Features.Functions)
	assert.Equal(t, []string{"fmt", "strings"}, result.Features.Imports)
	assert.Contains(t, result.Features.Variables, "words")
	assert.Equal(t, domain.ControlFlowCounts{If: 1, Loop: 1}, result.Features.ControlFlow)
}

func TestFeatureExtractor_NeverFails(t *testing.T) {
	e := NewFeatureExtractor()

	inputs := []struct {
		code string
		lang domain.Language
	}{
		{"@@@ ### !!!", domain.LanguageUnknown},
		{"}}}{{{", domain.LanguageJava},
		{"", domain.LanguageC},
		{"if if if", domain.LanguageRust},
	}

	for _, in := range inputs {
		result := e.Extract(context.Background(), in.code, in.lang)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.Path)
	}
}

func TestExtractHeuristic_IgnoresKeywordsInStrings(t *testing.T) {
	features := extractHeuristic(`msg = "if you try for a while"`, domain.LanguagePython)

	assert.Equal(t, domain.ControlFlowCounts{}, features.ControlFlow)
	assert.Equal(t, []string{"msg"}, features.Variables)
}
