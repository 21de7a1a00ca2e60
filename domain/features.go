package domain

import "sort"

// ExtractionPath records which branch of feature extraction produced a feature set
type ExtractionPath string

const (
	// ExtractionStructured means a grammar-aware parse succeeded
	ExtractionStructured ExtractionPath = "structured"
	// ExtractionHeuristic means the regex scan produced the features
	ExtractionHeuristic ExtractionPath = "heuristic"
)

// ControlFlowCounts counts branching, looping and exception-handling constructs
type ControlFlowCounts struct {
	If   int `json:"if_count" yaml:"if_count"`
	Loop int `json:"loop_count" yaml:"loop_count"`
	Try  int `json:"try_count" yaml:"try_count"`
}

// Map returns the counts keyed by counter name
func (c ControlFlowCounts) Map() map[string]int {
	return map[string]int{
		"if_count":   c.If,
		"loop_count": c.Loop,
		"try_count":  c.Try,
	}
}

// Total returns the sum of all counters
func (c ControlFlowCounts) Total() int {
	return c.If + c.Loop + c.Try
}

// StructuralFeatureSet is the extracted shape of a submission.
// Name lists are sorted and free of duplicates.
type StructuralFeatureSet struct {
	Functions   []string          `json:"functions" yaml:"functions"`
	Variables   []string          `json:"variables" yaml:"variables"`
	Classes     []string          `json:"classes" yaml:"classes"`
	Imports     []string          `json:"imports" yaml:"imports"`
	ControlFlow ControlFlowCounts `json:"control_flow_counts" yaml:"control_flow_counts"`
}

// FeatureExtraction wraps a feature set with how it was produced
type FeatureExtraction struct {
	Language    Language             `json:"language" yaml:"language"`
	Path        ExtractionPath       `json:"path" yaml:"path"`
	Features    StructuralFeatureSet `json:"features" yaml:"features"`
	Diagnostics []string             `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NameSet collects identifiers without duplicates
type NameSet map[string]struct{}

// Add inserts names, ignoring empty strings
func (s NameSet) Add(names ...string) {
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
}

// Sorted returns the names in ascending order
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
