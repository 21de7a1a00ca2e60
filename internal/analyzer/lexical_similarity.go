package analyzer

import (
	"math/bits"
)

// LexicalScore holds the two lexical sub-measures
type LexicalScore struct {
	TokenSet      float64
	TokenSequence float64
}

// LexicalSimilarityAnalyzer compares token streams of normalized code
type LexicalSimilarityAnalyzer struct{}

// NewLexicalSimilarityAnalyzer creates a new lexical similarity analyzer
func NewLexicalSimilarityAnalyzer() *LexicalSimilarityAnalyzer {
	return &LexicalSimilarityAnalyzer{}
}

// ComputeSimilarity tokenizes both normalized texts and returns both sub-measures
func (l *LexicalSimilarityAnalyzer) ComputeSimilarity(normalized1, normalized2 string) LexicalScore {
	tokens1 := Tokenize(normalized1)
	tokens2 := Tokenize(normalized2)
	return LexicalScore{
		TokenSet:      l.TokenSetSimilarity(tokens1, tokens2),
		TokenSequence: l.TokenSequenceSimilarity(tokens1, tokens2),
	}
}

// TokenSetSimilarity is the Jaccard similarity of the distinct tokens
func (l *LexicalSimilarityAnalyzer) TokenSetSimilarity(tokens1, tokens2 []string) float64 {
	return jaccard(TokenSet(tokens1), TokenSet(tokens2))
}

// TokenSequenceSimilarity is 2*LCS/(|a|+|b|) over the ordered token streams
func (l *LexicalSimilarityAnalyzer) TokenSequenceSimilarity(tokens1, tokens2 []string) float64 {
	if len(tokens1) == 0 && len(tokens2) == 0 {
		return 1.0
	}
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	lcs := longestCommonSubsequence(tokens1, tokens2)
	return 2.0 * float64(lcs) / float64(len(tokens1)+len(tokens2))
}

// GetName returns the name of this analyzer
func (l *LexicalSimilarityAnalyzer) GetName() string {
	return "lexical"
}

// jaccard computes |A∩B| / |A∪B| with both-empty = 1 and one-empty = 0
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// longestCommonSubsequence returns the LCS length of two token sequences.
// Common prefix and suffix are stripped first; the remainder uses the
// bit-parallel algorithm of Allison and Dix, O(n*m/64) time.
func longestCommonSubsequence(a, b []string) int {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	a, b = a[prefix:], b[prefix:]

	suffix := 0
	for suffix < len(a) && suffix < len(b) && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	a, b = a[:len(a)-suffix], b[:len(b)-suffix]

	if len(a) == 0 || len(b) == 0 {
		return prefix + suffix
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	m := len(a)
	words := (m + 63) / 64

	// match[t] has bit i set when a[i] == t
	match := make(map[string][]uint64)
	for i, tok := range a {
		v, ok := match[tok]
		if !ok {
			v = make([]uint64, words)
			match[tok] = v
		}
		v[i/64] |= 1 << (uint(i) % 64)
	}

	s := make([]uint64, words)
	for i := range s {
		s[i] = ^uint64(0)
	}

	for _, tok := range b {
		mv, ok := match[tok]
		if !ok {
			continue
		}
		// s = (s + u) | (s &^ u) where u = s & mv
		var carry uint64
		for w := 0; w < words; w++ {
			u := s[w] & mv[w]
			sum, c := bits.Add64(s[w], u, carry)
			carry = c
			s[w] = sum | (s[w] &^ u)
		}
	}

	zeros := 0
	for w := 0; w < words; w++ {
		valid := 64
		if w == words-1 && m%64 != 0 {
			valid = m % 64
		}
		word := s[w]
		if valid < 64 {
			word |= ^uint64(0) << uint(valid)
		}
		zeros += bits.OnesCount64(^word)
	}

	return prefix + suffix + zeros
}
