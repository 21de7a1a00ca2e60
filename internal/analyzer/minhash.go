package analyzer

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
)

// MinHashSignature holds the signature vector
type MinHashSignature struct {
	signatures []uint64
}

// Values returns the raw signature values
func (s *MinHashSignature) Values() []uint64 {
	return s.signatures
}

// Len returns the number of hash values in the signature
func (s *MinHashSignature) Len() int {
	return len(s.signatures)
}

// MinHasher computes MinHash signatures for token shingle sets
type MinHasher struct {
	numHashes int
	a         []uint64
	b         []uint64
}

// NewMinHasher creates a MinHasher with numHashes functions (default 128 if invalid)
func NewMinHasher(numHashes int) *MinHasher {
	if numHashes <= 0 {
		numHashes = 128
	}
	// Deterministic seed so signatures are stable across runs
	rng := rand.New(rand.NewSource(0x5eed_1234_cafe_babe))
	m := &MinHasher{
		numHashes: numHashes,
		a:         make([]uint64, numHashes),
		b:         make([]uint64, numHashes),
	}
	for i := 0; i < numHashes; i++ {
		m.a[i] = rng.Uint64() | 1
		m.b[i] = rng.Uint64()
	}
	return m
}

// ComputeSignature computes the MinHash signature for a set of features.
// An empty set gives an all-zero signature.
func (m *MinHasher) ComputeSignature(features []string) *MinHashSignature {
	sig := make([]uint64, m.numHashes)
	if len(features) == 0 {
		return &MinHashSignature{signatures: sig}
	}

	seen := make(map[string]struct{}, len(features))
	base := make([]uint64, 0, len(features))
	for _, f := range features {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		base = append(base, hash64(f))
	}

	for i := 0; i < m.numHashes; i++ {
		ai, bi := m.a[i], m.b[i]
		minv := uint64(math.MaxUint64)
		for _, x := range base {
			if v := (ai * x) ^ bi + ai + bi; v < minv {
				minv = v
			}
		}
		sig[i] = minv
	}
	return &MinHashSignature{signatures: sig}
}

// EstimateJaccardSimilarity estimates Jaccard similarity via signature agreement ratio
func (m *MinHasher) EstimateJaccardSimilarity(sig1, sig2 *MinHashSignature) float64 {
	if sig1 == nil || sig2 == nil {
		return 0.0
	}
	n := min(len(sig1.signatures), len(sig2.signatures))
	if n == 0 {
		return 0.0
	}
	match := 0
	for i := 0; i < n; i++ {
		if sig1.signatures[i] == sig2.signatures[i] {
			match++
		}
	}
	return float64(match) / float64(n)
}

// NumHashes returns the signature length
func (m *MinHasher) NumHashes() int { return m.numHashes }

// Shingles returns the k-token windows of a token stream.
// Streams shorter than k yield a single shingle holding all tokens.
func Shingles(tokens []string, k int) []string {
	if len(tokens) == 0 {
		return nil
	}
	if k <= 0 || len(tokens) <= k {
		return []string{strings.Join(tokens, " ")}
	}
	out := make([]string, 0, len(tokens)-k+1)
	for i := 0; i+k <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+k], " "))
	}
	return out
}

func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
