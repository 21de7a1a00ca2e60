package analyzer

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"sync"
)

// shingleSize is the token window used to build MinHash feature sets
const shingleSize = 3

// LSHIndex implements Locality Sensitive Hashing with the banding technique.
// It narrows a corpus search to entries that share at least one band with the query.
type LSHIndex struct {
	bands      int
	rows       int
	hasher     *MinHasher
	buckets    map[bandKey][]int64
	signatures map[int64]*MinHashSignature
	mutex      sync.RWMutex
}

type bandKey struct {
	band int
	hash uint64
}

// LSHConfig holds configuration parameters for LSH
type LSHConfig struct {
	Bands int // Number of bands (default: 32)
	Rows  int // Rows per band (default: 4)

	// Hashes is the signature length; it is raised to Bands*Rows when smaller
	Hashes int
}

// NewLSHIndex creates a new LSH index with the given configuration
func NewLSHIndex(config LSHConfig) *LSHIndex {
	if config.Bands <= 0 {
		config.Bands = 32
	}
	if config.Rows <= 0 {
		config.Rows = 4
	}
	config.Hashes = max(config.Hashes, config.Bands*config.Rows)
	return &LSHIndex{
		bands:      config.Bands,
		rows:       config.Rows,
		hasher:     NewMinHasher(config.Hashes),
		buckets:    make(map[bandKey][]int64),
		signatures: make(map[int64]*MinHashSignature),
	}
}

// Signature computes the MinHash signature of normalized code
func (idx *LSHIndex) Signature(normalized string) *MinHashSignature {
	return idx.hasher.ComputeSignature(Shingles(Tokenize(normalized), shingleSize))
}

// Add indexes a corpus entry by its normalized content
func (idx *LSHIndex) Add(id int64, normalized string) error {
	return idx.AddSignature(id, idx.Signature(normalized))
}

// AddSignature indexes a precomputed signature
func (idx *LSHIndex) AddSignature(id int64, signature *MinHashSignature) error {
	if signature == nil {
		return fmt.Errorf("signature cannot be nil")
	}
	if signature.Len() < idx.bands*idx.rows {
		return fmt.Errorf("signature has %d hashes, but need at least %d (bands=%d, rows=%d)",
			signature.Len(), idx.bands*idx.rows, idx.bands, idx.rows)
	}

	idx.mutex.Lock()
	defer idx.mutex.Unlock()

	if _, exists := idx.signatures[id]; exists {
		return nil
	}
	idx.signatures[id] = signature
	for band := 0; band < idx.bands; band++ {
		key := bandKey{band: band, hash: idx.bandHash(signature.signatures, band)}
		idx.buckets[key] = append(idx.buckets[key], id)
	}
	return nil
}

// Candidates returns the IDs sharing at least one band with the query, in ascending order
func (idx *LSHIndex) Candidates(normalized string) []int64 {
	return idx.CandidatesForSignature(idx.Signature(normalized))
}

// CandidatesForSignature returns candidate IDs for a precomputed signature
func (idx *LSHIndex) CandidatesForSignature(query *MinHashSignature) []int64 {
	if query == nil || query.Len() < idx.bands*idx.rows {
		return nil
	}

	idx.mutex.RLock()
	defer idx.mutex.RUnlock()

	seen := make(map[int64]struct{})
	for band := 0; band < idx.bands; band++ {
		key := bandKey{band: band, hash: idx.bandHash(query.signatures, band)}
		for _, id := range idx.buckets[key] {
			seen[id] = struct{}{}
		}
	}

	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Contains reports whether an ID has been indexed
func (idx *LSHIndex) Contains(id int64) bool {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	_, ok := idx.signatures[id]
	return ok
}

// Size returns the number of indexed entries
func (idx *LSHIndex) Size() int {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	return len(idx.signatures)
}

// Threshold is the similarity at which a pair becomes a candidate with probability 1/2
func (idx *LSHIndex) Threshold() float64 {
	return math.Pow(1.0/float64(idx.bands), 1.0/float64(idx.rows))
}

// EstimateFalseNegativeRate estimates the chance that a pair with the given Jaccard similarity is missed
func (idx *LSHIndex) EstimateFalseNegativeRate(trueSimilarity float64) float64 {
	if trueSimilarity <= 0 {
		return 1.0
	}
	if trueSimilarity >= 1 {
		return 0.0
	}
	// P(miss) = (1 - s^r)^b
	probBandMatches := math.Pow(trueSimilarity, float64(idx.rows))
	return math.Pow(1.0-probBandMatches, float64(idx.bands))
}

// bandHash hashes the rows of one band
func (idx *LSHIndex) bandHash(signatures []uint64, band int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	start := band * idx.rows
	for i := start; i < start+idx.rows && i < len(signatures); i++ {
		binary.LittleEndian.PutUint64(buf[:], signatures[i])
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
