// Package index provides an exact, in-memory nearest-neighbour index.
package index

import (
	"fmt"
	"sort"
	"sync"

	"github.com/viterin/vek/vek32"

	"github.com/aifirst/llmdemos/pkg/models"
)

// Hit is a search result: the insertion id of a vector and its squared
// Euclidean distance to the query.
type Hit struct {
	ID       int
	Distance float32
}

// FlatIndex is a brute-force index under squared Euclidean distance. Ids are
// assigned in insertion order starting at 0, so a corpus embedded in order
// maps ids straight back to document ids.
type FlatIndex struct {
	mu      sync.RWMutex
	dim     int
	vectors []models.Embedding
}

// NewFlatIndex creates an index for vectors of the given dimension. A
// dimension of 0 is fixed by the first vector added.
func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

func (f *FlatIndex) Dim() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dim
}

func (f *FlatIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

// Add appends vectors to the index. Either all vectors are added or none.
func (f *FlatIndex) Add(vectors ...models.Embedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dim := f.dim
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("vector %d is empty", i)
		}
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d, index dimension is %d", i, len(v), dim)
		}
	}

	f.dim = dim
	for _, v := range vectors {
		stored := make(models.Embedding, len(v))
		copy(stored, v)
		f.vectors = append(f.vectors, stored)
	}
	return nil
}

// Search returns the k nearest vectors to query in ascending distance order.
// Equal distances keep insertion order. Fewer than k hits are returned when
// the index holds fewer vectors.
func (f *FlatIndex) Search(query models.Embedding, k int) ([]Hit, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if k <= 0 || len(f.vectors) == 0 {
		return []Hit{}, nil
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("query has dimension %d, index dimension is %d", len(query), f.dim)
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{ID: i, Distance: SquaredL2(query, v)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// SquaredL2 is the squared Euclidean distance between two vectors of equal
// length.
func SquaredL2(a, b []float32) float32 {
	diff := vek32.Sub(a, b)
	return vek32.Dot(diff, diff)
}
