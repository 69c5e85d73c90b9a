// Package result defines search output shapes.
package result

import "github.com/mevaro/searchd/internal/domain/material"

// Source tags which retrieval path produced a result set. Informational
// only; it never changes the item shape seen by clients.
type Source string

// Retrieval path tags.
const (
	Semantic Source = "semantic"
	Lexical  Source = "lexical"
)

// Hit is a single search hit: a material plus its relevance score.
// Lexical hits carry a zero score.
type Hit struct {
	mat   material.Material
	score float64
}

// NewHit creates a search hit.
func NewHit(mat material.Material, score float64) Hit {
	return Hit{mat: mat, score: score}
}

// Material returns the matched material.
func (h *Hit) Material() *material.Material { return &h.mat }

// Score returns the similarity score (0 for lexical hits).
func (h *Hit) Score() float64 { return h.score }

// Result is an ordered result set with the pre-pagination total.
type Result struct {
	hits   []Hit
	total  int
	source Source
}

// New creates a result set.
func New(hits []Hit, total int, source Source) Result {
	return Result{hits: hits, total: total, source: source}
}

// Hits returns the ordered hits of the current page.
func (r *Result) Hits() []Hit { return r.hits }

// Total returns the count of all matching materials before pagination.
func (r *Result) Total() int { return r.total }

// Source returns the retrieval path tag.
func (r *Result) Source() Source { return r.source }
