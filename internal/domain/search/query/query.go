// Package query defines the validated search request value object.
package query

import (
	"fmt"
	"strings"

	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/search/order"
)

// Search parameter limits.
const (
	MaxTextLength = 256
	DefaultLimit  = 50
	MaxLimit      = 100
)

// Query is a validated, ephemeral search request. Not persisted.
type Query struct {
	text       string
	categories []category.Category
	sortMode   order.Mode
	limit      int
	offset     int
}

// New validates and normalizes search parameters.
// Defaults: sort=recent, limit=50 (clamped to 100), offset=0.
func New(
	text string,
	categories []category.Category,
	sortMode order.Mode,
	limit, offset int,
) (Query, error) {
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("search text too long (max %d chars)", MaxTextLength)
	}
	for _, c := range categories {
		if !c.IsValid() {
			return Query{}, fmt.Errorf("invalid category %q", c)
		}
	}
	if !sortMode.IsValid() {
		sortMode = order.Recent
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return Query{
		text:       text,
		categories: categories,
		sortMode:   sortMode,
		limit:      limit,
		offset:     offset,
	}, nil
}

// Text returns the free-text search string.
func (q *Query) Text() string { return q.text }

// Categories returns the category filter (empty = no filter).
func (q *Query) Categories() []category.Category { return q.categories }

// Sort returns the requested result ordering.
func (q *Query) Sort() order.Mode { return q.sortMode }

// Limit returns the page size.
func (q *Query) Limit() int { return q.limit }

// Offset returns the page offset.
func (q *Query) Offset() int { return q.offset }

// IsTextBlank reports whether the search text is empty or whitespace-only.
// A blank query carries no discriminative signal for an embedding, so the
// orchestrator skips the semantic path entirely.
func (q *Query) IsTextBlank() bool {
	return strings.TrimSpace(q.text) == ""
}
