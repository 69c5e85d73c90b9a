package material

import (
	"context"
	"fmt"
	"strings"

	"github.com/mevaro/searchd/internal/db"
	"github.com/mevaro/searchd/internal/domain"
	dommat "github.com/mevaro/searchd/internal/domain/material"
	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/material/status"
	"github.com/mevaro/searchd/internal/domain/search/order"
	"github.com/mevaro/searchd/internal/domain/search/query"
	"github.com/mevaro/searchd/internal/domain/search/result"
)

// knnScoreField is the computed distance field FT.SEARCH returns for
// the "embedding" vector field.
const knnScoreField = "__embedding_score"

// missingPageSize bounds each FT.SEARCH page while scanning for
// materials without an embedding.
const missingPageSize = 100

// Lexical runs a substring search with deterministic sorting and
// offset pagination. Returns the page of hits plus the pre-pagination
// total.
func (r *Repo) Lexical(ctx context.Context, q *query.Query) ([]result.Hit, int, error) {
	ftQuery := buildLexicalQuery(q.Text(), q.Categories())

	total, err := r.store.SearchCount(ctx, r.index, ftQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("count materials: %w: %w", domain.ErrSearchBackend, err)
	}

	entries, err := r.store.SearchSorted(ctx, &db.SortedQuery{
		IndexName: r.index,
		Query:     ftQuery,
		Load:      hydrateFields,
		SortBy:    sortKeys(q.Sort()),
		Offset:    q.Offset(),
		Limit:     q.Limit(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list materials: %w: %w", domain.ErrSearchBackend, err)
	}

	hits := make([]result.Hit, 0, len(entries))
	for _, e := range entries {
		m := fromHashFields("", e.Fields)
		hits = append(hits, result.NewHit(m, 0))
	}

	return hits, total, nil
}

// KNN runs a vector similarity search: the nearest `limit` approved
// candidates are fetched first, and only then are pairs below minScore
// dropped from that fixed-size set. The page can therefore come back
// shorter than `limit` even when more matches exceed the threshold;
// do not reorder the truncation and the floor.
func (r *Repo) KNN(
	ctx context.Context, vector []float32, categories []category.Category,
	limit int, minScore float64,
) ([]result.Hit, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.index,
		Prefilter:    buildPrefilter(categories),
		Vector:       vector,
		K:            limit,
		ScoreField:   knnScoreField,
		ReturnFields: hydrateFields,
	})
	if err != nil {
		return nil, fmt.Errorf("knn materials: %w: %w", domain.ErrVectorQueryFailed, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		similarity := 1 - e.Score // cosine distance -> similarity
		if similarity < minScore {
			continue
		}
		m := fromHashFields(strings.TrimPrefix(e.Key, r.prefix), e.Fields)
		hits = append(hits, result.NewHit(m, similarity))
	}

	return hits, nil
}

// ListMissingEmbeddings returns every approved material without a
// stored vector, for the backfill job.
func (r *Repo) ListMissingEmbeddings(ctx context.Context) ([]dommat.Material, error) {
	ftQuery := fmt.Sprintf("%s %s",
		db.TagFilter(fieldStatus, status.Approved.String()),
		db.MissingClause(fieldEmbedding),
	)

	var out []dommat.Material
	for offset := 0; ; offset += missingPageSize {
		sr, err := r.store.SearchList(ctx, r.index, ftQuery, offset, missingPageSize, hydrateFields)
		if err != nil {
			return nil, fmt.Errorf("list missing embeddings: %w: %w", domain.ErrSearchBackend, err)
		}
		if sr == nil || len(sr.Entries) == 0 {
			return out, nil
		}
		for _, e := range sr.Entries {
			out = append(out, fromHashFields(strings.TrimPrefix(e.Key, r.prefix), e.Fields))
		}
		if offset+missingPageSize >= sr.Total {
			return out, nil
		}
	}
}

// buildPrefilter restricts a search to approved materials, optionally
// within a category set.
func buildPrefilter(categories []category.Category) string {
	parts := []string{db.TagFilter(fieldStatus, status.Approved.String())}
	if len(categories) > 0 {
		values := make([]string, len(categories))
		for i, c := range categories {
			values[i] = c.String()
		}
		parts = append(parts, db.TagFilter(fieldCategory, values...))
	}
	return strings.Join(parts, " ")
}

// buildLexicalQuery matches a material when every word of the text
// appears in the title, the description, or a keyword (case-insensitive
// contains). FT wildcard terms match single index tokens, so the text
// is split on whitespace and each word gets its own contains group.
// Empty text matches everything within the status/category prefilter.
func buildLexicalQuery(text string, categories []category.Category) string {
	parts := []string{buildPrefilter(categories)}

	for _, word := range strings.Fields(text) {
		term := db.ContainsTerm(word)
		parts = append(parts, fmt.Sprintf("(@%s:(%s) | @%s:(%s) | @%s:{%s})",
			fieldTitle, term,
			fieldDescription, term,
			fieldKeywords, term,
		))
	}

	return strings.Join(parts, " ")
}

// sortKeys maps an ordering to FT sort clauses. createdAt descending is
// always the final key so pagination stays deterministic across calls.
func sortKeys(mode order.Mode) []db.SortKey {
	createdDesc := db.SortKey{Field: fieldCreatedAt, Desc: true}
	switch mode {
	case order.Popular:
		return []db.SortKey{{Field: fieldDownloadCount, Desc: true}, createdDesc}
	case order.Views:
		return []db.SortKey{{Field: fieldViewCount, Desc: true}, createdDesc}
	default:
		// Recent and Relevance (meaningless for lexical) both order by recency.
		return []db.SortKey{createdDesc}
	}
}
