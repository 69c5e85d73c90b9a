package search

import (
	"context"

	"github.com/mevaro/searchd/internal/domain"
	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/search/query"
	"github.com/mevaro/searchd/internal/domain/search/result"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Lexical(ctx context.Context, q *query.Query) ([]result.Hit, int, error)

	KNN(
		ctx context.Context, vector []float32, categories []category.Category,
		limit int, minScore float64,
	) ([]result.Hit, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
