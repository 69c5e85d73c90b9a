package backfill

import (
	"context"

	"github.com/mevaro/searchd/internal/domain"
	dommat "github.com/mevaro/searchd/internal/domain/material"
)

// Repository defines the storage contract for the embedding backfill.
type Repository interface {
	ListMissingEmbeddings(ctx context.Context) ([]dommat.Material, error)
	SetEmbedding(ctx context.Context, id string, vector []float32) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
