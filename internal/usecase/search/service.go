package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mevaro/searchd/internal/domain"
	"github.com/mevaro/searchd/internal/domain/search/order"
	"github.com/mevaro/searchd/internal/domain/search/query"
	"github.com/mevaro/searchd/internal/domain/search/result"
	"github.com/mevaro/searchd/internal/metrics"
)

// SimilarityFloor is the default minimum cosine similarity a semantic
// hit must reach to count as relevant.
const SimilarityFloor = 0.3

// Fallback reasons recorded in metrics and logs.
const (
	reasonEmbeddingFailed   = "embedding_failed"
	reasonVectorQueryFailed = "vector_query_failed"
	reasonNoHits            = "no_hits"
)

// Service handles material search: semantic first, lexical as the
// degraded path.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
	floor  float64
}

// Option configures a Service.
type Option func(*Service)

// WithSimilarityFloor overrides the default similarity threshold.
func WithSimilarityFloor(floor float64) Option {
	return func(s *Service) { s.floor = floor }
}

// New creates a search service.
func New(repo Repository, embed Embedder, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, embed: embed, logger: logger, floor: SimilarityFloor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs a material search. Queries with text go through the
// semantic path and silently degrade to lexical when embedding or the
// vector query fails, or when nothing clears the similarity floor.
// Blank queries and offset pages skip the semantic path entirely:
// semantic results always start at rank 1, so paginating them would
// re-run the same top-K and slice it differently on every page.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Result, error) {
	if q.IsTextBlank() || q.Offset() > 0 {
		return s.lexical(ctx, q)
	}

	hits, err := s.semantic(ctx, q)
	if err != nil {
		// Cancellation is the caller giving up, not the backend degrading.
		if ctx.Err() != nil {
			return result.Result{}, err
		}
		reason := fallbackReason(err)
		if reason == "" {
			return result.Result{}, err
		}
		s.fallback(q, reason, err)
		return s.lexical(ctx, q)
	}

	if len(hits) == 0 {
		s.fallback(q, reasonNoHits, nil)
		return s.lexical(ctx, q)
	}

	sortHits(hits, q.Sort())
	metrics.SearchRequestsTotal.WithLabelValues(string(result.Semantic)).Inc()
	return result.New(hits, len(hits), result.Semantic), nil
}

// semantic embeds the query text and runs KNN over approved materials.
func (s *Service) semantic(ctx context.Context, q *query.Query) ([]result.Hit, error) {
	start := time.Now()

	embResult, err := s.embed.Embed(ctx, q.Text())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	hits, err := s.repo.KNN(ctx, embResult.Embedding, q.Categories(), q.Limit(), s.floor)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	metrics.SearchRequestDuration.
		WithLabelValues(string(result.Semantic)).
		Observe(time.Since(start).Seconds())
	return hits, nil
}

// lexical runs the substring search. This is the only path whose errors
// reach the caller.
func (s *Service) lexical(ctx context.Context, q *query.Query) (result.Result, error) {
	start := time.Now()

	hits, total, err := s.repo.Lexical(ctx, q)
	if err != nil {
		return result.Result{}, fmt.Errorf("search lexical: %w", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(result.Lexical)).Inc()
	metrics.SearchRequestDuration.
		WithLabelValues(string(result.Lexical)).
		Observe(time.Since(start).Seconds())
	return result.New(hits, total, result.Lexical), nil
}

func (s *Service) fallback(q *query.Query, reason string, err error) {
	fields := []zap.Field{
		zap.String("reason", reason),
		zap.Int("query_len", len(q.Text())),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	s.logger.Warn("Semantic search degraded to lexical", fields...)
	metrics.SearchFallbackTotal.WithLabelValues(reason).Inc()
}

// fallbackReason classifies recoverable semantic-path failures. An
// empty string means the error must propagate.
func fallbackReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return reasonEmbeddingFailed
	case errors.Is(err, domain.ErrVectorQueryFailed):
		return reasonVectorQueryFailed
	default:
		return ""
	}
}

// sortHits reorders semantic hits in memory. KNN returns them by
// similarity; every other mode re-sorts with recency as the tie-break
// so pages stay stable.
func sortHits(hits []result.Hit, mode order.Mode) {
	if mode == order.Relevance {
		return
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i].Material(), hits[j].Material()
		switch mode {
		case order.Popular:
			if a.DownloadCount() != b.DownloadCount() {
				return a.DownloadCount() > b.DownloadCount()
			}
		case order.Views:
			if a.ViewCount() != b.ViewCount() {
				return a.ViewCount() > b.ViewCount()
			}
		}
		return a.CreatedAt().After(b.CreatedAt())
	})
}
