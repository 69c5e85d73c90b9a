// Package material implements the material repository over the db store.
package material

import (
	"context"
	"fmt"
	"time"

	"github.com/mevaro/searchd/internal/db"
	"github.com/mevaro/searchd/internal/domain"
	dommat "github.com/mevaro/searchd/internal/domain/material"
)

// Key layout: one hash per material under the key prefix, one FT index
// over all of them.
const (
	defaultKeyPrefix = "mevaro:"

	keySuffix   = "material:"
	indexSuffix = "material:idx"
)

// store is the consumer interface for material storage (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchSorted(ctx context.Context, q *db.SortedQuery) ([]db.SearchEntry, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// HNSWConfig holds vector index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo is the hash-backed material repository.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
	prefix    string
	index     string
}

// New creates a material repository for vectors of the given dimensionality.
func New(s store, vectorDim int) *Repo {
	return &Repo{
		store:     s,
		vectorDim: vectorDim,
		prefix:    defaultKeyPrefix + keySuffix,
		index:     defaultKeyPrefix + indexSuffix,
	}
}

// WithHNSW configures HNSW index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// WithKeyPrefix changes the namespace all keys and the index live under.
func (r *Repo) WithKeyPrefix(base string) *Repo {
	if base != "" {
		r.prefix = base + keySuffix
		r.index = base + indexSuffix
	}
	return r
}

// EnsureIndex creates the material FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(r.index).
		Prefix(r.prefix).
		Tag(fieldStatus).
		Tag(fieldCategory).
		TextWithSuffixTrie(fieldTitle).
		TextWithSuffixTrie(fieldDescription).
		TagWithSuffixTrie(fieldKeywords, keywordSeparator).
		Numeric(fieldCreatedAt).
		Numeric(fieldViewCount).
		Numeric(fieldDownloadCount).
		VectorHNSW(fieldEmbedding, r.vectorDim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Get returns a material by ID.
func (r *Repo) Get(ctx context.Context, id string) (dommat.Material, error) {
	fields, err := r.store.HGetAll(ctx, r.prefix+id)
	if err != nil {
		return dommat.Material{}, fmt.Errorf("get material %s: %w: %w", id, domain.ErrSearchBackend, err)
	}
	if len(fields) == 0 {
		return dommat.Material{}, domain.ErrMaterialNotFound
	}
	return fromHashFields(id, fields), nil
}

// Exists reports whether a material is stored, without hydrating it.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.prefix+id)
	if err != nil {
		return false, fmt.Errorf("probe material %s: %w: %w", id, domain.ErrSearchBackend, err)
	}
	return ok, nil
}

// Upsert writes a material. Used by the ingest pipeline and tests; the
// search core itself never creates materials.
func (r *Repo) Upsert(ctx context.Context, m *dommat.Material) error {
	if err := r.store.HSet(ctx, r.prefix+m.ID(), toHashFields(m)); err != nil {
		return fmt.Errorf("upsert material %s: %w", m.ID(), err)
	}
	return nil
}

// Delete removes a material entirely. Like Upsert this serves the
// ingest and moderation pipeline; search never deletes.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.prefix+id); err != nil {
		return fmt.Errorf("delete material %s: %w", id, err)
	}
	return nil
}

// SetEmbedding persists a computed vector onto a material. Content
// fields are untouched, so updatedAt stays as-is.
func (r *Repo) SetEmbedding(ctx context.Context, id string, vector []float32) error {
	if len(vector) != r.vectorDim {
		return fmt.Errorf("embedding for %s has %d dims, index expects %d", id, len(vector), r.vectorDim)
	}
	fields := map[string]string{fieldEmbedding: db.VectorToBytes(vector)}
	if err := r.store.HSet(ctx, r.prefix+id, fields); err != nil {
		return fmt.Errorf("set embedding %s: %w", id, err)
	}
	return nil
}

// ClearEmbedding drops a material's stored vector, removing it from the
// semantic corpus until the next backfill run.
func (r *Repo) ClearEmbedding(ctx context.Context, id string) error {
	if err := r.store.HDel(ctx, r.prefix+id, fieldEmbedding); err != nil {
		return fmt.Errorf("clear embedding %s: %w", id, err)
	}
	return nil
}

// UpdateContent rewrites the searchable text fields and clears the
// embedding in the same call, so a stale vector is never served.
func (r *Repo) UpdateContent(
	ctx context.Context, id, title, description string, keywords []string, now time.Time,
) error {
	fields := map[string]string{
		fieldTitle:       title,
		fieldDescription: description,
		fieldKeywords:    joinKeywords(keywords),
		fieldUpdatedAt:   fmt.Sprintf("%d", now.Unix()),
	}
	if err := r.store.HSet(ctx, r.prefix+id, fields); err != nil {
		return fmt.Errorf("update content %s: %w", id, err)
	}
	return r.ClearEmbedding(ctx, id)
}

// IncrViewCount bumps the monotonic view counter and returns the new value.
func (r *Repo) IncrViewCount(ctx context.Context, id string) (int64, error) {
	n, err := r.store.HIncrBy(ctx, r.prefix+id, fieldViewCount, 1)
	if err != nil {
		return 0, fmt.Errorf("incr views %s: %w", id, err)
	}
	return n, nil
}

// IncrDownloadCount bumps the monotonic download counter and returns the new value.
func (r *Repo) IncrDownloadCount(ctx context.Context, id string) (int64, error) {
	n, err := r.store.HIncrBy(ctx, r.prefix+id, fieldDownloadCount, 1)
	if err != nil {
		return 0, fmt.Errorf("incr downloads %s: %w", id, err)
	}
	return n, nil
}
