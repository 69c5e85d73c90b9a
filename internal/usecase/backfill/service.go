// Package backfill computes embeddings for approved materials that do
// not have one yet, typically after a catalog import or a content edit.
package backfill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dommat "github.com/mevaro/searchd/internal/domain/material"
)

// Report summarizes one backfill run.
type Report struct {
	Scanned  int
	Embedded int
	Failed   int
}

// Service fills in missing material embeddings.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a backfill service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, logger: logger}
}

// Run scans for approved materials without an embedding and computes
// one for each, sequentially. A failed item is logged and skipped; the
// run keeps going. Re-running is safe: embedded materials no longer
// match the scan.
func (s *Service) Run(ctx context.Context) (Report, error) {
	materials, err := s.repo.ListMissingEmbeddings(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list missing embeddings: %w", err)
	}

	report := Report{Scanned: len(materials)}
	for i := range materials {
		if err = ctx.Err(); err != nil {
			return report, fmt.Errorf("backfill interrupted: %w", err)
		}
		if err = s.backfillOne(ctx, &materials[i]); err != nil {
			report.Failed++
			s.logger.Warn("Backfill item failed",
				zap.String("material_id", materials[i].ID()),
				zap.Error(err),
			)
			continue
		}
		report.Embedded++
	}

	return report, nil
}

func (s *Service) backfillOne(ctx context.Context, m *dommat.Material) error {
	text := m.EmbeddingText()
	if text == "" {
		return fmt.Errorf("material %s has no embeddable text", m.ID())
	}

	embResult, err := s.embed.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	if err := s.repo.SetEmbedding(ctx, m.ID(), embResult.Embedding); err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}
