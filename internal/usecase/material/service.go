// Package material handles reads and edits of individual materials.
package material

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mevaro/searchd/internal/domain"
	dommat "github.com/mevaro/searchd/internal/domain/material"
)

// Service handles material lookups, counters, and content edits.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a material service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get returns a single material by ID.
func (s *Service) Get(ctx context.Context, id string) (dommat.Material, error) {
	if id == "" {
		return dommat.Material{}, fmt.Errorf("%w: material ID is required", domain.ErrInvalidQuery)
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return dommat.Material{}, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// RecordView bumps the view counter and returns the new value. The
// material must exist; counters are never created implicitly.
func (s *Service) RecordView(ctx context.Context, id string) (int64, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	n, err := s.repo.IncrViewCount(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	return n, nil
}

// RecordDownload bumps the download counter and returns the new value.
func (s *Service) RecordDownload(ctx context.Context, id string) (int64, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return 0, fmt.Errorf("record download: %w", err)
	}
	n, err := s.repo.IncrDownloadCount(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record download: %w", err)
	}
	return n, nil
}

// UpdateContent replaces the searchable text of a material. The stored
// embedding is cleared as part of the same edit; the next backfill run
// recomputes it from the new text.
func (s *Service) UpdateContent(
	ctx context.Context, id, title, description string, keywords []string,
) error {
	if err := validateContent(id, title, description, keywords); err != nil {
		return err
	}
	if err := s.mustExist(ctx, id); err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if err := s.repo.UpdateContent(ctx, id, title, description, keywords, s.now()); err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

func (s *Service) mustExist(ctx context.Context, id string) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func validateContent(id, title, description string, keywords []string) error {
	if id == "" {
		return fmt.Errorf("%w: material ID is required", domain.ErrInvalidQuery)
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidQuery)
	}
	if len(title) > dommat.MaxTitleLength {
		return fmt.Errorf("%w: title too long (max %d)", domain.ErrInvalidQuery, dommat.MaxTitleLength)
	}
	if len(description) > dommat.MaxDescriptionLength {
		return fmt.Errorf("%w: description too long (max %d)", domain.ErrInvalidQuery, dommat.MaxDescriptionLength)
	}
	if len(keywords) > dommat.MaxKeywords {
		return fmt.Errorf("%w: too many keywords (max %d)", domain.ErrInvalidQuery, dommat.MaxKeywords)
	}
	return nil
}
