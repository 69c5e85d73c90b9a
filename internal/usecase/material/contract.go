package material

import (
	"context"
	"time"

	dommat "github.com/mevaro/searchd/internal/domain/material"
)

// Repository defines the storage contract for material reads and edits.
type Repository interface {
	Get(ctx context.Context, id string) (dommat.Material, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateContent(ctx context.Context, id, title, description string, keywords []string, now time.Time) error
	IncrViewCount(ctx context.Context, id string) (int64, error)
	IncrDownloadCount(ctx context.Context, id string) (int64, error)
}
