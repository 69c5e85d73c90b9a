// Package material defines the searchable content aggregate.
package material

import (
	"fmt"
	"strings"
	"time"

	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/material/status"
)

// Field limits enforced by the upload pipeline; re-checked here so a
// malformed record can never enter the store through this module.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxKeywords          = 5
)

// Material is one piece of published content (immutable value object).
type Material struct {
	id            string
	title         string
	description   string
	keywords      []string
	cat           category.Category
	state         status.Status
	fileURL       string
	fileType      string
	fileSize      int64
	uploaderID    string
	viewCount     int64
	downloadCount int64
	createdAt     time.Time
	updatedAt     time.Time
	approvedAt    *time.Time
	embedding     []float32
}

// New validates and creates a Material in the pending state.
func New(
	id, title, description string, keywords []string,
	cat category.Category, fileURL, fileType string, fileSize int64,
	uploaderID string, createdAt time.Time,
) (Material, error) {
	if id == "" {
		return Material{}, fmt.Errorf("material ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return Material{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Material{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if len(description) > MaxDescriptionLength {
		return Material{}, fmt.Errorf("description too long (max %d)", MaxDescriptionLength)
	}
	if len(keywords) > MaxKeywords {
		return Material{}, fmt.Errorf("too many keywords (max %d)", MaxKeywords)
	}
	if !cat.IsValid() {
		return Material{}, fmt.Errorf("invalid category %q", cat)
	}

	return Material{
		id:          id,
		title:       title,
		description: description,
		keywords:    cloneStrings(keywords),
		cat:         cat,
		state:       status.Pending,
		fileURL:     fileURL,
		fileType:    fileType,
		fileSize:    fileSize,
		uploaderID:  uploaderID,
		createdAt:   createdAt,
		updatedAt:   createdAt,
	}, nil
}

// Reconstruct creates a Material without validation (storage hydration).
func Reconstruct(
	id, title, description string, keywords []string,
	cat category.Category, state status.Status,
	fileURL, fileType string, fileSize int64, uploaderID string,
	viewCount, downloadCount int64,
	createdAt, updatedAt time.Time, approvedAt *time.Time,
	embedding []float32,
) Material {
	return Material{
		id: id, title: title, description: description, keywords: keywords,
		cat: cat, state: state,
		fileURL: fileURL, fileType: fileType, fileSize: fileSize, uploaderID: uploaderID,
		viewCount: viewCount, downloadCount: downloadCount,
		createdAt: createdAt, updatedAt: updatedAt, approvedAt: approvedAt,
		embedding: embedding,
	}
}

// ID returns the material identifier.
func (m *Material) ID() string { return m.id }

// Title returns the material title.
func (m *Material) Title() string { return m.title }

// Description returns the material description ("" when absent).
func (m *Material) Description() string { return m.description }

// Keywords returns the free-form keyword list.
func (m *Material) Keywords() []string { return m.keywords }

// Category returns the material category.
func (m *Material) Category() category.Category { return m.cat }

// Status returns the publication state.
func (m *Material) Status() status.Status { return m.state }

// FileURL returns the stored file location.
func (m *Material) FileURL() string { return m.fileURL }

// FileType returns the stored file type.
func (m *Material) FileType() string { return m.fileType }

// FileSize returns the stored file size in bytes.
func (m *Material) FileSize() int64 { return m.fileSize }

// UploaderID returns the uploading user identifier.
func (m *Material) UploaderID() string { return m.uploaderID }

// ViewCount returns the monotonic view counter.
func (m *Material) ViewCount() int64 { return m.viewCount }

// DownloadCount returns the monotonic download counter.
func (m *Material) DownloadCount() int64 { return m.downloadCount }

// CreatedAt returns the creation timestamp.
func (m *Material) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns the last modification timestamp.
func (m *Material) UpdatedAt() time.Time { return m.updatedAt }

// ApprovedAt returns the approval timestamp (nil until approved).
func (m *Material) ApprovedAt() *time.Time { return m.approvedAt }

// Embedding returns the stored vector (nil until backfilled).
func (m *Material) Embedding() []float32 { return m.embedding }

// HasEmbedding reports whether the material can participate in semantic search.
func (m *Material) HasEmbedding() bool { return len(m.embedding) > 0 }

// EmbeddingText returns the canonical text the material's vector is derived from.
func (m *Material) EmbeddingText() string {
	return EmbeddingText(m.title, m.description, m.keywords)
}

// EmbeddingText composes the canonical embedding input: title, then
// description, then keywords joined by ", ", non-empty parts separated
// by newlines. Empty optional parts are omitted, not inserted as blank
// lines, so the composition is deterministic for identical inputs.
func EmbeddingText(title, description string, keywords []string) string {
	parts := make([]string, 0, 3)
	if title != "" {
		parts = append(parts, title)
	}
	if description != "" {
		parts = append(parts, description)
	}
	if kw := strings.Join(keywords, ", "); kw != "" {
		parts = append(parts, kw)
	}
	return strings.Join(parts, "\n")
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
