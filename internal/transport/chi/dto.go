package chi

import (
	"time"

	dommat "github.com/mevaro/searchd/internal/domain/material"
	"github.com/mevaro/searchd/internal/domain/search/result"
)

// MaterialDTO is the wire shape of a material. The embedding never
// leaves the service.
type MaterialDTO struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	Category      string   `json:"category"`
	Status        string   `json:"status"`
	FileURL       string   `json:"fileUrl"`
	FileType      string   `json:"fileType"`
	FileSize      int64    `json:"fileSize"`
	UploaderID    string   `json:"uploaderId"`
	ViewCount     int64    `json:"viewCount"`
	DownloadCount int64    `json:"downloadCount"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	ApprovedAt    *string  `json:"approvedAt,omitempty"`
}

// SearchResponse is the search result envelope.
type SearchResponse struct {
	Items      []MaterialDTO `json:"items"`
	Total      int           `json:"total"`
	SearchType string        `json:"searchType"`
}

// CounterResponse is returned by the view/download counter endpoints.
type CounterResponse struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

// UpdateContentRequest is the body of a content edit.
type UpdateContentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func materialToDTO(m *dommat.Material) MaterialDTO {
	dto := MaterialDTO{
		ID:            m.ID(),
		Title:         m.Title(),
		Description:   m.Description(),
		Keywords:      m.Keywords(),
		Category:      m.Category().String(),
		Status:        m.Status().String(),
		FileURL:       m.FileURL(),
		FileType:      m.FileType(),
		FileSize:      m.FileSize(),
		UploaderID:    m.UploaderID(),
		ViewCount:     m.ViewCount(),
		DownloadCount: m.DownloadCount(),
		CreatedAt:     m.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:     m.UpdatedAt().UTC().Format(time.RFC3339),
	}
	if m.Keywords() == nil {
		dto.Keywords = []string{}
	}
	if at := m.ApprovedAt(); at != nil {
		s := at.UTC().Format(time.RFC3339)
		dto.ApprovedAt = &s
	}
	return dto
}

func hitsToDTO(hits []result.Hit) []MaterialDTO {
	items := make([]MaterialDTO, len(hits))
	for i := range hits {
		items[i] = materialToDTO(hits[i].Material())
	}
	return items
}
