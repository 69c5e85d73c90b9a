package material

import (
	"strconv"
	"strings"
	"time"

	"github.com/mevaro/searchd/internal/db"
	dommat "github.com/mevaro/searchd/internal/domain/material"
	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/material/status"
)

// Hash field names. Timestamps are stored as unix seconds so FT can
// sort on them; the embedding is a little-endian float32 blob and is
// simply absent until backfilled.
const (
	fieldID            = "id"
	fieldTitle         = "title"
	fieldDescription   = "description"
	fieldKeywords      = "keywords"
	fieldCategory      = "category"
	fieldStatus        = "status"
	fieldFileURL       = "fileUrl"
	fieldFileType      = "fileType"
	fieldFileSize      = "fileSize"
	fieldUploaderID    = "uploaderId"
	fieldViewCount     = "viewCount"
	fieldDownloadCount = "downloadCount"
	fieldCreatedAt     = "createdAt"
	fieldUpdatedAt     = "updatedAt"
	fieldApprovedAt    = "approvedAt"
	fieldEmbedding     = "embedding"
)

const keywordSeparator = ","

// hydrateFields is the RETURN list for search paths: every material
// field except the embedding blob.
var hydrateFields = []string{
	fieldID, fieldTitle, fieldDescription, fieldKeywords,
	fieldCategory, fieldStatus,
	fieldFileURL, fieldFileType, fieldFileSize, fieldUploaderID,
	fieldViewCount, fieldDownloadCount,
	fieldCreatedAt, fieldUpdatedAt, fieldApprovedAt,
}

// toHashFields flattens a material into storable hash fields.
func toHashFields(m *dommat.Material) map[string]string {
	fields := map[string]string{
		fieldID:            m.ID(),
		fieldTitle:         m.Title(),
		fieldDescription:   m.Description(),
		fieldKeywords:      strings.Join(m.Keywords(), keywordSeparator),
		fieldCategory:      m.Category().String(),
		fieldStatus:        m.Status().String(),
		fieldFileURL:       m.FileURL(),
		fieldFileType:      m.FileType(),
		fieldFileSize:      strconv.FormatInt(m.FileSize(), 10),
		fieldUploaderID:    m.UploaderID(),
		fieldViewCount:     strconv.FormatInt(m.ViewCount(), 10),
		fieldDownloadCount: strconv.FormatInt(m.DownloadCount(), 10),
		fieldCreatedAt:     strconv.FormatInt(m.CreatedAt().Unix(), 10),
		fieldUpdatedAt:     strconv.FormatInt(m.UpdatedAt().Unix(), 10),
	}
	if at := m.ApprovedAt(); at != nil {
		fields[fieldApprovedAt] = strconv.FormatInt(at.Unix(), 10)
	}
	if m.HasEmbedding() {
		fields[fieldEmbedding] = db.VectorToBytes(m.Embedding())
	}
	return fields
}

// fromHashFields rehydrates a material from hash fields. id falls back
// to the id field when the caller has no key context.
func fromHashFields(id string, fields map[string]string) dommat.Material {
	if id == "" {
		id = fields[fieldID]
	}

	var keywords []string
	if raw := fields[fieldKeywords]; raw != "" {
		keywords = strings.Split(raw, keywordSeparator)
	}

	var approvedAt *time.Time
	if raw, ok := fields[fieldApprovedAt]; ok && raw != "" {
		at := parseUnix(raw)
		approvedAt = &at
	}

	return dommat.Reconstruct(
		id,
		fields[fieldTitle],
		fields[fieldDescription],
		keywords,
		category.Category(fields[fieldCategory]),
		status.Status(fields[fieldStatus]),
		fields[fieldFileURL],
		fields[fieldFileType],
		parseInt(fields[fieldFileSize]),
		fields[fieldUploaderID],
		parseInt(fields[fieldViewCount]),
		parseInt(fields[fieldDownloadCount]),
		parseUnix(fields[fieldCreatedAt]),
		parseUnix(fields[fieldUpdatedAt]),
		approvedAt,
		db.BytesToVector(fields[fieldEmbedding]),
	)
}

func joinKeywords(keywords []string) string {
	return strings.Join(keywords, keywordSeparator)
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseUnix(s string) time.Time {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(n, 0).UTC()
}
