// Package documentrepo persists document versions. The (order_id, version)
// pair is the primary key, so duplicate version numbers for one order are
// rejected by the database itself.
package documentrepo

import (
	"time"

	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DocumentVersionDTO represents the database structure for document versions.
type DocumentVersionDTO struct {
	OrderID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version           int       `gorm:"primaryKey"`
	DocumentType      string
	IsRegeneration    bool
	RegenerationNotes string
	IsApproved        bool
	GeneratedAt       time.Time
}

// TableName overrides GORM's default naming convention.
func (DocumentVersionDTO) TableName() string {
	return "document_versions"
}

func fromDomain(version *document.Version) DocumentVersionDTO {
	return DocumentVersionDTO{
		OrderID:           version.OrderID().Bytes(),
		Version:           version.Number(),
		DocumentType:      version.DocumentType(),
		IsRegeneration:    version.IsRegeneration(),
		RegenerationNotes: version.RegenerationNotes(),
		IsApproved:        version.IsApproved(),
		GeneratedAt:       version.GeneratedAt(),
	}
}

func toDomain(dto DocumentVersionDTO) (*document.Version, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return document.RestoreVersion(
		orderID,
		dto.Version,
		dto.DocumentType,
		dto.IsRegeneration,
		dto.RegenerationNotes,
		dto.IsApproved,
		dto.GeneratedAt,
	)
}
