package documentrepo

import (
	"context"
	"errors"

	"compliance/internal/core/domain/model/document"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDocumentVersionRepository implements DocumentVersionRepository using GORM.
type GormDocumentVersionRepository struct {
	db *gorm.DB
}

// NewGormDocumentVersionRepository creates a new GORM document version repository.
func NewGormDocumentVersionRepository(db *gorm.DB) *GormDocumentVersionRepository {
	return &GormDocumentVersionRepository{db: db}
}

// Add saves a new document version. Inserting a duplicate (order, version)
// pair fails on the primary key.
func (r *GormDocumentVersionRepository) Add(ctx context.Context, version *document.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}

	dto := fromDomain(version)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves one version of an order's document.
func (r *GormDocumentVersionRepository) Get(
	ctx context.Context,
	orderID kernel.UUID,
	version int,
) (*document.Version, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentVersionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND version = ?", orderID.Bytes(), version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("documentVersion", version)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves all versions for an order, lowest first.
func (r *GormDocumentVersionRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*document.Version, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DocumentVersionDTO
	err := r.db.WithContext(ctx).
		Order("version").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	versions := make([]*document.Version, 0, len(dtos))
	for _, dto := range dtos {
		v, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		versions = append(versions, v)
	}

	return versions, nil
}

// MaxVersion returns the highest version number for the order, 0 when the
// order has no versions yet.
func (r *GormDocumentVersionRepository) MaxVersion(ctx context.Context, orderID kernel.UUID) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var maxVersion int
	err := r.db.WithContext(ctx).
		Model(&DocumentVersionDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}

	return maxVersion, nil
}

// MarkApproved sets the approval flag on one version.
func (r *GormDocumentVersionRepository) MarkApproved(
	ctx context.Context,
	orderID kernel.UUID,
	version int,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DocumentVersionDTO{}).
		Where("order_id = ? AND version = ?", orderID.Bytes(), version).
		Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("documentVersion", version)
	}

	return nil
}
