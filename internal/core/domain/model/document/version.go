// Package document contains the DocumentVersion entity: one immutable
// generated artifact for an order. Versions accumulate through regeneration
// and at most one version per order is ever approved.
package document

import (
	"errors"
	"fmt"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/pkg/errs"
)

// ErrVersionIsNotConstructed is returned when a Version instance was not
// created through NewVersion or RestoreVersion.
var ErrVersionIsNotConstructed = errors.New("Version must be created via NewVersion or RestoreVersion")

// Version is one generated document artifact for an order.
//
// Invariants:
//   - Version numbers are positive and strictly increasing per order.
//   - A version is immutable once created, except for the single,
//     irreversible approval flag.
//   - At most one version per order is approved; approving it sets the
//     order's version lock in the same unit of work.
type Version struct {
	orderID           kernel.UUID
	version           int
	documentType      string
	isRegeneration    bool
	regenerationNotes string
	isApproved        bool
	generatedAt       time.Time

	isConstructed bool
}

// NewVersion creates a document version. The version number must be positive;
// regenerationNotes are only meaningful when isRegeneration is set.
func NewVersion(
	orderID kernel.UUID,
	version int,
	documentType string,
	isRegeneration bool,
	regenerationNotes string,
	generatedAt time.Time,
) (*Version, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is not a positive version number", version),
		)
	}
	if documentType == "" {
		return nil, errs.NewValueIsRequiredError("documentType")
	}
	if generatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("generatedAt")
	}

	return &Version{
		orderID:           orderID,
		version:           version,
		documentType:      documentType,
		isRegeneration:    isRegeneration,
		regenerationNotes: regenerationNotes,
		generatedAt:       generatedAt,
		isConstructed:     true,
	}, nil
}

// RestoreVersion reconstructs a version from persistence.
func RestoreVersion(
	orderID kernel.UUID,
	version int,
	documentType string,
	isRegeneration bool,
	regenerationNotes string,
	isApproved bool,
	generatedAt time.Time,
) (*Version, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidError("version")
	}

	return &Version{
		orderID:           orderID,
		version:           version,
		documentType:      documentType,
		isRegeneration:    isRegeneration,
		regenerationNotes: regenerationNotes,
		isApproved:        isApproved,
		generatedAt:       generatedAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Version instance was properly constructed.
func (v *Version) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVersionIsNotConstructed
	}
	return nil
}

// OrderID returns the owning order's identifier.
func (v *Version) OrderID() kernel.UUID { return v.orderID }

// Number returns the version number, unique and increasing per order.
func (v *Version) Number() int { return v.version }

// DocumentType returns the kind of generated document.
func (v *Version) DocumentType() string { return v.documentType }

// IsRegeneration reports whether this version was produced by a
// regeneration request rather than the initial draft.
func (v *Version) IsRegeneration() bool { return v.isRegeneration }

// RegenerationNotes returns the correction notes the version was generated
// against, empty for initial drafts.
func (v *Version) RegenerationNotes() string { return v.regenerationNotes }

// IsApproved reports whether this version has been approved.
func (v *Version) IsApproved() bool { return v.isApproved }

// GeneratedAt returns when the generator produced the artifact.
func (v *Version) GeneratedAt() time.Time { return v.generatedAt }

// Approve sets the approval flag. Approval is idempotent on the same
// version and irreversible once set.
func (v *Version) Approve() {
	v.isApproved = true
}
