package order_test

import (
	"testing"
	"time"

	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"
	"compliance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionType(t *testing.T) {
	t.Run("should round trip every type", func(t *testing.T) {
		for _, transitionType := range []order.TransitionType{
			order.SystemAuto, order.AdminManual, order.AdminDelete, order.ClientResponse,
		} {
			parsed, err := order.TransitionTypeFromString(transitionType.String())

			require.NoError(t, err)
			assert.Equal(t, transitionType, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.TransitionTypeFromString("webhook")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should mark only admin types as manual", func(t *testing.T) {
		assert.True(t, order.AdminManual.IsManual())
		assert.True(t, order.AdminDelete.IsManual())
		assert.False(t, order.SystemAuto.IsManual())
		assert.False(t, order.ClientResponse.IsManual())
	})
}

func TestReasonCode(t *testing.T) {
	t.Run("should round trip every code", func(t *testing.T) {
		for _, code := range []order.ReasonCode{
			order.ReasonMissingInfo, order.ReasonIncorrectWording,
			order.ReasonToneStyle, order.ReasonWrongEmphasis,
			order.ReasonFormatting, order.ReasonFactualError,
			order.ReasonLegalCompliance, order.ReasonOther,
		} {
			parsed, err := order.ReasonCodeFromString(code.String())

			require.NoError(t, err)
			assert.Equal(t, code, parsed)
		}
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		_, err := order.ReasonCodeFromString("vibes")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewTimelineEntry(t *testing.T) {
	orderID := kernel.NewUUID()
	now := time.Now().UTC()

	t.Run("should create a valid entry", func(t *testing.T) {
		entry, err := order.NewTimelineEntry(
			orderID, order.Created, order.Paid,
			order.SystemAuto, "payment confirmed", "system", now,
		)

		require.NoError(t, err)
		require.NoError(t, entry.ID().Validate())
		assert.True(t, entry.OrderID().IsEqual(orderID))
		assert.Equal(t, order.Created, entry.PreviousState())
		assert.Equal(t, order.Paid, entry.NewState())
		assert.Nil(t, entry.Regeneration())
	})

	t.Run("should require a reason for manual transitions", func(t *testing.T) {
		_, err := order.NewTimelineEntry(
			orderID, order.Created, order.Cancelled,
			order.AdminManual, "", "admin@example.com", now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should accept an empty reason for automatic transitions", func(t *testing.T) {
		_, err := order.NewTimelineEntry(
			orderID, order.Created, order.Paid,
			order.SystemAuto, "", "system", now,
		)

		require.NoError(t, err)
	})

	t.Run("should require the actor", func(t *testing.T) {
		_, err := order.NewTimelineEntry(
			orderID, order.Created, order.Paid,
			order.SystemAuto, "", "", now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown states", func(t *testing.T) {
		_, err := order.NewTimelineEntry(
			orderID, order.Unknown, order.Paid,
			order.SystemAuto, "", "system", now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require the creation time", func(t *testing.T) {
		_, err := order.NewTimelineEntry(
			orderID, order.Created, order.Paid,
			order.SystemAuto, "", "system", time.Time{},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreTimelineEntry(t *testing.T) {
	t.Run("should carry the regeneration detail", func(t *testing.T) {
		detail := &order.RegenerationDetail{
			ReasonCode:       order.ReasonFactualError,
			AffectedSections: []string{"findings"},
			Guardrails:       order.Guardrails{PreserveFormat: true},
		}

		entry := order.RestoreTimelineEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.InternalReview, order.RegenRequested,
			order.AdminManual, "wrong boiler model", "reviewer@example.com",
			detail, time.Now().UTC(),
		)

		require.NotNil(t, entry.Regeneration())
		assert.Equal(t, order.ReasonFactualError, entry.Regeneration().ReasonCode)
		assert.True(t, entry.Regeneration().Guardrails.PreserveFormat)
	})
}
