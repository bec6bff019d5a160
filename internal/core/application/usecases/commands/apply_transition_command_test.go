package commands_test

import (
	"testing"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/core/domain/model/kernel"
	"compliance/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplyTransitionCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewApplyTransitionCommand(
		id, order.ActionCancel, order.AdminManual, "duplicate order", "admin", nil,
	)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.ActionCancel, cmd.Action())
	assert.Equal(t, order.AdminManual, cmd.TransitionType())
	assert.Equal(t, "duplicate order", cmd.Reason())
	assert.Equal(t, "admin", cmd.Actor())
	assert.Nil(t, cmd.RollbackTarget())
}

func TestNewApplyTransitionCommand_RollbackTarget(t *testing.T) {
	target := order.Queued
	cmd, err := commands.NewApplyTransitionCommand(
		kernel.NewUUID(), order.ActionRollback, order.AdminManual, "retry from queue", "admin", &target,
	)
	require.NoError(t, err)
	require.NotNil(t, cmd.RollbackTarget())
	assert.Equal(t, order.Queued, *cmd.RollbackTarget())
}

func TestNewApplyTransitionCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewApplyTransitionCommand(
		kernel.UUID{}, order.ActionQueue, order.SystemAuto, "", "", nil,
	)
	require.Error(t, err)
}

func TestNewApplyTransitionCommand_UnknownAction(t *testing.T) {
	_, err := commands.NewApplyTransitionCommand(
		kernel.NewUUID(), order.ActionUnknown, order.SystemAuto, "", "", nil,
	)
	require.Error(t, err)
}

func TestNewApplyTransitionCommand_UnknownTransitionType(t *testing.T) {
	_, err := commands.NewApplyTransitionCommand(
		kernel.NewUUID(), order.ActionQueue, order.TransitionUnknown, "", "", nil,
	)
	require.Error(t, err)
}
