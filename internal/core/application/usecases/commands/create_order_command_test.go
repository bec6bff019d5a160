package commands_test

import (
	"testing"

	"compliance/internal/core/application/usecases/commands"
	"compliance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	sla := 48
	cmd, err := commands.NewCreateOrderCommand(
		"Acme Ltd", "ops@acme.example", "+441234567890",
		"EPC Certificate", "epc", "energy",
		12900, "GBP",
		&sla, true, "rush job",
	)
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", cmd.Customer().Name())
	assert.Equal(t, "epc", cmd.Service().Code())
	assert.Equal(t, int64(12900), cmd.Pricing().Amount())
	assert.Equal(t, 48, *cmd.SLAHours())
	assert.True(t, cmd.Priority())
	assert.Equal(t, "rush job", cmd.InternalNotes())
}

func TestNewCreateOrderCommand_InvalidEmail(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"Acme Ltd", "not-an-email", "",
		"EPC Certificate", "epc", "energy",
		12900, "GBP",
		nil, false, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_NegativeAmount(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"Acme Ltd", "ops@acme.example", "",
		"EPC Certificate", "epc", "energy",
		-1, "GBP",
		nil, false, "",
	)
	require.Error(t, err)
}

func TestNewCreateOrderCommand_MissingServiceCode(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"Acme Ltd", "ops@acme.example", "",
		"EPC Certificate", "", "energy",
		12900, "GBP",
		nil, false, "",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
