package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessValidationResultCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewProcessValidationResultCommand(orderID, true)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.True(t, cmd.IsValid())
}

func TestNewProcessValidationResultCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewProcessValidationResultCommand(kernel.UUID{}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestProcessValidationResultCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.ProcessValidationResultCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessValidationResultCommandIsNotConstructed)
}
