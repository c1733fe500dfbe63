package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	lineID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, []commands.OrderLineSpec{
		{LineID: lineID, SKU: "IPA-001", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, customerID, cmd.CustomerID())
	require.Len(t, cmd.Lines(), 1)
	assert.Equal(t, lineID, cmd.Lines()[0].LineID)
	assert.Equal(t, "IPA-001", cmd.Lines()[0].SKU)
	assert.Equal(t, 5, cmd.Lines()[0].Quantity)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID(), []commands.OrderLineSpec{
		{LineID: kernel.NewUUID(), SKU: "IPA-001", Quantity: 5},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidCustomerID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.UUID{}, []commands.OrderLineSpec{
		{LineID: kernel.NewUUID(), SKU: "IPA-001", Quantity: 5},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_NoLines(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrLinesAreRequired)
}

func TestNewCreateOrderCommand_EmptySKU(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLineSpec{
		{LineID: kernel.NewUUID(), SKU: "", Quantity: 5},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrSKUIsRequired)
}

func TestNewCreateOrderCommand_InvalidQuantity(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLineSpec{
		{LineID: kernel.NewUUID(), SKU: "IPA-001", Quantity: 0},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
