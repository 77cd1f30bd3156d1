package commands_test

import (
	"testing"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewUpdateOrderStatusCommand(authz.Caller{ID: 1}, id, order.Delivered)

	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.Delivered, cmd.Status())
}

func TestNewUpdateOrderStatusCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(authz.Caller{ID: 1}, kernel.UUID{}, order.Unknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrFieldNotValid)
}
