package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_ValidInput(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error

	_, err := queries.NewGetOrderQuery(invalidID)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetOrderQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetOrderQuery{}

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
