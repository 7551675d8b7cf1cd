package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetAvailablePartnersQueryIsNotConstructed = errors.New(
	"GetAvailablePartnersQuery must be created via NewGetAvailablePartnersQuery constructor",
)

// GetAvailablePartnersQuery requests a snapshot of partners able to take an
// order, optionally filtered by a name fragment. The snapshot may be stale
// by the time an assignment is attempted; the registry's reservation decides
// the race.
type GetAvailablePartnersQuery struct {
	nameFilter string

	guard guard.ConstructorGuard
}

// NewGetAvailablePartnersQuery creates the query. An empty nameFilter lists
// every available partner.
func NewGetAvailablePartnersQuery(nameFilter string) GetAvailablePartnersQuery {
	return GetAvailablePartnersQuery{
		nameFilter: nameFilter,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailablePartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailablePartnersQueryIsNotConstructed)
}

// NameFilter returns the optional name fragment to filter by.
func (q GetAvailablePartnersQuery) NameFilter() string {
	return q.nameFilter
}
