package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailablePartnersQueryResponse is the read model of one available
// delivery partner.
type GetAvailablePartnersQueryResponse struct {
	ID          kernel.UUID
	Name        string
	PhoneNumber string
}

// GetAvailablePartnersQueryHandler lists the currently available partners.
type GetAvailablePartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailablePartnersQueryHandler creates a handler for registry reads.
func NewGetAvailablePartnersQueryHandler(db *gorm.DB) GetAvailablePartnersQueryHandler {
	return GetAvailablePartnersQueryHandler{db: db}
}

// Handle executes the snapshot read, sorted by name.
func (h GetAvailablePartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailablePartnersQuery,
) ([]GetAvailablePartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT id, name, phone_number
		FROM delivery_partners
		WHERE is_available
	`
	args := make([]any, 0, 1)
	if query.NameFilter() != "" {
		sqlQuery += " AND name ILIKE ?"
		args = append(args, "%"+query.NameFilter()+"%")
	}
	sqlQuery += " ORDER BY name"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]GetAvailablePartnersQueryResponse, 0)
	for rows.Next() {
		var (
			partner GetAvailablePartnersQueryResponse
			id      uuid.UUID
		)

		if err = rows.Scan(&id, &partner.Name, &partner.PhoneNumber); err != nil {
			return nil, err
		}

		if partner.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		partners = append(partners, partner)
	}

	return partners, rows.Err()
}
