package partnerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a new GORM partner repository. A nil
// tracker is allowed for callers operating outside a unit of work, such as
// the registry used by the assignment coordinator.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly registered partner to the database.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update saves an existing partner to the database. All columns are written,
// including zero values such as a cleared availability flag.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.track(aggregate)
	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves a snapshot of partners currently able to take an
// order. The snapshot may be stale by the time a reservation is attempted;
// Reserve remains the single source of truth.
func (r *GormPartnerRepository) GetAllAvailable(ctx context.Context) ([]*partner.DeliveryPartner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Order("name").
		Find(&dtos, "is_available = ?", true).Error; err != nil {
		return nil, err
	}

	partners := make([]*partner.DeliveryPartner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}

// Reserve persists the reservation carried by the aggregate. The stored
// availability acts as the compare-and-swap guard: the update only matches a
// row that is still available, so under N concurrent reservation attempts
// exactly one sees an affected row and every other caller gets
// partner.ErrPartnerUnavailable.
func (r *GormPartnerRepository) Reserve(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ? AND is_available = ?", dto.ID, true).
		Updates(map[string]any{
			"is_available":    false,
			"active_order_id": dto.ActiveOrderID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// No matched row means either the partner is reserved or the row
		// does not exist; only the follow-up lookup can tell them apart.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&PartnerDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("partner", aggregate.ID().String())
		}
		return partner.ErrPartnerUnavailable
	}

	r.track(aggregate)
	return nil
}

// Release frees a reserved partner, clearing the active order binding and
// restoring availability. Releasing a partner that holds no reservation is a
// no-op.
func (r *GormPartnerRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"is_available":    true,
			"active_order_id": nil,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("partner", id.String())
	}

	return nil
}

func (r *GormPartnerRepository) track(aggregate *partner.DeliveryPartner) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
