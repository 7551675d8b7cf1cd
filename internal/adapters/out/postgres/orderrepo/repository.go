package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. A nil tracker
// is allowed for read-mostly callers outside a unit of work. A non-nil
// tracker marks the repository as part of a unit of work: single-order reads
// then lock the order row for the rest of the transaction, so concurrent
// read-modify-write cycles on one order id run serially instead of
// overwriting each other from stale reads.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items and seeded history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order. Order columns and line items are written
// in full; the status history is append-only, so only entries beyond the
// persisted count are inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Save with FullSaveAssociations upserts line items by primary key.
	// History is handled separately below to keep it append-only.
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Omit("History").
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.appendHistory(ctx, dto); err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID with its line items and history. Inside a
// unit of work the read takes SELECT ... FOR UPDATE on the order row.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	dto, err := r.loadOne(ctx, "id = ?", id.Bytes())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	dto, err := r.loadOne(ctx, "order_number = ?", orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all orders in the given status, oldest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.withChildren(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) loadOne(ctx context.Context, query string, arg any) (OrderDTO, error) {
	db := r.withChildren(ctx)
	// Write-path reads lock the order row until the transaction ends. The
	// preloaded child rows are not locked; holding the parent row is enough
	// because every mutation path reads the order first.
	if r.tracker != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := db.First(&dto, query, arg).Error; err != nil {
		return OrderDTO{}, err
	}
	return dto, nil
}

// withChildren preloads line items by position and history by append order,
// so toDomain reconstructs the aggregate in the original sequence.
func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
}

// appendHistory inserts history entries the database does not have yet.
// Persisted entries are immutable, so the stored rows are always a prefix of
// the aggregate's history.
func (r *GormOrderRepository) appendHistory(ctx context.Context, dto OrderDTO) error {
	var persisted int64
	if err := r.db.WithContext(ctx).
		Model(&HistoryDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error; err != nil {
		return err
	}

	if int(persisted) >= len(dto.History) {
		return nil
	}

	tail := dto.History[persisted:]
	return r.db.WithContext(ctx).Create(&tail).Error
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
