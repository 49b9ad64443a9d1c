package deliveryrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database and returns the persisted
// aggregate carrying the storage-assigned identifier and initial version.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) (*delivery.Delivery, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	dto.Version = 1

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return nil, err
	}

	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	persisted, err := delivery.RestoreDelivery(
		id,
		aggregate.Customer(),
		aggregate.Driver(),
		aggregate.Address(),
		aggregate.Comment(),
		aggregate.CreatedAt(),
		aggregate.EndedAt(),
		aggregate.EndImage(),
		aggregate.EndOrderNumber(),
		dto.Version,
	)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(persisted.ID(), persisted)
	return persisted, nil
}

// Update saves an existing delivery to the database. The save is optimistic:
// the row must still carry the version the aggregate was loaded with,
// otherwise a concurrent writer got there first and the save fails with a
// conflict error.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Int64(), aggregate.Version()).
		Updates(map[string]any{
			"ended_at":         aggregate.EndedAt(),
			"end_image":        aggregate.EndImage(),
			"end_order_number": aggregate.EndOrderNumber(),
			"version":          aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(
			fmt.Sprintf("delivery %s was modified concurrently", aggregate.ID()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateAll saves a set of mutated deliveries. Each save keeps Update's
// optimistic semantics; the surrounding transaction makes the batch atomic.
func (r *GormDeliveryRepository) UpdateAll(ctx context.Context, aggregates []*delivery.Delivery) error {
	for _, aggregate := range aggregates {
		if err := r.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a delivery by ID with both participants preloaded.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Driver").
		First(&dto, "deliveries.id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves all deliveries that have not been completed yet.
func (r *GormDeliveryRepository) GetAllOpen(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Driver").
		Order("id").
		Find(&dtos, "ended_at IS NULL").Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
