// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern for
// the delivery aggregate, handling the conversion between domain entities and
// database representations.
package deliveryrepo

import (
	"time"

	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Maps delivery domain entities to relational database tables with
// indexing for the per-driver and open-delivery lookups.
//
// The version column backs optimistic saves: every update bumps it, and a
// stale writer loses the compare-and-set.
type DeliveryDTO struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	CustomerID     int64 `gorm:"index"`
	DriverID       int64 `gorm:"index"`
	Address        string
	Comment        string
	CreatedAt      time.Time
	EndedAt        *time.Time `gorm:"index"`
	EndImage       string
	EndOrderNumber int
	Version        int64

	Customer userrepo.UserDTO `gorm:"foreignKey:CustomerID"`
	Driver   userrepo.UserDTO `gorm:"foreignKey:DriverID"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database
// representation. Only the foreign keys are mapped for the participants;
// user rows are never written through this repository.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:             d.ID().Int64(),
		CustomerID:     d.Customer().ID().Int64(),
		DriverID:       d.Driver().ID().Int64(),
		Address:        d.Address(),
		Comment:        d.Comment(),
		CreatedAt:      d.CreatedAt(),
		EndedAt:        d.EndedAt(),
		EndImage:       d.EndImage(),
		EndOrderNumber: d.EndOrderNumber(),
		Version:        d.Version(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate, including both participants from the
// preloaded user rows, using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	customer, err := userrepo.ToDomain(dto.Customer)
	if err != nil {
		return nil, err
	}

	driver, err := userrepo.ToDomain(dto.Driver)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		customer,
		driver,
		dto.Address,
		dto.Comment,
		dto.CreatedAt,
		dto.EndedAt,
		dto.EndImage,
		dto.EndOrderNumber,
		dto.Version,
	)
}
