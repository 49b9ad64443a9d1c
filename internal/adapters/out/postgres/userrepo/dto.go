// Package userrepo provides data transfer objects and mapping functions for
// user persistence. Users are reference data for the dispatch flows: commands
// resolve participants here before touching the delivery table.
package userrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// UserDTO represents the database structure for persisting users.
// The same rows back both sides of a delivery; the role column tells
// customers and drivers apart.
type UserDTO struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
	Role string `gorm:"index"`
}

// TableName specifies the database table name for user entities.
// Overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// ToDomain converts a database DTO to a user domain entity.
// Exported because the delivery repository rehydrates its participants
// from joined user rows.
func ToDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	return user.NewUser(id, dto.Name, user.Role(dto.Role))
}

// FromDomain converts a user domain entity to its database representation.
func FromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:   u.ID().Int64(),
		Name: u.Name(),
		Role: string(u.Role()),
	}
}
