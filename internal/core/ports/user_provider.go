package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// UserProvider resolves numeric user identifiers to user records with roles.
// It fronts the identity service; this core only reads users to validate
// delivery participants and realtime connections.
type UserProvider interface {
	// Get retrieves a user by identifier.
	// Returns an object-not-found error when the user does not exist.
	Get(ctx context.Context, id kernel.ID) (*user.User, error)
}
