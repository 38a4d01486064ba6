package adapter

import "context"

// IdentityService defines the interface for generating account identifiers.
// Both operations guarantee uniqueness against the user store.
type IdentityService interface {
	// GeneratePublicID generates a unique public account identifier of the
	// form PREFIX + date + initials + random digits + checksum.
	GeneratePublicID(ctx context.Context, firstName, lastName string) (string, error)

	// GenerateUsername builds a readable unique username from the user's
	// name, country and optional organization.
	GenerateUsername(ctx context.Context, firstName, lastName, country, organization string) (string, error)
}
