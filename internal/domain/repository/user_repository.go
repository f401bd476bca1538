// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"arena/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsername retrieves a single user by their unique username.
	// Returns ErrUserNotFound when no such account exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user entity to the storage. The store enforces
	// username uniqueness at insert time; a duplicate insert fails with the
	// domain's username-taken error even when two inserts race. Callers must
	// treat that conflict, not any prior existence check, as authoritative.
	Create(ctx context.Context, user *entity.User) error
}
