// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single player account.
// The username doubles as the login identifier and must be unique.
type User struct {
	ID                 uuid.UUID // The unique identifier for the account.
	Username           string    // The unique login name, 1..50 characters.
	PasswordHash       string    // The bcrypt hash of the password. Opaque to everything but the hasher.
	Level              int       // The player's progression level. New accounts start at 1.
	UnlockedCharacters []string  // Ordered list of character names the player has unlocked.
	CreatedAt          time.Time // Timestamp of when this account was created.
	UpdatedAt          time.Time // Timestamp of the last modification to this account.
}

// DefaultLevel is the progression level assigned to newly registered accounts.
const DefaultLevel = 1

// MaxUsernameLength bounds the login identifier, matching the unique column width.
const MaxUsernameLength = 50

// NewUser builds a User with registration defaults applied.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:           username,
		PasswordHash:       passwordHash,
		Level:              DefaultLevel,
		UnlockedCharacters: []string{},
	}
}
