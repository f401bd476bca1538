// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The algorithm
	// embeds a fresh random salt per call, so hashing the same password twice
	// yields different strings. It fails only on internal failure, never on
	// input shape.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// A mismatch or a malformed stored hash both return false, not an error.
	Check(password, hash string) bool
}
